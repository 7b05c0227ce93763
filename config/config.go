package config

import "time"

// Path config
const (
	LogPath        = "./logs/"
	ConfigPath     = "./"
	CheckpointPath = "./pools-checkpoint.json"
)

// Network config
const (
	DefaultRetryTimes    = 3
	DefaultRetryInterval = 50 * time.Millisecond
	DefaultTimeout       = 20 * time.Second
)

// Pipeline config
const (
	// Per-subscriber event bus buffer. A consumer falling further behind
	// than this loses its oldest undelivered events.
	EVENT_BUS_CAPACITY = 512

	// Upper bound on pending-transaction bodies resolved concurrently.
	PENDING_RESOLVE_PARALLEL_NUM = 256

	// Buffer sizes for the raw subscription channels.
	HEAD_STREAM_BUFFER    = 64
	PENDING_STREAM_BUFFER = 1024
)

// Pool sync config
const (
	POOL_SYNC_BLOCK_STEP = 50000

	UNISWAP_V2_FACTORY                = "0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"
	UNISWAP_V2_FACTORY_CREATION_BLOCK = 10000835

	UNISWAP_V3_FACTORY                = "0x1F98431c8aD98523631AE4a59f267346ea31F984"
	UNISWAP_V3_FACTORY_CREATION_BLOCK = 12369621
)

// Detection config
const (
	// Storage slot index of the balance mapping in standard fungible-token
	// layouts. Tokens laid out differently simply never match at the
	// derived slot.
	BALANCE_MAPPING_SLOT = 3
)
