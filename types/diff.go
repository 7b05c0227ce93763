package types

import (
	"bytes"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// StateDiff is the per-account state change set produced by simulating a
// transaction without committing it (trace_call with the stateDiff trace
// type). A nil map means the node produced no diff for the transaction.
type StateDiff map[common.Address]AccountDiff

// AccountDiff holds one touched account's changes. Only storage matters
// here; balance and nonce movements are not inspected.
type AccountDiff struct {
	Storage map[common.Hash]StorageDiff `json:"storage"`
}

// StorageDiff is one storage slot's change. The node encodes unchanged
// slots as the bare string "=", additions as {"+": value}, removals as
// {"-": value} and modifications as {"*": {"from": ..., "to": ...}}.
type StorageDiff struct {
	Added   *common.Hash
	Removed *common.Hash
	Changed *ValueChange
}

type ValueChange struct {
	From common.Hash `json:"from"`
	To   common.Hash `json:"to"`
}

var unchangedMarker = []byte(`"="`)

func (d *StorageDiff) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), unchangedMarker) {
		return nil
	}
	var aux struct {
		Added   *common.Hash `json:"+"`
		Removed *common.Hash `json:"-,"`
		Changed *ValueChange `json:"*"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Added = aux.Added
	d.Removed = aux.Removed
	d.Changed = aux.Changed
	return nil
}
