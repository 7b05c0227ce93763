package pools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"poolwatch/types"
)

func TestCheckpointRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools-checkpoint.json")

	want := &Checkpoint{
		LastBlock: 18_000_000,
		Pools:     samplePools(),
	}
	if err := SaveCheckpoint(path, want); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}

	got, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if got.LastBlock != want.LastBlock {
		t.Fatalf("lastBlock: got %d, want %d", got.LastBlock, want.LastBlock)
	}
	if len(got.Pools) != len(want.Pools) {
		t.Fatalf("pools: got %d, want %d", len(got.Pools), len(want.Pools))
	}
	for i := range want.Pools {
		if got.Pools[i] != want.Pools[i] {
			t.Fatalf("pool %d: got %+v, want %+v", i, got.Pools[i], want.Pools[i])
		}
	}
}

func TestLoadCheckpointMissingFile(t *testing.T) {
	if _, err := LoadCheckpoint(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("missing checkpoint file did not error")
	}
}

func TestLoadCheckpointCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools-checkpoint.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCheckpoint(path); err == nil {
		t.Fatalf("corrupt checkpoint did not error")
	}
}

func TestCheckpointPoolAddressesSurvive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools-checkpoint.json")
	pool := types.Pool{
		Address: common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"),
		TokenA:  weth,
		TokenB:  dai,
		Variant: types.UniswapV3,
		Fee:     500,
	}
	if err := SaveCheckpoint(path, &Checkpoint{LastBlock: 1, Pools: []types.Pool{pool}}); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}
	got, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if got.Pools[0].Address != pool.Address || got.Pools[0].Fee != 500 {
		t.Fatalf("pool did not survive the roundtrip: %+v", got.Pools[0])
	}
}
