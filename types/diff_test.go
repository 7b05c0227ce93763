package types

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// A trimmed trace_call stateDiff response: one token contract with an
// unchanged, an added and a modified slot, plus a touched account with no
// storage movement at all.
const sampleStateDiff = `{
	"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": {
		"balance": "=",
		"nonce": "=",
		"code": "=",
		"storage": {
			"0x0000000000000000000000000000000000000000000000000000000000000001": "=",
			"0x0000000000000000000000000000000000000000000000000000000000000002": {
				"+": "0x00000000000000000000000000000000000000000000000000000000000000ff"
			},
			"0x0000000000000000000000000000000000000000000000000000000000000003": {
				"*": {
					"from": "0x0000000000000000000000000000000000000000000000000000000000000064",
					"to": "0x00000000000000000000000000000000000000000000000000000000000000c8"
				}
			}
		}
	},
	"0x7a250d5630b4cf539739df2c5dacb4c659f2488d": {
		"balance": {
			"*": {
				"from": "0x1bc16d674ec80000",
				"to": "0x1bc16d674ec7ffff"
			}
		},
		"nonce": "=",
		"code": "=",
		"storage": {}
	}
}`

func TestStateDiffUnmarshal(t *testing.T) {
	var diff StateDiff
	if err := json.Unmarshal([]byte(sampleStateDiff), &diff); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(diff) != 2 {
		t.Fatalf("got %d accounts, want 2", len(diff))
	}

	token, ok := diff[common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")]
	if !ok {
		t.Fatalf("token account missing from diff")
	}
	if len(token.Storage) != 3 {
		t.Fatalf("got %d storage entries, want 3", len(token.Storage))
	}

	unchanged := token.Storage[common.HexToHash("0x01")]
	if unchanged.Added != nil || unchanged.Removed != nil || unchanged.Changed != nil {
		t.Fatalf("unchanged slot decoded as a change: %+v", unchanged)
	}

	added := token.Storage[common.HexToHash("0x02")]
	if added.Added == nil {
		t.Fatalf("added slot not decoded")
	}
	if *added.Added != common.HexToHash("0xff") {
		t.Fatalf("added value: %s", added.Added)
	}

	changed := token.Storage[common.HexToHash("0x03")]
	if changed.Changed == nil {
		t.Fatalf("modified slot not decoded")
	}
	if changed.Changed.From != common.HexToHash("0x64") || changed.Changed.To != common.HexToHash("0xc8") {
		t.Fatalf("modified values: %s -> %s", changed.Changed.From, changed.Changed.To)
	}

	router := diff[common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")]
	if len(router.Storage) != 0 {
		t.Fatalf("account without storage movement decoded %d entries", len(router.Storage))
	}
}

func TestStorageDiffRemoved(t *testing.T) {
	var d StorageDiff
	if err := json.Unmarshal([]byte(`{"-": "0x0000000000000000000000000000000000000000000000000000000000000005"}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Removed == nil || *d.Removed != common.HexToHash("0x05") {
		t.Fatalf("removed slot not decoded: %+v", d)
	}
}
