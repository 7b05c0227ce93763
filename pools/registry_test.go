package pools

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"poolwatch/types"
)

var (
	weth = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	dai  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	usdt = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
)

func samplePools() []types.Pool {
	return []types.Pool{
		{
			Address: common.HexToAddress("0xA478c2975Ab1Ea89e8196811F51A7B7Ade33eB11"),
			TokenA:  dai,
			TokenB:  weth,
			Variant: types.UniswapV2,
		},
		{
			Address: common.HexToAddress("0xC2e9F25Be6257c210d7Adf0D4Cd6E3E881ba25f8"),
			TokenA:  dai,
			TokenB:  weth,
			Variant: types.UniswapV3,
			Fee:     3000,
		},
		{
			Address: common.HexToAddress("0xB20bd5D04BE54f870D5C0d3cA85d82b34B836405"),
			TokenA:  dai,
			TokenB:  usdt,
			Variant: types.UniswapV2,
		},
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	for _, p := range samplePools() {
		reg.Insert(p)
	}
	if reg.Len() != 3 {
		t.Fatalf("registry size: got %d, want 3", reg.Len())
	}

	got, ok := reg.Lookup(common.HexToAddress("0xA478c2975Ab1Ea89e8196811F51A7B7Ade33eB11"))
	if !ok {
		t.Fatalf("known pool not found")
	}
	if got.TokenA != dai || got.TokenB != weth || got.Variant != types.UniswapV2 {
		t.Fatalf("lookup returned wrong pool: %+v", got)
	}

	if _, ok := reg.Lookup(common.HexToAddress("0x0000000000000000000000000000000000000001")); ok {
		t.Fatalf("unknown address resolved to a pool")
	}
}

func TestRegistryFilterByToken(t *testing.T) {
	reg := NewRegistry()
	for _, p := range samplePools() {
		reg.Insert(p)
	}

	withWeth := reg.FilterByToken(weth)
	if len(withWeth) != 2 {
		t.Fatalf("pools holding WETH: got %d, want 2", len(withWeth))
	}
	for _, p := range withWeth {
		if !p.HasToken(weth) {
			t.Fatalf("pool %s does not hold the filter token", p.Address)
		}
	}

	if got := reg.FilterByToken(common.HexToAddress("0x0000000000000000000000000000000000000002")); len(got) != 0 {
		t.Fatalf("filter on an absent token returned %d pools", len(got))
	}
}
