package eth

import (
	"math/big"
	"testing"
)

func TestNextBaseFeeAtTarget(t *testing.T) {
	// Block exactly at target utilization: the protocol term is zero.
	got := nextBaseFee(15_000_000, 30_000_000, big.NewInt(100))
	if got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("at-target base fee changed: got %s, want 100", got)
	}
}

func TestNextBaseFeeDirection(t *testing.T) {
	baseFee := big.NewInt(1000)

	up := nextBaseFee(30_000_000, 30_000_000, baseFee)
	if up.Cmp(baseFee) <= 0 {
		t.Fatalf("full block must raise the fee: got %s from %s", up, baseFee)
	}

	down := nextBaseFee(0, 30_000_000, baseFee)
	if down.Cmp(baseFee) >= 0 {
		t.Fatalf("empty block must lower the fee: got %s from %s", down, baseFee)
	}
}

func TestNextBaseFeeMonotonicInGasUsed(t *testing.T) {
	baseFee := big.NewInt(1_000_000_000)
	prev := nextBaseFee(0, 30_000_000, baseFee)
	for gasUsed := uint64(1_000_000); gasUsed <= 30_000_000; gasUsed += 1_000_000 {
		cur := nextBaseFee(gasUsed, 30_000_000, baseFee)
		if cur.Cmp(prev) < 0 {
			t.Fatalf("fee decreased as gasUsed grew: gasUsed=%d fee=%s prev=%s", gasUsed, cur, prev)
		}
		prev = cur
	}
}

func TestNextBaseFeeZeroGasLimit(t *testing.T) {
	// gasLimit 0 clamps the target to 1 instead of dividing by zero.
	got := nextBaseFee(0, 0, big.NewInt(100))
	if got.Sign() < 0 {
		t.Fatalf("base fee went negative: %s", got)
	}
}

func TestPredictNextBaseFeeJitterRange(t *testing.T) {
	// At target the prediction is the base fee plus 0-8 wei of jitter.
	lo, hi := big.NewInt(100), big.NewInt(108)
	for i := 0; i < 200; i++ {
		got := PredictNextBaseFee(15_000_000, 30_000_000, big.NewInt(100))
		if got.Cmp(lo) < 0 || got.Cmp(hi) > 0 {
			t.Fatalf("predicted fee %s outside [100, 108]", got)
		}
	}
}
