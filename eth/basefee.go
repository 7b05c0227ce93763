package eth

import (
	"math/big"
	"math/rand"
)

var eight = big.NewInt(8)

// nextBaseFee computes the EIP-1559 base fee the next block will carry,
// given the gas accounting of the current one: the fee moves by
// baseFee * (gasUsed - target) / target / 8, where target is half the gas
// limit (clamped to at least 1). The result is clamped to zero rather
// than allowed to go negative for degenerate gas limits.
func nextBaseFee(gasUsed, gasLimit uint64, baseFee *big.Int) *big.Int {
	target := gasLimit / 2
	if target == 0 {
		target = 1
	}

	diff := new(big.Int).SetUint64(gasUsed)
	diff.Sub(diff, new(big.Int).SetUint64(target))

	delta := new(big.Int).Mul(baseFee, diff)
	delta.Quo(delta, new(big.Int).SetUint64(target))
	delta.Quo(delta, eight)

	next := new(big.Int).Add(baseFee, delta)
	if next.Sign() < 0 {
		next.SetUint64(0)
	}
	return next
}

// PredictNextBaseFee estimates the next block's base fee in wei. A small
// random offset (0-8 wei, inclusive) is added on top of the protocol
// formula to cover client-side estimation slack.
func PredictNextBaseFee(gasUsed, gasLimit uint64, baseFee *big.Int) *big.Int {
	next := nextBaseFee(gasUsed, gasLimit, baseFee)
	return next.Add(next, big.NewInt(rand.Int63n(9)))
}
