package eth

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"poolwatch/types"
)

type traceCallResult struct {
	Output    hexutil.Bytes   `json:"output"`
	StateDiff types.StateDiff `json:"stateDiff"`
}

// TraceStateDiff simulates tx against the chain state at blockNumber and
// returns the per-account state diff. A nil diff means the node produced
// none for this transaction.
func (c *Client) TraceStateDiff(ctx context.Context, tx *ethtypes.Transaction, blockNumber uint64) (types.StateDiff, error) {
	call, err := toCallArg(tx)
	if err != nil {
		return nil, err
	}

	var res traceCallResult
	err = c.rpc.CallContext(ctx, &res, "trace_call", call, []string{"stateDiff"}, hexutil.Uint64(blockNumber))
	if err != nil {
		return nil, fmt.Errorf("trace_call failed for tx %s: %w", tx.Hash(), err)
	}
	return res.StateDiff, nil
}

// toCallArg rebuilds a call object from a signed transaction so the node
// can re-execute it.
func toCallArg(tx *ethtypes.Transaction) (map[string]any, error) {
	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, fmt.Errorf("failed to recover sender of tx %s: %w", tx.Hash(), err)
	}

	call := map[string]any{
		"from":  from,
		"gas":   hexutil.Uint64(tx.Gas()),
		"value": (*hexutil.Big)(tx.Value()),
		"data":  hexutil.Bytes(tx.Data()),
	}
	if tx.To() != nil {
		call["to"] = *tx.To()
	}
	if tx.Type() == ethtypes.DynamicFeeTxType {
		call["maxFeePerGas"] = (*hexutil.Big)(tx.GasFeeCap())
		call["maxPriorityFeePerGas"] = (*hexutil.Big)(tx.GasTipCap())
	} else {
		call["gasPrice"] = (*hexutil.Big)(tx.GasPrice())
	}
	return call, nil
}
