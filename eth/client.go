package eth

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/gethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client wraps the websocket RPC connection with the subset of node
// operations the watcher needs: subscriptions, transaction resolution,
// log filtering and simulation.
type Client struct {
	rpc  *rpc.Client
	eth  *ethclient.Client
	geth *gethclient.Client
}

func Dial(ctx context.Context, wsURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial node at %s: %w", wsURL, err)
	}
	return &Client{
		rpc:  rpcClient,
		eth:  ethclient.NewClient(rpcClient),
		geth: gethclient.New(rpcClient),
	}, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}

// SubscribeNewHead streams new block headers from the node.
func (c *Client) SubscribeNewHead(ctx context.Context, ch chan<- *ethtypes.Header) (ethereum.Subscription, error) {
	return c.eth.SubscribeNewHead(ctx, ch)
}

// SubscribePendingTransactions streams hashes of transactions entering
// the node's mempool.
func (c *Client) SubscribePendingTransactions(ctx context.Context, ch chan<- common.Hash) (ethereum.Subscription, error) {
	return c.geth.SubscribePendingTransactions(ctx, ch)
}

// TransactionByHash resolves a pending transaction body.
func (c *Client) TransactionByHash(ctx context.Context, hash common.Hash) (*ethtypes.Transaction, error) {
	tx, _, err := c.eth.TransactionByHash(ctx, hash)
	return tx, err
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.eth.BlockNumber(ctx)
}

func (c *Client) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]ethtypes.Log, error) {
	return c.eth.FilterLogs(ctx, q)
}
