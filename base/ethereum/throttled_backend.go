package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/x-xyz/marketengine/base/log"
)

// Backend is what sending and confirming contract transactions needs, *ethclient.Client satisfies it
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// ThrottledBackend caps the number of in-flight rpc calls
type ThrottledBackend struct {
	Backend
	tokens chan int
}

func NewThrottledBackend(backend Backend, n int) *ThrottledBackend {
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &ThrottledBackend{
		Backend: backend,
		tokens:  tokens,
	}
}

func (c *ThrottledBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Backend.HeaderByNumber(ctx, number)
}

func (c *ThrottledBackend) CodeAt(ctx context.Context, address common.Address, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Backend.CodeAt(ctx, address, number)
}

func (c *ThrottledBackend) PendingCodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Backend.PendingCodeAt(ctx, address)
}

func (c *ThrottledBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.Backend.PendingNonceAt(ctx, account)
}

func (c *ThrottledBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Backend.CallContract(ctx, msg, number)
}

func (c *ThrottledBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.Backend.EstimateGas(ctx, msg)
}

func (c *ThrottledBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	token, err := c.before(ctx)
	if err != nil {
		return err
	}
	defer c.after(token)
	return c.Backend.SendTransaction(ctx, tx)
}

func (c *ThrottledBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Backend.TransactionReceipt(ctx, hash)
}

func (c *ThrottledBackend) before(ctx context.Context) (int, error) {
	now := time.Now()
	select {
	case <-ctx.Done():
		log.Log().WithField("wait", time.Since(now)).Warn("throttle ctx done")
		return 0, ctx.Err()
	case token := <-c.tokens:
		if wait := time.Since(now); wait > time.Second {
			log.Log().WithField("wait", wait).WithField("free", len(c.tokens)).Info("throttle slow token")
		}
		return token, nil
	}
}

func (c *ThrottledBackend) after(token int) {
	c.tokens <- token
}
