package chain

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/abi"
	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/ethereum"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/wallet"
)

const (
	nftContract    = "0x00000000000000000000000000000000000000a1"
	marketContract = "0x00000000000000000000000000000000000000b2"
)

// fakeBackend mines every sent transaction at once, receiptOf decides the outcome
type fakeBackend struct {
	mu        sync.Mutex
	sent      []*types.Transaction
	receiptOf func(tx *types.Transaction) *types.Receipt
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{1}, nil
}

func (f *fakeBackend) CallContract(context.Context, goethereum.CallMsg, *big.Int) ([]byte, error) {
	return nil, nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1)}, nil
}

func (f *fakeBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{1}, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1e9), nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1e9), nil
}

func (f *fakeBackend) EstimateGas(context.Context, goethereum.CallMsg) (uint64, error) {
	return 100000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) FilterLogs(context.Context, goethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (f *fakeBackend) SubscribeFilterLogs(context.Context, goethereum.FilterQuery, chan<- types.Log) (goethereum.Subscription, error) {
	return nil, nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tx := range f.sent {
		if tx.Hash() == hash {
			r := f.receiptOf(tx)
			r.TxHash = hash
			return r, nil
		}
	}
	return nil, goethereum.NotFound
}

func (f *fakeBackend) lastSent() *types.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

func success(*types.Transaction) *types.Receipt {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}
}

type ledgerSuite struct {
	suite.Suite
	backend *fakeBackend
	im      *ledgerImpl
	signer  *wallet.Signer
}

func (s *ledgerSuite) SetupTest() {
	s.backend = &fakeBackend{receiptOf: success}
	s.im = New(ethereum.NewThrottledBackend(s.backend, 2), Config{
		ChainId:             1337,
		NftContract:         nftContract,
		MarketplaceContract: marketContract,
		ConfirmTimeout:      5 * time.Second,
	}).(*ledgerImpl)

	key, _, err := ethereum.GenerateKey()
	s.Require().NoError(err)
	s.signer = &wallet.Signer{Key: key, Address: "0x0000000000000000000000000000000000000c03"}
}

func (s *ledgerSuite) TestApprove() {
	to := domain.Address("0x00000000000000000000000000000000000000d4")

	hash, err := s.im.Approve(ctx.Background(), "7", to, s.signer)
	s.Require().NoError(err)

	tx := s.backend.lastSent()
	s.Equal(domain.TxHash(tx.Hash().Hex()), hash)
	s.Equal(common.HexToAddress(nftContract), *tx.To())

	method, err := abi.ERC721TokenABI.MethodById(tx.Data()[:4])
	s.Require().NoError(err)
	s.Equal("approve", method.Name)

	args, err := method.Inputs.Unpack(tx.Data()[4:])
	s.Require().NoError(err)
	s.Equal(common.HexToAddress(string(to)), args[0])
	s.Equal(big.NewInt(7), args[1])
}

func (s *ledgerSuite) TestBuyNFT() {
	amount := big.NewInt(2e18)

	hash, err := s.im.BuyNFT(ctx.Background(), "7", amount, s.signer)
	s.Require().NoError(err)

	tx := s.backend.lastSent()
	s.Equal(domain.TxHash(tx.Hash().Hex()), hash)
	s.Equal(common.HexToAddress(marketContract), *tx.To())

	method, err := abi.MarketplaceABI.MethodById(tx.Data()[:4])
	s.Require().NoError(err)
	args, err := method.Inputs.Unpack(tx.Data()[4:])
	s.Require().NoError(err)
	s.Equal(common.HexToAddress(nftContract), args[0])
	s.Equal(0, amount.Cmp(args[2].(*big.Int)))
}

func (s *ledgerSuite) TestReverted() {
	s.backend.receiptOf = func(*types.Transaction) *types.Receipt {
		return &types.Receipt{Status: types.ReceiptStatusFailed}
	}

	_, err := s.im.BuyNFT(ctx.Background(), "7", big.NewInt(1), s.signer)
	s.True(errors.Is(err, ErrTxReverted))
}

func (s *ledgerSuite) TestMint() {
	transferId := abi.ERC721TokenABI.Events["Transfer"].ID
	s.backend.receiptOf = func(*types.Transaction) *types.Receipt {
		return &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs: []*types.Log{
				// same event from another contract is ignored
				{
					Address: common.HexToAddress(marketContract),
					Topics:  []common.Hash{transferId, {}, {}, common.BigToHash(big.NewInt(1))},
				},
				{
					Address: common.HexToAddress(nftContract),
					Topics:  []common.Hash{transferId, {}, {}, common.BigToHash(big.NewInt(42))},
				},
			},
		}
	}

	res, err := s.im.Mint(ctx.Background(), "0x00000000000000000000000000000000000000d4", "ipfs://token", 250, s.signer)
	s.Require().NoError(err)
	s.Equal(domain.TokenId("42"), res.TokenId)
	s.Equal(domain.TxHash(s.backend.lastSent().Hash().Hex()), res.TxHash)
}

func (s *ledgerSuite) TestMintWithoutTransferLog() {
	_, err := s.im.Mint(ctx.Background(), "0x00000000000000000000000000000000000000d4", "ipfs://token", 250, s.signer)
	s.Equal(ErrMintLogMissing, err)
}

func (s *ledgerSuite) TestBadInput() {
	_, err := s.im.Approve(ctx.Background(), "not-a-number", "0x00000000000000000000000000000000000000d4", s.signer)
	s.True(errors.Is(err, ErrInvalidTokenId))

	_, err = s.im.BuyNFT(ctx.Background(), "7", big.NewInt(1), nil)
	s.Equal(ErrSignerRequired, err)
	s.Empty(s.backend.sent)
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(ledgerSuite))
}
