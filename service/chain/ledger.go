package chain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketengine/base/abi"
	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/ethereum"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/base/metrics"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/ledger"
	"github.com/x-xyz/marketengine/domain/wallet"
)

var (
	ErrTxReverted       = errors.New("transaction reverted")
	ErrInvalidTokenId   = errors.New("invalid token id")
	ErrMintLogMissing   = errors.New("mint transfer log missing")
	ErrSignerRequired   = errors.New("signer required")
	defaultConfirmAfter = 2 * time.Minute

	met = metrics.New("chain")
)

type Config struct {
	RpcUrl              string
	ChainId             int64
	NftContract         string
	MarketplaceContract string
	// ConfirmTimeout bounds the wait for one transaction to be mined
	ConfirmTimeout time.Duration
	// MaxConcurrentRpc throttles rpc calls when positive
	MaxConcurrentRpc int
}

type ledgerImpl struct {
	backend        ethereum.Backend
	chainId        *big.Int
	nftAddr        common.Address
	nft            *bind.BoundContract
	market         *bind.BoundContract
	confirmTimeout time.Duration
}

// Dial connects to cfg.RpcUrl and returns a ledger backed by it
func Dial(c ctx.Ctx, cfg Config) (ledger.Service, error) {
	client, err := ethclient.DialContext(c, cfg.RpcUrl)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"url": cfg.RpcUrl,
		}).Error("ethclient.DialContext failed")
		return nil, err
	}

	var backend ethereum.Backend = client
	if cfg.MaxConcurrentRpc > 0 {
		backend = ethereum.NewThrottledBackend(client, cfg.MaxConcurrentRpc)
	}
	return New(backend, cfg), nil
}

func New(backend ethereum.Backend, cfg Config) ledger.Service {
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = defaultConfirmAfter
	}

	nftAddr := common.HexToAddress(cfg.NftContract)
	marketAddr := common.HexToAddress(cfg.MarketplaceContract)
	return &ledgerImpl{
		backend:        backend,
		chainId:        big.NewInt(cfg.ChainId),
		nftAddr:        nftAddr,
		nft:            bind.NewBoundContract(nftAddr, abi.ERC721TokenABI, backend, backend, backend),
		market:         bind.NewBoundContract(marketAddr, abi.MarketplaceABI, backend, backend, backend),
		confirmTimeout: cfg.ConfirmTimeout,
	}
}

func (im *ledgerImpl) Approve(c ctx.Ctx, tokenId domain.TokenId, to domain.Address, signer *wallet.Signer) (domain.TxHash, error) {
	id, err := parseTokenId(tokenId)
	if err != nil {
		return "", err
	}

	receipt, err := im.transact(c, im.nft, signer, "approve", common.HexToAddress(string(to)), id)
	if err != nil {
		return "", err
	}
	return domain.TxHash(receipt.TxHash.Hex()), nil
}

func (im *ledgerImpl) BuyNFT(c ctx.Ctx, tokenId domain.TokenId, amount *big.Int, signer *wallet.Signer) (domain.TxHash, error) {
	id, err := parseTokenId(tokenId)
	if err != nil {
		return "", err
	}

	receipt, err := im.transact(c, im.market, signer, "buyNFT", im.nftAddr, id, amount)
	if err != nil {
		return "", err
	}
	return domain.TxHash(receipt.TxHash.Hex()), nil
}

func (im *ledgerImpl) Mint(c ctx.Ctx, to domain.Address, tokenUri string, royaltyBps int, signer *wallet.Signer) (*ledger.MintResult, error) {
	receipt, err := im.transact(c, im.nft, signer, "mint", common.HexToAddress(string(to)), tokenUri, big.NewInt(int64(royaltyBps)))
	if err != nil {
		return nil, err
	}

	tokenId, err := mintedTokenId(receipt, im.nftAddr)
	if err != nil {
		c.WithField("txHash", receipt.TxHash.Hex()).Error("mintedTokenId failed")
		return nil, err
	}

	return &ledger.MintResult{
		TokenId: domain.TokenId(tokenId.String()),
		TxHash:  domain.TxHash(receipt.TxHash.Hex()),
	}, nil
}

// transact sends one transaction and waits until it is mined successfully
func (im *ledgerImpl) transact(c ctx.Ctx, contract *bind.BoundContract, signer *wallet.Signer, method string, params ...interface{}) (*types.Receipt, error) {
	if signer == nil || signer.Key == nil {
		return nil, ErrSignerRequired
	}

	defer met.BumpTime("transact", "method", method).End()

	opts, err := bind.NewKeyedTransactorWithChainID(signer.Key, im.chainId)
	if err != nil {
		c.WithField("err", err).Error("bind.NewKeyedTransactorWithChainID failed")
		return nil, err
	}
	opts.Context = c

	tx, err := contract.Transact(opts, method, params...)
	if err != nil {
		met.BumpSum("transact.err", 1, "method", method)
		c.WithFields(log.Fields{
			"err":    err,
			"method": method,
			"from":   signer.Address,
		}).Error("contract.Transact failed")
		return nil, xerrors.Errorf("send %s: %w", method, err)
	}

	waitCtx, cancel := context.WithTimeout(c, im.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, im.backend, tx)
	if err != nil {
		met.BumpSum("waitMined.err", 1, "method", method)
		c.WithFields(log.Fields{
			"err":    err,
			"method": method,
			"txHash": tx.Hash().Hex(),
		}).Error("bind.WaitMined failed")
		return nil, xerrors.Errorf("wait %s %s: %w", method, tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		met.BumpSum("reverted", 1, "method", method)
		c.WithFields(log.Fields{
			"method": method,
			"txHash": tx.Hash().Hex(),
		}).Error("transaction reverted")
		return nil, xerrors.Errorf("%s %s: %w", method, tx.Hash().Hex(), ErrTxReverted)
	}

	return receipt, nil
}

func parseTokenId(tokenId domain.TokenId) (*big.Int, error) {
	id, ok := new(big.Int).SetString(tokenId.String(), 10)
	if !ok || id.Sign() < 0 {
		return nil, xerrors.Errorf("%q: %w", tokenId, ErrInvalidTokenId)
	}
	return id, nil
}

// mintedTokenId reads the token id from the Transfer log emitted by nft
func mintedTokenId(receipt *types.Receipt, nft common.Address) (*big.Int, error) {
	transferId := abi.ERC721TokenABI.Events["Transfer"].ID
	for _, l := range receipt.Logs {
		if l.Address != nft || len(l.Topics) != 4 || l.Topics[0] != transferId {
			continue
		}
		return l.Topics[3].Big(), nil
	}
	return nil, ErrMintLogMissing
}
