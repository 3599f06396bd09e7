package ledger

import (
	"math/big"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/wallet"
)

type MintResult struct {
	TokenId domain.TokenId
	TxHash  domain.TxHash
}

// Service executes token operations on-chain. Every call waits for the transaction to be mined.
type Service interface {
	// Approve lets `to` take tokenId, signed by the current holder
	Approve(c ctx.Ctx, tokenId domain.TokenId, to domain.Address, signer *wallet.Signer) (domain.TxHash, error)
	// BuyNFT pays amount in base units for tokenId, signed by the buyer
	BuyNFT(c ctx.Ctx, tokenId domain.TokenId, amount *big.Int, signer *wallet.Signer) (domain.TxHash, error)
	Mint(c ctx.Ctx, to domain.Address, tokenUri string, royaltyBps int, signer *wallet.Signer) (*MintResult, error)
}
