package wallet

import (
	"crypto/ecdsa"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
)

// Wallet is the custodial key of a user
type Wallet struct {
	UserId     domain.UserId  `json:"userId" bson:"_id"`
	Address    domain.Address `json:"address" bson:"address"`
	PrivateKey string         `json:"-" bson:"privateKey"`
}

// Signer is the signing material for one party of a ledger call
type Signer struct {
	Address domain.Address
	Key     *ecdsa.PrivateKey
}

type Repo interface {
	FindOne(c ctx.Ctx, userId domain.UserId) (*Wallet, error)
}

// SignerResolver resolves the signing material of a user.
// Fails with domain.ErrNotFound if the user has no wallet.
type SignerResolver interface {
	GetSignature(c ctx.Ctx, userId domain.UserId) (*Signer, error)
}
