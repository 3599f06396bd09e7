package usecase

import (
	"errors"

	"golang.org/x/xerrors"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/ethereum"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/wallet"
)

var ErrAddressMismatch = errors.New("wallet address does not match its key")

type realImpl struct {
	walletRepo wallet.Repo
}

// NewReal resolves signers from the custodial wallets of users
func NewReal(walletRepo wallet.Repo) wallet.SignerResolver {
	return &realImpl{walletRepo}
}

func (im *realImpl) GetSignature(c ctx.Ctx, userId domain.UserId) (*wallet.Signer, error) {
	w, err := im.walletRepo.FindOne(c, userId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("userId", userId).Error("walletRepo.FindOne failed")
		return nil, &domain.ExternalError{Service: "signer", Op: "GetSignature", Err: err}
	}

	key, address, err := ethereum.ParsePrivateKey(w.PrivateKey)
	if err != nil {
		c.WithField("err", err).WithField("userId", userId).Error("ethereum.ParsePrivateKey failed")
		return nil, &domain.ExternalError{Service: "signer", Op: "GetSignature", Err: xerrors.Errorf("parse key of %s: %w", userId, err)}
	}

	if !w.Address.IsEmpty() && !w.Address.Equals(address) {
		c.WithField("userId", userId).WithField("address", w.Address).Error("wallet address mismatch")
		return nil, &domain.ExternalError{Service: "signer", Op: "GetSignature", Err: ErrAddressMismatch}
	}

	return &wallet.Signer{Address: address, Key: key}, nil
}

type fixedImpl struct {
	signer *wallet.Signer
}

// NewFixed returns a resolver answering every user with the same test key.
// It must only be wired when useTestWallet is set.
func NewFixed(privateKey string) (wallet.SignerResolver, error) {
	key, address, err := ethereum.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, xerrors.Errorf("parse test wallet key: %w", err)
	}
	return &fixedImpl{&wallet.Signer{Address: address, Key: key}}, nil
}

func (im *fixedImpl) GetSignature(c ctx.Ctx, userId domain.UserId) (*wallet.Signer, error) {
	if userId.IsEmpty() {
		return nil, domain.ErrNotFound
	}
	return im.signer, nil
}
