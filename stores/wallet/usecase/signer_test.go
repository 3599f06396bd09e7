package usecase

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/ethereum"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/wallet"
	"github.com/x-xyz/marketengine/domain/wallet/mocks"
)

type signerSuite struct {
	suite.Suite

	keyHex  string
	address domain.Address
	repo    *mocks.Repo
}

func (s *signerSuite) SetupTest() {
	key, _, err := ethereum.GenerateKey()
	s.Require().NoError(err)
	s.keyHex = hex.EncodeToString(crypto.FromECDSA(key))
	s.address = domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())
	s.repo = mocks.NewRepo(s.T())
}

func (s *signerSuite) TestReal() {
	s.repo.On("FindOne", mock.Anything, domain.UserId("alice")).
		Return(&wallet.Wallet{UserId: "alice", Address: s.address.ToLower(), PrivateKey: "0x" + s.keyHex}, nil).Once()

	res, err := NewReal(s.repo).GetSignature(ctx.Background(), "alice")
	s.Require().NoError(err)
	s.Equal(s.address, res.Address)
	s.NotNil(res.Key)
}

func (s *signerSuite) TestRealNoWallet() {
	s.repo.On("FindOne", mock.Anything, domain.UserId("bob")).Return(nil, domain.ErrNotFound).Once()

	_, err := NewReal(s.repo).GetSignature(ctx.Background(), "bob")
	s.Equal(domain.ErrNotFound, err)
	s.Equal(domain.KindDomain, domain.KindOf(err))
}

func (s *signerSuite) TestRealRepoFailure() {
	s.repo.On("FindOne", mock.Anything, domain.UserId("bob")).Return(nil, errors.New("mongo down")).Once()

	_, err := NewReal(s.repo).GetSignature(ctx.Background(), "bob")
	s.Equal(domain.KindExternal, domain.KindOf(err))
}

func (s *signerSuite) TestRealAddressMismatch() {
	s.repo.On("FindOne", mock.Anything, domain.UserId("alice")).
		Return(&wallet.Wallet{UserId: "alice", Address: domain.EmptyAddress, PrivateKey: s.keyHex}, nil).Once()

	_, err := NewReal(s.repo).GetSignature(ctx.Background(), "alice")
	s.True(errors.Is(err, ErrAddressMismatch))
	s.Equal(domain.KindExternal, domain.KindOf(err))
}

func (s *signerSuite) TestFixed() {
	r, err := NewFixed(s.keyHex)
	s.Require().NoError(err)

	a, err := r.GetSignature(ctx.Background(), "alice")
	s.Require().NoError(err)
	b, err := r.GetSignature(ctx.Background(), "bob")
	s.Require().NoError(err)
	s.Equal(s.address, a.Address)
	s.Equal(a, b)

	_, err = NewFixed("not-a-key")
	s.Error(err)
}

func TestSignerSuite(t *testing.T) {
	suite.Run(t, new(signerSuite))
}
