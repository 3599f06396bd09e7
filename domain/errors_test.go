package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"
)

type errorsSuite struct {
	suite.Suite
}

func (s *errorsSuite) TestKindOf() {
	tests := []struct {
		desc string
		err  error
		exp  ErrorKind
	}{
		{"nil", nil, KindInternal},
		{"unknown", errors.New("boom"), KindInternal},
		{"validation", ErrBadParamInput, KindValidation},
		{"wrapped validation", xerrors.Errorf("parse price: %w", ErrInvalidPrice), KindValidation},
		{"not found", ErrNotFound, KindDomain},
		{"wrapped domain", xerrors.Errorf("place bid: %w", ErrPriceTooLow), KindDomain},
		{"external", &ExternalError{Service: "ledger", Op: "Approve", Err: errors.New("rpc down")}, KindExternal},
		{"wrapped external", xerrors.Errorf("buy: %w", &ExternalError{Service: "signer", Op: "GetSignature", Err: ErrNotFound}), KindExternal},
		{"reconciliation", &ReconciliationError{ItemId: "item", TxHash: "0xabc", Err: errors.New("commit failed")}, KindReconciliation},
	}
	for _, t := range tests {
		s.Equal(t.exp, KindOf(t.err), t.desc)
	}
}

func (s *errorsSuite) TestReconciliationErrorCarriesContext() {
	cause := errors.New("write conflict")
	err := error(&ReconciliationError{
		PendingTransferId: "pt-1",
		ItemId:            "item-1",
		TxHash:            "0xabc",
		BuyerId:           "b",
		SellerId:          "a",
		Price:             decimal.RequireFromString("2"),
		Currency:          "ETH",
		Err:               cause,
	})

	var recErr *ReconciliationError
	s.Require().True(errors.As(err, &recErr))
	s.Equal(TxHash("0xabc"), recErr.TxHash)
	s.True(errors.Is(err, cause))
	s.Contains(err.Error(), "pt-1")
}

func (s *errorsSuite) TestInWindow() {
	now := time.Now()
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	s.True(InWindow(now, &start, &end))
	s.True(InWindow(start, &start, &end))
	s.True(InWindow(end, &start, &end))
	s.False(InWindow(end.Add(time.Second), &start, &end))
	s.False(InWindow(now, nil, &end))
	s.False(InWindow(now, &start, nil))
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(errorsSuite))
}
