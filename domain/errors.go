package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput      = errors.New("Given Param is not valid")
	ErrInvalidAddress     = errors.New("Invalid address")
	ErrInvalidCurrency    = errors.New("invalid currency")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidSaleType    = errors.New("invalid sale type")
	ErrInvalidAuctionDate = errors.New("invalid auction window")

	// business rule errors
	ErrForbidden          = errors.New("forbidden")
	ErrAuctionActive      = errors.New("item is in an active auction")
	ErrAuctionExpired     = errors.New("auction has expired")
	ErrAuctionNotEnabled  = errors.New("auction is not enabled")
	ErrPriceTooLow        = errors.New("price is lower than auction reserve")
	ErrOffersDisabled     = errors.New("item does not accept offers")
	ErrBidOutsideWindow   = errors.New("bid is outside the current auction window")
	ErrItemNotForSale     = errors.New("item is not for sale")
	ErrTransferInProgress = errors.New("a transfer of this item is in progress")
	ErrItemBusy           = errors.New("item is locked by another operation")
	ErrInvalidTransition  = errors.New("invalid pending transfer state")
)

// ErrorKind is the closed set of error categories returned by the engine
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindDomain
	KindExternal
	KindReconciliation
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDomain:
		return "domain"
	case KindExternal:
		return "external"
	case KindReconciliation:
		return "reconciliation"
	default:
		return "internal"
	}
}

var validationErrors = []error{
	ErrBadParamInput,
	ErrInvalidAddress,
	ErrInvalidCurrency,
	ErrInvalidPrice,
	ErrInvalidSaleType,
	ErrInvalidAuctionDate,
}

var domainErrors = []error{
	ErrNotFound,
	ErrConflict,
	ErrForbidden,
	ErrAuctionActive,
	ErrAuctionExpired,
	ErrAuctionNotEnabled,
	ErrPriceTooLow,
	ErrOffersDisabled,
	ErrBidOutsideWindow,
	ErrItemNotForSale,
	ErrTransferInProgress,
	ErrItemBusy,
	ErrInvalidTransition,
}

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}

	var recErr *ReconciliationError
	if errors.As(err, &recErr) {
		return KindReconciliation
	}
	var extErr *ExternalError
	if errors.As(err, &extErr) {
		return KindExternal
	}
	for _, e := range validationErrors {
		if errors.Is(err, e) {
			return KindValidation
		}
	}
	for _, e := range domainErrors {
		if errors.Is(err, e) {
			return KindDomain
		}
	}
	return KindInternal
}

// ExternalError wraps a failure of the ledger or the signing service
type ExternalError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s.%s failed: %v", e.Service, e.Op, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// ReconciliationError is returned when the ledger confirmed a transfer but the local commit failed.
// Tokens or funds may have moved already.
type ReconciliationError struct {
	PendingTransferId string
	ItemId            string
	TxHash            TxHash
	BuyerId           UserId
	SellerId          UserId
	Price             decimal.Decimal
	Currency          Currency
	Err               error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation needed for item %s (tx %s, pending transfer %s): %v", e.ItemId, e.TxHash, e.PendingTransferId, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
