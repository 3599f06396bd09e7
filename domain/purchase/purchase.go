package purchase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/item"
)

// Source tells which candidate records a sale supersedes
type Source string

const (
	SourceOffer   Source = "offer"
	SourceAuction Source = "auction"
	SourceDirect  Source = "direct"
)

// Terms are the settled terms of one sale
type Terms struct {
	BuyerId  domain.UserId
	SellerId domain.UserId
	Price    decimal.Decimal
	Currency domain.Currency
	// SourceId is the accepted offer or bid
	SourceId string
}

// Request asks the executor to sell ItemId.
// Resolve runs under the item lock against fresh item state and returns the terms, or an error to abort.
type Request struct {
	ItemId  string
	Source  Source
	Resolve func(c ctx.Ctx, it *item.Item) (*Terms, error)
}

type Receipt struct {
	PendingTransferId string          `json:"pendingTransferId"`
	ItemId            string          `json:"itemId"`
	BuyerId           domain.UserId   `json:"buyerId"`
	SellerId          domain.UserId   `json:"sellerId"`
	Price             decimal.Decimal `json:"price"`
	Currency          domain.Currency `json:"currency"`
	ApproveTxHash     domain.TxHash   `json:"approveTxHash"`
	TxHash            domain.TxHash   `json:"txHash"`
}

type State string

const (
	// StatePending is persisted before the first ledger call
	StatePending State = "pending"
	// StateApproved means Approve was mined
	StateApproved State = "approved"
	// StateLedgerConfirmed means BuyNFT was mined, the local commit is outstanding
	StateLedgerConfirmed State = "ledgerConfirmed"
	StateCompleted       State = "completed"
	// StateFailed means no ledger state was changed, or an operator resolved it
	StateFailed State = "failed"
	// StateFailedAfterApprove means Approve was mined but BuyNFT was not. There is no automatic rollback.
	StateFailedAfterApprove State = "failedAfterApprove"
)

// UnresolvedStates block any new purchase of the item
var UnresolvedStates = []State{StatePending, StateApproved, StateLedgerConfirmed, StateFailedAfterApprove}

var transitions = map[State][]State{
	StatePending:            {StateApproved, StateFailed},
	StateApproved:           {StateLedgerConfirmed, StateFailedAfterApprove},
	StateLedgerConfirmed:    {StateCompleted},
	StateFailedAfterApprove: {StateFailed},
}

// CanTransit reports whether a pending transfer may move from one state to another
func CanTransit(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PendingTransfer is the durable record of one purchase attempt. Its id is the idempotency token.
type PendingTransfer struct {
	Id            string          `json:"pendingTransferId" bson:"_id"`
	ItemId        string          `json:"itemId" bson:"itemId"`
	CollectionId  string          `json:"collectionId" bson:"collectionId"`
	TokenId       domain.TokenId  `json:"tokenId" bson:"tokenId"`
	BuyerId       domain.UserId   `json:"buyerId" bson:"buyerId"`
	SellerId      domain.UserId   `json:"sellerId" bson:"sellerId"`
	Price         decimal.Decimal `json:"price" bson:"price"`
	Currency      domain.Currency `json:"currency" bson:"currency"`
	Source        Source          `json:"source" bson:"source"`
	SourceId      string          `json:"sourceId" bson:"sourceId"`
	State         State           `json:"state" bson:"state"`
	ApproveTxHash domain.TxHash   `json:"approveTxHash" bson:"approveTxHash"`
	BuyTxHash     domain.TxHash   `json:"buyTxHash" bson:"buyTxHash"`
	LastError     string          `json:"lastError" bson:"lastError"`
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt" bson:"updatedAt"`
}

func (p *PendingTransfer) ToReceipt() *Receipt {
	return &Receipt{
		PendingTransferId: p.Id,
		ItemId:            p.ItemId,
		BuyerId:           p.BuyerId,
		SellerId:          p.SellerId,
		Price:             p.Price,
		Currency:          p.Currency,
		ApproveTxHash:     p.ApproveTxHash,
		TxHash:            p.BuyTxHash,
	}
}

// PatchablePendingTransfer moves a record to State. Empty fields are left untouched.
type PatchablePendingTransfer struct {
	State         State         `bson:"state,omitempty"`
	ApproveTxHash domain.TxHash `bson:"approveTxHash,omitempty"`
	BuyTxHash     domain.TxHash `bson:"buyTxHash,omitempty"`
	LastError     string        `bson:"lastError,omitempty"`
	UpdatedAt     time.Time     `bson:"updatedAt,omitempty"`
}

type findAllOptions struct {
	SortBy        *string
	SortDir       *domain.SortDir
	Offset        *int32
	Limit         *int32
	ItemId        *string
	States        []State
	UpdatedBefore *time.Time
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithItemId(itemId string) FindAllOptions {
	return func(options *findAllOptions) error {
		options.ItemId = &itemId
		return nil
	}
}

func WithStates(states ...State) FindAllOptions {
	return func(options *findAllOptions) error {
		options.States = states
		return nil
	}
}

func WithUpdatedBefore(t time.Time) FindAllOptions {
	return func(options *findAllOptions) error {
		options.UpdatedBefore = &t
		return nil
	}
}

type PendingTransferRepo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*PendingTransfer, error)
	FindOne(c ctx.Ctx, id string) (*PendingTransfer, error)
	Create(c ctx.Ctx, pt PendingTransfer) error
	// Update applies patch only if the record is still in `from`, otherwise domain.ErrInvalidTransition
	Update(c ctx.Ctx, id string, from State, patch PatchablePendingTransfer) error
}

// FindUnresolved returns an unresolved transfer of the item, nil when there is none
func FindUnresolved(c ctx.Ctx, repo PendingTransferRepo, itemId string) (*PendingTransfer, error) {
	open, err := repo.FindAll(c,
		WithItemId(itemId),
		WithStates(UnresolvedStates...),
		WithPagination(0, 1),
	)
	if err != nil || len(open) == 0 {
		return nil, err
	}
	return open[0], nil
}

type Usecase interface {
	// Execute sells an item: ledger approve and buy, then one local commit.
	// The item lock is held for the whole call.
	Execute(c ctx.Ctx, req Request) (*Receipt, error)
	// BuyItem is a direct purchase at the listed price. The seller is the owner at lock time.
	BuyItem(c ctx.Ctx, itemId string, buyerId domain.UserId) (*Receipt, error)
	// Reconcile re-runs the local commit of a ledgerConfirmed transfer
	Reconcile(c ctx.Ctx, id string) (*Receipt, error)
	// Resolve closes a pending, approved or failedAfterApprove transfer after manual review
	Resolve(c ctx.Ctx, id string) (*PendingTransfer, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*PendingTransfer, error)
}
