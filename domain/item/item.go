package item

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

type SaleType string

const (
	SaleTypeFixedPrice SaleType = "FixedPrice"
	SaleTypeAuction    SaleType = "Auction"
	SaleTypeNotForSale SaleType = "NotForSale"
)

type Item struct {
	Id           string          `json:"itemId" bson:"_id"`
	CollectionId string          `json:"collectionId" bson:"collectionId"`
	Name         string          `json:"name" bson:"name"`
	TokenUri     string          `json:"tokenUri" bson:"tokenUri"`
	RoyaltyBps   int             `json:"royaltyBps" bson:"royaltyBps"`
	AuthorId     domain.UserId   `json:"authorId" bson:"authorId"`
	CurrentOwner domain.UserId   `json:"currentOwner" bson:"currentOwner"`
	Status       Status          `json:"status" bson:"status"`
	Price        decimal.Decimal `json:"price" bson:"price"`
	Currency     domain.Currency `json:"currency" bson:"currency"`
	AcceptOffer  bool            `json:"acceptOffer" bson:"acceptOffer"`
	// auction window, only meaningful while EnableAuction is set
	EnableAuction  bool            `json:"enableAuction" bson:"enableAuction"`
	AuctionReserve decimal.Decimal `json:"auctionReserve" bson:"auctionReserve"`
	StartDate      *time.Time      `json:"startDate" bson:"startDate"`
	EndDate        *time.Time      `json:"endDate" bson:"endDate"`
	// chain linkage
	TokenId             domain.TokenId `json:"tokenId" bson:"tokenId"`
	MintedDate          *time.Time     `json:"mintedDate" bson:"mintedDate"`
	MintTransactionHash domain.TxHash  `json:"mintTransactionHash" bson:"mintTransactionHash"`
	CreatedAt           time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// InAuctionWindow reports whether the item is in an active auction at t
func (it *Item) InAuctionWindow(t time.Time) bool {
	return it.EnableAuction && domain.InWindow(t, it.StartDate, it.EndDate)
}

func (it *Item) IsOwnedBy(u domain.UserId) bool {
	return !u.IsEmpty() && it.CurrentOwner == u
}

// PatchableItem holds the sale fields PostSale may change. nil fields are left untouched.
type PatchableItem struct {
	Status         *Status          `bson:"status,omitempty"`
	Price          *decimal.Decimal `bson:"price,omitempty"`
	Currency       *domain.Currency `bson:"currency,omitempty"`
	AcceptOffer    *bool            `bson:"acceptOffer,omitempty"`
	EnableAuction  *bool            `bson:"enableAuction,omitempty"`
	AuctionReserve *decimal.Decimal `bson:"auctionReserve,omitempty"`
	StartDate      *time.Time       `bson:"startDate,omitempty"`
	EndDate        *time.Time       `bson:"endDate,omitempty"`
	UpdatedAt      *time.Time       `bson:"updatedAt,omitempty"`
}

// SalePayload configures how an item is offered for sale
type SalePayload struct {
	// FixedPrice keeps the current price when omitted
	FixedPrice   *decimal.Decimal `json:"fixedPrice"`
	Currency     domain.Currency  `json:"currency"`
	SaleType     SaleType         `json:"saleType"`
	AuctionStart *time.Time       `json:"auctionStart"`
	AuctionEnd   *time.Time       `json:"auctionEnd"`
	AcceptOffer  bool             `json:"acceptOffer"`
	ReservePrice decimal.Decimal  `json:"reservePrice"`
}

func (p SalePayload) Validate() error {
	switch p.SaleType {
	case SaleTypeFixedPrice, SaleTypeNotForSale:
	case SaleTypeAuction:
		if p.AuctionStart == nil || p.AuctionEnd == nil || !p.AuctionStart.Before(*p.AuctionEnd) {
			return domain.ErrInvalidAuctionDate
		}
		if p.ReservePrice.IsNegative() {
			return domain.ErrInvalidPrice
		}
	default:
		return domain.ErrInvalidSaleType
	}
	if p.FixedPrice != nil && !p.FixedPrice.IsPositive() {
		return domain.ErrInvalidPrice
	}
	return nil
}

// ToPatchable translates a sale request into the fields to write.
// FixedPrice turns the auction flag off but leaves window and reserve in place, ClearAuctionWindow removes them.
func (p SalePayload) ToPatchable(now time.Time) PatchableItem {
	patch := PatchableItem{
		Price:       p.FixedPrice,
		AcceptOffer: &p.AcceptOffer,
		UpdatedAt:   &now,
	}
	if p.Currency != "" {
		cur := p.Currency.Normalize()
		patch.Currency = &cur
	}

	active := StatusActive
	switch p.SaleType {
	case SaleTypeNotForSale:
		inactive := StatusInactive
		patch.Status = &inactive
	case SaleTypeAuction:
		enable := true
		reserve := p.ReservePrice
		patch.Status = &active
		patch.EnableAuction = &enable
		patch.AuctionReserve = &reserve
		patch.StartDate = p.AuctionStart
		patch.EndDate = p.AuctionEnd
	case SaleTypeFixedPrice:
		disable := false
		patch.Status = &active
		patch.EnableAuction = &disable
	}
	return patch
}

type MintPayload struct {
	AuthorId     domain.UserId   `json:"-"`
	CollectionId string          `json:"collectionId" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	TokenUri     string          `json:"tokenUri" validate:"required"`
	RoyaltyBps   int             `json:"royaltyBps" validate:"gte=0,lte=10000"`
	Status       Status          `json:"status" validate:"omitempty,oneof=active inactive"`
	Price        decimal.Decimal `json:"price"`
	Currency     domain.Currency `json:"currency" validate:"required"`
}

// Precondition is checked against fresh item state inside the item lock
type Precondition func(it *Item) error

// OwnedBy requires the caller to be the current owner
func OwnedBy(u domain.UserId) Precondition {
	return func(it *Item) error {
		if !it.IsOwnedBy(u) {
			return domain.ErrForbidden
		}
		return nil
	}
}

type findAllOptions struct {
	SortBy       *string
	SortDir      *domain.SortDir
	Offset       *int32
	Limit        *int32
	Owner        *domain.UserId
	AuthorId     *domain.UserId
	CollectionId *string
	Status       *Status
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

func WithOwner(owner domain.UserId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Owner = &owner
		return nil
	}
}

func WithAuthorId(author domain.UserId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.AuthorId = &author
		return nil
	}
}

func WithCollectionId(collectionId string) FindAllOptions {
	return func(options *findAllOptions) error {
		options.CollectionId = &collectionId
		return nil
	}
}

func WithStatus(status Status) FindAllOptions {
	return func(options *findAllOptions) error {
		if !status.IsValid() {
			return domain.ErrBadParamInput
		}
		options.Status = &status
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Item, error)
	Count(c ctx.Ctx, opts ...FindAllOptions) (int, error)
	FindOne(c ctx.Ctx, id string) (*Item, error)
	Create(c ctx.Ctx, it Item) error
	Update(c ctx.Ctx, id string, patch PatchableItem) error
	// Transfer sets the new owner, turns the auction off and makes the item inactive
	Transfer(c ctx.Ctx, id string, newOwner domain.UserId) error
	ClearAuctionWindow(c ctx.Ctx, id string) error
	Remove(c ctx.Ctx, id string) error
}

type Usecase interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Item, error)
	FindOne(c ctx.Ctx, id string) (*Item, error)
	PostSale(c ctx.Ctx, id string, payload SalePayload, pres ...Precondition) (*Item, error)
	ToggleAcceptOffer(c ctx.Ctx, id string, acceptOffer bool, pres ...Precondition) (*Item, error)
	ClearAuctionWindow(c ctx.Ctx, id string, pres ...Precondition) (*Item, error)
	// Transfer must run under the item lock, the purchase executor is its only caller
	Transfer(c ctx.Ctx, id string, newOwner domain.UserId) error
	Mint(c ctx.Ctx, payload MintPayload) (*Item, error)
	Remove(c ctx.Ctx, id string) error
}
