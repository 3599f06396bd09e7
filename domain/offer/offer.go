package offer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/purchase"
)

// Offer is a fixed price proposal from SenderId to the item's owner
type Offer struct {
	Id         string          `json:"offerId" bson:"_id"`
	ItemId     string          `json:"itemId" bson:"itemId"`
	SenderId   domain.UserId   `json:"senderId" bson:"senderId"`
	ReceiverId domain.UserId   `json:"receiverId" bson:"receiverId"`
	Price      decimal.Decimal `json:"price" bson:"price"`
	Currency   domain.Currency `json:"currency" bson:"currency"`
	CreateDate time.Time       `json:"createDate" bson:"createDate"`
}

type findAllOptions struct {
	SortBy     *string
	SortDir    *domain.SortDir
	Offset     *int32
	Limit      *int32
	ItemId     *string
	SenderId   *domain.UserId
	ReceiverId *domain.UserId
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

func WithSenderId(senderId domain.UserId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SenderId = &senderId
		return nil
	}
}

func WithReceiverId(receiverId domain.UserId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.ReceiverId = &receiverId
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Offer, error)
	FindOne(c ctx.Ctx, id string) (*Offer, error)
	Create(c ctx.Ctx, o Offer) error
	Remove(c ctx.Ctx, id string) error
	// RemoveAll requires at least one filter
	RemoveAll(c ctx.Ctx, opts ...FindAllOptions) (int64, error)
}

type Usecase interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Offer, error)
	FindOne(c ctx.Ctx, id string) (*Offer, error)
	CreateOffer(c ctx.Ctx, itemId string, senderId domain.UserId, price decimal.Decimal, currency domain.Currency) (*Offer, error)
	RescindOffer(c ctx.Ctx, id string) error
	AcceptOffer(c ctx.Ctx, receiverId domain.UserId, id string) (*purchase.Receipt, error)
}
