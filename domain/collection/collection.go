package collection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
)

type Collection struct {
	Id          string        `json:"collectionId" bson:"_id"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Owner       domain.UserId `json:"owner" bson:"owner"`
	ItemCount   int64         `json:"itemCount" bson:"itemCount"`
	// traded volume per settlement currency
	VolumeTraded map[domain.Currency]decimal.Decimal `json:"volumeTraded" bson:"volumeTraded"`
	CreatedAt    time.Time                           `json:"createdAt" bson:"createdAt"`
}

type CreatePayload struct {
	Owner       domain.UserId `json:"-"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
}

type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Collection, error)
	Create(c ctx.Ctx, value Collection) error
	// IncreaseItemCount adds n, which may be negative
	IncreaseItemCount(c ctx.Ctx, id string, n int) error
	AddVolume(c ctx.Ctx, id string, currency domain.Currency, amount decimal.Decimal) error
}

type Usecase interface {
	FindOne(c ctx.Ctx, id string) (*Collection, error)
	Create(c ctx.Ctx, payload CreatePayload) (*Collection, error)
	IncreaseItemCount(c ctx.Ctx, id string, n int) error
	AddVolume(c ctx.Ctx, id string, currency domain.Currency, amount decimal.Decimal) error
}
