package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/collection"
	"github.com/x-xyz/marketengine/domain/history"
)

var timeNow = time.Now

type impl struct {
	collectionRepo collection.Repo
	historyUC      history.Usecase
	tx             domain.Transactor
}

type CollectionUseCaseCfg struct {
	CollectionRepo collection.Repo
	HistoryUC      history.Usecase
	Transactor     domain.Transactor
}

func New(cfg *CollectionUseCaseCfg) collection.Usecase {
	return &impl{
		collectionRepo: cfg.CollectionRepo,
		historyUC:      cfg.HistoryUC,
		tx:             cfg.Transactor,
	}
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*collection.Collection, error) {
	res, err := im.collectionRepo.FindOne(c, id)
	if err != nil && err != domain.ErrNotFound {
		c.WithField("err", err).WithField("collectionId", id).Error("collectionRepo.FindOne failed")
	}
	return res, err
}

// Create stores the collection and its `created` history in one transaction
func (im *impl) Create(c ctx.Ctx, payload collection.CreatePayload) (*collection.Collection, error) {
	if payload.Owner.IsEmpty() || payload.Name == "" {
		return nil, domain.ErrBadParamInput
	}

	now := timeNow()
	value := collection.Collection{
		Id:           uuid.NewString(),
		Name:         payload.Name,
		Description:  payload.Description,
		Owner:        payload.Owner,
		VolumeTraded: map[domain.Currency]decimal.Decimal{},
		CreatedAt:    now,
	}

	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.collectionRepo.Create(c, value); err != nil {
			c.WithField("err", err).Error("collectionRepo.Create failed")
			return err
		}

		if _, err := im.historyUC.Append(c, history.History{
			CollectionId: value.Id,
			ToId:         value.Owner,
			HistoryType:  history.HistoryTypeCreated,
			IsValid:      true,
			CreateDate:   now,
		}); err != nil {
			c.WithField("err", err).Error("historyUC.Append failed")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &value, nil
}

func (im *impl) IncreaseItemCount(c ctx.Ctx, id string, n int) error {
	if err := im.collectionRepo.IncreaseItemCount(c, id, n); err != nil {
		c.WithField("err", err).WithField("collectionId", id).Error("collectionRepo.IncreaseItemCount failed")
		return err
	}
	return nil
}

func (im *impl) AddVolume(c ctx.Ctx, id string, currency domain.Currency, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.ErrInvalidPrice
	}
	if err := im.collectionRepo.AddVolume(c, id, currency.Normalize(), amount); err != nil {
		c.WithField("err", err).WithField("collectionId", id).Error("collectionRepo.AddVolume failed")
		return err
	}
	return nil
}
