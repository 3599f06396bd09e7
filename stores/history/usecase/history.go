package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/history"
	"github.com/x-xyz/marketengine/service/cache"
)

var timeNow = time.Now

type impl struct {
	historyRepo history.Repo
	cache       cache.Service
}

type HistoryUseCaseCfg struct {
	HistoryRepo history.Repo
	// Cache holds item histories, reads go straight to the repo when nil
	Cache cache.Service
}

func New(cfg *HistoryUseCaseCfg) history.Usecase {
	return &impl{
		historyRepo: cfg.HistoryRepo,
		cache:       cfg.Cache,
	}
}

func (im *impl) Append(c ctx.Ctx, h history.History) (*history.History, error) {
	if err := h.Validate(); err != nil {
		c.WithField("err", err).WithField("historyType", h.HistoryType).Warn("history.Validate failed")
		return nil, err
	}

	if h.Id == "" {
		h.Id = uuid.NewString()
	}
	if h.CreateDate.IsZero() {
		h.CreateDate = timeNow()
	}
	h.Currency = h.Currency.Normalize()

	if err := im.historyRepo.Create(c, h); err != nil {
		c.WithField("err", err).WithField("itemId", h.ItemId).Error("historyRepo.Create failed")
		return nil, err
	}

	return &h, nil
}

func (im *impl) QueryByItem(c ctx.Ctx, itemId string) ([]*history.History, error) {
	getter := func() (interface{}, error) {
		res, err := im.historyRepo.FindAll(c, history.WithItemId(itemId), history.WithSort("createDate", domain.SortDirDesc))
		if err != nil {
			c.WithField("err", err).WithField("itemId", itemId).Error("historyRepo.FindAll failed")
			return nil, err
		}
		return &res, nil
	}

	if im.cache == nil {
		res, err := getter()
		if err != nil {
			return nil, err
		}
		return *res.(*[]*history.History), nil
	}

	res := []*history.History{}
	if err := im.cache.GetByFunc(c, itemId, &res, getter); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) QueryAll(c ctx.Ctx, opts ...history.FindAllOptions) ([]*history.History, error) {
	res, err := im.historyRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("historyRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Evict(c ctx.Ctx, itemId string) {
	if im.cache == nil {
		return
	}
	if err := im.cache.Del(c, itemId); err != nil {
		c.WithField("err", err).WithField("itemId", itemId).Warn("cache.Del failed")
	}
}
