package repository

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/collection"
	"github.com/x-xyz/marketengine/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) collection.Repo {
	return &impl{q}
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*collection.Collection, error) {
	res := &collection.Collection{}

	if err := im.q.FindOne(c, domain.TableCollections, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Create(c ctx.Ctx, value collection.Collection) error {
	// $inc on volumeTraded.<currency> needs a document, not null
	if value.VolumeTraded == nil {
		value.VolumeTraded = map[domain.Currency]decimal.Decimal{}
	}

	if err := im.q.Insert(c, domain.TableCollections, value); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) IncreaseItemCount(c ctx.Ctx, id string, n int) error {
	return im.inc(c, id, bson.M{"itemCount": int64(n)})
}

func (im *impl) AddVolume(c ctx.Ctx, id string, currency domain.Currency, amount decimal.Decimal) error {
	return im.inc(c, id, bson.M{"volumeTraded." + string(currency.Normalize()): amount})
}

func (im *impl) inc(c ctx.Ctx, id string, fields bson.M) error {
	if err := im.q.CustomPatch(c, domain.TableCollections, bson.M{"_id": id}, bson.M{"$inc": fields}, false); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("collectionId", id).Error("q.CustomPatch failed")
		return err
	}
	return nil
}
