package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/offer"
	"github.com/x-xyz/marketengine/service/query"
)

var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "itemId", Value: 1}, {Key: "receiverId", Value: 1}, {Key: "createDate", Value: 1}}},
	{Keys: bson.D{{Key: "senderId", Value: 1}, {Key: "createDate", Value: -1}}},
}

func makeFindQuery(optFns ...offer.FindAllOptions) (bson.M, error) {
	opts, err := offer.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	query := bson.M{}

	if opts.ItemId != nil {
		query["itemId"] = *opts.ItemId
	}

	if opts.SenderId != nil {
		query["senderId"] = *opts.SenderId
	}

	if opts.ReceiverId != nil {
		query["receiverId"] = *opts.ReceiverId
	}

	return query, nil
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) offer.Repo {
	return &impl{q}
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...offer.FindAllOptions) ([]*offer.Offer, error) {
	res := []*offer.Offer{}

	opts, err := offer.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("offer.GetFindAllOptions failed")
		return nil, err
	}

	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	sort := "createDate"
	if opts.SortBy != nil && opts.SortDir != nil {
		sort = *opts.SortBy
		if *opts.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
		// earlier entries win ties
		if *opts.SortBy != "createDate" {
			sort += ",createDate"
		}
	}

	if err := im.q.Search(c, domain.TableOffers, offset, limit, sort, qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*offer.Offer, error) {
	res := &offer.Offer{}

	if err := im.q.FindOne(c, domain.TableOffers, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("offerId", id).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Create(c ctx.Ctx, o offer.Offer) error {
	if err := im.q.Insert(c, domain.TableOffers, o); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, id string) error {
	if err := im.q.Remove(c, domain.TableOffers, bson.M{"_id": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("offerId", id).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) RemoveAll(c ctx.Ctx, optFns ...offer.FindAllOptions) (int64, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return 0, err
	}

	if len(qry) == 0 {
		return 0, domain.ErrBadParamInput
	}

	n, err := im.q.RemoveAll(c, domain.TableOffers, qry)
	if err != nil {
		c.WithField("err", err).Error("q.RemoveAll failed")
		return 0, err
	}
	return n, nil
}
