package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/database/mongoclient"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/service/query"
)

var timeNow = time.Now

var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "currentOwner", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Keys: bson.D{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Keys: bson.D{{Key: "collectionId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
}

func makeFindQuery(optFns ...item.FindAllOptions) (bson.M, error) {
	opts, err := item.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	query := bson.M{}

	if opts.Owner != nil {
		query["currentOwner"] = *opts.Owner
	}

	if opts.AuthorId != nil {
		query["authorId"] = *opts.AuthorId
	}

	if opts.CollectionId != nil {
		query["collectionId"] = *opts.CollectionId
	}

	if opts.Status != nil {
		query["status"] = *opts.Status
	}

	return query, nil
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) item.Repo {
	return &impl{q}
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...item.FindAllOptions) ([]*item.Item, error) {
	res := []*item.Item{}

	opts, err := item.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("item.GetFindAllOptions failed")
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

	sort := "-createdAt"
	if opts.SortBy != nil && opts.SortDir != nil {
		sort = *opts.SortBy
		if *opts.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	if err := im.q.Search(c, domain.TableItems, offset, limit, sort, qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Count(c ctx.Ctx, optFns ...item.FindAllOptions) (int, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return 0, err
	}

	count, err := im.q.Count(c, domain.TableItems, qry)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}

	return count, nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*item.Item, error) {
	res := &item.Item{}

	if err := im.q.FindOne(c, domain.TableItems, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("itemId", id).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Create(c ctx.Ctx, it item.Item) error {
	if err := im.q.Insert(c, domain.TableItems, it); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Update(c ctx.Ctx, id string, patch item.PatchableItem) error {
	updater, err := mongoclient.MakeBsonM(patch)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if len(updater) == 0 {
		return nil
	}

	return im.patch(c, id, updater)
}

func (im *impl) Transfer(c ctx.Ctx, id string, newOwner domain.UserId) error {
	return im.patch(c, id, bson.M{
		"currentOwner":  newOwner,
		"enableAuction": false,
		"status":        item.StatusInactive,
		"updatedAt":     timeNow(),
	})
}

func (im *impl) ClearAuctionWindow(c ctx.Ctx, id string) error {
	updater := bson.M{
		"$set": bson.M{
			"enableAuction": false,
			"updatedAt":     timeNow(),
		},
		"$unset": bson.M{
			"startDate":      "",
			"endDate":        "",
			"auctionReserve": "",
		},
	}

	if err := im.q.CustomPatch(c, domain.TableItems, bson.M{"_id": id}, updater, false); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("itemId", id).Error("q.CustomPatch failed")
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, id string) error {
	if err := im.q.Remove(c, domain.TableItems, bson.M{"_id": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("itemId", id).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) patch(c ctx.Ctx, id string, updater bson.M) error {
	if err := im.q.Patch(c, domain.TableItems, bson.M{"_id": id}, updater); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("itemId", id).Error("q.Patch failed")
		return err
	}
	return nil
}
