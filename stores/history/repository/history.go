package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/history"
	"github.com/x-xyz/marketengine/service/query"
)

// Indexes of the histories table. At most one transfer row per transaction hash,
// so replaying a purchase commit cannot record the same transfer twice.
var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "itemId", Value: 1}, {Key: "createDate", Value: -1}}},
	{Keys: bson.D{{Key: "collectionId", Value: 1}, {Key: "createDate", Value: -1}}},
	{Keys: bson.D{{Key: "fromId", Value: 1}, {Key: "createDate", Value: -1}}},
	{Keys: bson.D{{Key: "toId", Value: 1}, {Key: "createDate", Value: -1}}},
	{
		Keys: bson.D{{Key: "transactionHash", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"historyType": history.HistoryTypeTransfer}),
	},
}

func makeFindQuery(optFns ...history.FindAllOptions) (bson.M, error) {
	opts, err := history.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	query := bson.M{}

	if opts.ItemId != nil {
		query["itemId"] = *opts.ItemId
	}

	if opts.CollectionId != nil {
		query["collectionId"] = *opts.CollectionId
	}

	if opts.HistoryType != nil {
		query["historyType"] = *opts.HistoryType
	}

	if opts.TransactionHash != nil {
		query["transactionHash"] = *opts.TransactionHash
	}

	if opts.Account != nil {
		query["$or"] = bson.A{
			bson.M{"fromId": *opts.Account},
			bson.M{"toId": *opts.Account},
		}
	}

	return query, nil
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) history.Repo {
	return &impl{q}
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...history.FindAllOptions) ([]*history.History, error) {
	res := []*history.History{}

	opts, err := history.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("history.GetFindAllOptions failed")
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

	sort := "-createDate"
	if opts.SortBy != nil && opts.SortDir != nil {
		sort = *opts.SortBy
		if *opts.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	if err := im.q.Search(c, domain.TableHistories, offset, limit, sort, qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Count(c ctx.Ctx, optFns ...history.FindAllOptions) (int, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return 0, err
	}

	count, err := im.q.Count(c, domain.TableHistories, qry)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}

	return count, nil
}

func (im *impl) Create(c ctx.Ctx, h history.History) error {
	if err := im.q.Insert(c, domain.TableHistories, h); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}
