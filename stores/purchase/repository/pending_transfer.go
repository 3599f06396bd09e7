package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/database/mongoclient"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/purchase"
	"github.com/x-xyz/marketengine/service/query"
)

var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "itemId", Value: 1}, {Key: "state", Value: 1}}},
	{Keys: bson.D{{Key: "state", Value: 1}, {Key: "updatedAt", Value: 1}}},
}

func makeFindQuery(optFns ...purchase.FindAllOptions) (bson.M, error) {
	opts, err := purchase.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	query := bson.M{}

	if opts.ItemId != nil {
		query["itemId"] = *opts.ItemId
	}

	if len(opts.States) == 1 {
		query["state"] = opts.States[0]
	} else if len(opts.States) > 1 {
		query["state"] = bson.M{"$in": opts.States}
	}

	if opts.UpdatedBefore != nil {
		query["updatedAt"] = bson.M{"$lt": *opts.UpdatedBefore}
	}

	return query, nil
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) purchase.PendingTransferRepo {
	return &impl{q}
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...purchase.FindAllOptions) ([]*purchase.PendingTransfer, error) {
	res := []*purchase.PendingTransfer{}

	opts, err := purchase.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("purchase.GetFindAllOptions failed")
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

	sort := "updatedAt"
	if opts.SortBy != nil && opts.SortDir != nil {
		sort = *opts.SortBy
		if *opts.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	if err := im.q.Search(c, domain.TablePendingTransfers, offset, limit, sort, qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*purchase.PendingTransfer, error) {
	res := &purchase.PendingTransfer{}

	if err := im.q.FindOne(c, domain.TablePendingTransfers, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("pendingTransferId", id).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Create(c ctx.Ctx, pt purchase.PendingTransfer) error {
	if err := im.q.Insert(c, domain.TablePendingTransfers, pt); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

// Update is a compare-and-set on the state field
func (im *impl) Update(c ctx.Ctx, id string, from purchase.State, patch purchase.PatchablePendingTransfer) error {
	if patch.State != "" && !purchase.CanTransit(from, patch.State) {
		return domain.ErrInvalidTransition
	}

	updater, err := mongoclient.MakeBsonM(patch)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if len(updater) == 0 {
		return nil
	}

	err = im.q.Patch(c, domain.TablePendingTransfers, bson.M{"_id": id, "state": from}, updater)
	if err == query.ErrNotFound {
		if _, findErr := im.FindOne(c, id); findErr != nil {
			return findErr
		}
		return domain.ErrInvalidTransition
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":               err,
			"pendingTransferId": id,
			"from":              from,
			"to":                patch.State,
		}).Error("q.Patch failed")
		return err
	}

	return nil
}
