package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/wallet"
	"github.com/x-xyz/marketengine/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) wallet.Repo {
	return &impl{q}
}

func (im *impl) FindOne(c ctx.Ctx, userId domain.UserId) (*wallet.Wallet, error) {
	res := &wallet.Wallet{}

	if err := im.q.FindOne(c, domain.TableWallets, bson.M{"_id": userId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("userId", userId).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}
