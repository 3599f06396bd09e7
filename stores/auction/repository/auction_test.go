package repository

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/database/mongoclient"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/auction"
	"github.com/x-xyz/marketengine/service/query"
)

func TestMakeFindQuery(t *testing.T) {
	qry, err := makeFindQuery(auction.WithItemId("item-1"), auction.WithReceiverId("alice"))
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"itemId": "item-1", "receiverId": domain.UserId("alice")}, qry)

	qry, err = makeFindQuery(auction.WithSenderId("bob"), auction.WithPagination(0, 10))
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"senderId": domain.UserId("bob")}, qry)
}

func TestRemoveAllRequiresFilter(t *testing.T) {
	im := New(nil)
	_, err := im.RemoveAll(ctx.Background())
	assert.Equal(t, domain.ErrBadParamInput, err)

	_, err = im.RemoveAll(ctx.Background(), auction.WithPagination(0, 1))
	assert.Equal(t, domain.ErrBadParamInput, err)
}

func TestPriceOrderIsNumeric(t *testing.T) {
	if os.Getenv("MONGO_TEST_URI") == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	c := ctx.Background()
	db := mongoclient.MustConnectMongoClient(os.Getenv("MONGO_TEST_URI"), "admin", "test-auction-repo", false, true, 2)
	defer db.Database("test-auction-repo").Drop(c)
	im := New(query.New(db, false))

	itemId := uuid.NewString()
	for _, p := range []string{"9.5", "10", "2"} {
		require.NoError(t, im.Create(c, auction.Auction{
			Id:         uuid.NewString(),
			ItemId:     itemId,
			SenderId:   "bob",
			ReceiverId: "alice",
			Price:      decimal.RequireFromString(p),
			Currency:   "ETH",
			CreateDate: time.Now(),
		}))
	}

	res, err := im.FindAll(c, auction.WithItemId(itemId), auction.WithSort("price", domain.SortDirDesc))
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "10", res[0].Price.String())
	assert.Equal(t, "9.5", res[1].Price.String())
	assert.Equal(t, "2", res[2].Price.String())

	n, err := im.RemoveAll(c, auction.WithItemId(itemId))
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
