package query

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/database/mongoclient"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/base/metrics"
	"github.com/x-xyz/marketengine/domain"
)

const (
	queryMaxTime = 20 * time.Second
	slowLogMs    = int64(500)
	// maxTransactions caps the sessions open at once
	maxTransactions = 10
)

var (
	timeNow = time.Now
	met     = metrics.New("mongo")
)

type impl struct {
	client     *mongoclient.Client
	checkIndex bool
	txSlots    chan struct{}
}

// New wraps client. With checkIndex, reads are explained first and COLLSCANs are rejected.
func New(client *mongoclient.Client, checkIndex bool) Mongo {
	return &impl{
		client:     client,
		checkIndex: checkIndex,
		txSlots:    make(chan struct{}, maxTransactions),
	}
}

// op tags context with the table and the document of the call and starts its timer and slow log.
// The returned func must be deferred.
func (im *impl) op(context ctx.Ctx, table domain.Table, action string, doc interface{}, sort interface{}) (ctx.Ctx, func()) {
	start := timeNow()
	timer := met.BumpTime("time", "func", action, "table", string(table))
	context = ctx.WithValues(context, map[string]interface{}{
		"table": table,
		"doc":   doc,
	})

	return context, func() {
		timer.End()
		elapsedMs := time.Since(start).Milliseconds()
		if elapsedMs >= slowLogMs {
			met.BumpSum("slowlog", 1, "table", string(table), "action", action)
			context.WithFields(log.Fields{
				"action":     action,
				"startTime":  start.Unix(),
				"durationMs": elapsedMs,
				"sort":       sort,
			}).Warn("mongo slowlog")
		}
	}
}

func (im *impl) logerr(context ctx.Ctx, msg string, err error) {
	if _, ok := err.(topology.ConnectionError); ok {
		met.BumpSum("conn.err", 1.0)
	}
	context.WithField("err", err).Error(msg)
}

func (im *impl) coll(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

func (im *impl) Insert(context ctx.Ctx, table domain.Table, insert interface{}) error {
	context, done := im.op(context, table, "insert", insert, nil)
	defer done()

	if _, err := im.coll(table).InsertOne(context, insert); mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	} else if err != nil {
		im.logerr(context, "Insert: InsertOne failed", err)
		return err
	}
	return nil
}

func (im *impl) FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error {
	context, done := im.op(context, table, "findone", query, nil)
	defer done()

	if err := im.checkQueryIndex(context, table, "find", bson.E{Key: "filter", Value: query}); err != nil {
		return err
	}

	err := im.coll(table).FindOne(context, query, options.FindOne().SetMaxTime(queryMaxTime)).Decode(result)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	} else if err != nil {
		im.logerr(context, "FindOne: Decode failed", err)
		return err
	}
	return nil
}

func (im *impl) Count(context ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	context, done := im.op(context, table, "count", selector, nil)
	defer done()

	if err := im.checkQueryIndex(context, table, "count", bson.E{Key: "query", Value: selector}); err != nil {
		return 0, err
	}

	count, err := im.coll(table).CountDocuments(context, selector, options.Count().SetMaxTime(queryMaxTime))
	if err != nil {
		im.logerr(context, "Count: CountDocuments failed", err)
		return 0, err
	}
	return int(count), nil
}

// getSortOption turns "-price,createDate" style fields into a sort document
func getSortOption(sorts ...string) bson.D {
	res := bson.D{}
	for _, sort := range sorts {
		for _, field := range strings.Split(sort, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if field[0] == '-' {
				res = append(res, bson.E{Key: field[1:], Value: -1})
			} else {
				res = append(res, bson.E{Key: field, Value: 1})
			}
		}
	}
	return res
}

func (im *impl) Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	context, done := im.op(context, table, "search", query, sort)
	defer done()

	if err := im.checkQueryIndex(context, table, "find", bson.E{Key: "filter", Value: query}); err != nil {
		return err
	}

	findOpts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(offset))
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}
	if sortOpt := getSortOption(sort); len(sortOpt) > 0 {
		findOpts.SetSort(sortOpt)
	}

	cursor, err := im.coll(table).Find(context, query, findOpts)
	if err != nil {
		im.logerr(context, "Search: Find failed", err)
		return err
	}
	defer cursor.Close(context)

	if err := cursor.All(context, results); err != nil {
		im.logerr(context, "Search: cursor.All failed", err)
		return err
	}
	return nil
}

func (im *impl) Remove(context ctx.Ctx, table domain.Table, selector interface{}) error {
	context, done := im.op(context, table, "remove", selector, nil)
	defer done()

	res, err := im.coll(table).DeleteOne(context, selector)
	if err != nil {
		im.logerr(context, "Remove: DeleteOne failed", err)
		return err
	} else if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (int64, error) {
	context, done := im.op(context, table, "removeAll", selector, nil)
	defer done()

	res, err := im.coll(table).DeleteMany(context, selector)
	if err != nil {
		im.logerr(context, "RemoveAll: DeleteMany failed", err)
		return 0, err
	}
	return res.DeletedCount, nil
}

func (im *impl) Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error {
	context, done := im.op(context, table, "update", selector, nil)
	defer done()

	o := &patchOp{}
	for _, opt := range ops {
		opt(o)
	}

	updater := bson.M{"$set": update}
	var (
		res *mongo.UpdateResult
		err error
	)
	if o.patchMany {
		res, err = im.coll(table).UpdateMany(context, selector, updater)
	} else {
		res, err = im.coll(table).UpdateOne(context, selector, updater)
	}
	if err != nil {
		im.logerr(ctx.WithValue(context, "update", update), "Patch: Update failed", err)
		return err
	}
	return matched(res)
}

func (im *impl) CustomPatch(context ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error {
	context, done := im.op(context, table, "customupdate", selector, nil)
	defer done()

	res, err := im.coll(table).UpdateOne(context, selector, update, options.Update().SetUpsert(upsert))
	if err != nil {
		im.logerr(ctx.WithValue(context, "update", update), "CustomPatch: UpdateOne failed", err)
		return err
	}
	return matched(res)
}

func matched(res *mongo.UpdateResult) error {
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) EnsureIndexes(context ctx.Ctx, table domain.Table, indexes []mongo.IndexModel) error {
	if len(indexes) == 0 {
		return nil
	}
	names, err := im.coll(table).Indexes().CreateMany(context, indexes)
	if err != nil {
		im.logerr(ctx.WithValue(context, "table", table), "EnsureIndexes: CreateMany failed", err)
		return err
	}
	context.WithFields(log.Fields{"table": table, "indexes": names}).Info("indexes ensured")
	return nil
}

func (im *impl) RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error {
	defer met.BumpTime("time", "func", "transaction").End()

	// explain is not allowed in a transaction
	if im.checkIndex || !im.client.Transactional {
		met.BumpSum("transaction.skipped", 1)
		return run(context)
	}

	select {
	case <-context.Done():
		return context.Err()
	case im.txSlots <- struct{}{}:
	}
	defer func() { <-im.txSlots }()

	session, err := im.client.StartSession()
	if err != nil {
		im.logerr(context, "RunWithTransaction: StartSession failed", err)
		return err
	}
	defer session.EndSession(context)

	_, err = session.WithTransaction(context, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, run(ctx.Ctx{Context: sessCtx, Logger: context.Logger})
	})
	return err
}

func (im *impl) checkQueryIndex(context ctx.Ctx, table domain.Table, action string, query bson.E) error {
	if !im.checkIndex {
		return nil
	}
	// https://docs.mongodb.com/manual/reference/command/explain/
	res := im.client.Database(im.client.DbName).RunCommand(context, bson.D{
		{Key: "explain", Value: bson.D{{Key: action, Value: string(table)}, query}},
		{Key: "verbosity", Value: "queryPlanner"},
	})

	var m bson.M
	if err := res.Decode(&m); err != nil {
		context.WithField("err", err).Warn("checkQueryIndex decode failed")
		met.BumpSum("checkQueryIndex.err", 1)
		return nil
	}

	// explain output differs across server versions, look for the stage as text
	if strings.Contains(fmt.Sprintf("%v", m), "COLLSCAN") {
		context.WithField("query", query).Warn("COLLSCAN")
		return ErrCollScan
	}
	return nil
}
