package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/x-xyz/marketengine/base/backoff"
	"github.com/x-xyz/marketengine/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
	connectAttempts = 4
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	// Transactional is set when the server is a replica set member and accepts multi-document transactions
	Transactional bool
	*mongo.Client
}

// MustConnectMongoClient returns MongoDB connection client if connected successfully, or it will trigger panic
func MustConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) *Client {
	cli, err := ConnectMongoClient(uri, authDBName, dbName, ssl, setSafe, poolSizeMultiplier)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient connects and verifies dbName is readable, retrying with exponential backoff
func ConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) (*Client, error) {
	ctx := context.Background()
	connSetting, err := connstring.Parse(uri)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"dbName": dbName,
			"err":    err,
		}).Error("fail to parse connstring")
		return nil, err
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetSocketTimeout(mgSocketTimeout).
		SetRegistry(Registry).
		SetRetryWrites(true)

	// AuthSource in the uri wins over authDBName
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              authDBName,
		})
	}

	minPool, maxPool := poolSizes(poolSizeMultiplier, len(connSetting.Hosts))
	clientOpts.SetMinPoolSize(minPool).SetMaxPoolSize(maxPool)

	if ssl {
		clientOpts.SetTLSConfig(&tls.Config{})
	}

	if setSafe {
		// commits of a purchase must survive a primary failover
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
		clientOpts.SetReadConcern(readconcern.Majority())
	}

	client, err := mongo.NewClient(clientOpts)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"err":        err,
		}).Error("fail to create mongo client")
		return nil, err
	}

	err = backoff.Retry(ctx, backoff.NewExponential(time.Second, 8*time.Second), connectAttempts, func(attempt int) error {
		if err := client.Connect(ctx); err != nil && err != topology.ErrTopologyConnected {
			log.Log().WithFields(log.Fields{
				"mongoHosts": connSetting.Hosts,
				"attempt":    attempt,
				"err":        err,
			}).Error("fail to connect mongo db")
			return err
		}
		if _, err := client.Database(dbName).ListCollectionNames(ctx, bson.D{}); err != nil {
			log.Log().WithFields(log.Fields{
				"mongoHosts": connSetting.Hosts,
				"dbName":     dbName,
				"attempt":    attempt,
				"err":        err,
			}).Error("fail to test mongo db")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	transactional := isReplicaSet(ctx, client)
	log.Log().WithFields(log.Fields{
		"mongoHosts":    connSetting.Hosts,
		"db":            dbName,
		"poolSize":      maxPool,
		"transactional": transactional,
	}).Info("mongo connected")
	return &Client{
		DbName:        dbName,
		Transactional: transactional,
		Client:        client,
	}, nil
}

// poolSizes splits the total pool, NumCPU * multiplier with a floor of 4, over the hosts
func poolSizes(multiplier float64, hosts int) (uint64, uint64) {
	total := int(float64(runtime.NumCPU()) * multiplier)
	if total < 4 {
		total = 4
	}
	if hosts < 1 {
		hosts = 1
	}
	perHost := (total + hosts - 1) / hosts
	return uint64(perHost / 4), uint64(perHost)
}

func isReplicaSet(ctx context.Context, client *mongo.Client) bool {
	var res struct {
		SetName string `bson:"setName"`
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "isMaster", Value: 1}}).Decode(&res); err != nil {
		log.Log().WithField("err", err).Warn("isMaster failed")
		return false
	}
	return res.SetName != ""
}
