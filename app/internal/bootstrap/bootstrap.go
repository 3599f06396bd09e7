// Package bootstrap wires the storage, services and usecases shared by the api and reconciler binaries.
package bootstrap

import (
	"strings"

	"github.com/gomodule/redigo/redis"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/currency"
	"github.com/x-xyz/marketengine/base/database/mongoclient"
	"github.com/x-xyz/marketengine/base/database/redisclient"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/auction"
	"github.com/x-xyz/marketengine/domain/collection"
	"github.com/x-xyz/marketengine/domain/history"
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/domain/keys"
	"github.com/x-xyz/marketengine/domain/offer"
	"github.com/x-xyz/marketengine/domain/purchase"
	"github.com/x-xyz/marketengine/domain/wallet"
	"github.com/x-xyz/marketengine/service/cache"
	"github.com/x-xyz/marketengine/service/cache/provider"
	"github.com/x-xyz/marketengine/service/cache/provider/compound"
	"github.com/x-xyz/marketengine/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/marketengine/service/cache/provider/redis"
	"github.com/x-xyz/marketengine/service/chain"
	"github.com/x-xyz/marketengine/service/locker"
	"github.com/x-xyz/marketengine/service/notifier"
	"github.com/x-xyz/marketengine/service/query"
	auction_repository "github.com/x-xyz/marketengine/stores/auction/repository"
	auction_usecase "github.com/x-xyz/marketengine/stores/auction/usecase"
	collection_repository "github.com/x-xyz/marketengine/stores/collection/repository"
	collection_usecase "github.com/x-xyz/marketengine/stores/collection/usecase"
	history_repository "github.com/x-xyz/marketengine/stores/history/repository"
	history_usecase "github.com/x-xyz/marketengine/stores/history/usecase"
	item_repository "github.com/x-xyz/marketengine/stores/item/repository"
	item_usecase "github.com/x-xyz/marketengine/stores/item/usecase"
	offer_repository "github.com/x-xyz/marketengine/stores/offer/repository"
	offer_usecase "github.com/x-xyz/marketengine/stores/offer/usecase"
	purchase_repository "github.com/x-xyz/marketengine/stores/purchase/repository"
	purchase_usecase "github.com/x-xyz/marketengine/stores/purchase/usecase"
	wallet_repository "github.com/x-xyz/marketengine/stores/wallet/repository"
	wallet_usecase "github.com/x-xyz/marketengine/stores/wallet/usecase"
)

// Engine holds everything a binary needs to serve or reconcile purchases
type Engine struct {
	MongoClient *mongoclient.Client
	RedisPool   *redis.Pool
	// HttpCache backs the response cache middleware
	HttpCache provider.Provider
	Notifier  notifier.Notifier

	CollectionUC collection.Usecase
	HistoryUC    history.Usecase
	ItemUC       item.Usecase
	OfferUC      offer.Usecase
	AuctionUC    auction.Usecase
	PurchaseUC   purchase.Usecase
}

// LoadConfig reads the yaml file named by --config. Env vars override keys with dots replaced by underscores.
func LoadConfig() {
	path := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if err := log.Configure(viper.GetString("log.level"), viper.GetBool("log.development")); err != nil {
		panic(err)
	}

	if viper.GetBool("debug") {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

// MustBuild connects to mongo, redis and the ledger and builds the usecases. It panics on failure.
func MustBuild(c ctx.Ctx) *Engine {
	c.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(
		viper.GetString("mongo.uri"),
		viper.GetString("mongo.authDBName"),
		viper.GetString("mongo.dbName"),
		viper.GetBool("mongo.enableSSL"),
		true,
		viper.GetFloat64("mongo.poolMultiplier"),
	)
	q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
	mustEnsureIndexes(c, q)

	c.Info("init redis")
	pool := redisclient.MustConnect(viper.GetString("redis.uri"), redisclient.Options{
		Password:       viper.GetString("redis.password"),
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		DialRetries:    3,
	})
	redisCache := redisProvider.NewRedis(pool)
	localCache := primitive.NewPrimitive("history", viper.GetInt("history.cache.sizeMB"))

	c.Info("init ledger")
	ledger, err := chain.Dial(c, chain.Config{
		RpcUrl:              viper.GetString("ledger.rpcUrl"),
		ChainId:             viper.GetInt64("ledger.chainId"),
		NftContract:         viper.GetString("ledger.nftContract"),
		MarketplaceContract: viper.GetString("ledger.marketplaceContract"),
		ConfirmTimeout:      viper.GetDuration("ledger.confirmTimeout"),
		MaxConcurrentRpc:    viper.GetInt("ledger.maxConcurrentRpc"),
	})
	if err != nil {
		c.WithField("err", err).Panic("chain.Dial failed")
	}

	walletRepo := wallet_repository.New(q)
	var signer wallet.SignerResolver = wallet_usecase.NewReal(walletRepo)
	if viper.GetBool("useTestWallet") {
		c.Warn("signing every transaction with the test wallet")
		signer, err = wallet_usecase.NewFixed(viper.GetString("testWallet.privateKey"))
		if err != nil {
			c.WithField("err", err).Panic("wallet_usecase.NewFixed failed")
		}
	}

	var alerts notifier.Notifier = notifier.NewLog()
	if token := viper.GetString("notifier.discord.token"); token != "" {
		alerts, err = notifier.NewDiscord(token, viper.GetString("notifier.discord.channelId"))
		if err != nil {
			c.WithField("err", err).Panic("notifier.NewDiscord failed")
		}
	}

	itemLocker := locker.NewRedis(pool, locker.Config{
		Ttl:         viper.GetDuration("lock.ttl"),
		WaitTimeout: viper.GetDuration("lock.waitTimeout"),
	})

	itemRepo := item_repository.New(q)
	offerRepo := offer_repository.New(q)
	auctionRepo := auction_repository.New(q)
	transferRepo := purchase_repository.New(q)

	historyUC := history_usecase.New(&history_usecase.HistoryUseCaseCfg{
		HistoryRepo: history_repository.New(q),
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("history.cache.ttl"),
			Pfx:   keys.PfxItemHistory,
			Cache: compound.NewCompound(localCache, redisCache),
		}),
	})
	collectionUC := collection_usecase.New(&collection_usecase.CollectionUseCaseCfg{
		CollectionRepo: collection_repository.New(q),
		HistoryUC:      historyUC,
		Transactor:     q,
	})
	itemUC := item_usecase.New(&item_usecase.ItemUseCaseCfg{
		ItemRepo:     itemRepo,
		OfferRepo:    offerRepo,
		AuctionRepo:  auctionRepo,
		CollectionUC: collectionUC,
		HistoryUC:    historyUC,
		Locker:       itemLocker,
		Transactor:   q,
		Signer:       signer,
		Ledger:       ledger,

		PendingTransferRepo: transferRepo,
	})
	converter := currency.FromConfig(viper.GetStringMap("currencies"))
	purchaseUC := purchase_usecase.New(&purchase_usecase.PurchaseUseCaseCfg{
		PendingTransferRepo: transferRepo,
		ItemRepo:            itemRepo,
		ItemUC:              itemUC,
		OfferRepo:           offerRepo,
		AuctionRepo:         auctionRepo,
		CollectionUC:        collectionUC,
		HistoryUC:           historyUC,
		Locker:              itemLocker,
		Transactor:          q,
		Signer:              signer,
		Ledger:              ledger,
		Converter:           converter,
		Notifier:            alerts,
	})

	return &Engine{
		MongoClient: mongoClient,
		RedisPool:   pool,
		HttpCache:   redisCache,
		Notifier:    alerts,

		CollectionUC: collectionUC,
		HistoryUC:    historyUC,
		ItemUC:       itemUC,
		OfferUC: offer_usecase.New(&offer_usecase.OfferUseCaseCfg{
			OfferRepo:  offerRepo,
			ItemUC:     itemUC,
			PurchaseUC: purchaseUC,
			Converter:  converter,
		}),
		AuctionUC: auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
			AuctionRepo: auctionRepo,
			ItemUC:      itemUC,
			PurchaseUC:  purchaseUC,
			Converter:   converter,
		}),
		PurchaseUC: purchaseUC,
	}
}

func mustEnsureIndexes(c ctx.Ctx, q query.Mongo) {
	indexes := map[domain.Table][]mongo.IndexModel{
		domain.TableItems:            item_repository.Indexes,
		domain.TableOffers:           offer_repository.Indexes,
		domain.TableAuctions:         auction_repository.Indexes,
		domain.TableHistories:        history_repository.Indexes,
		domain.TablePendingTransfers: purchase_repository.Indexes,
	}
	for table, models := range indexes {
		if err := q.EnsureIndexes(c, table, models); err != nil {
			c.WithField("err", err).WithField("table", table).Panic("q.EnsureIndexes failed")
		}
	}
}
