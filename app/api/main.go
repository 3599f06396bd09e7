package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/x-xyz/marketengine/app/internal/bootstrap"
	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/log"
	bValidator "github.com/x-xyz/marketengine/base/validator"
	mmiddleware "github.com/x-xyz/marketengine/middleware"
	auction_delivery "github.com/x-xyz/marketengine/stores/auction/delivery/http"
	auth_middleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/marketengine/stores/auth/usecase"
	collection_delivery "github.com/x-xyz/marketengine/stores/collection/delivery/http"
	hc_delivery "github.com/x-xyz/marketengine/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/marketengine/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/marketengine/stores/healthcheck/usecase"
	history_delivery "github.com/x-xyz/marketengine/stores/history/delivery/http"
	item_delivery "github.com/x-xyz/marketengine/stores/item/delivery/http"
	offer_delivery "github.com/x-xyz/marketengine/stores/offer/delivery/http"
	purchase_delivery "github.com/x-xyz/marketengine/stores/purchase/delivery/http"

	_ "github.com/x-xyz/marketengine/app/api/docs"
)

func init() {
	bootstrap.LoadConfig()
}

//	@title			Market Engine API
//	@version		1.0
//	@description	Items, offers, auctions and purchases of the marketplace.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				apply a signed token with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	engine := bootstrap.MustBuild(context)
	defer engine.MongoClient.Disconnect(context)
	defer engine.RedisPool.Close()

	mmiddleware.SetupCache(engine.HttpCache)

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	authMiddleware := auth_middleware.New(auth, viper.GetStringSlice("admin.users"))

	hc := hc_usecase.New(hc_repo.New(engine.MongoClient, engine.RedisPool))

	hc_delivery.New(e, hc)
	collection_delivery.New(e, engine.CollectionUC, authMiddleware)
	history_delivery.New(e, engine.HistoryUC)
	item_delivery.New(e, engine.ItemUC, authMiddleware)
	offer_delivery.New(e, engine.OfferUC, authMiddleware)
	auction_delivery.New(e, engine.AuctionUC, authMiddleware)
	purchase_delivery.New(e, engine.PurchaseUC, authMiddleware)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	_ = log.Sync()
}
