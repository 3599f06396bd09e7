package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/marketengine/app/internal/bootstrap"
	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/goroutine"
	"github.com/x-xyz/marketengine/base/log"
	purchase_usecase "github.com/x-xyz/marketengine/stores/purchase/usecase"
)

func init() {
	bootstrap.LoadConfig()
}

func main() {
	context, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()

	engine := bootstrap.MustBuild(context)
	defer engine.MongoClient.Disconnect(ctx.Background())
	defer engine.RedisPool.Close()

	// an attempt younger than two ledger confirmations may still be running
	orphanAge := viper.GetDuration("reconciler.orphanAge")
	if floor := 2 * viper.GetDuration("ledger.confirmTimeout"); orphanAge > 0 && orphanAge < floor {
		context.WithField("orphanAge", orphanAge).WithField("floor", floor).Warn("reconciler.orphanAge raised")
		orphanAge = floor
	}

	sweeper := purchase_usecase.NewSweeper(&purchase_usecase.SweeperCfg{
		PurchaseUC: engine.PurchaseUC,
		Notifier:   engine.Notifier,
		MinAge:     viper.GetDuration("reconciler.minAge"),
		OrphanAge:  orphanAge,
		Workers:    viper.GetInt("reconciler.concurrency"),
	})

	interval := viper.GetDuration("reconciler.interval")
	if interval <= 0 {
		interval = time.Minute
	}

	done := goroutine.Supervise(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if _, err := sweeper.Sweep(context); err != nil {
				context.WithField("err", err).Error("sweeper.Sweep failed")
			}

			select {
			case <-context.Done():
				return
			case <-ticker.C:
			}
		}
	}, goroutine.WithName("reconciler"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	cancel()
	<-done
	log.Log().Info("shutdown reconciler successfully")
	_ = log.Sync()
}
