package usecase

import (
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/purchase"
	"github.com/x-xyz/marketengine/service/notifier"
)

const (
	defaultSweepMinAge  = 5 * time.Minute
	defaultOrphanAge    = 30 * time.Minute
	defaultSweepWorkers = 4
	sweepPageSize       = 100
)

type SweeperCfg struct {
	PurchaseUC purchase.Usecase
	Notifier   notifier.Notifier
	// MinAge leaves transfers alone that an executor may still be committing
	MinAge time.Duration
	// OrphanAge is how long a pending or approved attempt may sit before it counts as abandoned.
	// It must exceed the longest ledger round trip.
	OrphanAge time.Duration
	Workers   int
}

// SweepReport counts the outcome of one sweep
type SweepReport struct {
	Reconciled int
	Failed     int
	// Stuck is the number of failedAfterApprove transfers waiting for an operator
	Stuck int
	// Orphaned is the number of pending or approved attempts whose executor went away
	Orphaned int
}

// Sweeper replays commits of ledger-confirmed transfers and reports the ones that need an operator
type Sweeper struct {
	purchaseUC purchase.Usecase
	notifier   notifier.Notifier
	minAge     time.Duration
	orphanAge  time.Duration
	workers    int
}

func NewSweeper(cfg *SweeperCfg) *Sweeper {
	s := &Sweeper{
		purchaseUC: cfg.PurchaseUC,
		notifier:   cfg.Notifier,
		minAge:     cfg.MinAge,
		orphanAge:  cfg.OrphanAge,
		workers:    cfg.Workers,
	}
	if s.minAge <= 0 {
		s.minAge = defaultSweepMinAge
	}
	if s.orphanAge <= 0 {
		s.orphanAge = defaultOrphanAge
	}
	if s.workers <= 0 {
		s.workers = defaultSweepWorkers
	}
	return s
}

func (s *Sweeper) Sweep(c ctx.Ctx) (SweepReport, error) {
	defer met.BumpTime("sweep.time").End()

	report := SweepReport{}

	confirmed, err := s.purchaseUC.FindAll(c,
		purchase.WithStates(purchase.StateLedgerConfirmed),
		purchase.WithUpdatedBefore(timeNow().Add(-s.minAge)),
		purchase.WithPagination(0, sweepPageSize),
	)
	if err != nil {
		c.WithField("err", err).Error("purchaseUC.FindAll failed")
		return report, err
	}

	if len(confirmed) > 0 {
		b := goroutines.NewBatch(s.workers, goroutines.WithBatchSize(len(confirmed)))
		defer b.Close()

		for _, pt := range confirmed {
			id := pt.Id
			b.Queue(func() (interface{}, error) {
				return s.purchaseUC.Reconcile(c, id)
			})
		}
		b.QueueComplete()

		for ret := range b.Results() {
			if ret.Error() != nil {
				report.Failed++
				continue
			}
			report.Reconciled++
		}
	}

	stuck, err := s.purchaseUC.FindAll(c,
		purchase.WithStates(purchase.StateFailedAfterApprove),
		purchase.WithSort("updatedAt", domain.SortDirAsc),
		purchase.WithPagination(0, sweepPageSize),
	)
	if err != nil {
		c.WithField("err", err).Error("purchaseUC.FindAll failed")
		return report, err
	}
	report.Stuck = len(stuck)

	// an attempt left in pending or approved blocks its item until Resolve closes it
	orphaned, err := s.purchaseUC.FindAll(c,
		purchase.WithStates(purchase.StatePending, purchase.StateApproved),
		purchase.WithUpdatedBefore(timeNow().Add(-s.orphanAge)),
		purchase.WithPagination(0, sweepPageSize),
	)
	if err != nil {
		c.WithField("err", err).Error("purchaseUC.FindAll failed")
		return report, err
	}
	report.Orphaned = len(orphaned)

	met.BumpSum("sweep.reconciled", float64(report.Reconciled))
	met.BumpSum("sweep.failed", float64(report.Failed))
	met.BumpSum("sweep.orphaned", float64(report.Orphaned))

	if report.Failed > 0 || report.Stuck > 0 || report.Orphaned > 0 {
		if err := s.notifier.Alert(c, notifier.Alert{
			Level:   notifier.LevelCritical,
			Title:   "pending transfers need an operator",
			Message: "reconcile failed, purchases stopped after approve or attempts were abandoned",
			Fields: log.Fields{
				"reconcileFailed":    report.Failed,
				"failedAfterApprove": transferIds(stuck),
				"abandoned":          transferIds(orphaned),
			},
		}); err != nil {
			c.WithField("err", err).Warn("notifier.Alert failed")
		}
	}

	c.WithFields(log.Fields{
		"reconciled": report.Reconciled,
		"failed":     report.Failed,
		"stuck":      report.Stuck,
		"orphaned":   report.Orphaned,
	}).Info("sweep done")
	return report, nil
}

func transferIds(pts []*purchase.PendingTransfer) []string {
	ids := make([]string, 0, len(pts))
	for _, pt := range pts {
		ids = append(ids, pt.Id)
	}
	return ids
}
