package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/currency"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/base/metrics"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/auction"
	"github.com/x-xyz/marketengine/domain/collection"
	"github.com/x-xyz/marketengine/domain/history"
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/domain/ledger"
	"github.com/x-xyz/marketengine/domain/lock"
	"github.com/x-xyz/marketengine/domain/offer"
	"github.com/x-xyz/marketengine/domain/purchase"
	"github.com/x-xyz/marketengine/domain/wallet"
	"github.com/x-xyz/marketengine/service/notifier"
)

var (
	timeNow = time.Now
	met     = metrics.New("purchase")
)

type impl struct {
	transferRepo purchase.PendingTransferRepo
	itemRepo     item.Repo
	itemUC       item.Usecase
	offerRepo    offer.Repo
	auctionRepo  auction.Repo
	collectionUC collection.Usecase
	historyUC    history.Usecase
	locker       lock.ItemLocker
	tx           domain.Transactor
	signer       wallet.SignerResolver
	ledger       ledger.Service
	converter    currency.Converter
	notifier     notifier.Notifier
}

type PurchaseUseCaseCfg struct {
	PendingTransferRepo purchase.PendingTransferRepo
	ItemRepo            item.Repo
	ItemUC              item.Usecase
	OfferRepo           offer.Repo
	AuctionRepo         auction.Repo
	CollectionUC        collection.Usecase
	HistoryUC           history.Usecase
	Locker              lock.ItemLocker
	Transactor          domain.Transactor
	Signer              wallet.SignerResolver
	Ledger              ledger.Service
	Converter           currency.Converter
	Notifier            notifier.Notifier
}

func New(cfg *PurchaseUseCaseCfg) purchase.Usecase {
	return &impl{
		transferRepo: cfg.PendingTransferRepo,
		itemRepo:     cfg.ItemRepo,
		itemUC:       cfg.ItemUC,
		offerRepo:    cfg.OfferRepo,
		auctionRepo:  cfg.AuctionRepo,
		collectionUC: cfg.CollectionUC,
		historyUC:    cfg.HistoryUC,
		locker:       cfg.Locker,
		tx:           cfg.Transactor,
		signer:       cfg.Signer,
		ledger:       cfg.Ledger,
		converter:    cfg.Converter,
		notifier:     cfg.Notifier,
	}
}

func (im *impl) FindAll(c ctx.Ctx, opts ...purchase.FindAllOptions) ([]*purchase.PendingTransfer, error) {
	res, err := im.transferRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("transferRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Execute(c ctx.Ctx, req purchase.Request) (*purchase.Receipt, error) {
	if req.ItemId == "" || req.Resolve == nil {
		return nil, domain.ErrBadParamInput
	}

	c = ctx.WithLogFields(c, log.Fields{"itemId": req.ItemId, "source": req.Source})

	unlock, err := im.locker.Lock(c, req.ItemId)
	if err != nil {
		c.WithField("err", err).Warn("locker.Lock failed")
		return nil, err
	}
	defer unlock()

	// once the lock is held the purchase runs to the end even if the caller goes away
	c = ctx.Detach(c)
	defer met.BumpTime("execute.time", "source", string(req.Source)).End()

	it, err := im.itemRepo.FindOne(c, req.ItemId)
	if err != nil {
		return nil, err
	}

	if open, err := purchase.FindUnresolved(c, im.transferRepo, it.Id); err != nil {
		c.WithField("err", err).Error("purchase.FindUnresolved failed")
		return nil, err
	} else if open != nil {
		c.WithField("pendingTransferId", open.Id).WithField("state", open.State).Warn("unresolved transfer blocks purchase")
		return nil, domain.ErrTransferInProgress
	}

	terms, err := req.Resolve(c, it)
	if err != nil {
		return nil, err
	}
	if err := im.checkTerms(it, terms); err != nil {
		return nil, err
	}

	buyer, err := im.signer.GetSignature(c, terms.BuyerId)
	if err != nil {
		c.WithField("err", err).WithField("userId", terms.BuyerId).Warn("signer.GetSignature failed")
		return nil, err
	}

	seller, err := im.signer.GetSignature(c, terms.SellerId)
	if err != nil {
		c.WithField("err", err).WithField("userId", terms.SellerId).Warn("signer.GetSignature failed")
		return nil, err
	}

	amount, err := im.converter.ToBaseUnits(terms.Currency, terms.Price)
	if err != nil {
		c.WithField("err", err).WithField("currency", terms.Currency).Warn("converter.ToBaseUnits failed")
		return nil, err
	}

	now := timeNow()
	pt := &purchase.PendingTransfer{
		Id:           uuid.NewString(),
		ItemId:       it.Id,
		CollectionId: it.CollectionId,
		TokenId:      it.TokenId,
		BuyerId:      terms.BuyerId,
		SellerId:     terms.SellerId,
		Price:        terms.Price,
		Currency:     terms.Currency,
		Source:       req.Source,
		SourceId:     terms.SourceId,
		State:        purchase.StatePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := im.transferRepo.Create(c, *pt); err != nil {
		c.WithField("err", err).Error("transferRepo.Create failed")
		return nil, err
	}
	c = ctx.WithLogFields(c, log.Fields{"pendingTransferId": pt.Id})

	approveHash, err := im.ledger.Approve(c, it.TokenId, buyer.Address, seller)
	if err != nil {
		met.BumpSum("approve.err", 1)
		c.WithField("err", err).Error("ledger.Approve failed")
		im.settle(c, pt, purchase.StateFailed, err)
		return nil, &domain.ExternalError{Service: "ledger", Op: "Approve", Err: err}
	}
	if err := im.moveTo(c, pt, purchase.StateApproved, purchase.PatchablePendingTransfer{ApproveTxHash: approveHash}); err != nil {
		pt.ApproveTxHash = approveHash
		im.stuck(c, pt, purchase.StateApproved, err)
		return nil, err
	}

	buyHash, err := im.ledger.BuyNFT(c, it.TokenId, amount, buyer)
	if err != nil {
		met.BumpSum("buy.err", 1)
		c.WithField("err", err).WithField("approveTxHash", approveHash).Error("ledger.BuyNFT failed")
		im.settle(c, pt, purchase.StateFailedAfterApprove, err)
		im.alert(c, notifier.Alert{
			Level:   notifier.LevelWarn,
			Title:   "purchase failed after approve",
			Message: err.Error(),
			Fields:  transferFields(pt),
		})
		return nil, &domain.ExternalError{Service: "ledger", Op: "BuyNFT", Err: err}
	}
	if err := im.moveTo(c, pt, purchase.StateLedgerConfirmed, purchase.PatchablePendingTransfer{BuyTxHash: buyHash}); err != nil {
		pt.BuyTxHash = buyHash
		return nil, im.reconciliationNeeded(c, pt, err)
	}

	if err := im.commit(c, pt, false); err != nil {
		return nil, im.reconciliationNeeded(c, pt, err)
	}

	met.BumpSum("execute.ok", 1, "source", string(req.Source))
	return pt.ToReceipt(), nil
}

func (im *impl) checkTerms(it *item.Item, terms *purchase.Terms) error {
	if terms == nil || terms.BuyerId.IsEmpty() || terms.SellerId.IsEmpty() {
		return domain.ErrBadParamInput
	}
	if !it.IsOwnedBy(terms.SellerId) || terms.BuyerId == terms.SellerId {
		return domain.ErrForbidden
	}
	if !terms.Price.IsPositive() {
		return domain.ErrInvalidPrice
	}
	terms.Currency = terms.Currency.Normalize()
	if terms.Currency == "" {
		terms.Currency = it.Currency
	}
	return nil
}

func (im *impl) BuyItem(c ctx.Ctx, itemId string, buyerId domain.UserId) (*purchase.Receipt, error) {
	if buyerId.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}

	return im.Execute(c, purchase.Request{
		ItemId: itemId,
		Source: purchase.SourceDirect,
		Resolve: func(c ctx.Ctx, it *item.Item) (*purchase.Terms, error) {
			switch {
			case it.CurrentOwner == buyerId:
				return nil, domain.ErrForbidden
			case it.Status != item.StatusActive || !it.Price.IsPositive():
				return nil, domain.ErrItemNotForSale
			case it.InAuctionWindow(timeNow()):
				return nil, domain.ErrAuctionActive
			}

			return &purchase.Terms{
				BuyerId:  buyerId,
				SellerId: it.CurrentOwner,
				Price:    it.Price,
				Currency: it.Currency,
			}, nil
		},
	})
}

// commit records a ledger-confirmed transfer locally in one transaction.
// When replaying, a transfer row already written for the buy transaction is kept.
func (im *impl) commit(c ctx.Ctx, pt *purchase.PendingTransfer, replay bool) error {
	recorded := false
	if replay {
		res, err := im.historyUC.QueryAll(c, history.WithTransactionHash(pt.BuyTxHash), history.WithHistoryType(history.HistoryTypeTransfer))
		if err != nil {
			return err
		}
		recorded = len(res) > 0
	}

	now := timeNow()
	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.itemUC.Transfer(c, pt.ItemId, pt.BuyerId); err != nil {
			return err
		}

		if !recorded {
			if _, err := im.historyUC.Append(c, history.History{
				ItemId:          pt.ItemId,
				CollectionId:    pt.CollectionId,
				FromId:          pt.SellerId,
				ToId:            pt.BuyerId,
				TransactionHash: pt.BuyTxHash,
				Price:           pt.Price,
				Currency:        pt.Currency,
				HistoryType:     history.HistoryTypeTransfer,
				IsValid:         true,
				CreateDate:      now,
			}); err != nil {
				return err
			}
		}

		if err := im.supersede(c, pt); err != nil {
			return err
		}

		if err := im.collectionUC.AddVolume(c, pt.CollectionId, pt.Currency, pt.Price); err != nil {
			return err
		}

		return im.transferRepo.Update(c, pt.Id, purchase.StateLedgerConfirmed, purchase.PatchablePendingTransfer{
			State:     purchase.StateCompleted,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	pt.State = purchase.StateCompleted
	pt.UpdatedAt = now
	im.historyUC.Evict(c, pt.ItemId)
	return nil
}

// supersede drops the candidates the sale makes stale
func (im *impl) supersede(c ctx.Ctx, pt *purchase.PendingTransfer) error {
	switch pt.Source {
	case purchase.SourceOffer:
		n, err := im.offerRepo.RemoveAll(c, offer.WithItemId(pt.ItemId), offer.WithReceiverId(pt.SellerId))
		if err != nil {
			c.WithField("err", err).Error("offerRepo.RemoveAll failed")
			return err
		}
		c.WithField("removed", n).Info("offers superseded")
	case purchase.SourceAuction:
		n, err := im.auctionRepo.RemoveAll(c, auction.WithItemId(pt.ItemId))
		if err != nil {
			c.WithField("err", err).Error("auctionRepo.RemoveAll failed")
			return err
		}
		c.WithField("removed", n).Info("bids superseded")
	}
	return nil
}

// moveTo persists the next state of pt and mirrors it in memory
func (im *impl) moveTo(c ctx.Ctx, pt *purchase.PendingTransfer, to purchase.State, patch purchase.PatchablePendingTransfer) error {
	now := timeNow()
	patch.State = to
	patch.UpdatedAt = now

	if err := im.transferRepo.Update(c, pt.Id, pt.State, patch); err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"from": pt.State,
			"to":   to,
		}).Error("transferRepo.Update failed")
		return err
	}

	pt.State = to
	pt.UpdatedAt = now
	if patch.ApproveTxHash != "" {
		pt.ApproveTxHash = patch.ApproveTxHash
	}
	if patch.BuyTxHash != "" {
		pt.BuyTxHash = patch.BuyTxHash
	}
	if patch.LastError != "" {
		pt.LastError = patch.LastError
	}
	return nil
}

// settle records the failure state of an attempt
func (im *impl) settle(c ctx.Ctx, pt *purchase.PendingTransfer, to purchase.State, cause error) {
	if err := im.moveTo(c, pt, to, purchase.PatchablePendingTransfer{LastError: cause.Error()}); err != nil {
		im.stuck(c, pt, to, err)
	}
}

// stuck reports a record that could not leave its state. It blocks the item until an operator resolves it.
func (im *impl) stuck(c ctx.Ctx, pt *purchase.PendingTransfer, to purchase.State, err error) {
	met.BumpSum("transition.err", 1)

	fields := transferFields(pt)
	fields["state"] = pt.State
	fields["wanted"] = to
	im.alert(c, notifier.Alert{
		Level:   notifier.LevelCritical,
		Title:   "pending transfer stuck",
		Message: err.Error(),
		Fields:  fields,
	})
}

func (im *impl) reconciliationNeeded(c ctx.Ctx, pt *purchase.PendingTransfer, err error) error {
	met.BumpSum("reconcile.needed", 1)

	fields := transferFields(pt)
	fields["err"] = err
	c.WithFields(fields).Error("purchase commit failed, reconciliation needed")

	im.alert(c, notifier.Alert{
		Level:   notifier.LevelCritical,
		Title:   "reconciliation needed",
		Message: err.Error(),
		Fields:  transferFields(pt),
	})

	return &domain.ReconciliationError{
		PendingTransferId: pt.Id,
		ItemId:            pt.ItemId,
		TxHash:            pt.BuyTxHash,
		BuyerId:           pt.BuyerId,
		SellerId:          pt.SellerId,
		Price:             pt.Price,
		Currency:          pt.Currency,
		Err:               err,
	}
}

func (im *impl) alert(c ctx.Ctx, a notifier.Alert) {
	if err := im.notifier.Alert(c, a); err != nil {
		c.WithField("err", err).WithField("title", a.Title).Warn("notifier.Alert failed")
	}
}

func transferFields(pt *purchase.PendingTransfer) log.Fields {
	return log.Fields{
		"pendingTransferId": pt.Id,
		"itemId":            pt.ItemId,
		"tokenId":           pt.TokenId,
		"buyerId":           pt.BuyerId,
		"sellerId":          pt.SellerId,
		"price":             pt.Price.String(),
		"currency":          pt.Currency,
		"approveTxHash":     pt.ApproveTxHash,
		"txHash":            pt.BuyTxHash,
	}
}

// Reconcile replays the local commit of a ledgerConfirmed transfer. A completed transfer is returned as is.
func (im *impl) Reconcile(c ctx.Ctx, id string) (*purchase.Receipt, error) {
	pt, err := im.transferRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	c = ctx.WithLogFields(c, log.Fields{"itemId": pt.ItemId, "pendingTransferId": id})

	unlock, err := im.locker.Lock(c, pt.ItemId)
	if err != nil {
		c.WithField("err", err).Warn("locker.Lock failed")
		return nil, err
	}
	defer unlock()
	c = ctx.Detach(c)

	if pt, err = im.transferRepo.FindOne(c, id); err != nil {
		return nil, err
	}

	switch pt.State {
	case purchase.StateCompleted:
		return pt.ToReceipt(), nil
	case purchase.StateLedgerConfirmed:
	default:
		return nil, domain.ErrInvalidTransition
	}

	if err := im.commit(c, pt, true); err != nil {
		met.BumpSum("reconcile.err", 1)
		c.WithField("err", err).Error("reconcile commit failed")
		return nil, err
	}

	met.BumpSum("reconcile.ok", 1)
	c.WithField("txHash", pt.BuyTxHash).Info("pending transfer reconciled")
	return pt.ToReceipt(), nil
}

// Resolve closes an attempt that never reached ledgerConfirmed, which unblocks purchases of the item.
// It runs under the item lock, so no executor is working on the record. An approval stays on the ledger.
func (im *impl) Resolve(c ctx.Ctx, id string) (*purchase.PendingTransfer, error) {
	pt, err := im.transferRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	c = ctx.WithLogFields(c, log.Fields{"itemId": pt.ItemId, "pendingTransferId": id})

	unlock, err := im.locker.Lock(c, pt.ItemId)
	if err != nil {
		c.WithField("err", err).Warn("locker.Lock failed")
		return nil, err
	}
	defer unlock()
	c = ctx.Detach(c)

	if pt, err = im.transferRepo.FindOne(c, id); err != nil {
		return nil, err
	}

	path, ok := resolvePaths[pt.State]
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	from := pt.State
	for _, to := range path {
		if err := im.moveTo(c, pt, to, purchase.PatchablePendingTransfer{}); err != nil {
			return nil, err
		}
	}

	met.BumpSum("resolve.ok", 1, "from", string(from))
	c.WithFields(log.Fields{
		"from":          from,
		"approveTxHash": pt.ApproveTxHash,
	}).Warn("pending transfer resolved by operator")
	return pt, nil
}

// resolvePaths walks each closable state to failed
var resolvePaths = map[purchase.State][]purchase.State{
	purchase.StatePending:            {purchase.StateFailed},
	purchase.StateApproved:           {purchase.StateFailedAfterApprove, purchase.StateFailed},
	purchase.StateFailedAfterApprove: {purchase.StateFailed},
}
