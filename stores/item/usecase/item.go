package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/log"
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
)

var timeNow = time.Now

type impl struct {
	itemRepo     item.Repo
	offerRepo    offer.Repo
	auctionRepo  auction.Repo
	collectionUC collection.Usecase
	historyUC    history.Usecase
	transferRepo purchase.PendingTransferRepo
	locker       lock.ItemLocker
	tx           domain.Transactor
	signer       wallet.SignerResolver
	ledger       ledger.Service
}

type ItemUseCaseCfg struct {
	ItemRepo     item.Repo
	OfferRepo    offer.Repo
	AuctionRepo  auction.Repo
	CollectionUC collection.Usecase
	HistoryUC    history.Usecase
	Locker       lock.ItemLocker
	Transactor   domain.Transactor
	Signer       wallet.SignerResolver
	Ledger       ledger.Service

	// PendingTransferRepo guards Remove against items with a purchase in flight
	PendingTransferRepo purchase.PendingTransferRepo
}

func New(cfg *ItemUseCaseCfg) item.Usecase {
	return &impl{
		itemRepo:     cfg.ItemRepo,
		offerRepo:    cfg.OfferRepo,
		auctionRepo:  cfg.AuctionRepo,
		collectionUC: cfg.CollectionUC,
		historyUC:    cfg.HistoryUC,
		transferRepo: cfg.PendingTransferRepo,
		locker:       cfg.Locker,
		tx:           cfg.Transactor,
		signer:       cfg.Signer,
		ledger:       cfg.Ledger,
	}
}

func (im *impl) FindAll(c ctx.Ctx, opts ...item.FindAllOptions) ([]*item.Item, error) {
	res, err := im.itemRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("itemRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*item.Item, error) {
	res, err := im.itemRepo.FindOne(c, id)
	if err != nil && err != domain.ErrNotFound {
		c.WithField("err", err).WithField("itemId", id).Error("itemRepo.FindOne failed")
	}
	return res, err
}

// withLock runs fn on fresh item state under the item lock, after every precondition passed
func (im *impl) withLock(c ctx.Ctx, id string, pres []item.Precondition, fn func(c ctx.Ctx, it *item.Item) error) error {
	c = ctx.WithValue(c, "itemId", id)

	unlock, err := im.locker.Lock(c, id)
	if err != nil {
		c.WithField("err", err).Warn("locker.Lock failed")
		return err
	}
	defer unlock()

	it, err := im.itemRepo.FindOne(c, id)
	if err != nil {
		return err
	}

	for _, pre := range pres {
		if err := pre(it); err != nil {
			return err
		}
	}

	return fn(c, it)
}

// mutate is withLock returning the updated item
func (im *impl) mutate(c ctx.Ctx, id string, pres []item.Precondition, fn func(c ctx.Ctx, it *item.Item) error) (*item.Item, error) {
	if err := im.withLock(c, id, pres, fn); err != nil {
		return nil, err
	}
	return im.itemRepo.FindOne(c, id)
}

func (im *impl) PostSale(c ctx.Ctx, id string, payload item.SalePayload, pres ...item.Precondition) (*item.Item, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	return im.mutate(c, id, pres, func(c ctx.Ctx, it *item.Item) error {
		if err := im.itemRepo.Update(c, id, payload.ToPatchable(timeNow())); err != nil {
			c.WithField("err", err).Error("itemRepo.Update failed")
			return err
		}
		return nil
	})
}

func (im *impl) ToggleAcceptOffer(c ctx.Ctx, id string, acceptOffer bool, pres ...item.Precondition) (*item.Item, error) {
	return im.mutate(c, id, pres, func(c ctx.Ctx, it *item.Item) error {
		now := timeNow()
		if err := im.itemRepo.Update(c, id, item.PatchableItem{AcceptOffer: &acceptOffer, UpdatedAt: &now}); err != nil {
			c.WithField("err", err).Error("itemRepo.Update failed")
			return err
		}
		return nil
	})
}

func (im *impl) ClearAuctionWindow(c ctx.Ctx, id string, pres ...item.Precondition) (*item.Item, error) {
	return im.mutate(c, id, pres, func(c ctx.Ctx, it *item.Item) error {
		if err := im.itemRepo.ClearAuctionWindow(c, id); err != nil {
			c.WithField("err", err).Error("itemRepo.ClearAuctionWindow failed")
			return err
		}
		return nil
	})
}

func (im *impl) Transfer(c ctx.Ctx, id string, newOwner domain.UserId) error {
	if newOwner.IsEmpty() {
		return domain.ErrBadParamInput
	}
	if err := im.itemRepo.Transfer(c, id, newOwner); err != nil {
		c.WithField("err", err).WithField("itemId", id).Error("itemRepo.Transfer failed")
		return err
	}
	return nil
}

func (im *impl) Mint(c ctx.Ctx, payload item.MintPayload) (*item.Item, error) {
	if payload.AuthorId.IsEmpty() || payload.CollectionId == "" || payload.TokenUri == "" {
		return nil, domain.ErrBadParamInput
	}
	if payload.RoyaltyBps < 0 || payload.RoyaltyBps > 10000 || payload.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	if payload.Currency.Normalize() == "" {
		return nil, domain.ErrInvalidCurrency
	}
	status := payload.Status
	if status == "" {
		status = item.StatusInactive
	} else if !status.IsValid() {
		return nil, domain.ErrBadParamInput
	}

	if _, err := im.collectionUC.FindOne(c, payload.CollectionId); err != nil {
		return nil, err
	}

	signer, err := im.signer.GetSignature(c, payload.AuthorId)
	if err != nil {
		c.WithField("err", err).WithField("userId", payload.AuthorId).Warn("signer.GetSignature failed")
		return nil, err
	}

	minted, err := im.ledger.Mint(c, signer.Address, payload.TokenUri, payload.RoyaltyBps, signer)
	if err != nil {
		c.WithField("err", err).Error("ledger.Mint failed")
		return nil, &domain.ExternalError{Service: "ledger", Op: "Mint", Err: err}
	}

	now := timeNow()
	it := item.Item{
		Id:                  uuid.NewString(),
		CollectionId:        payload.CollectionId,
		Name:                payload.Name,
		TokenUri:            payload.TokenUri,
		RoyaltyBps:          payload.RoyaltyBps,
		AuthorId:            payload.AuthorId,
		CurrentOwner:        payload.AuthorId,
		Status:              status,
		Price:               payload.Price,
		Currency:            payload.Currency.Normalize(),
		TokenId:             minted.TokenId,
		MintedDate:          &now,
		MintTransactionHash: minted.TxHash,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.itemRepo.Create(c, it); err != nil {
			c.WithField("err", err).Error("itemRepo.Create failed")
			return err
		}

		if err := im.collectionUC.IncreaseItemCount(c, it.CollectionId, 1); err != nil {
			return err
		}

		if _, err := im.historyUC.Append(c, history.History{
			ItemId:          it.Id,
			CollectionId:    it.CollectionId,
			ToId:            it.AuthorId,
			TransactionHash: minted.TxHash,
			Price:           it.Price,
			Currency:        it.Currency,
			HistoryType:     history.HistoryTypeMinted,
			IsValid:         true,
			CreateDate:      now,
		}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// the token exists on-chain without a local item
		c.WithFields(log.Fields{
			"err":      err,
			"tokenId":  minted.TokenId,
			"txHash":   minted.TxHash,
			"authorId": payload.AuthorId,
		}).Error("mint commit failed")
		return nil, err
	}

	im.historyUC.Evict(c, it.Id)
	return &it, nil
}

// Remove deletes the item with its offers and bids. Its history is kept.
// An item with an unresolved purchase is kept, its sale may still have to be recorded.
func (im *impl) Remove(c ctx.Ctx, id string) error {
	return im.withLock(c, id, nil, func(c ctx.Ctx, it *item.Item) error {
		if open, err := purchase.FindUnresolved(c, im.transferRepo, id); err != nil {
			c.WithField("err", err).Error("purchase.FindUnresolved failed")
			return err
		} else if open != nil {
			c.WithField("pendingTransferId", open.Id).WithField("state", open.State).Warn("unresolved transfer blocks removal")
			return domain.ErrTransferInProgress
		}

		return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
			if err := im.itemRepo.Remove(c, id); err != nil {
				c.WithField("err", err).Error("itemRepo.Remove failed")
				return err
			}

			if _, err := im.offerRepo.RemoveAll(c, offer.WithItemId(id)); err != nil {
				c.WithField("err", err).Error("offerRepo.RemoveAll failed")
				return err
			}

			if _, err := im.auctionRepo.RemoveAll(c, auction.WithItemId(id)); err != nil {
				c.WithField("err", err).Error("auctionRepo.RemoveAll failed")
				return err
			}

			return im.collectionUC.IncreaseItemCount(c, it.CollectionId, -1)
		})
	})
}
