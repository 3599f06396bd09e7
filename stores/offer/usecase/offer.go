package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/currency"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/domain/offer"
	"github.com/x-xyz/marketengine/domain/purchase"
)

var timeNow = time.Now

type impl struct {
	offerRepo  offer.Repo
	itemUC     item.Usecase
	purchaseUC purchase.Usecase
	converter  currency.Converter
}

type OfferUseCaseCfg struct {
	OfferRepo  offer.Repo
	ItemUC     item.Usecase
	PurchaseUC purchase.Usecase
	// Converter decides which currencies can be settled
	Converter currency.Converter
}

func New(cfg *OfferUseCaseCfg) offer.Usecase {
	return &impl{
		offerRepo:  cfg.OfferRepo,
		itemUC:     cfg.ItemUC,
		purchaseUC: cfg.PurchaseUC,
		converter:  cfg.Converter,
	}
}

func (im *impl) FindAll(c ctx.Ctx, opts ...offer.FindAllOptions) ([]*offer.Offer, error) {
	return im.offerRepo.FindAll(c, opts...)
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*offer.Offer, error) {
	return im.offerRepo.FindOne(c, id)
}

// CreateOffer records an offer to the current owner. Any positive price is accepted.
func (im *impl) CreateOffer(c ctx.Ctx, itemId string, senderId domain.UserId, price decimal.Decimal, currency domain.Currency) (*offer.Offer, error) {
	if senderId.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}
	if !price.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	it, err := im.itemUC.FindOne(c, itemId)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	switch {
	case it.CurrentOwner == senderId:
		return nil, domain.ErrForbidden
	case it.InAuctionWindow(now):
		return nil, domain.ErrAuctionActive
	case !it.AcceptOffer:
		return nil, domain.ErrOffersDisabled
	}

	currency = currency.Normalize()
	if currency == "" {
		currency = it.Currency
	}
	if !im.converter.Supported(currency) {
		return nil, domain.ErrInvalidCurrency
	}

	o := offer.Offer{
		Id:         uuid.NewString(),
		ItemId:     itemId,
		SenderId:   senderId,
		ReceiverId: it.CurrentOwner,
		Price:      price,
		Currency:   currency,
		CreateDate: now,
	}

	if err := im.offerRepo.Create(c, o); err != nil {
		c.WithField("err", err).WithField("itemId", itemId).Error("offerRepo.Create failed")
		return nil, err
	}

	return &o, nil
}

func (im *impl) RescindOffer(c ctx.Ctx, id string) error {
	if err := im.offerRepo.Remove(c, id); err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).WithField("offerId", id).Error("offerRepo.Remove failed")
		}
		return err
	}
	return nil
}

// AcceptOffer sells the item to the offer's sender. The offer is read again under the item lock,
// so an offer superseded by a concurrent sale fails with domain.ErrNotFound.
func (im *impl) AcceptOffer(c ctx.Ctx, receiverId domain.UserId, id string) (*purchase.Receipt, error) {
	o, err := im.offerRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	if o.ReceiverId != receiverId {
		c.WithFields(log.Fields{
			"offerId":    id,
			"receiverId": o.ReceiverId,
			"caller":     receiverId,
		}).Warn("offer receiver mismatch")
		return nil, domain.ErrForbidden
	}

	return im.purchaseUC.Execute(c, purchase.Request{
		ItemId: o.ItemId,
		Source: purchase.SourceOffer,
		Resolve: func(c ctx.Ctx, it *item.Item) (*purchase.Terms, error) {
			fresh, err := im.offerRepo.FindOne(c, id)
			if err != nil {
				return nil, err
			}

			if !it.IsOwnedBy(fresh.ReceiverId) || it.CurrentOwner == fresh.SenderId {
				return nil, domain.ErrForbidden
			}

			return &purchase.Terms{
				BuyerId:  fresh.SenderId,
				SellerId: fresh.ReceiverId,
				Price:    fresh.Price,
				Currency: fresh.Currency,
				SourceId: fresh.Id,
			}, nil
		},
	})
}
