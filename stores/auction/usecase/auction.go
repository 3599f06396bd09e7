package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/currency"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/auction"
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/domain/purchase"
)

var timeNow = time.Now

type impl struct {
	auctionRepo auction.Repo
	itemUC      item.Usecase
	purchaseUC  purchase.Usecase
	converter   currency.Converter
}

type AuctionUseCaseCfg struct {
	AuctionRepo auction.Repo
	ItemUC      item.Usecase
	PurchaseUC  purchase.Usecase
	Converter   currency.Converter
}

func New(cfg *AuctionUseCaseCfg) auction.Usecase {
	return &impl{
		auctionRepo: cfg.AuctionRepo,
		itemUC:      cfg.ItemUC,
		purchaseUC:  cfg.PurchaseUC,
		converter:   cfg.Converter,
	}
}

func (im *impl) FindAll(c ctx.Ctx, opts ...auction.FindAllOptions) ([]*auction.Auction, error) {
	return im.auctionRepo.FindAll(c, opts...)
}

// PlaceBid records a bid inside the item's auction window.
// Every bid must reach the auction reserve, it does not have to beat the current highest bid.
func (im *impl) PlaceBid(c ctx.Ctx, itemId string, senderId domain.UserId, price decimal.Decimal, currency domain.Currency) (*auction.Auction, error) {
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
	case !it.EnableAuction:
		return nil, domain.ErrAuctionNotEnabled
	case it.EndDate == nil || !now.Before(*it.EndDate):
		return nil, domain.ErrAuctionExpired
	case it.StartDate != nil && now.Before(*it.StartDate):
		return nil, domain.ErrBidOutsideWindow
	case price.LessThan(it.AuctionReserve):
		return nil, domain.ErrPriceTooLow
	}

	currency = currency.Normalize()
	if currency == "" {
		currency = it.Currency
	}
	if !im.converter.Supported(currency) {
		return nil, domain.ErrInvalidCurrency
	}

	a := auction.Auction{
		Id:         uuid.NewString(),
		ItemId:     itemId,
		SenderId:   senderId,
		ReceiverId: it.CurrentOwner,
		Price:      price,
		Currency:   currency,
		CreateDate: now,
	}

	if err := im.auctionRepo.Create(c, a); err != nil {
		c.WithField("err", err).WithField("itemId", itemId).Error("auctionRepo.Create failed")
		return nil, err
	}

	return &a, nil
}

func (im *impl) GetHighestBid(c ctx.Ctx, itemId string) ([]*auction.Auction, error) {
	res, err := im.auctionRepo.FindAll(c, auction.WithItemId(itemId), auction.WithSort("price", domain.SortDirDesc))
	if err != nil {
		c.WithField("err", err).WithField("itemId", itemId).Error("auctionRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

// AcceptBid sells the item to the bidder. The bid must lie inside the auction window the item has
// when the item lock is taken, so bids from an earlier window cannot be accepted.
func (im *impl) AcceptBid(c ctx.Ctx, receiverId domain.UserId, id string) (*purchase.Receipt, error) {
	a, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	if a.ReceiverId != receiverId {
		c.WithFields(log.Fields{
			"auctionId":  id,
			"receiverId": a.ReceiverId,
			"caller":     receiverId,
		}).Warn("bid receiver mismatch")
		return nil, domain.ErrForbidden
	}

	return im.purchaseUC.Execute(c, purchase.Request{
		ItemId: a.ItemId,
		Source: purchase.SourceAuction,
		Resolve: func(c ctx.Ctx, it *item.Item) (*purchase.Terms, error) {
			fresh, err := im.auctionRepo.FindOne(c, id)
			if err != nil {
				return nil, err
			}

			if !it.IsOwnedBy(fresh.ReceiverId) || it.CurrentOwner == fresh.SenderId {
				return nil, domain.ErrForbidden
			}

			if !domain.InWindow(fresh.CreateDate, it.StartDate, it.EndDate) {
				return nil, domain.ErrBidOutsideWindow
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
