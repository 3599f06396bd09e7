package usecase

import (
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/currency"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/history"
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/domain/offer"
	"github.com/x-xyz/marketengine/domain/purchase"
	"github.com/x-xyz/marketengine/service/locker"
	"github.com/x-xyz/marketengine/service/notifier"
	notifierMocks "github.com/x-xyz/marketengine/service/notifier/mocks"
)

var mockCtx = ctx.Background()

type executorSuite struct {
	suite.Suite

	store    *memStore
	ledger   *fakeLedger
	notifier *notifierMocks.Notifier

	now time.Time
	im  purchase.Usecase
}

func (s *executorSuite) SetupTest() {
	s.store = newMemStore()
	s.ledger = &fakeLedger{}
	s.notifier = notifierMocks.NewNotifier(s.T())

	s.now = time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return s.now }

	s.im = New(&PurchaseUseCaseCfg{
		PendingTransferRepo: &fakeTransferRepo{s: s.store},
		ItemRepo:            &fakeItemRepo{s: s.store},
		ItemUC:              &fakeItemUC{s: s.store},
		OfferRepo:           &fakeOfferRepo{s: s.store},
		AuctionRepo:         &fakeAuctionRepo{s: s.store},
		CollectionUC:        &fakeCollectionUC{s: s.store},
		HistoryUC:           &fakeHistoryUC{s: s.store},
		Locker:              locker.NewLocal(locker.Config{}),
		Transactor:          passthrough{},
		Signer:              fakeSigner{},
		Ledger:              s.ledger,
		Converter:           currency.New(map[domain.Currency]int32{"ETH": 18}),
		Notifier:            s.notifier,
	})

	s.store.items["item-1"] = item.Item{
		Id:           "item-1",
		CollectionId: "col-1",
		TokenId:      "42",
		CurrentOwner: "alice",
		AuthorId:     "alice",
		Status:       item.StatusActive,
		Price:        decimal.RequireFromString("2.50"),
		Currency:     "ETH",
		AcceptOffer:  true,
	}
}

func (s *executorSuite) TearDownTest() {
	timeNow = time.Now
}

func (s *executorSuite) offerRequest(o offer.Offer) purchase.Request {
	return purchase.Request{
		ItemId: o.ItemId,
		Source: purchase.SourceOffer,
		Resolve: func(c ctx.Ctx, it *item.Item) (*purchase.Terms, error) {
			return &purchase.Terms{
				BuyerId:  o.SenderId,
				SellerId: o.ReceiverId,
				Price:    o.Price,
				Currency: o.Currency,
				SourceId: o.Id,
			}, nil
		},
	}
}

func (s *executorSuite) TestAcceptOfferEndToEnd() {
	s.ledger.buyHash = "0xabc"
	o := offer.Offer{Id: "offer-1", ItemId: "item-1", SenderId: "bob", ReceiverId: "alice", Price: decimal.RequireFromString("2.00"), Currency: "ETH"}
	s.store.offers = []offer.Offer{o}

	res, err := s.im.Execute(mockCtx, s.offerRequest(o))
	s.Require().NoError(err)

	s.Equal(domain.TxHash("0xabc"), res.TxHash)
	s.Equal(domain.UserId("bob"), res.BuyerId)
	s.Equal(domain.UserId("alice"), res.SellerId)
	s.True(decimal.RequireFromString("2.00").Equal(res.Price))

	it := s.store.item("item-1")
	s.Equal(domain.UserId("bob"), it.CurrentOwner)
	s.Equal(item.StatusInactive, it.Status)

	s.Require().Len(s.store.histories, 1)
	h := s.store.histories[0]
	s.Equal(history.HistoryTypeTransfer, h.HistoryType)
	s.Equal(domain.UserId("alice"), h.FromId)
	s.Equal(domain.UserId("bob"), h.ToId)
	s.Equal(domain.TxHash("0xabc"), h.TransactionHash)
	s.True(decimal.RequireFromString("2.00").Equal(h.Price))
	s.True(h.IsValid)

	s.Empty(s.store.offers)
	s.True(decimal.RequireFromString("2.00").Equal(s.store.volume["ETH"]))

	s.Require().Len(s.ledger.buys, 1)
	s.Equal(0, s.ledger.buys[0].amount.Cmp(new(big.Int).Mul(big.NewInt(2), big.NewInt(1e18))))
	s.Equal(domain.Address("0xbob"), s.ledger.buys[0].signer)
	s.Equal([]domain.Address{"0xbob"}, s.ledger.approvals)

	pts := s.store.transferList()
	s.Require().Len(pts, 1)
	s.Equal(purchase.StateCompleted, pts[0].State)
	s.Equal(res.PendingTransferId, pts[0].Id)
	s.Equal("offer-1", pts[0].SourceId)
}

func (s *executorSuite) TestOfferSaleSupersedesOffers() {
	for i, sender := range []domain.UserId{"bob", "carol", "dave"} {
		s.store.offers = append(s.store.offers, offer.Offer{
			Id:         string(rune('a' + i)),
			ItemId:     "item-1",
			SenderId:   sender,
			ReceiverId: "alice",
			Price:      decimal.NewFromInt(int64(i + 1)),
			Currency:   "ETH",
		})
	}
	s.store.offers = append(s.store.offers, offer.Offer{Id: "other", ItemId: "item-2", SenderId: "bob", ReceiverId: "alice"})

	_, err := s.im.Execute(mockCtx, s.offerRequest(s.store.offers[1]))
	s.Require().NoError(err)

	s.Require().Len(s.store.offers, 1)
	s.Equal("other", s.store.offers[0].Id)
}

func (s *executorSuite) TestConcurrentPurchasesSellOnce() {
	s.ledger.delay = 5 * time.Millisecond

	buyers := []domain.UserId{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8"}
	errs := make([]error, len(buyers))

	var wg sync.WaitGroup
	for i, b := range buyers {
		wg.Add(1)
		go func(i int, b domain.UserId) {
			defer wg.Done()
			_, errs[i] = s.im.BuyItem(mockCtx, "item-1", b)
		}(i, b)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.Equal(domain.ErrItemNotForSale, err)
	}
	s.Equal(1, succeeded)
	s.Len(s.ledger.buys, 1)
	s.Len(s.store.histories, 1)
	s.Equal(s.store.histories[0].ToId, s.store.item("item-1").CurrentOwner)
}

func (s *executorSuite) TestBuyItemRejected() {
	_, err := s.im.BuyItem(mockCtx, "item-1", "alice")
	s.Equal(domain.ErrForbidden, err)

	_, err = s.im.BuyItem(mockCtx, "missing", "bob")
	s.Equal(domain.ErrNotFound, err)

	_, err = s.im.BuyItem(mockCtx, "item-1", "nowallet")
	s.Equal(domain.ErrNotFound, err)

	start, end := s.now.Add(-time.Hour), s.now.Add(time.Hour)
	it := s.store.items["item-1"]
	it.EnableAuction = true
	it.StartDate = &start
	it.EndDate = &end
	s.store.items["item-1"] = it
	_, err = s.im.BuyItem(mockCtx, "item-1", "bob")
	s.Equal(domain.ErrAuctionActive, err)

	it.Status = item.StatusInactive
	s.store.items["item-1"] = it
	_, err = s.im.BuyItem(mockCtx, "item-1", "bob")
	s.Equal(domain.ErrItemNotForSale, err)

	s.Empty(s.ledger.approvals)
	s.Empty(s.store.transferList())
}

func (s *executorSuite) TestApproveFailure() {
	s.ledger.approveErr = errors.New("nonce too low")

	_, err := s.im.BuyItem(mockCtx, "item-1", "bob")
	var extErr *domain.ExternalError
	s.Require().ErrorAs(err, &extErr)
	s.Equal("Approve", extErr.Op)
	s.Equal(domain.KindExternal, domain.KindOf(err))

	pts := s.store.transferList()
	s.Require().Len(pts, 1)
	s.Equal(purchase.StateFailed, pts[0].State)
	s.Equal("nonce too low", pts[0].LastError)
	s.Equal(domain.UserId("alice"), s.store.item("item-1").CurrentOwner)
	s.Empty(s.store.histories)

	// a failed attempt does not block the next one
	s.ledger.approveErr = nil
	_, err = s.im.BuyItem(mockCtx, "item-1", "bob")
	s.NoError(err)
}

func (s *executorSuite) TestBuyFailureAfterApprove() {
	s.ledger.buyErr = errors.New("insufficient funds")
	s.notifier.On("Alert", mock.Anything, mock.MatchedBy(func(a notifier.Alert) bool {
		return a.Level == notifier.LevelWarn
	})).Return(nil).Once()

	_, err := s.im.BuyItem(mockCtx, "item-1", "bob")
	var extErr *domain.ExternalError
	s.Require().ErrorAs(err, &extErr)
	s.Equal("BuyNFT", extErr.Op)

	pts := s.store.transferList()
	s.Require().Len(pts, 1)
	s.Equal(purchase.StateFailedAfterApprove, pts[0].State)
	s.Equal(domain.TxHash("0xapprove1"), pts[0].ApproveTxHash)

	s.ledger.buyErr = nil
	_, err = s.im.BuyItem(mockCtx, "item-1", "carol")
	s.Equal(domain.ErrTransferInProgress, err)

	resolved, err := s.im.Resolve(mockCtx, pts[0].Id)
	s.Require().NoError(err)
	s.Equal(purchase.StateFailed, resolved.State)

	_, err = s.im.Resolve(mockCtx, pts[0].Id)
	s.Equal(domain.ErrInvalidTransition, err)

	_, err = s.im.BuyItem(mockCtx, "item-1", "carol")
	s.NoError(err)
}

func (s *executorSuite) TestCommitFailureNeedsReconciliation() {
	s.ledger.buyHash = "0xabc"
	s.store.failVolume = 1
	s.notifier.On("Alert", mock.Anything, mock.MatchedBy(func(a notifier.Alert) bool {
		return a.Level == notifier.LevelCritical && a.Fields["txHash"] == domain.TxHash("0xabc")
	})).Return(nil).Once()

	_, err := s.im.BuyItem(mockCtx, "item-1", "bob")
	var recErr *domain.ReconciliationError
	s.Require().ErrorAs(err, &recErr)
	s.Equal(domain.TxHash("0xabc"), recErr.TxHash)
	s.Equal(domain.KindReconciliation, domain.KindOf(err))

	pt, err := (&fakeTransferRepo{s: s.store}).FindOne(mockCtx, recErr.PendingTransferId)
	s.Require().NoError(err)
	s.Equal(purchase.StateLedgerConfirmed, pt.State)

	_, err = s.im.BuyItem(mockCtx, "item-1", "carol")
	s.Equal(domain.ErrTransferInProgress, err)

	res, err := s.im.Reconcile(mockCtx, pt.Id)
	s.Require().NoError(err)
	s.Equal(domain.TxHash("0xabc"), res.TxHash)

	again, err := s.im.Reconcile(mockCtx, pt.Id)
	s.Require().NoError(err)
	s.Equal(res, again)

	s.Len(s.store.histories, 1)
	s.Equal(domain.UserId("bob"), s.store.item("item-1").CurrentOwner)
	s.True(decimal.RequireFromString("2.50").Equal(s.store.volume["ETH"]))
	s.Len(s.ledger.buys, 1)
}

func (s *executorSuite) TestReconcileRequiresLedgerConfirmed() {
	s.store.transfers["pt-1"] = purchase.PendingTransfer{Id: "pt-1", ItemId: "item-1", State: purchase.StateFailedAfterApprove}

	_, err := s.im.Reconcile(mockCtx, "pt-1")
	s.Equal(domain.ErrInvalidTransition, err)

	_, err = s.im.Reconcile(mockCtx, "missing")
	s.Equal(domain.ErrNotFound, err)
}

func (s *executorSuite) TestFailureStateNotRecorded() {
	s.ledger.approveErr = errors.New("nonce too low")
	s.store.failTransitTo = purchase.StateFailed
	s.notifier.On("Alert", mock.Anything, mock.MatchedBy(func(a notifier.Alert) bool {
		return a.Level == notifier.LevelCritical && a.Fields["wanted"] == purchase.StateFailed
	})).Return(nil).Once()

	_, err := s.im.BuyItem(mockCtx, "item-1", "bob")
	s.Equal(domain.KindExternal, domain.KindOf(err))

	pts := s.store.transferList()
	s.Require().Len(pts, 1)
	s.Equal(purchase.StatePending, pts[0].State)

	s.ledger.approveErr = nil
	_, err = s.im.BuyItem(mockCtx, "item-1", "bob")
	s.Equal(domain.ErrTransferInProgress, err)

	s.store.failTransitTo = ""
	resolved, err := s.im.Resolve(mockCtx, pts[0].Id)
	s.Require().NoError(err)
	s.Equal(purchase.StateFailed, resolved.State)

	_, err = s.im.BuyItem(mockCtx, "item-1", "bob")
	s.NoError(err)
}

func (s *executorSuite) TestResolveOrphanedAttempts() {
	weekAgo := s.now.Add(-7 * 24 * time.Hour)
	tests := []struct {
		desc  string
		state purchase.State
		exp   error
	}{
		{"crashed before approve", purchase.StatePending, nil},
		{"crashed between approve and buy", purchase.StateApproved, nil},
		{"failed after approve", purchase.StateFailedAfterApprove, nil},
		{"ledger confirmed needs reconcile", purchase.StateLedgerConfirmed, domain.ErrInvalidTransition},
		{"completed", purchase.StateCompleted, domain.ErrInvalidTransition},
		{"already failed", purchase.StateFailed, domain.ErrInvalidTransition},
	}
	for _, t := range tests {
		s.store.transfers = map[string]purchase.PendingTransfer{
			"pt-1": {Id: "pt-1", ItemId: "item-1", State: t.state, ApproveTxHash: "0xapprove", CreatedAt: weekAgo, UpdatedAt: weekAgo},
		}

		res, err := s.im.Resolve(mockCtx, "pt-1")
		if t.exp != nil {
			s.Equal(t.exp, err, t.desc)
			s.Equal(t.state, s.store.transfers["pt-1"].State, t.desc)
			continue
		}
		s.Require().NoError(err, t.desc)
		s.Equal(purchase.StateFailed, res.State, t.desc)
		s.Equal(purchase.StateFailed, s.store.transfers["pt-1"].State, t.desc)
	}

	_, err := s.im.Resolve(mockCtx, "missing")
	s.Equal(domain.ErrNotFound, err)
}

func (s *executorSuite) TestApprovedAttemptBlocksUntilResolved() {
	weekAgo := s.now.Add(-7 * 24 * time.Hour)
	s.store.transfers["pt-1"] = purchase.PendingTransfer{Id: "pt-1", ItemId: "item-1", State: purchase.StateApproved, CreatedAt: weekAgo, UpdatedAt: weekAgo}

	_, err := s.im.BuyItem(mockCtx, "item-1", "bob")
	s.Equal(domain.ErrTransferInProgress, err)

	_, err = s.im.Reconcile(mockCtx, "pt-1")
	s.Equal(domain.ErrInvalidTransition, err)

	_, err = s.im.Resolve(mockCtx, "pt-1")
	s.Require().NoError(err)

	_, err = s.im.BuyItem(mockCtx, "item-1", "bob")
	s.NoError(err)
}

func (s *executorSuite) TestResolveRejectsTerms() {
	tests := []struct {
		desc  string
		terms *purchase.Terms
		exp   error
	}{
		{"seller is not owner", &purchase.Terms{BuyerId: "bob", SellerId: "carol", Price: decimal.NewFromInt(1)}, domain.ErrForbidden},
		{"self purchase", &purchase.Terms{BuyerId: "alice", SellerId: "alice", Price: decimal.NewFromInt(1)}, domain.ErrForbidden},
		{"zero price", &purchase.Terms{BuyerId: "bob", SellerId: "alice"}, domain.ErrInvalidPrice},
		{"no buyer", &purchase.Terms{SellerId: "alice", Price: decimal.NewFromInt(1)}, domain.ErrBadParamInput},
		{"unknown currency", &purchase.Terms{BuyerId: "bob", SellerId: "alice", Price: decimal.NewFromInt(1), Currency: "DOGE"}, domain.ErrInvalidCurrency},
	}
	for _, t := range tests {
		terms := t.terms
		_, err := s.im.Execute(mockCtx, purchase.Request{
			ItemId: "item-1",
			Source: purchase.SourceDirect,
			Resolve: func(c ctx.Ctx, it *item.Item) (*purchase.Terms, error) {
				return terms, nil
			},
		})
		s.ErrorIs(err, t.exp, t.desc)
	}
	s.Empty(s.store.transferList())
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(executorSuite))
}
