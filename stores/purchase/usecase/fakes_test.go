package usecase

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/auction"
	"github.com/x-xyz/marketengine/domain/collection"
	"github.com/x-xyz/marketengine/domain/history"
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/domain/ledger"
	"github.com/x-xyz/marketengine/domain/offer"
	"github.com/x-xyz/marketengine/domain/purchase"
	"github.com/x-xyz/marketengine/domain/wallet"
)

// memStore backs the in-memory fakes below. Each fake embeds the interface it stands in for,
// so only the methods the executor calls are implemented.
type memStore struct {
	mu        sync.Mutex
	items     map[string]item.Item
	transfers map[string]purchase.PendingTransfer
	offers    []offer.Offer
	bids      []auction.Auction
	histories []history.History
	volume    map[domain.Currency]decimal.Decimal

	failVolume int
	// failTransitTo makes updates into this state fail
	failTransitTo purchase.State
}

func newMemStore() *memStore {
	return &memStore{
		items:     map[string]item.Item{},
		transfers: map[string]purchase.PendingTransfer{},
		volume:    map[domain.Currency]decimal.Decimal{},
	}
}

func (s *memStore) item(id string) item.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id]
}

func (s *memStore) transferList() []purchase.PendingTransfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []purchase.PendingTransfer{}
	for _, pt := range s.transfers {
		res = append(res, pt)
	}
	return res
}

type passthrough struct{}

func (passthrough) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	return run(c)
}

type fakeItemRepo struct {
	item.Repo
	s *memStore
}

func (f *fakeItemRepo) FindOne(c ctx.Ctx, id string) (*item.Item, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	it, ok := f.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

type fakeItemUC struct {
	item.Usecase
	s *memStore
}

func (f *fakeItemUC) Transfer(c ctx.Ctx, id string, newOwner domain.UserId) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	it, ok := f.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentOwner = newOwner
	it.EnableAuction = false
	it.Status = item.StatusInactive
	f.s.items[id] = it
	return nil
}

type fakeTransferRepo struct {
	purchase.PendingTransferRepo
	s *memStore
}

func (f *fakeTransferRepo) FindAll(c ctx.Ctx, optFns ...purchase.FindAllOptions) ([]*purchase.PendingTransfer, error) {
	opts, err := purchase.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	res := []*purchase.PendingTransfer{}
	for _, pt := range f.s.transfers {
		if opts.ItemId != nil && pt.ItemId != *opts.ItemId {
			continue
		}
		if len(opts.States) > 0 && !hasState(opts.States, pt.State) {
			continue
		}
		pt := pt
		res = append(res, &pt)
	}
	return res, nil
}

func hasState(states []purchase.State, s purchase.State) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}

func (f *fakeTransferRepo) FindOne(c ctx.Ctx, id string) (*purchase.PendingTransfer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	pt, ok := f.s.transfers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pt, nil
}

func (f *fakeTransferRepo) Create(c ctx.Ctx, pt purchase.PendingTransfer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.transfers[pt.Id]; ok {
		return domain.ErrConflict
	}
	f.s.transfers[pt.Id] = pt
	return nil
}

func (f *fakeTransferRepo) Update(c ctx.Ctx, id string, from purchase.State, patch purchase.PatchablePendingTransfer) error {
	if patch.State != "" && !purchase.CanTransit(from, patch.State) {
		return domain.ErrInvalidTransition
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if patch.State != "" && patch.State == f.s.failTransitTo {
		return fmt.Errorf("server selection timeout")
	}
	pt, ok := f.s.transfers[id]
	if !ok {
		return domain.ErrNotFound
	}
	if pt.State != from {
		return domain.ErrInvalidTransition
	}
	if patch.State != "" {
		pt.State = patch.State
	}
	if patch.ApproveTxHash != "" {
		pt.ApproveTxHash = patch.ApproveTxHash
	}
	if patch.BuyTxHash != "" {
		pt.BuyTxHash = patch.BuyTxHash
	}
	if patch.LastError != "" {
		pt.LastError = patch.LastError
	}
	if !patch.UpdatedAt.IsZero() {
		pt.UpdatedAt = patch.UpdatedAt
	}
	f.s.transfers[id] = pt
	return nil
}

type fakeOfferRepo struct {
	offer.Repo
	s *memStore
}

func (f *fakeOfferRepo) RemoveAll(c ctx.Ctx, optFns ...offer.FindAllOptions) (int64, error) {
	opts, err := offer.GetFindAllOptions(optFns...)
	if err != nil {
		return 0, err
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	kept := []offer.Offer{}
	for _, o := range f.s.offers {
		if (opts.ItemId == nil || o.ItemId == *opts.ItemId) && (opts.ReceiverId == nil || o.ReceiverId == *opts.ReceiverId) {
			continue
		}
		kept = append(kept, o)
	}
	n := int64(len(f.s.offers) - len(kept))
	f.s.offers = kept
	return n, nil
}

type fakeAuctionRepo struct {
	auction.Repo
	s *memStore
}

func (f *fakeAuctionRepo) RemoveAll(c ctx.Ctx, optFns ...auction.FindAllOptions) (int64, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return 0, err
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	kept := []auction.Auction{}
	for _, a := range f.s.bids {
		if opts.ItemId == nil || a.ItemId == *opts.ItemId {
			continue
		}
		kept = append(kept, a)
	}
	n := int64(len(f.s.bids) - len(kept))
	f.s.bids = kept
	return n, nil
}

type fakeHistoryUC struct {
	history.Usecase
	s *memStore
}

func (f *fakeHistoryUC) Append(c ctx.Ctx, h history.History) (*history.History, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.histories {
		if existing.HistoryType == history.HistoryTypeTransfer && existing.TransactionHash == h.TransactionHash {
			return nil, domain.ErrConflict
		}
	}
	h.Id = fmt.Sprintf("history-%d", len(f.s.histories)+1)
	f.s.histories = append(f.s.histories, h)
	return &h, nil
}

func (f *fakeHistoryUC) QueryAll(c ctx.Ctx, optFns ...history.FindAllOptions) ([]*history.History, error) {
	opts, err := history.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	res := []*history.History{}
	for _, h := range f.s.histories {
		if opts.TransactionHash != nil && h.TransactionHash != *opts.TransactionHash {
			continue
		}
		if opts.HistoryType != nil && h.HistoryType != *opts.HistoryType {
			continue
		}
		h := h
		res = append(res, &h)
	}
	return res, nil
}

func (f *fakeHistoryUC) Evict(c ctx.Ctx, itemId string) {}

type fakeCollectionUC struct {
	collection.Usecase
	s *memStore
}

func (f *fakeCollectionUC) AddVolume(c ctx.Ctx, id string, currency domain.Currency, amount decimal.Decimal) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failVolume > 0 {
		f.s.failVolume--
		return fmt.Errorf("write conflict")
	}
	f.s.volume[currency] = f.s.volume[currency].Add(amount)
	return nil
}

type fakeSigner struct{}

func (fakeSigner) GetSignature(c ctx.Ctx, userId domain.UserId) (*wallet.Signer, error) {
	if userId == "nowallet" {
		return nil, domain.ErrNotFound
	}
	return &wallet.Signer{Address: domain.Address("0x" + string(userId))}, nil
}

type buyCall struct {
	tokenId domain.TokenId
	amount  *big.Int
	signer  domain.Address
}

type fakeLedger struct {
	mu         sync.Mutex
	approveErr error
	buyErr     error
	buyHash    domain.TxHash
	delay      time.Duration

	approvals []domain.Address
	buys      []buyCall
}

func (f *fakeLedger) Approve(c ctx.Ctx, tokenId domain.TokenId, to domain.Address, signer *wallet.Signer) (domain.TxHash, error) {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.approveErr != nil {
		return "", f.approveErr
	}
	f.approvals = append(f.approvals, to)
	return domain.TxHash(fmt.Sprintf("0xapprove%d", len(f.approvals))), nil
}

func (f *fakeLedger) BuyNFT(c ctx.Ctx, tokenId domain.TokenId, amount *big.Int, signer *wallet.Signer) (domain.TxHash, error) {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.buyErr != nil {
		return "", f.buyErr
	}
	f.buys = append(f.buys, buyCall{tokenId: tokenId, amount: amount, signer: signer.Address})
	if f.buyHash != "" {
		return f.buyHash, nil
	}
	return domain.TxHash(fmt.Sprintf("0xbuy%d", len(f.buys))), nil
}

func (f *fakeLedger) Mint(c ctx.Ctx, to domain.Address, tokenUri string, royaltyBps int, signer *wallet.Signer) (*ledger.MintResult, error) {
	return nil, fmt.Errorf("not supported")
}
