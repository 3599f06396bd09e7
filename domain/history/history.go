package history

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
)

type HistoryType string

const (
	HistoryTypeMinted   HistoryType = "minted"
	HistoryTypeCreated  HistoryType = "created"
	HistoryTypeBid      HistoryType = "bid"
	HistoryTypeTransfer HistoryType = "transfer"
)

// History is an append-only audit record
type History struct {
	Id              string          `json:"historyId" bson:"_id"`
	ItemId          string          `json:"itemId" bson:"itemId"`
	CollectionId    string          `json:"collectionId" bson:"collectionId"`
	FromId          domain.UserId   `json:"fromId" bson:"fromId"`
	ToId            domain.UserId   `json:"toId" bson:"toId"`
	TransactionHash domain.TxHash   `json:"transactionHash" bson:"transactionHash"`
	Price           decimal.Decimal `json:"price" bson:"price"`
	Currency        domain.Currency `json:"currency" bson:"currency"`
	HistoryType     HistoryType     `json:"historyType" bson:"historyType"`
	IsValid         bool            `json:"isValid" bson:"isValid"`
	CreateDate      time.Time       `json:"createDate" bson:"createDate"`
}

func (h History) Validate() error {
	switch h.HistoryType {
	case HistoryTypeTransfer:
		if h.ItemId == "" || h.TransactionHash.IsEmpty() || h.ToId.IsEmpty() {
			return domain.ErrBadParamInput
		}
	case HistoryTypeMinted:
		if h.ItemId == "" || h.ToId.IsEmpty() {
			return domain.ErrBadParamInput
		}
	case HistoryTypeCreated:
		if h.CollectionId == "" {
			return domain.ErrBadParamInput
		}
	case HistoryTypeBid:
	default:
		return domain.ErrBadParamInput
	}
	return nil
}

type findAllOptions struct {
	SortBy          *string
	SortDir         *domain.SortDir
	Offset          *int32
	Limit           *int32
	ItemId          *string
	CollectionId    *string
	HistoryType     *HistoryType
	TransactionHash *domain.TxHash
	Account         *domain.UserId
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithItemId(itemId string) FindAllOptions {
	return func(options *findAllOptions) error {
		options.ItemId = &itemId
		return nil
	}
}

func WithCollectionId(collectionId string) FindAllOptions {
	return func(options *findAllOptions) error {
		options.CollectionId = &collectionId
		return nil
	}
}

func WithHistoryType(t HistoryType) FindAllOptions {
	return func(options *findAllOptions) error {
		options.HistoryType = &t
		return nil
	}
}

func WithTransactionHash(hash domain.TxHash) FindAllOptions {
	return func(options *findAllOptions) error {
		options.TransactionHash = &hash
		return nil
	}
}

// WithAccount matches records where the user is either side
func WithAccount(u domain.UserId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Account = &u
		return nil
	}
}

// Repo is insert and read only
type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*History, error)
	Count(c ctx.Ctx, opts ...FindAllOptions) (int, error)
	Create(c ctx.Ctx, h History) error
}

type Usecase interface {
	// Append validates, stamps and inserts a record
	Append(c ctx.Ctx, h History) (*History, error)
	QueryByItem(c ctx.Ctx, itemId string) ([]*History, error)
	QueryAll(c ctx.Ctx, opts ...FindAllOptions) ([]*History, error)
	// Evict drops the cached history of an item
	Evict(c ctx.Ctx, itemId string)
}
