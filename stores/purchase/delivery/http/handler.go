package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/delivery"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/purchase"
	authMiddleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
)

type handler struct {
	purchase purchase.Usecase
}

func New(e *echo.Echo, purchase purchase.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{purchase}

	e.POST("/item/:itemId/buy", h.buy, authMiddleware.Auth())

	e.GET("/pending-transfers", h.getPendingTransfers, authMiddleware.Auth(), authMiddleware.IsAdmin())

	e.POST("/pending-transfer/:pendingTransferId/reconcile", h.reconcile, authMiddleware.Auth(), authMiddleware.IsAdmin())

	e.POST("/pending-transfer/:pendingTransferId/resolve", h.resolve, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

// buy
//
//	@Summary	Buy an item at its listed price
//	@Tags		purchases
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		itemId	path		string	true	"item id"
//	@Success	200		{object}	purchase.Receipt
//	@Success	202		{object}	delivery.ReconcilingResp
//	@Failure	403
//	@Failure	404
//	@Failure	409
//	@Failure	502
//	@Router		/item/{itemId}/buy [post]
func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	itemId := c.Param("itemId")

	if res, err := h.purchase.BuyItem(ctx, itemId, user); err != nil {
		ctx.WithField("err", err).WithField("itemId", itemId).Warn("purchase.BuyItem failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getPendingTransfers
//
//	@Summary	List purchase attempts, for operators
//	@Tags		purchases
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		state	query		[]string	false	"states"	collectionFormat(multi)
//	@Param		itemId	query		string		false	"item id"
//	@Param		offset	query		int			false	"paging offset"	example(0)
//	@Param		limit	query		int			false	"paging size"	example(50)
//	@Success	200		{array}		purchase.PendingTransfer
//	@Failure	400
//	@Failure	403
//	@Router		/pending-transfers [get]
func (h *handler) getPendingTransfers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		States []purchase.State `query:"state"`
		ItemId string           `query:"itemId"`
		Offset int32            `query:"offset"`
		Limit  int32            `query:"limit"`
	}

	p := &params{Limit: 50}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if p.Offset < 0 || p.Limit <= 0 || p.Limit > 200 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	opts := []purchase.FindAllOptions{
		purchase.WithPagination(p.Offset, p.Limit),
		purchase.WithSort("updatedAt", domain.SortDirDesc),
	}

	if len(p.States) > 0 {
		opts = append(opts, purchase.WithStates(p.States...))
	}

	if p.ItemId != "" {
		opts = append(opts, purchase.WithItemId(p.ItemId))
	}

	if res, err := h.purchase.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// reconcile
//
//	@Summary	Replay the local commit of a ledger-confirmed purchase
//	@Tags		purchases
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		pendingTransferId	path		string	true	"pending transfer id"
//	@Success	200					{object}	purchase.Receipt
//	@Failure	403
//	@Failure	404
//	@Failure	409
//	@Router		/pending-transfer/{pendingTransferId}/reconcile [post]
func (h *handler) reconcile(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id := c.Param("pendingTransferId")

	if res, err := h.purchase.Reconcile(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		ctx.WithField("pendingTransferId", id).WithField("admin", c.Get("user")).Info("pending transfer reconciled by operator")
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// resolve
//
//	@Summary	Close a purchase attempt stuck before ledger confirmation
//	@Tags		purchases
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		pendingTransferId	path		string	true	"pending transfer id"
//	@Success	200					{object}	purchase.PendingTransfer
//	@Failure	403
//	@Failure	404
//	@Failure	409
//	@Router		/pending-transfer/{pendingTransferId}/resolve [post]
func (h *handler) resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id := c.Param("pendingTransferId")

	if res, err := h.purchase.Resolve(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		ctx.WithField("pendingTransferId", id).WithField("admin", c.Get("user")).Info("pending transfer resolved by operator")
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
