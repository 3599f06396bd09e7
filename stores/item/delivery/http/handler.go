package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/delivery"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/middleware"
	authMiddleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
)

type handler struct {
	item item.Usecase
}

func New(e *echo.Echo, item item.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{item}

	e.POST("/items", h.mint, authMiddleware.Auth())

	e.GET("/items", h.getAll, middleware.CacheHttp(5*time.Second))

	g := e.Group("/item/:itemId")

	g.GET("", h.get)

	g.DELETE("", h.remove, authMiddleware.Auth(), authMiddleware.IsAdmin())

	g.PUT("/sale", h.postSale, authMiddleware.Auth())

	g.PUT("/accept-offer", h.toggleAcceptOffer, authMiddleware.Auth())

	g.DELETE("/auction", h.clearAuctionWindow, authMiddleware.Auth())
}

// mint
//
//	@Summary	Mint an item into a collection, owned by the caller
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		body	body		item.MintPayload	true	"item"
//	@Success	201		{object}	item.Item
//	@Failure	400
//	@Failure	404
//	@Failure	502
//	@Router		/items [post]
func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	payload := item.MintPayload{}
	if err := c.Bind(&payload); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(&payload); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	payload.AuthorId = user

	if res, err := h.item.Mint(ctx, payload); err != nil {
		ctx.WithField("err", err).Error("item.Mint failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

// getAll
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Param		owner			query		string	false	"current owner"
//	@Param		authorId		query		string	false	"author"
//	@Param		collectionId	query		string	false	"collection id"
//	@Param		status			query		string	false	"status"	enums(active, inactive)
//	@Param		offset			query		int		false	"paging offset"	example(0)
//	@Param		limit			query		int		false	"paging size"	example(50)
//	@Success	200				{array}		item.Item
//	@Failure	400
//	@Router		/items [get]
func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner        domain.UserId `query:"owner"`
		AuthorId     domain.UserId `query:"authorId"`
		CollectionId string        `query:"collectionId"`
		Status       item.Status   `query:"status"`
		Offset       int32         `query:"offset"`
		Limit        int32         `query:"limit"`
	}

	p := &params{Limit: 50}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if p.Offset < 0 || p.Limit <= 0 || p.Limit > 200 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	opts := []item.FindAllOptions{
		item.WithPagination(p.Offset, p.Limit),
	}

	if !p.Owner.IsEmpty() {
		opts = append(opts, item.WithOwner(p.Owner))
	}

	if !p.AuthorId.IsEmpty() {
		opts = append(opts, item.WithAuthorId(p.AuthorId))
	}

	if p.CollectionId != "" {
		opts = append(opts, item.WithCollectionId(p.CollectionId))
	}

	if p.Status != "" {
		opts = append(opts, item.WithStatus(p.Status))
	}

	if res, err := h.item.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// get
//
//	@Summary	Get an item
//	@Tags		items
//	@Produce	json
//	@Param		itemId	path		string	true	"item id"
//	@Success	200		{object}	item.Item
//	@Failure	404
//	@Router		/item/{itemId} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.item.FindOne(ctx, c.Param("itemId")); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// remove
//
//	@Summary	Remove an item with its offers and bids
//	@Tags		items
//	@Security	ApiKeyAuth
//	@Param		itemId	path	string	true	"item id"
//	@Success	200
//	@Failure	403
//	@Failure	404
//	@Router		/item/{itemId} [delete]
func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	itemId := c.Param("itemId")

	if err := h.item.Remove(ctx, itemId); err != nil {
		ctx.WithField("err", err).WithField("itemId", itemId).Error("item.Remove failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// postSale
//
//	@Summary	Configure how an item is sold
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		itemId	path		string				true	"item id"
//	@Param		body	body		item.SalePayload	true	"sale"
//	@Success	200		{object}	item.Item
//	@Failure	400
//	@Failure	403
//	@Failure	404
//	@Router		/item/{itemId}/sale [put]
func (h *handler) postSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	payload := item.SalePayload{}
	if err := c.Bind(&payload); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.item.PostSale(ctx, c.Param("itemId"), payload, item.OwnedBy(user)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// toggleAcceptOffer
//
//	@Summary	Turn offers on or off
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		itemId	path		string	true	"item id"
//	@Param		body	body		object	true	"{acceptOffer: bool}"
//	@Success	200		{object}	item.Item
//	@Failure	403
//	@Failure	404
//	@Router		/item/{itemId}/accept-offer [put]
func (h *handler) toggleAcceptOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	type payload struct {
		AcceptOffer *bool `json:"acceptOffer"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if p.AcceptOffer == nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if res, err := h.item.ToggleAcceptOffer(ctx, c.Param("itemId"), *p.AcceptOffer, item.OwnedBy(user)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// clearAuctionWindow
//
//	@Summary	Drop the auction window and reserve of an item
//	@Tags		items
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		itemId	path		string	true	"item id"
//	@Success	200		{object}	item.Item
//	@Failure	403
//	@Failure	404
//	@Router		/item/{itemId}/auction [delete]
func (h *handler) clearAuctionWindow(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	if res, err := h.item.ClearAuctionWindow(ctx, c.Param("itemId"), item.OwnedBy(user)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
