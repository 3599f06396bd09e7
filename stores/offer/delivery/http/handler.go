package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/delivery"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/offer"
	authMiddleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
)

type handler struct {
	offer offer.Usecase
}

func New(e *echo.Echo, offer offer.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{offer}

	e.GET("/item/:itemId/offers", h.getByItem)

	e.POST("/item/:itemId/offers", h.create, authMiddleware.Auth())

	e.DELETE("/offer/:offerId", h.rescind, authMiddleware.Auth())

	e.POST("/offer/:offerId/accept", h.accept, authMiddleware.Auth())
}

// getByItem
//
//	@Summary	List open offers of an item, oldest first
//	@Tags		offers
//	@Produce	json
//	@Param		itemId	path		string	true	"item id"
//	@Success	200		{array}		offer.Offer
//	@Router		/item/{itemId}/offers [get]
func (h *handler) getByItem(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.offer.FindAll(ctx, offer.WithItemId(c.Param("itemId")), offer.WithSort("createDate", domain.SortDirAsc)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// create
//
//	@Summary	Make an offer to the owner of an item
//	@Tags		offers
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		itemId	path		string	true	"item id"
//	@Param		body	body		object	true	"{price: string, currency: string}"
//	@Success	201		{object}	offer.Offer
//	@Failure	400
//	@Failure	403
//	@Failure	409
//	@Router		/item/{itemId}/offers [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	type payload struct {
		Price    string          `json:"price" validate:"required,posdecimal"`
		Currency domain.Currency `json:"currency"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidPrice)
	}

	if res, err := h.offer.CreateOffer(ctx, c.Param("itemId"), user, price, p.Currency); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

// rescind
//
//	@Summary	Withdraw an offer made by the caller
//	@Tags		offers
//	@Security	ApiKeyAuth
//	@Param		offerId	path	string	true	"offer id"
//	@Success	200
//	@Failure	403
//	@Failure	404
//	@Router		/offer/{offerId} [delete]
func (h *handler) rescind(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	offerId := c.Param("offerId")

	o, err := h.offer.FindOne(ctx, offerId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	if o.SenderId != user {
		return delivery.MakeJsonResp(c, http.StatusForbidden, domain.ErrForbidden)
	}

	if err := h.offer.RescindOffer(ctx, offerId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// accept
//
//	@Summary	Accept an offer and sell the item to its sender
//	@Tags		offers
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		offerId	path		string	true	"offer id"
//	@Success	200		{object}	purchase.Receipt
//	@Success	202		{object}	delivery.ReconcilingResp
//	@Failure	403
//	@Failure	404
//	@Failure	409
//	@Failure	502
//	@Router		/offer/{offerId}/accept [post]
func (h *handler) accept(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	offerId := c.Param("offerId")

	if res, err := h.offer.AcceptOffer(ctx, user, offerId); err != nil {
		ctx.WithField("err", err).WithField("offerId", offerId).Warn("offer.AcceptOffer failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
