package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/delivery"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/auction"
	authMiddleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
)

type handler struct {
	auction auction.Usecase
}

func New(e *echo.Echo, auction auction.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{auction}

	e.GET("/item/:itemId/bids", h.getBids)

	e.POST("/item/:itemId/bids", h.placeBid, authMiddleware.Auth())

	e.POST("/bid/:auctionId/accept", h.accept, authMiddleware.Auth())
}

// getBids
//
//	@Summary	List bids of an item, highest price first
//	@Tags		auctions
//	@Produce	json
//	@Param		itemId	path	string	true	"item id"
//	@Success	200		{array}	auction.Auction
//	@Router		/item/{itemId}/bids [get]
func (h *handler) getBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.auction.GetHighestBid(ctx, c.Param("itemId")); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// placeBid
//
//	@Summary	Bid on an item in its auction window
//	@Tags		auctions
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		itemId	path		string	true	"item id"
//	@Param		body	body		object	true	"{price: string, currency: string}"
//	@Success	201		{object}	auction.Auction
//	@Failure	400
//	@Failure	403
//	@Failure	409
//	@Router		/item/{itemId}/bids [post]
func (h *handler) placeBid(c echo.Context) error {
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

	if res, err := h.auction.PlaceBid(ctx, c.Param("itemId"), user, price, p.Currency); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

// accept
//
//	@Summary	Accept a bid and sell the item to the bidder
//	@Tags		auctions
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		auctionId	path		string	true	"bid id"
//	@Success	200			{object}	purchase.Receipt
//	@Success	202			{object}	delivery.ReconcilingResp
//	@Failure	403
//	@Failure	404
//	@Failure	409
//	@Failure	502
//	@Router		/bid/{auctionId}/accept [post]
func (h *handler) accept(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	auctionId := c.Param("auctionId")

	if res, err := h.auction.AcceptBid(ctx, user, auctionId); err != nil {
		ctx.WithField("err", err).WithField("auctionId", auctionId).Warn("auction.AcceptBid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
