package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/delivery"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/collection"
	"github.com/x-xyz/marketengine/middleware"
	authMiddleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
)

type handler struct {
	collection collection.Usecase
}

func New(e *echo.Echo, collection collection.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{collection}

	e.POST("/collections", h.create, authMiddleware.Auth())

	e.GET("/collection/:collectionId", h.get, middleware.CacheHttp(10*time.Second))
}

// create
//
//	@Summary	Create a collection owned by the caller
//	@Tags		collections
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		body	body		collection.CreatePayload	true	"collection"
//	@Success	201		{object}	collection.Collection
//	@Failure	400
//	@Failure	500
//	@Router		/collections [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := c.Get("user").(domain.UserId)

	payload := collection.CreatePayload{}
	if err := c.Bind(&payload); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(&payload); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	payload.Owner = user

	if res, err := h.collection.Create(ctx, payload); err != nil {
		ctx.WithField("err", err).Error("collection.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

// get
//
//	@Summary	Get a collection
//	@Tags		collections
//	@Produce	json
//	@Param		collectionId	path		string	true	"collection id"
//	@Success	200				{object}	collection.Collection
//	@Failure	404
//	@Router		/collection/{collectionId} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.collection.FindOne(ctx, c.Param("collectionId")); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
