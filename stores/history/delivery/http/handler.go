package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/delivery"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/history"
)

type handler struct {
	history history.Usecase
}

func New(e *echo.Echo, history history.Usecase) {
	h := &handler{history}

	e.GET("/item/:itemId/histories", h.getByItem)

	e.GET("/histories", h.getAll)
}

// getByItem
//
//	@Summary	List histories of an item
//	@Tags		histories
//	@Produce	json
//	@Param		itemId	path		string	true	"item id"
//	@Success	200		{array}		history.History
//	@Failure	500
//	@Router		/item/{itemId}/histories [get]
func (h *handler) getByItem(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	itemId := c.Param("itemId")

	if res, err := h.history.QueryByItem(ctx, itemId); err != nil {
		ctx.WithField("err", err).Error("history.QueryByItem failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getAll
//
//	@Summary	List histories
//	@Tags		histories
//	@Produce	json
//	@Param		collectionId	query		string	false	"collection id"
//	@Param		account			query		string	false	"user on either side"
//	@Param		historyType		query		string	false	"history type"	enums(minted, created, bid, transfer)
//	@Param		offset			query		int		false	"paging offset"	example(0)
//	@Param		limit			query		int		false	"paging size"	example(50)
//	@Success	200				{array}		history.History
//	@Failure	400
//	@Failure	500
//	@Router		/histories [get]
func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId string              `query:"collectionId"`
		Account      domain.UserId       `query:"account"`
		HistoryType  history.HistoryType `query:"historyType"`
		Offset       int32               `query:"offset"`
		Limit        int32               `query:"limit"`
	}

	p := &params{Limit: 50}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if p.Offset < 0 || p.Limit <= 0 || p.Limit > 200 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	opts := []history.FindAllOptions{
		history.WithPagination(p.Offset, p.Limit),
		history.WithSort("createDate", domain.SortDirDesc),
	}

	if p.CollectionId != "" {
		opts = append(opts, history.WithCollectionId(p.CollectionId))
	}

	if !p.Account.IsEmpty() {
		opts = append(opts, history.WithAccount(p.Account))
	}

	if p.HistoryType != "" {
		opts = append(opts, history.WithHistoryType(p.HistoryType))
	}

	if res, err := h.history.QueryAll(ctx, opts...); err != nil {
		ctx.WithField("err", err).Error("history.QueryAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
