package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain/healthcheck"
)

const checkTimeout = 3 * time.Second

type healthResp struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type handler struct {
	uc healthcheck.Usecase
}

func New(e *echo.Echo, uc healthcheck.Usecase) {
	h := &handler{uc: uc}
	e.GET("/health", h.check)
}

// check
//
//	@Summary	Readiness check, pings mongo and redis
//	@Tags		healthcheck
//	@Produce	json
//	@Success	200	{object}	healthResp
//	@Failure	503	{object}	healthResp
//	@Router		/health [get]
func (h *handler) check(c echo.Context) error {
	parent := c.Get("ctx").(ctx.Ctx)
	checkCtx, cancel := ctx.WithTimeout(parent, checkTimeout)
	defer cancel()

	if err := h.uc.Check(checkCtx); err != nil {
		parent.WithField("err", err).Warn("health check failed")
		return c.JSON(http.StatusServiceUnavailable, healthResp{Status: "down", Error: err.Error()})
	}
	return c.JSON(http.StatusOK, healthResp{Status: "ok"})
}
