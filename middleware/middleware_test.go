package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/marketengine/base/ctx"
)

func TestAddContext(t *testing.T) {
	m := InitMiddleware()
	e := echo.New()
	e.Use(m.AddContext(), m.CORS, m.ResponseLogger())

	var got ctx.Ctx
	e.GET("/", func(c echo.Context) error {
		got = c.Get("ctx").(ctx.Ctx)
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotNil(t, got.Context)
	assert.NoError(t, got.Err())
}
