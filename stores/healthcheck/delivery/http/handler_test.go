package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/ctx"
)

type stubUsecase struct {
	err error
}

func (s stubUsecase) Check(c ctx.Ctx) error {
	if _, ok := c.Deadline(); !ok {
		return errors.New("no deadline")
	}
	return s.err
}

type handlerSuite struct {
	suite.Suite
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) serve(err error) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, stubUsecase{err: err})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func (s *handlerSuite) TestUp() {
	rec := s.serve(nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *handlerSuite) TestDown() {
	rec := s.serve(errors.New("redis: connection refused"))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.JSONEq(`{"status":"down","error":"redis: connection refused"}`, rec.Body.String())
}
