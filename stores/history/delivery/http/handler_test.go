package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/delivery"
	"github.com/x-xyz/marketengine/domain/history"
	"github.com/x-xyz/marketengine/domain/history/mocks"
)

type handlerSuite struct {
	suite.Suite
	e       *echo.Echo
	history *mocks.Usecase
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	s.history = mocks.NewUsecase(s.T())
	New(s.e, s.history)
}

func (s *handlerSuite) serve(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestGetByItem() {
	res := []*history.History{{Id: "h1", ItemId: "item-1", HistoryType: history.HistoryTypeTransfer, TransactionHash: "0xabc"}}
	s.history.On("QueryByItem", mock.Anything, "item-1").Return(res, nil).Once()

	rec := s.serve(http.MethodGet, "/item/item-1/histories")
	s.Equal(http.StatusOK, rec.Code)

	body := struct {
		Data   []*history.History          `json:"data"`
		Status delivery.JsonResponseStatus `json:"status"`
	}{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(delivery.JsonResponseStatusSuccess, body.Status)
	s.Require().Len(body.Data, 1)
	s.Equal("0xabc", string(body.Data[0].TransactionHash))
}

func (s *handlerSuite) TestGetAll() {
	s.history.On("QueryAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*history.History{}, nil).Once()

	rec := s.serve(http.MethodGet, "/histories?collectionId=c1&offset=0&limit=10")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *handlerSuite) TestGetAllBadLimit() {
	rec := s.serve(http.MethodGet, "/histories?limit=1000")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}
