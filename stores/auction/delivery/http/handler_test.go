package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/validator"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/auction"
	"github.com/x-xyz/marketengine/domain/auction/mocks"
	"github.com/x-xyz/marketengine/domain/purchase"
	authMiddleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/marketengine/stores/auth/usecase"
)

type handlerSuite struct {
	suite.Suite
	e       *echo.Echo
	auction *mocks.Usecase
	token   func(domain.UserId) string
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})

	auth := authUsecase.New("jwt-secret")
	s.token = func(u domain.UserId) string {
		tkn, err := auth.SignToken(ctx.Background(), u, time.Hour)
		s.Require().NoError(err)
		return tkn
	}

	s.auction = mocks.NewUsecase(s.T())
	New(s.e, s.auction, authMiddleware.New(auth, nil))
}

func (s *handlerSuite) serve(method, target, body string, user domain.UserId) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(user))
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestGetBids() {
	s.auction.On("GetHighestBid", mock.Anything, "item-1").
		Return([]*auction.Auction{{Id: "bid-2", Price: decimal.NewFromInt(20)}, {Id: "bid-1", Price: decimal.NewFromInt(15)}}, nil).Once()

	rec := s.serve(http.MethodGet, "/item/item-1/bids", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Less(strings.Index(rec.Body.String(), "bid-2"), strings.Index(rec.Body.String(), "bid-1"))
}

func (s *handlerSuite) TestPlaceBid() {
	s.auction.On("PlaceBid", mock.Anything, "item-1", domain.UserId("bob"), decimal.RequireFromString("15"), domain.Currency("")).
		Return(&auction.Auction{Id: "bid-1"}, nil).Once()

	rec := s.serve(http.MethodPost, "/item/item-1/bids", `{"price":"15"}`, "bob")
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *handlerSuite) TestPlaceBidRejected() {
	rec := s.serve(http.MethodPost, "/item/item-1/bids", `{"price":"15"}`, "")
	s.NotEqual(http.StatusCreated, rec.Code)

	rec = s.serve(http.MethodPost, "/item/item-1/bids", `{"price":"-1"}`, "bob")
	s.Equal(http.StatusBadRequest, rec.Code)

	s.auction.On("PlaceBid", mock.Anything, "item-1", domain.UserId("bob"), mock.Anything, mock.Anything).
		Return(nil, domain.ErrPriceTooLow).Once()
	rec = s.serve(http.MethodPost, "/item/item-1/bids", `{"price":"5"}`, "bob")
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestAccept() {
	s.auction.On("AcceptBid", mock.Anything, domain.UserId("alice"), "bid-1").
		Return(&purchase.Receipt{ItemId: "item-1", TxHash: "0xbid"}, nil).Once()

	rec := s.serve(http.MethodPost, "/bid/bid-1/accept", "", "alice")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"txHash":"0xbid"`)
}

func (s *handlerSuite) TestAcceptForbidden() {
	s.auction.On("AcceptBid", mock.Anything, domain.UserId("mallory"), "bid-1").
		Return(nil, domain.ErrForbidden).Once()

	rec := s.serve(http.MethodPost, "/bid/bid-1/accept", "", "mallory")
	s.Equal(http.StatusForbidden, rec.Code)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}
