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
	"github.com/x-xyz/marketengine/domain/item"
	"github.com/x-xyz/marketengine/domain/item/mocks"
	"github.com/x-xyz/marketengine/middleware"
	"github.com/x-xyz/marketengine/service/cache/provider/primitive"
	authMiddleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/marketengine/stores/auth/usecase"
)

type handlerSuite struct {
	suite.Suite
	e     *echo.Echo
	item  *mocks.Usecase
	token func(domain.UserId) string
}

func (s *handlerSuite) SetupSuite() {
	middleware.SetupCache(primitive.NewPrimitive("itemHandlerTest", 8))
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

	s.item = mocks.NewUsecase(s.T())
	New(s.e, s.item, authMiddleware.New(auth, []string{"admin"}))
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

func (s *handlerSuite) TestMint() {
	s.item.On("Mint", mock.Anything, mock.MatchedBy(func(p item.MintPayload) bool {
		return p.AuthorId == "alice" && p.CollectionId == "c1" && p.Price.Equal(decimal.RequireFromString("2.5"))
	})).Return(&item.Item{Id: "item-1", CurrentOwner: "alice"}, nil).Once()

	rec := s.serve(http.MethodPost, "/items", `{"collectionId":"c1","name":"punk","tokenUri":"ipfs://x","royaltyBps":100,"price":"2.5","currency":"ETH"}`, "alice")
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"itemId":"item-1"`)
}

func (s *handlerSuite) TestMintValidation() {
	rec := s.serve(http.MethodPost, "/items", `{"collectionId":"c1","royaltyBps":20000}`, "alice")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.serve(http.MethodPost, "/items", `{}`, "")
	s.NotEqual(http.StatusCreated, rec.Code)
}

func (s *handlerSuite) TestMalformedBodyIsBadRequest() {
	rec := s.serve(http.MethodPost, "/items", `{"collectionId":`, "alice")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.NotContains(rec.Body.String(), domain.ErrInternalServerError.Error())

	rec = s.serve(http.MethodPut, "/item/item-1/sale", `{"saleType":"FixedPrice","fixedPrice":"abc"}`, "alice")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestPostSaleChecksOwner() {
	it := &item.Item{Id: "item-1", CurrentOwner: "alice"}
	s.item.On("PostSale", mock.Anything, "item-1", mock.Anything, mock.Anything).
		Return(func(c ctx.Ctx, id string, p item.SalePayload, pres ...item.Precondition) *item.Item {
			return it
		}, func(c ctx.Ctx, id string, p item.SalePayload, pres ...item.Precondition) error {
			for _, pre := range pres {
				if err := pre(it); err != nil {
					return err
				}
			}
			return nil
		}).Twice()

	rec := s.serve(http.MethodPut, "/item/item-1/sale", `{"saleType":"FixedPrice","fixedPrice":"3"}`, "alice")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.serve(http.MethodPut, "/item/item-1/sale", `{"saleType":"FixedPrice"}`, "mallory")
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *handlerSuite) TestToggleAcceptOffer() {
	s.item.On("ToggleAcceptOffer", mock.Anything, "item-1", true, mock.Anything).Return(&item.Item{Id: "item-1", AcceptOffer: true}, nil).Once()

	rec := s.serve(http.MethodPut, "/item/item-1/accept-offer", `{"acceptOffer":true}`, "alice")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.serve(http.MethodPut, "/item/item-1/accept-offer", `{}`, "alice")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestClearAuctionWindowBusy() {
	s.item.On("ClearAuctionWindow", mock.Anything, "item-1", mock.Anything).Return(nil, domain.ErrItemBusy).Once()

	rec := s.serve(http.MethodDelete, "/item/item-1/auction", "", "alice")
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *handlerSuite) TestRemoveRequiresAdmin() {
	rec := s.serve(http.MethodDelete, "/item/item-1", "", "alice")
	s.Equal(http.StatusForbidden, rec.Code)

	s.item.On("Remove", mock.Anything, "item-1").Return(nil).Once()
	rec = s.serve(http.MethodDelete, "/item/item-1", "", "admin")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *handlerSuite) TestGet() {
	s.item.On("FindOne", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()

	rec := s.serve(http.MethodGet, "/item/missing", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *handlerSuite) TestGetAll() {
	s.item.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]*item.Item{}, nil).Once()

	rec := s.serve(http.MethodGet, "/items?owner=alice", "", "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.serve(http.MethodGet, "/items?limit=0", "", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}
