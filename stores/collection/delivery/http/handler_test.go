package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/validator"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/collection"
	"github.com/x-xyz/marketengine/domain/collection/mocks"
	"github.com/x-xyz/marketengine/middleware"
	"github.com/x-xyz/marketengine/service/cache/provider/primitive"
	authMiddleware "github.com/x-xyz/marketengine/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/marketengine/stores/auth/usecase"
)

type handlerSuite struct {
	suite.Suite
	e          *echo.Echo
	collection *mocks.Usecase
	token      string
}

func (s *handlerSuite) SetupSuite() {
	middleware.SetupCache(primitive.NewPrimitive("collectionHandlerTest", 8))
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
	tkn, err := auth.SignToken(ctx.Background(), "alice", time.Hour)
	s.Require().NoError(err)
	s.token = tkn

	s.collection = mocks.NewUsecase(s.T())
	New(s.e, s.collection, authMiddleware.New(auth, nil))
}

func (s *handlerSuite) serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestCreate() {
	s.collection.On("Create", mock.Anything, collection.CreatePayload{Owner: "alice", Name: "apes"}).
		Return(&collection.Collection{Id: "c1", Name: "apes", Owner: "alice"}, nil).Once()

	rec := s.serve(http.MethodPost, "/collections", `{"name":"apes"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"collectionId":"c1"`)
}

func (s *handlerSuite) TestCreateMissingName() {
	rec := s.serve(http.MethodPost, "/collections", `{"description":"x"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestGetNotFound() {
	s.collection.On("FindOne", mock.Anything, "nope").Return(nil, domain.ErrNotFound).Once()

	rec := s.serve(http.MethodGet, "/collection/nope", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}
