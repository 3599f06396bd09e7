package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/stores/auth/usecase"
)

type authMiddlewareSuite struct {
	suite.Suite

	e  *echo.Echo
	m  *AuthMiddleware
	tk func(domain.UserId) string
}

func (s *authMiddlewareSuite) SetupTest() {
	authUC := usecase.New("jwt-secret")
	s.m = New(authUC, []string{"admin"})
	s.tk = func(u domain.UserId) string {
		tkn, err := authUC.SignToken(ctx.Background(), u, time.Hour)
		s.Require().NoError(err)
		return tkn
	}

	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	whoami := func(c echo.Context) error {
		user, _ := c.Get("user").(domain.UserId)
		return c.String(http.StatusOK, string(user))
	}
	s.e.GET("/me", whoami, s.m.Auth())
	s.e.GET("/maybe", whoami, s.m.OptionalAuth())
	s.e.GET("/admin", whoami, s.m.Auth(), s.m.IsAdmin())
}

func (s *authMiddlewareSuite) do(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *authMiddlewareSuite) TestAuth() {
	rec := s.do("/me", s.tk("alice"))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("alice", rec.Body.String())

	s.NotEqual(http.StatusOK, s.do("/me", "").Code)
	s.Equal(http.StatusUnauthorized, s.do("/me", "garbage").Code)
}

func (s *authMiddlewareSuite) TestOptionalAuth() {
	rec := s.do("/maybe", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("", rec.Body.String())

	rec = s.do("/maybe", s.tk("bob"))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("bob", rec.Body.String())
}

func (s *authMiddlewareSuite) TestIsAdmin() {
	s.Equal(http.StatusOK, s.do("/admin", s.tk("admin")).Code)
	s.Equal(http.StatusForbidden, s.do("/admin", s.tk("alice")).Code)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(authMiddlewareSuite))
}
