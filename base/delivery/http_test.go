package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/service/query"
)

type httpSuite struct {
	suite.Suite
	e *echo.Echo
}

func (s *httpSuite) SetupTest() {
	s.e = echo.New()
}

func (s *httpSuite) do(data interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	s.Require().NoError(MakeJsonResp(c, http.StatusOK, data))

	body := map[string]interface{}{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func (s *httpSuite) TestStatusOf() {
	tests := []struct {
		desc string
		err  error
		exp  int
	}{
		{"validation", domain.ErrBadParamInput, http.StatusBadRequest},
		{"not found", xerrors.Errorf("find: %w", domain.ErrNotFound), http.StatusNotFound},
		{"query not found", query.ErrNotFound, http.StatusNotFound},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"domain", domain.ErrAuctionActive, http.StatusConflict},
		{"external", &domain.ExternalError{Service: "ledger", Op: "BuyNFT", Err: errors.New("reverted")}, http.StatusBadGateway},
		{"reconciliation", &domain.ReconciliationError{TxHash: "0xabc"}, http.StatusAccepted},
		{"internal", errors.New("mongo down"), http.StatusInternalServerError},
	}
	for _, t := range tests {
		s.Equal(t.exp, StatusOf(t.err), t.desc)
	}
}

func (s *httpSuite) TestSuccess() {
	rec, body := s.do(map[string]string{"a": "b"})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("success", body["status"])
}

func (s *httpSuite) TestDomainError() {
	rec, body := s.do(domain.ErrPriceTooLow)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("fail", body["status"])
	s.Equal(domain.ErrPriceTooLow.Error(), body["data"])
}

func (s *httpSuite) TestInternalErrorIsMasked() {
	rec, body := s.do(errors.New("connection refused 10.0.0.1"))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(domain.ErrInternalServerError.Error(), body["data"])
}

func (s *httpSuite) TestBindErrorIsClientError() {
	type payload struct {
		CollectionId string `json:"collectionId"`
	}

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"collectionId":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	err := c.Bind(&payload{})
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, StatusOf(err))

	s.Require().NoError(MakeJsonResp(c, http.StatusBadRequest, err))
	s.Equal(http.StatusBadRequest, rec.Code)
	body := map[string]interface{}{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("fail", body["status"])
	s.NotEqual(domain.ErrInternalServerError.Error(), body["data"])
}

func (s *httpSuite) TestUnclassifiedErrorKeepsClientStatus() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.Require().NoError(MakeJsonResp(c, http.StatusBadRequest, errors.New("limit must be a number")))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "limit must be a number")
}

func (s *httpSuite) TestReconciling() {
	rec, body := s.do(xerrors.Errorf("commit: %w", &domain.ReconciliationError{
		PendingTransferId: "pt-1",
		ItemId:            "item-1",
		TxHash:            "0xabc",
		Err:               errors.New("write conflict"),
	}))
	s.Equal(http.StatusAccepted, rec.Code)
	s.Equal("reconciling", body["status"])
	s.Equal("0xabc", body["txHash"])
	s.Equal("pt-1", body["pendingTransferId"])
}

func TestHttpSuite(t *testing.T) {
	suite.Run(t, new(httpSuite))
}
