package delivery

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess     JsonResponseStatus = "success"
	JsonResponseStatusFail        JsonResponseStatus = "fail"
	JsonResponseStatusReconciling JsonResponseStatus = "reconciling"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// ReconcilingResp is returned when the ledger transfer went through but the local commit did not
type ReconcilingResp struct {
	Status            JsonResponseStatus `json:"status"`
	TxHash            domain.TxHash      `json:"txHash"`
	PendingTransferId string             `json:"pendingTransferId"`
	ItemId            string             `json:"itemId"`
}

// StatusOf maps an error to its http status by error kind.
// Echo errors, such as the 400 of a failed Bind, keep their own code.
func StatusOf(err error) int {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindDomain:
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return http.StatusNotFound
		case errors.Is(err, domain.ErrForbidden):
			return http.StatusForbidden
		default:
			return http.StatusConflict
		}
	case domain.KindExternal:
		return http.StatusBadGateway
	case domain.KindReconciliation:
		return http.StatusAccepted
	}
	if errors.Is(err, query.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// MakeJsonResp writes the response envelope. An error in data overrides status when its kind is known,
// an unclassified error keeps the client error status the caller chose.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if known := StatusOf(err); known != http.StatusInternalServerError || status < 400 || status >= 500 {
			status = known
		}

		var recErr *domain.ReconciliationError
		if errors.As(err, &recErr) {
			return c.JSON(status, ReconcilingResp{
				Status:            JsonResponseStatusReconciling,
				TxHash:            recErr.TxHash,
				PendingTransferId: recErr.PendingTransferId,
				ItemId:            recErr.ItemId,
			})
		}

		var httpErr *echo.HTTPError
		switch {
		case status >= http.StatusInternalServerError:
			data = domain.ErrInternalServerError.Error()
		case errors.As(err, &httpErr):
			data = fmt.Sprint(httpErr.Message)
		default:
			data = err.Error()
		}
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
