package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// maxPrice — верхняя граница цены, принимаемой от клиента.
var maxPrice = decimal.NewFromInt(1_000_000_000)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	var inUse *usecase.CategoryInUseError

	switch {
	case errors.As(err, &inUse):
		return http.StatusConflict, inUse.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrInvalidPriceRange):
		return http.StatusBadRequest, e.ErrInvalidPriceRange.Error()
	case errors.Is(err, e.ErrCartEmpty):
		return http.StatusBadRequest, e.ErrCartEmpty.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusNotFound, e.ErrCategoryNotFound.Error()
	case errors.Is(err, e.ErrSessionNotFound):
		return http.StatusNotFound, e.ErrSessionNotFound.Error()
	case errors.Is(err, e.ErrCategoryExists):
		return http.StatusConflict, e.ErrCategoryExists.Error()
	case errors.Is(err, e.ErrCategoryInUse):
		return http.StatusConflict, e.ErrCategoryInUse.Error()
	case errors.Is(err, e.ErrHandoffFailed):
		return http.StatusBadGateway, e.ErrHandoffFailed.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError логирует ошибку и пишет ответ. Клиентские ошибки идут в warn.
func respondError(log logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%d %s %s", code, r.Method, r.URL.Path)
	} else {
		log.Warnf("%d %s %s: %s", code, r.Method, r.URL.Path, err.Error())
	}
	WriteError(w, err)
}

// decodeJSON разбирает тело запроса; неизвестные поля запрещены.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	const maxBodySize = 1 << 20

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}
	return nil
}

// validatePrice проверяет, что цена неотрицательна, не больше maxPrice
// и содержит не более двух знаков после запятой.
func validatePrice(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(maxPrice) {
		return e.ErrInvalidPrice
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return e.ErrPricePrecision
	}
	return nil
}

// parsePrice разбирает цену вида "599.99" или "600".
func parsePrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if err := validatePrice(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// parseIDParam читает положительный числовой идентификатор из пути.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, e.Wrap(name+"="+raw, e.ErrInvalidID)
	}
	return id, nil
}
