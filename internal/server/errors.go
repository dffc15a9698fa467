package server

import (
	"errors"
	"net/http"

	accountdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/account/domain"
	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	contractdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/contract/domain"
	expensedomain "github.com/Ed-Isingoma/hostelmgrserv/internal/expense/domain"
	occupancydomain "github.com/Ed-Isingoma/hostelmgrserv/internal/occupancy/domain"
	paymentdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/payment/domain"
	roomdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/room/domain"
	tenantdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/tenant/domain"
	"github.com/gin-gonic/gin"
)

// APIError is the envelope every failed request resolves to.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return e.Code }

var (
	ErrServiceUnavailable = &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    "service_unavailable",
		Message: "the service is not ready to handle this request",
	}
	ErrUnknownOperation = &APIError{
		Status:  http.StatusNotFound,
		Code:    "unknown_operation",
		Message: "no operation is registered under that name",
	}
)

func invalidRequestError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func invalidParamsError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_params",
		Message: message,
	}
}

var notFoundErrors = []error{
	tenantdomain.ErrTenantNotFound,
	roomdomain.ErrRoomNotFound,
	cycledomain.ErrCycleNotFound,
	contractdomain.ErrContractNotFound,
	paymentdomain.ErrPaymentNotFound,
	expensedomain.ErrExpenseNotFound,
	accountdomain.ErrAccountNotFound,
}

var badRequestErrors = []error{
	tenantdomain.ErrInvalidName,
	tenantdomain.ErrInvalidGender,
	roomdomain.ErrInvalidLevel,
	roomdomain.ErrInvalidRoom,
	cycledomain.ErrInvalidName,
	cycledomain.ErrInvalidDates,
	contractdomain.ErrInvalidCycle,
	contractdomain.ErrInvalidTenant,
	contractdomain.ErrInvalidRoom,
	contractdomain.ErrInvalidPrice,
	contractdomain.ErrInvalidType,
	contractdomain.ErrInvalidDate,
	paymentdomain.ErrInvalidContract,
	paymentdomain.ErrInvalidAmount,
	paymentdomain.ErrInvalidDate,
	expensedomain.ErrInvalidDescription,
	expensedomain.ErrInvalidQuantity,
	expensedomain.ErrInvalidAmount,
	expensedomain.ErrInvalidDate,
	accountdomain.ErrInvalidUsername,
	accountdomain.ErrInvalidPassword,
	accountdomain.ErrInvalidRole,
	occupancydomain.ErrInvalidGender,
}

// AbortWithError writes the API error envelope for err, translating
// domain errors to HTTP statuses. Unrecognized errors become opaque
// 500s so internals never leak to clients.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	for _, known := range notFoundErrors {
		if errors.Is(err, known) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": &APIError{
				Code:    known.Error(),
				Message: "the requested record does not exist",
			}})
			return
		}
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": &APIError{
				Code:    known.Error(),
				Message: "a request field failed validation",
			}})
			return
		}
	}
	if errors.Is(err, accountdomain.ErrLoginFailed) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": &APIError{
			Code:    accountdomain.ErrLoginFailed.Error(),
			Message: "username or password is wrong, or the account awaits approval",
		}})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": &APIError{
		Code:    "internal_error",
		Message: "something went wrong handling the request",
	}})
}
