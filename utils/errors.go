package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a business-rule failure that maps to a specific HTTP status.
// Anything that is not an AppError is treated as unexpected and reported as
// a generic 500 without leaking internal detail.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrNotFoundOrInactive      = &AppError{http.StatusNotFound, "referenced item not found or inactive"}
	ErrInsufficientStock       = &AppError{http.StatusConflict, "insufficient stock"}
	ErrCouponNotFound          = &AppError{http.StatusBadRequest, "coupon not found"}
	ErrCouponExpiredOrInactive = &AppError{http.StatusBadRequest, "coupon expired or inactive"}
	ErrCouponExhausted         = &AppError{http.StatusConflict, "coupon usage limit reached"}
	ErrOrderConflict           = &AppError{http.StatusConflict, "order was updated concurrently"}
	ErrBelowMinimumAmount      = &AppError{http.StatusBadRequest, "order amount below coupon minimum"}
	ErrNoPermission            = &AppError{http.StatusForbidden, "you do not have permission"}
	ErrAccountInactive         = &AppError{http.StatusForbidden, "account is not verified"}
	ErrInvalidCredentials      = &AppError{http.StatusUnauthorized, "invalid email or password"}
	ErrMailDelivery            = &AppError{http.StatusBadGateway, "failed to deliver email"}
	ErrInvalidCode             = &AppError{http.StatusBadRequest, "invalid or expired verification code"}
)

// ValidationError builds a 400 AppError for malformed or missing input.
func ValidationError(format string, args ...interface{}) *AppError {
	return &AppError{http.StatusBadRequest, fmt.Sprintf(format, args...)}
}

// StatusOf returns the HTTP status for err: the AppError's own status for
// business errors, 500 otherwise.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
