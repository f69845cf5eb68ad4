package types

import (
	"errors"
	"fmt"
)

// AppError is an error with an HTTP status code and a machine-readable type,
// rendered by the global fiber error handler.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Sentinel errors returned by the service layer. Handlers map these onto the
// HTTP taxonomy; the raw invite code is never echoed back to the client.
var (
	ErrNotFound                   = errors.New("not found")
	ErrValidation                 = errors.New("invalid input")
	ErrForbidden                  = errors.New("forbidden")
	ErrInvalidOrExpiredCode       = errors.New("invite code is invalid or has expired")
	ErrDuplicateActivePartnership = errors.New("an active partnership already exists for this partner")
)

// IsNotFound reports whether err is the service-layer not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
