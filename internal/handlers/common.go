package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/types"
	"github.com/nestwell/nestwell/internal/utils"
)

// serviceError maps service-layer sentinel errors onto the response
// taxonomy. errorType tags the failing operation for clients and logs.
func serviceError(c *fiber.Ctx, err error, errorType string) error {
	switch {
	case types.IsNotFound(err):
		return utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, types.ErrValidation):
		return utils.ValidationErrorResponse(c, err.Error())
	case errors.Is(err, types.ErrForbidden):
		return utils.ForbiddenResponse(c, "You are not allowed to perform this action")
	case errors.Is(err, types.ErrInvalidOrExpiredCode):
		// User-facing message only; the code itself is never echoed
		return utils.ErrorResponse(c, "This invite code is invalid or has expired", fiber.StatusBadRequest, errorType)
	case errors.Is(err, types.ErrDuplicateActivePartnership):
		return utils.ErrorResponse(c, "An active partnership already exists", fiber.StatusConflict, errorType)
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}
