package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles onboarding and profile routes
type UserHandler struct {
	DB *gorm.DB
}

// CreateUser handles POST /api/users
// @Summary Create user
// @Description Create a user at onboarding
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.UserInput true "User profile"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	user, err := services.CreateUser(h.DB, input)
	if err != nil {
		return serviceError(c, err, "createUser")
	}

	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// GetUser handles GET /api/users/:id
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := services.GetUser(h.DB, c.Params("id"))
	if err != nil {
		return serviceError(c, err, "getUser")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// UpdateUser handles PATCH /api/users/:id
// @Summary Update user profile
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body services.UserPatch true "Partial profile"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var patch services.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	user, err := services.UpdateUser(h.DB, c.Params("id"), patch)
	if err != nil {
		return serviceError(c, err, "updateUser")
	}

	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
