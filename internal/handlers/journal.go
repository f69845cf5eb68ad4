package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/middleware"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// JournalHandler handles journal CRUD routes
type JournalHandler struct {
	DB *gorm.DB
}

// CreateEntry handles POST /api/journal
// @Summary Create journal entry
// @Tags Journal
// @Accept json
// @Produce json
// @Param body body services.JournalInput true "Entry"
// @Success 201 {object} models.JournalEntry
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /journal [post]
func (h *JournalHandler) CreateEntry(c *fiber.Ctx) error {
	var input services.JournalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	entry, err := services.CreateJournalEntry(h.DB, input)
	if err != nil {
		return serviceError(c, err, "createJournalEntry")
	}

	return utils.SuccessResponse(c, entry, fiber.StatusCreated)
}

// ListEntries handles GET /api/journal/:userId
// @Summary List journal entries
// @Tags Journal
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} models.JournalEntry
// @Router /journal/{userId} [get]
func (h *JournalHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := services.ListJournalEntries(h.DB, c.Params("userId"))
	if err != nil {
		return serviceError(c, err, "listJournalEntries")
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

// UpdateEntry handles PUT /api/journal/:id
// @Summary Update journal entry
// @Tags Journal
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param body body services.JournalInput true "Entry"
// @Success 200 {object} models.JournalEntry
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security ActorAuth
// @Router /journal/{id} [put]
func (h *JournalHandler) UpdateEntry(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return utils.ForbiddenResponse(c, "Missing caller identity")
	}

	var input services.JournalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	entry, err := services.UpdateJournalEntry(h.DB, actor, c.Params("id"), input)
	if err != nil {
		return serviceError(c, err, "updateJournalEntry")
	}

	return utils.SuccessResponse(c, entry, fiber.StatusOK)
}

// DeleteEntry handles DELETE /api/journal/:id
// @Summary Delete journal entry
// @Tags Journal
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security ActorAuth
// @Router /journal/{id} [delete]
func (h *JournalHandler) DeleteEntry(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return utils.ForbiddenResponse(c, "Missing caller identity")
	}

	if err := services.DeleteJournalEntry(h.DB, actor, c.Params("id")); err != nil {
		return serviceError(c, err, "deleteJournalEntry")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
