package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// ContentHandler serves experts, resources and affirmations
type ContentHandler struct {
	DB *gorm.DB
}

// ListExperts handles GET /api/experts
// @Summary List experts
// @Tags Content
// @Produce json
// @Param specialty query string false "Specialty filter"
// @Success 200 {array} models.Expert
// @Router /experts [get]
func (h *ContentHandler) ListExperts(c *fiber.Ctx) error {
	experts, err := services.ListExperts(h.DB, c.Query("specialty"))
	if err != nil {
		return serviceError(c, err, "listExperts")
	}
	return utils.SuccessResponse(c, experts, fiber.StatusOK)
}

// ListResources handles GET /api/resources
// @Summary List resources
// @Tags Content
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} models.Resource
// @Router /resources [get]
func (h *ContentHandler) ListResources(c *fiber.Ctx) error {
	resources, err := services.ListResources(h.DB, c.Query("category"))
	if err != nil {
		return serviceError(c, err, "listResources")
	}
	return utils.SuccessResponse(c, resources, fiber.StatusOK)
}

// AffirmationOfTheDay handles GET /api/affirmations/today
// @Summary Affirmation of the day
// @Tags Content
// @Produce json
// @Success 200 {object} models.Affirmation
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /affirmations/today [get]
func (h *ContentHandler) AffirmationOfTheDay(c *fiber.Ctx) error {
	affirmation, err := services.AffirmationOfTheDay(h.DB)
	if err != nil {
		return serviceError(c, err, "affirmationOfTheDay")
	}
	return utils.SuccessResponse(c, affirmation, fiber.StatusOK)
}
