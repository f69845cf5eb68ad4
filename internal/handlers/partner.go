package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// PartnerHandler serves the partner-facing, permission-filtered views. All
// filtering happens in the service layer before serialization; nothing here
// relies on the client to hide fields.
type PartnerHandler struct {
	DB *gorm.DB
}

// Dashboard handles GET /api/partner/dashboard/:userId
// @Summary Partner dashboard
// @Description Filtered mother data for the partner's active partnership
// @Tags Partner
// @Produce json
// @Param userId path string true "Partner user ID"
// @Success 200 {object} services.PartnerDashboard
// @Router /partner/dashboard/{userId} [get]
func (h *PartnerHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := services.GetPartnerDashboard(h.DB, c.Params("userId"))
	if err != nil {
		return serviceError(c, err, "partnerDashboard")
	}
	return utils.SuccessResponse(c, dashboard, fiber.StatusOK)
}

// Updates handles GET /api/partner/updates/:userId
// @Summary Partner update feed
// @Tags Partner
// @Produce json
// @Param userId path string true "Partner user ID"
// @Success 200 {array} models.PartnerUpdate
// @Router /partner/updates/{userId} [get]
func (h *PartnerHandler) Updates(c *fiber.Ctx) error {
	updates, err := services.PartnerUpdates(h.DB, c.Params("userId"))
	if err != nil {
		return serviceError(c, err, "partnerUpdates")
	}
	return utils.SuccessResponse(c, updates, fiber.StatusOK)
}

// Journal handles GET /api/partner/journal/:userId
// @Summary Shared journal
// @Tags Partner
// @Produce json
// @Param userId path string true "Partner user ID"
// @Success 200 {array} models.JournalEntry
// @Router /partner/journal/{userId} [get]
func (h *PartnerHandler) Journal(c *fiber.Ctx) error {
	entries, err := services.SharedJournalEntries(h.DB, c.Params("userId"))
	if err != nil {
		return serviceError(c, err, "partnerJournal")
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

// Resources handles GET /api/partner/resources/:userId
// @Summary Shared resources
// @Tags Partner
// @Produce json
// @Param userId path string true "Partner user ID"
// @Success 200 {array} models.Resource
// @Router /partner/resources/{userId} [get]
func (h *PartnerHandler) Resources(c *fiber.Ctx) error {
	resources, err := services.SharedResources(h.DB, c.Params("userId"))
	if err != nil {
		return serviceError(c, err, "partnerResources")
	}
	return utils.SuccessResponse(c, resources, fiber.StatusOK)
}
