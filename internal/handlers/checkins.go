package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// CheckInHandler handles daily check-in routes. RedFlags is the configured
// concerning-feelings set.
type CheckInHandler struct {
	DB       *gorm.DB
	RedFlags []string
}

// CreateCheckIn handles POST /api/checkin
// @Summary Submit daily check-in
// @Description Persist the check-in; provider alerts are a side effect not reflected in the response
// @Tags CheckIns
// @Accept json
// @Produce json
// @Param body body services.CheckInInput true "Check-in"
// @Success 200 {object} models.CheckIn
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /checkin [post]
func (h *CheckInHandler) CreateCheckIn(c *fiber.Ctx) error {
	var input services.CheckInInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	checkIn, err := services.CreateCheckIn(h.DB, h.RedFlags, input)
	if err != nil {
		return serviceError(c, err, "createCheckIn")
	}

	return utils.SuccessResponse(c, fiber.Map{"checkIn": checkIn}, fiber.StatusOK)
}

// TodayCheckIn handles GET /api/checkin/today/:userId
// @Summary Get today's check-in
// @Tags CheckIns
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.CheckIn
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /checkin/today/{userId} [get]
func (h *CheckInHandler) TodayCheckIn(c *fiber.Ctx) error {
	checkIn, err := services.TodayCheckIn(h.DB, c.Params("userId"))
	if err != nil {
		return serviceError(c, err, "todayCheckIn")
	}
	return utils.SuccessResponse(c, checkIn, fiber.StatusOK)
}

// ListCheckIns handles GET /api/checkins/:userId
// @Summary List check-ins
// @Tags CheckIns
// @Produce json
// @Param userId path string true "User ID"
// @Param limit query int false "Max entries"
// @Success 200 {array} models.CheckIn
// @Router /checkins/{userId} [get]
func (h *CheckInHandler) ListCheckIns(c *fiber.Ctx) error {
	checkIns, err := services.ListCheckIns(h.DB, c.Params("userId"), c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err, "listCheckIns")
	}
	return utils.SuccessResponse(c, checkIns, fiber.StatusOK)
}
