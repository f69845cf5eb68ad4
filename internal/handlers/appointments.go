package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/middleware"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment routes
type AppointmentHandler struct {
	DB *gorm.DB
}

// CreateAppointment handles POST /api/appointments
// @Summary Create appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param body body services.AppointmentInput true "Appointment"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var input services.AppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	appointment, err := services.CreateAppointment(h.DB, input)
	if err != nil {
		return serviceError(c, err, "createAppointment")
	}

	return utils.SuccessResponse(c, appointment, fiber.StatusCreated)
}

// ListAppointments handles GET /api/appointments/:userId
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Param userId path string true "User ID"
// @Param upcoming query bool false "Only future appointments"
// @Success 200 {array} models.Appointment
// @Router /appointments/{userId} [get]
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	appointments, err := services.ListAppointments(h.DB, c.Params("userId"), c.QueryBool("upcoming"))
	if err != nil {
		return serviceError(c, err, "listAppointments")
	}
	return utils.SuccessResponse(c, appointments, fiber.StatusOK)
}

// DeleteAppointment handles DELETE /api/appointments/:id
// @Summary Delete appointment
// @Tags Appointments
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security ActorAuth
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return utils.ForbiddenResponse(c, "Missing caller identity")
	}

	if err := services.DeleteAppointment(h.DB, actor, c.Params("id")); err != nil {
		return serviceError(c, err, "deleteAppointment")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
