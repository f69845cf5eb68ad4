package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/clients"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// ChatHandler handles the AI companion route
type ChatHandler struct {
	DB   *gorm.DB
	Chat clients.ChatResponder
}

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// SendMessage handles POST /api/chat
// @Summary Chat with the companion
// @Description Returns a companion reply; on upstream failure a safe fallback string, never an error
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body chatRequest true "Message"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /chat [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var body chatRequest
	if err := c.BodyParser(&body); err != nil || body.Message == "" {
		return utils.ValidationErrorResponse(c, "message is required")
	}

	chatCtx := clients.ChatContext{}
	if body.UserID != "" {
		if user, err := services.GetUser(h.DB, body.UserID); err == nil {
			chatCtx.PregnancyWeek = user.Week
			chatCtx.PregnancyStage = user.Stage
			chatCtx.IsPostpartum = user.IsPostpartum()
		}
	}

	reply := h.Chat.Reply(c.Context(), body.Message, chatCtx)
	return utils.SuccessResponse(c, fiber.Map{"reply": reply}, fiber.StatusOK)
}
