package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/clients"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// GroupHandler handles the community group directory
type GroupHandler struct {
	DB       *gorm.DB
	Geocoder clients.Geocoder
}

type membershipRequest struct {
	UserID string `json:"userId"`
}

type messageRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

type seedGroupsRequest struct {
	Zip      string `json:"zip"`
	Query    string `json:"query"`
	Category string `json:"category"`
}

// ListGroups handles GET /api/groups
// @Summary List groups
// @Tags Groups
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} models.Group
// @Router /groups [get]
func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := services.ListGroups(h.DB, c.Query("category"))
	if err != nil {
		return serviceError(c, err, "listGroups")
	}
	return utils.SuccessResponse(c, groups, fiber.StatusOK)
}

// CreateGroup handles POST /api/groups
// @Summary Create group
// @Tags Groups
// @Accept json
// @Produce json
// @Param body body services.GroupInput true "Group"
// @Success 201 {object} models.Group
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	var input services.GroupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	group, err := services.CreateGroup(h.DB, input)
	if err != nil {
		return serviceError(c, err, "createGroup")
	}
	return utils.SuccessResponse(c, group, fiber.StatusCreated)
}

// JoinGroup handles POST /api/groups/:id/join
// @Summary Join group
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param body body membershipRequest true "User"
// @Success 200 {object} models.Membership
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/join [post]
func (h *GroupHandler) JoinGroup(c *fiber.Ctx) error {
	var body membershipRequest
	if err := c.BodyParser(&body); err != nil || body.UserID == "" {
		return utils.ValidationErrorResponse(c, "userId is required")
	}

	membership, err := services.JoinGroup(h.DB, c.Params("id"), body.UserID)
	if err != nil {
		return serviceError(c, err, "joinGroup")
	}
	return utils.SuccessResponse(c, membership, fiber.StatusOK)
}

// LeaveGroup handles POST /api/groups/:id/leave
// @Summary Leave group
// @Tags Groups
// @Accept json
// @Param id path string true "Group ID"
// @Param body body membershipRequest true "User"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/leave [post]
func (h *GroupHandler) LeaveGroup(c *fiber.Ctx) error {
	var body membershipRequest
	if err := c.BodyParser(&body); err != nil || body.UserID == "" {
		return utils.ValidationErrorResponse(c, "userId is required")
	}

	if err := services.LeaveGroup(h.DB, c.Params("id"), body.UserID); err != nil {
		return serviceError(c, err, "leaveGroup")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleFavorite handles POST /api/groups/:id/favorite
// @Summary Toggle group favorite
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param body body membershipRequest true "User"
// @Success 200 {object} map[string]bool
// @Router /groups/{id}/favorite [post]
func (h *GroupHandler) ToggleFavorite(c *fiber.Ctx) error {
	var body membershipRequest
	if err := c.BodyParser(&body); err != nil || body.UserID == "" {
		return utils.ValidationErrorResponse(c, "userId is required")
	}

	favorited, err := services.ToggleFavorite(h.DB, c.Params("id"), body.UserID)
	if err != nil {
		return serviceError(c, err, "toggleFavorite")
	}
	return utils.SuccessResponse(c, fiber.Map{"favorited": favorited}, fiber.StatusOK)
}

// PostMessage handles POST /api/groups/:id/messages
// @Summary Post group message
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param body body messageRequest true "Message"
// @Success 201 {object} models.GroupMessage
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/messages [post]
func (h *GroupHandler) PostMessage(c *fiber.Ctx) error {
	var body messageRequest
	if err := c.BodyParser(&body); err != nil || body.UserID == "" {
		return utils.ValidationErrorResponse(c, "userId is required")
	}

	message, err := services.PostGroupMessage(h.DB, c.Params("id"), body.UserID, body.Content)
	if err != nil {
		return serviceError(c, err, "postGroupMessage")
	}
	return utils.SuccessResponse(c, message, fiber.StatusCreated)
}

// ListMessages handles GET /api/groups/:id/messages
// @Summary List group messages
// @Tags Groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} models.GroupMessage
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/messages [get]
func (h *GroupHandler) ListMessages(c *fiber.Ctx) error {
	messages, err := services.ListGroupMessages(h.DB, c.Params("id"))
	if err != nil {
		return serviceError(c, err, "listGroupMessages")
	}
	return utils.SuccessResponse(c, messages, fiber.StatusOK)
}

// SeedFromPlaces handles POST /api/groups/seed
// @Summary Seed directory from places search
// @Description Geocode a zip and add nearby place candidates to the directory
// @Tags Groups
// @Accept json
// @Produce json
// @Param body body seedGroupsRequest true "Search parameters"
// @Success 200 {array} models.Group
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /groups/seed [post]
func (h *GroupHandler) SeedFromPlaces(c *fiber.Ctx) error {
	var body seedGroupsRequest
	if err := c.BodyParser(&body); err != nil || body.Zip == "" {
		return utils.ValidationErrorResponse(c, "zip is required")
	}
	if body.Query == "" {
		body.Query = "new parent support group"
	}

	added, err := services.SeedGroupsFromPlaces(c.Context(), h.DB, h.Geocoder, body.Zip, body.Query, body.Category)
	if err != nil {
		return serviceError(c, err, "seedGroups")
	}
	return utils.SuccessResponse(c, added, fiber.StatusOK)
}
