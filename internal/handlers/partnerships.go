package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/middleware"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/utils"
	"gorm.io/gorm"
)

// PartnershipHandler handles invite lifecycle and permission routes
type PartnershipHandler struct {
	DB *gorm.DB
}

type createPartnershipRequest struct {
	MotherID string `json:"motherId"`
	services.CreateInviteInput
}

type acceptPartnershipRequest struct {
	PartnerID string `json:"partnerId"`
}

type redeemInviteRequest struct {
	InviteCode string                `json:"inviteCode"`
	Partner    services.PartnerInput `json:"partner"`
}

// CreatePartnership handles POST /api/partnerships
// @Summary Create partner invite
// @Description Issue a pending partnership with a time-limited invite code
// @Tags Partnerships
// @Accept json
// @Produce json
// @Param body body createPartnershipRequest true "Invite parameters"
// @Success 201 {object} models.Partnership
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /partnerships [post]
func (h *PartnershipHandler) CreatePartnership(c *fiber.Ctx) error {
	var body createPartnershipRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}
	if body.MotherID == "" {
		return utils.ValidationErrorResponse(c, "motherId is required")
	}

	partnership, err := services.CreateInvite(h.DB, body.MotherID, body.CreateInviteInput)
	if err != nil {
		return serviceError(c, err, "createPartnership")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         partnership.ID,
		"inviteCode": partnership.InviteCode,
		"status":     partnership.Status,
		"expiresAt":  partnership.ExpiresAt,
	})
}

// AcceptPartnership handles POST /api/partnerships/:id/accept
// @Summary Accept partnership
// @Description Accept a pending partnership for an existing partner user
// @Tags Partnerships
// @Accept json
// @Produce json
// @Param id path string true "Partnership ID"
// @Param body body acceptPartnershipRequest true "Partner user id"
// @Success 200 {object} models.Partnership
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /partnerships/{id}/accept [post]
func (h *PartnershipHandler) AcceptPartnership(c *fiber.Ctx) error {
	var body acceptPartnershipRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}
	if body.PartnerID == "" {
		return utils.ValidationErrorResponse(c, "partnerId is required")
	}

	partnership, err := services.AcceptByID(h.DB, c.Params("id"), body.PartnerID)
	if err != nil {
		// An unusable invite on this route is a 404 on the partnership
		return utils.NotFoundResponse(c, "Partnership not found, or the invite is no longer valid")
	}

	return utils.SuccessResponse(c, fiber.Map{"partnership": partnership}, fiber.StatusOK)
}

// RedeemInvite handles POST /api/partnerships/redeem
// @Summary Redeem invite code
// @Description Redeem an invite code, creating or reusing the partner account
// @Tags Partnerships
// @Accept json
// @Produce json
// @Param body body redeemInviteRequest true "Invite code and partner identity"
// @Success 200 {object} models.Partnership
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /partnerships/redeem [post]
func (h *PartnershipHandler) RedeemInvite(c *fiber.Ctx) error {
	var body redeemInviteRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}
	if body.InviteCode == "" {
		return utils.ValidationErrorResponse(c, "inviteCode is required")
	}

	partnership, err := services.RedeemInvite(h.DB, body.InviteCode, body.Partner)
	if err != nil {
		return serviceError(c, err, "redeemInvite")
	}

	return utils.SuccessResponse(c, fiber.Map{"partnership": partnership}, fiber.StatusOK)
}

// UpdatePermissions handles PATCH /api/partnerships/:id/permissions
// @Summary Update visibility flags
// @Description Mother-only partial update of the four visibility flags
// @Tags Partnerships
// @Accept json
// @Produce json
// @Param id path string true "Partnership ID"
// @Param body body services.PermissionPatch true "Partial flags"
// @Success 200 {object} models.Partnership
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security ActorAuth
// @Router /partnerships/{id}/permissions [patch]
func (h *PartnershipHandler) UpdatePermissions(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return utils.ForbiddenResponse(c, "Missing caller identity")
	}

	var patch services.PermissionPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	partnership, err := services.UpdatePermissions(h.DB, actor, c.Params("id"), patch)
	if err != nil {
		return serviceError(c, err, "updatePermissions")
	}

	return utils.SuccessResponse(c, fiber.Map{"partnership": partnership}, fiber.StatusOK)
}

// RevokePartnership handles DELETE /api/partnerships/:id
// @Summary Revoke partnership
// @Description Mother-only revocation; shared reads go empty immediately
// @Tags Partnerships
// @Produce json
// @Param id path string true "Partnership ID"
// @Success 200 {object} models.Partnership
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security ActorAuth
// @Router /partnerships/{id} [delete]
func (h *PartnershipHandler) RevokePartnership(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return utils.ForbiddenResponse(c, "Missing caller identity")
	}

	partnership, err := services.Revoke(h.DB, actor, c.Params("id"))
	if err != nil {
		return serviceError(c, err, "revokePartnership")
	}

	return utils.SuccessResponse(c, fiber.Map{"partnership": partnership}, fiber.StatusOK)
}

// ListForMother handles GET /api/partnerships/mother/:id
// @Summary List partnerships for a mother
// @Tags Partnerships
// @Produce json
// @Param id path string true "Mother user ID"
// @Success 200 {array} models.Partnership
// @Router /partnerships/mother/{id} [get]
func (h *PartnershipHandler) ListForMother(c *fiber.Ctx) error {
	partnerships, err := services.PartnershipsForMother(h.DB, c.Params("id"))
	if err != nil {
		return serviceError(c, err, "listPartnerships")
	}
	return utils.SuccessResponse(c, partnerships, fiber.StatusOK)
}
