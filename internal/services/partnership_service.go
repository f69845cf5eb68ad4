package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/types"
	"gorm.io/gorm"
)

const inviteCodeLength = 6

// CreateInviteInput is the typed request for issuing a partner invite.
type CreateInviteInput struct {
	RelationshipType    string `json:"relationshipType"`
	CanViewCheckIns     bool   `json:"canViewCheckIns"`
	CanViewJournal      bool   `json:"canViewJournal"`
	CanViewAppointments bool   `json:"canViewAppointments"`
	CanViewResources    bool   `json:"canViewResources"`
}

// PartnerInput identifies or creates the partner account during redemption.
type PartnerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PermissionPatch is a partial update of the four visibility flags. Nil
// fields are left unchanged.
type PermissionPatch struct {
	CanViewCheckIns     *bool `json:"canViewCheckIns"`
	CanViewJournal      *bool `json:"canViewJournal"`
	CanViewAppointments *bool `json:"canViewAppointments"`
	CanViewResources    *bool `json:"canViewResources"`
}

// CreateInvite issues a pending partnership with a unique, time-limited
// invite code for the given mother.
func CreateInvite(db *gorm.DB, motherID string, input CreateInviteInput) (*models.Partnership, error) {
	var mother models.User
	if err := db.First(&mother, "id = ?", motherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	code, err := generateInviteCode(db)
	if err != nil {
		return nil, err
	}

	partnership := models.Partnership{
		ID:                  uuid.NewString(),
		MotherID:            motherID,
		RelationshipType:    input.RelationshipType,
		Status:              models.PartnershipPending,
		InviteCode:          code,
		ExpiresAt:           time.Now().UTC().Add(models.InviteTTL),
		CanViewCheckIns:     input.CanViewCheckIns,
		CanViewJournal:      input.CanViewJournal,
		CanViewAppointments: input.CanViewAppointments,
		CanViewResources:    input.CanViewResources,
	}

	if err := db.Create(&partnership).Error; err != nil {
		return nil, err
	}

	return &partnership, nil
}

// RedeemInvite accepts an invite by code, creating or reusing the partner
// account by email. The code is single-use: redemption flips the partnership
// to active. A pending invite past its expiry is flipped to expired here;
// expiry is checked lazily, there is no background sweep.
func RedeemInvite(db *gorm.DB, code string, partner PartnerInput) (*models.Partnership, error) {
	if partner.Email == "" {
		return nil, types.ErrValidation
	}

	var partnership models.Partnership
	if err := db.First(&partnership, "invite_code = ?", strings.ToUpper(strings.TrimSpace(code))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrInvalidOrExpiredCode
		}
		return nil, err
	}

	now := time.Now().UTC()
	if partnership.Status == models.PartnershipPending && now.After(partnership.ExpiresAt) {
		partnership.Status = models.PartnershipExpired
		if err := db.Model(&partnership).Update("status", models.PartnershipExpired).Error; err != nil {
			return nil, err
		}
		return nil, types.ErrInvalidOrExpiredCode
	}
	if !partnership.Redeemable(now) {
		return nil, types.ErrInvalidOrExpiredCode
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		partnerUser, err := findOrCreatePartner(tx, partner)
		if err != nil {
			return err
		}

		if err := ensureNoActivePartnership(tx, partnership.MotherID, partnerUser.ID); err != nil {
			return err
		}

		partnership.PartnerID = &partnerUser.ID
		partnership.Status = models.PartnershipActive
		partnership.AcceptedAt = &now
		partnership.RedeemedAt = &now
		return tx.Save(&partnership).Error
	})
	if err != nil {
		return nil, err
	}

	return &partnership, nil
}

// AcceptByID accepts a pending partnership for an existing partner user,
// validating the same redeemability window as code redemption.
func AcceptByID(db *gorm.DB, partnershipID, partnerID string) (*models.Partnership, error) {
	var partnership models.Partnership
	if err := db.First(&partnership, "id = ?", partnershipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if !partnership.Redeemable(now) {
		return nil, types.ErrInvalidOrExpiredCode
	}

	var partnerUser models.User
	if err := db.First(&partnerUser, "id = ?", partnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if err := ensureNoActivePartnership(db, partnership.MotherID, partnerID); err != nil {
		return nil, err
	}

	partnership.PartnerID = &partnerUser.ID
	partnership.Status = models.PartnershipActive
	partnership.AcceptedAt = &now
	partnership.RedeemedAt = &now
	if err := db.Save(&partnership).Error; err != nil {
		return nil, err
	}

	return &partnership, nil
}

// UpdatePermissions mutates the visibility flags. Only the mother may call
// it; the actor is checked here, not trusted from the route.
func UpdatePermissions(db *gorm.DB, actor types.Actor, partnershipID string, patch PermissionPatch) (*models.Partnership, error) {
	var partnership models.Partnership
	if err := db.First(&partnership, "id = ?", partnershipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if actor.UserID != partnership.MotherID {
		return nil, types.ErrForbidden
	}

	updates := map[string]interface{}{}
	if patch.CanViewCheckIns != nil {
		updates["can_view_check_ins"] = *patch.CanViewCheckIns
	}
	if patch.CanViewJournal != nil {
		updates["can_view_journal"] = *patch.CanViewJournal
	}
	if patch.CanViewAppointments != nil {
		updates["can_view_appointments"] = *patch.CanViewAppointments
	}
	if patch.CanViewResources != nil {
		updates["can_view_resources"] = *patch.CanViewResources
	}
	if len(updates) == 0 {
		return &partnership, nil
	}

	if err := db.Model(&partnership).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &partnership, nil
}

// Revoke sets the partnership to revoked. Mother-only; revoked is terminal
// and all subsequent partner reads come back empty.
func Revoke(db *gorm.DB, actor types.Actor, partnershipID string) (*models.Partnership, error) {
	var partnership models.Partnership
	if err := db.First(&partnership, "id = ?", partnershipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if actor.UserID != partnership.MotherID {
		return nil, types.ErrForbidden
	}

	if err := db.Model(&partnership).Update("status", models.PartnershipRevoked).Error; err != nil {
		return nil, err
	}
	partnership.Status = models.PartnershipRevoked

	return &partnership, nil
}

// PartnershipsForMother lists all partnerships issued by a mother.
func PartnershipsForMother(db *gorm.DB, motherID string) ([]models.Partnership, error) {
	var partnerships []models.Partnership
	if err := db.Where("mother_id = ?", motherID).Order("created_at DESC").Find(&partnerships).Error; err != nil {
		return nil, err
	}
	return partnerships, nil
}

// generateInviteCode produces a short uppercase code, collision-checked
// against existing rows.
func generateInviteCode(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
		code := raw[:inviteCodeLength]

		var count int64
		if err := db.Model(&models.Partnership{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invite code")
}

func findOrCreatePartner(tx *gorm.DB, input PartnerInput) (*models.User, error) {
	var user models.User
	err := tx.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(input.Email))).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ensureNoActivePartnership(tx *gorm.DB, motherID, partnerID string) error {
	var count int64
	err := tx.Model(&models.Partnership{}).
		Where("mother_id = ? AND partner_id = ? AND status = ?", motherID, partnerID, models.PartnershipActive).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return types.ErrDuplicateActivePartnership
	}
	return nil
}
