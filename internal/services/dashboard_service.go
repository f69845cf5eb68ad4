package services

import (
	"errors"
	"time"

	"github.com/nestwell/nestwell/internal/models"
	"gorm.io/gorm"
)

const recentCheckInLimit = 7

// PartnerDashboard is the partner-facing view of a mother's data. Every
// section is filtered server-side by the partnership's visibility flags
// before serialization; a partner with no active partnership sees empty
// sections, not an error.
type PartnerDashboard struct {
	Mother               *models.User         `json:"mother"`
	Partnership          *models.Partnership  `json:"partnership"`
	RecentCheckIns       []models.CheckIn     `json:"recentCheckIns"`
	UpcomingAppointments []models.Appointment `json:"upcomingAppointments"`
}

// ActivePartnershipForPartner resolves the active partnership where the
// given user is the partner, or nil when there is none.
func ActivePartnershipForPartner(db *gorm.DB, partnerID string) (*models.Partnership, error) {
	var partnership models.Partnership
	err := db.Where("partner_id = ? AND status = ?", partnerID, models.PartnershipActive).
		First(&partnership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partnership, nil
}

// GetPartnerDashboard builds the filtered dashboard for a partner user.
// Check-ins and appointments are each gated by their own flag; the flags are
// independent of one another.
func GetPartnerDashboard(db *gorm.DB, partnerID string) (*PartnerDashboard, error) {
	dashboard := &PartnerDashboard{
		RecentCheckIns:       []models.CheckIn{},
		UpcomingAppointments: []models.Appointment{},
	}

	partnership, err := ActivePartnershipForPartner(db, partnerID)
	if err != nil {
		return nil, err
	}
	if partnership == nil {
		return dashboard, nil
	}

	var mother models.User
	if err := db.First(&mother, "id = ?", partnership.MotherID).Error; err != nil {
		return nil, err
	}

	dashboard.Mother = &mother
	dashboard.Partnership = partnership

	if partnership.CanViewCheckIns {
		if err := db.Where("user_id = ?", partnership.MotherID).
			Order("entry_date DESC").
			Limit(recentCheckInLimit).
			Find(&dashboard.RecentCheckIns).Error; err != nil {
			return nil, err
		}
	}

	if partnership.CanViewAppointments {
		if err := db.Where("user_id = ? AND date >= ?", partnership.MotherID, time.Now().UTC()).
			Order("date ASC").
			Find(&dashboard.UpcomingAppointments).Error; err != nil {
			return nil, err
		}
	}

	return dashboard, nil
}

// SharedJournalEntries returns the mother's journal for the partner, or an
// empty slice when no active partnership grants journal visibility.
func SharedJournalEntries(db *gorm.DB, partnerID string) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}

	partnership, err := ActivePartnershipForPartner(db, partnerID)
	if err != nil {
		return nil, err
	}
	if partnership == nil || !partnership.CanViewJournal {
		return entries, nil
	}

	if err := db.Where("user_id = ?", partnership.MotherID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SharedResources returns the curated resource library to the partner,
// gated by the resources flag. The flag controls whether the partner sees
// the library at all; there is no per-resource selection.
func SharedResources(db *gorm.DB, partnerID string) ([]models.Resource, error) {
	resources := []models.Resource{}

	partnership, err := ActivePartnershipForPartner(db, partnerID)
	if err != nil {
		return nil, err
	}
	if partnership == nil || !partnership.CanViewResources {
		return resources, nil
	}

	if err := db.Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// PartnerUpdates lists the sanitized update feed for a partner's active
// partnership, newest first.
func PartnerUpdates(db *gorm.DB, partnerID string) ([]models.PartnerUpdate, error) {
	updates := []models.PartnerUpdate{}

	partnership, err := ActivePartnershipForPartner(db, partnerID)
	if err != nil {
		return nil, err
	}
	if partnership == nil {
		return updates, nil
	}

	if err := db.Where("partnership_id = ?", partnership.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}
