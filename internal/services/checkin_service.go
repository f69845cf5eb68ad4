package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/types"
	"gorm.io/gorm"
)

// CheckInInput is the typed request for a daily check-in.
type CheckInInput struct {
	UserID           string `json:"userId"`
	Feeling          string `json:"feeling"`
	BodyCare         string `json:"bodyCare"`
	FeelingSupported string `json:"feelingSupported"`
	Notes            string `json:"notes"`
}

// CreateCheckIn persists a daily check-in in one transaction together with
// its side-effect rows: sanitized partner updates for active partnerships
// that can view check-ins, and, when the feeling is in the concerning set,
// one notification intent per registered provider with a non-empty email.
// The check-in write is authoritative; delivery happens later via the outbox
// worker and never affects this call.
//
// One check-in per user per calendar day: a second submission the same day
// updates the existing row, refreshes its partner-update snapshots in place,
// and enqueues alerts only when the feeling newly enters the concerning set,
// so each concerning check-in yields at most one intent per provider.
func CreateCheckIn(db *gorm.DB, redFlags []string, input CheckInInput) (*models.CheckIn, error) {
	if input.UserID == "" || input.Feeling == "" {
		return nil, types.ErrValidation
	}

	var user models.User
	if err := db.First(&user, "id = ?", input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	var checkIn models.CheckIn
	today := dateOnly(time.Now().UTC())

	err := db.Transaction(func(tx *gorm.DB) error {
		wasConcerning := false

		err := tx.Where("user_id = ? AND entry_date = ?", user.ID, today).First(&checkIn).Error
		switch {
		case err == nil:
			wasConcerning = IsConcerning(checkIn.Feeling, redFlags)
			checkIn.Feeling = input.Feeling
			checkIn.BodyCare = input.BodyCare
			checkIn.FeelingSupported = input.FeelingSupported
			checkIn.Notes = input.Notes
			if err := tx.Save(&checkIn).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			checkIn = models.CheckIn{
				ID:               uuid.NewString(),
				UserID:           user.ID,
				EntryDate:        today,
				Feeling:          input.Feeling,
				BodyCare:         input.BodyCare,
				FeelingSupported: input.FeelingSupported,
				Notes:            input.Notes,
			}
			if err := tx.Create(&checkIn).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if err := writeCheckInPartnerUpdates(tx, &checkIn); err != nil {
			return err
		}

		if IsConcerning(checkIn.Feeling, redFlags) && !wasConcerning {
			if err := enqueueProviderAlerts(tx, &user, &checkIn); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &checkIn, nil
}

// TodayCheckIn returns the user's check-in for the current calendar day, or
// ErrNotFound when there is none. The per-day uniqueness constraint makes
// this read deterministic.
func TodayCheckIn(db *gorm.DB, userID string) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	err := db.Where("user_id = ? AND entry_date = ?", userID, dateOnly(time.Now().UTC())).
		First(&checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

// ListCheckIns returns a user's check-ins newest first.
func ListCheckIns(db *gorm.DB, userID string, limit int) ([]models.CheckIn, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	checkIns := []models.CheckIn{}
	if err := db.Where("user_id = ?", userID).
		Order("entry_date DESC").
		Limit(limit).
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

// IsConcerning reports whether a feeling is in the configured concerning set.
func IsConcerning(feeling string, redFlags []string) bool {
	needle := strings.ToLower(strings.TrimSpace(feeling))
	for _, flag := range redFlags {
		if needle == flag {
			return true
		}
	}
	return false
}

// writeCheckInPartnerUpdates writes a redacted snapshot to each active
// partnership that may view check-ins. Free-text notes never leave the
// mother's account. A partnership holds one snapshot per check-in row: a
// same-day resubmission refreshes the existing snapshot instead of adding a
// second feed entry.
func writeCheckInPartnerUpdates(tx *gorm.DB, checkIn *models.CheckIn) error {
	var partnerships []models.Partnership
	err := tx.Where("mother_id = ? AND status = ? AND can_view_check_ins = ?",
		checkIn.UserID, models.PartnershipActive, true).
		Find(&partnerships).Error
	if err != nil {
		return err
	}

	for _, p := range partnerships {
		payload, err := json.Marshal(map[string]interface{}{
			"feeling":   checkIn.Feeling,
			"entryDate": checkIn.EntryDate.Format("2006-01-02"),
		})
		if err != nil {
			return err
		}

		var existing models.PartnerUpdate
		err = tx.Where("partnership_id = ? AND source_type = ? AND source_id = ?",
			p.ID, models.UpdateSourceCheckIn, checkIn.ID).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Payload = payload
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			update := models.PartnerUpdate{
				ID:            uuid.NewString(),
				PartnershipID: p.ID,
				SourceType:    models.UpdateSourceCheckIn,
				SourceID:      checkIn.ID,
				Payload:       payload,
			}
			if err := tx.Create(&update).Error; err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}

// enqueueProviderAlerts appends one outbox intent per provider with a
// registered email address.
func enqueueProviderAlerts(tx *gorm.DB, user *models.User, checkIn *models.CheckIn) error {
	providers := []struct {
		role  string
		email string
	}{
		{models.ProviderOBMidwife, user.OBMidwifeEmail},
		{models.ProviderDoula, user.DoulaEmail},
	}

	for _, provider := range providers {
		if provider.email == "" {
			continue
		}

		subject, html, text := composeAlertEmail(user, checkIn)
		intent := models.NotificationIntent{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			SourceType:   models.UpdateSourceCheckIn,
			SourceID:     checkIn.ID,
			ProviderRole: provider.role,
			Recipient:    provider.email,
			Subject:      subject,
			HTMLBody:     html,
			TextBody:     text,
			Status:       models.IntentPending,
		}
		if err := tx.Create(&intent).Error; err != nil {
			return err
		}
	}
	return nil
}

func composeAlertEmail(user *models.User, checkIn *models.CheckIn) (subject, html, text string) {
	day := checkIn.EntryDate.Format("January 2, 2006")
	subject = fmt.Sprintf("Wellness alert for %s", user.Name)
	html = fmt.Sprintf(`<html><body>
<p>%s reported feeling <strong>%s</strong> in their daily check-in on %s.</p>
<p>This note is sent because you are listed as a care provider. Please consider reaching out.</p>
<p style="font-size:12px;color:#666;">Automated alert — do not reply.</p>
</body></html>`, user.Name, checkIn.Feeling, day)
	text = fmt.Sprintf("%s reported feeling %q in their daily check-in on %s. Please consider reaching out.",
		user.Name, checkIn.Feeling, day)
	return subject, html, text
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
