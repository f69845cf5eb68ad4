package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/types"
	"gorm.io/gorm"
)

// AppointmentInput is the typed request for creating or replacing an
// appointment.
type AppointmentInput struct {
	UserID   string `json:"userId"`
	Title    string `json:"title"`
	Provider string `json:"provider"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

// CreateAppointment stores an appointment and, in the same transaction,
// writes a sanitized partner update for active partnerships that may view
// appointments.
func CreateAppointment(db *gorm.DB, input AppointmentInput) (*models.Appointment, error) {
	if input.UserID == "" || input.Title == "" || input.Date == "" {
		return nil, types.ErrValidation
	}

	date, err := parseISODate(input.Date)
	if err != nil || date == nil {
		return nil, types.ErrValidation
	}

	if _, err := GetUser(db, input.UserID); err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		ID:       uuid.NewString(),
		UserID:   input.UserID,
		Title:    input.Title,
		Provider: input.Provider,
		Location: input.Location,
		Date:     *date,
		Notes:    input.Notes,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		return writeAppointmentPartnerUpdates(tx, &appointment)
	})
	if err != nil {
		return nil, err
	}

	return &appointment, nil
}

// ListAppointments returns a user's appointments, optionally only upcoming
// ones, ordered by date ascending.
func ListAppointments(db *gorm.DB, userID string, upcomingOnly bool) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	query := db.Where("user_id = ?", userID)
	if upcomingOnly {
		query = query.Where("date >= ?", time.Now().UTC())
	}
	if err := query.Order("date ASC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// DeleteAppointment removes an appointment owned by the actor.
func DeleteAppointment(db *gorm.DB, actor types.Actor, appointmentID string) error {
	var appointment models.Appointment
	if err := db.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrNotFound
		}
		return err
	}
	if appointment.UserID != actor.UserID {
		return types.ErrForbidden
	}
	return db.Delete(&appointment).Error
}

// writeAppointmentPartnerUpdates snapshots the title and date only; location
// and notes stay private to the mother.
func writeAppointmentPartnerUpdates(tx *gorm.DB, appointment *models.Appointment) error {
	var partnerships []models.Partnership
	err := tx.Where("mother_id = ? AND status = ? AND can_view_appointments = ?",
		appointment.UserID, models.PartnershipActive, true).
		Find(&partnerships).Error
	if err != nil {
		return err
	}

	for _, p := range partnerships {
		payload, err := json.Marshal(map[string]interface{}{
			"title": appointment.Title,
			"date":  appointment.Date.Format(time.RFC3339),
		})
		if err != nil {
			return err
		}

		update := models.PartnerUpdate{
			ID:            uuid.NewString(),
			PartnershipID: p.ID,
			SourceType:    models.UpdateSourceAppointment,
			SourceID:      appointment.ID,
			Payload:       payload,
		}
		if err := tx.Create(&update).Error; err != nil {
			return err
		}
	}
	return nil
}
