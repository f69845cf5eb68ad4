package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/types"
	"gorm.io/gorm"
)

// JournalInput is the typed request for creating or updating a journal entry.
type JournalInput struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

// CreateJournalEntry stores one journal entry.
func CreateJournalEntry(db *gorm.DB, input JournalInput) (*models.JournalEntry, error) {
	if input.UserID == "" || input.Content == "" {
		return nil, types.ErrValidation
	}
	if _, err := GetUser(db, input.UserID); err != nil {
		return nil, err
	}

	entry := models.JournalEntry{
		ID:      uuid.NewString(),
		UserID:  input.UserID,
		Title:   input.Title,
		Content: input.Content,
		Mood:    input.Mood,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListJournalEntries returns a user's journal, newest first.
func ListJournalEntries(db *gorm.DB, userID string) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateJournalEntry replaces the editable fields of an entry owned by the
// actor.
func UpdateJournalEntry(db *gorm.DB, actor types.Actor, entryID string, input JournalInput) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := db.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if entry.UserID != actor.UserID {
		return nil, types.ErrForbidden
	}

	entry.Title = input.Title
	entry.Content = input.Content
	entry.Mood = input.Mood
	if err := db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteJournalEntry removes an entry owned by the actor.
func DeleteJournalEntry(db *gorm.DB, actor types.Actor, entryID string) error {
	var entry models.JournalEntry
	if err := db.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrNotFound
		}
		return err
	}
	if entry.UserID != actor.UserID {
		return types.ErrForbidden
	}
	return db.Delete(&entry).Error
}
