package models

import (
	"time"
)

// JournalEntry is a free-form entry owned by a single user.
type JournalEntry struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index" json:"userId"`
	Title     string    `gorm:"size:255" json:"title,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mood      string    `gorm:"size:64" json:"mood,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for JournalEntry
func (JournalEntry) TableName() string {
	return "journal_entries"
}
