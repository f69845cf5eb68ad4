package models

import (
	"time"
)

// Appointment is a provider visit tracked by a user.
type Appointment struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index" json:"userId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Provider  string    `gorm:"size:255" json:"provider,omitempty"`
	Location  string    `gorm:"size:255" json:"location,omitempty"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Appointment
func (Appointment) TableName() string {
	return "appointments"
}
