package models

import (
	"time"
)

// Notification intent states
const (
	IntentPending = "pending"
	IntentSent    = "sent"
	IntentFailed  = "failed"
)

// Provider roles addressed by alert and digest emails
const (
	ProviderOBMidwife = "ob_midwife"
	ProviderDoula     = "doula"
)

// NotificationIntent is an outbox row: the intent to send one email, appended
// in the same transaction as the event that triggered it and drained by a
// background worker. Delivery is at-most-once; a failed send is recorded, not
// retried.
type NotificationIntent struct {
	ID           string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID       string     `gorm:"type:char(36);not null;index" json:"userId"`
	SourceType   string     `gorm:"size:32;not null" json:"sourceType"`
	SourceID     string     `gorm:"type:char(36)" json:"sourceId,omitempty"`
	ProviderRole string     `gorm:"size:32;not null" json:"providerRole"`
	Recipient    string     `gorm:"size:255;not null" json:"recipient"`
	Subject      string     `gorm:"size:255;not null" json:"subject"`
	HTMLBody     string     `gorm:"type:text" json:"-"`
	TextBody     string     `gorm:"type:text" json:"-"`
	Status       string     `gorm:"size:16;not null;default:pending;index" json:"status"`
	AttemptedAt  *time.Time `json:"attemptedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TableName overrides the table name for NotificationIntent
func (NotificationIntent) TableName() string {
	return "notification_intents"
}
