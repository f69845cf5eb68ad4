package models

import (
	"time"

	"gorm.io/datatypes"
)

// PartnerUpdate source types
const (
	UpdateSourceCheckIn     = "checkin"
	UpdateSourceAppointment = "appointment"
	UpdateSourceMilestone   = "milestone"
)

// PartnerUpdate is a derived, sanitized notification record generated from a
// source event for a specific partnership. The payload is a redacted snapshot
// written at event time, so the permission boundary is enforced at write time
// rather than read time.
type PartnerUpdate struct {
	ID            string         `gorm:"type:char(36);primaryKey" json:"id"`
	PartnershipID string         `gorm:"type:char(36);not null;index" json:"partnershipId"`
	SourceType    string         `gorm:"size:32;not null" json:"sourceType"`
	SourceID      string         `gorm:"type:char(36);not null" json:"sourceId"`
	Payload       datatypes.JSON `gorm:"type:json" json:"payload"`
	ReadAt        *time.Time     `json:"readAt,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// TableName overrides the table name for PartnerUpdate
func (PartnerUpdate) TableName() string {
	return "partner_updates"
}
