package models

import (
	"time"
)

// Partnership lifecycle states
const (
	PartnershipPending = "pending"
	PartnershipActive  = "active"
	PartnershipRevoked = "revoked"
	PartnershipExpired = "expired"
)

// InviteTTL is the validity window of a freshly issued invite code.
const InviteTTL = 7 * 24 * time.Hour

// Partnership is the directed sharing link from a mother to a partner
// account. The invite code is single-use; the four visibility flags gate
// what the partner may read, independently per category, and are mutable
// only by the mother. Data sharing is live only while Status is active.
type Partnership struct {
	ID               string     `gorm:"type:char(36);primaryKey" json:"id"`
	MotherID         string     `gorm:"type:char(36);not null;index:idx_mother_partner,unique" json:"motherId"`
	PartnerID        *string    `gorm:"type:char(36);index:idx_mother_partner,unique" json:"partnerId,omitempty"`
	RelationshipType string     `gorm:"size:64" json:"relationshipType,omitempty"`
	Status           string     `gorm:"size:16;not null;default:pending;index" json:"status"`
	InviteCode       string     `gorm:"size:12;uniqueIndex;not null" json:"inviteCode,omitempty"`
	ExpiresAt        time.Time  `gorm:"not null" json:"expiresAt"`
	AcceptedAt       *time.Time `json:"acceptedAt,omitempty"`
	RedeemedAt       *time.Time `json:"redeemedAt,omitempty"`

	CanViewCheckIns     bool `gorm:"not null;default:false" json:"canViewCheckIns"`
	CanViewJournal      bool `gorm:"not null;default:false" json:"canViewJournal"`
	CanViewAppointments bool `gorm:"not null;default:false" json:"canViewAppointments"`
	CanViewResources    bool `gorm:"not null;default:false" json:"canViewResources"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Partnership
func (Partnership) TableName() string {
	return "partnerships"
}

// Redeemable reports whether the invite can still be accepted at t.
func (p *Partnership) Redeemable(t time.Time) bool {
	return p.Status == PartnershipPending && !t.After(p.ExpiresAt)
}
