package models

import (
	"time"
)

// CheckIn is one mother-authored daily wellness entry. EntryDate carries the
// calendar day; the unique index keeps one row per user per day, so a second
// check-in on the same day updates the existing row and "today's check-in"
// reads resolve deterministically.
type CheckIn struct {
	ID               string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID           string    `gorm:"type:char(36);not null;uniqueIndex:uidx_checkin_user_date" json:"userId"`
	EntryDate        time.Time `gorm:"type:date;not null;uniqueIndex:uidx_checkin_user_date" json:"entryDate"`
	Feeling          string    `gorm:"size:64;not null" json:"feeling"`
	BodyCare         string    `gorm:"size:255" json:"bodyCare,omitempty"`
	FeelingSupported string    `gorm:"size:255" json:"feelingSupported,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TableName overrides the table name for CheckIn
func (CheckIn) TableName() string {
	return "check_ins"
}
