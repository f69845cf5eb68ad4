package models

import (
	"time"
)

// Pregnancy stages
const (
	StagePregnant   = "pregnant"
	StagePostpartum = "postpartum"
)

// User represents a mother or partner account. Users are created at
// onboarding and never hard-deleted.
type User struct {
	ID             string     `gorm:"type:char(36);primaryKey" json:"id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Zip            string     `gorm:"size:16" json:"zip,omitempty"`
	Stage          string     `gorm:"size:32" json:"stage,omitempty"`
	Week           int        `json:"week,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	BirthDate      *time.Time `json:"birthDate,omitempty"`
	OBMidwifeEmail string     `gorm:"size:255" json:"obMidwifeEmail,omitempty"`
	DoulaEmail     string     `gorm:"size:255" json:"doulaEmail,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// IsPostpartum reports whether the user has entered the postpartum stage.
func (u *User) IsPostpartum() bool {
	return u.Stage == StagePostpartum
}
