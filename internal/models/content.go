package models

import (
	"time"
)

// Expert is a directory entry for a care professional.
type Expert struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Specialty string    `gorm:"size:128;index" json:"specialty,omitempty"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Resource is a curated article or link shown in the resource library.
type Resource struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Category  string    `gorm:"size:64;index" json:"category,omitempty"`
	URL       string    `gorm:"size:512" json:"url,omitempty"`
	Summary   string    `gorm:"type:text" json:"summary,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Affirmation is one daily affirmation line.
type Affirmation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"size:512;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for Expert
func (Expert) TableName() string {
	return "experts"
}

// TableName overrides the table name for Resource
func (Resource) TableName() string {
	return "resources"
}

// TableName overrides the table name for Affirmation
func (Affirmation) TableName() string {
	return "affirmations"
}
