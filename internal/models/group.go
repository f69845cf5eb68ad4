package models

import (
	"time"
)

// Group is a community group in the directory. Directory entries may be
// seeded from a places search, in which case PlaceID carries the upstream id.
type Group struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"size:64;index" json:"category,omitempty"`
	City        string    `gorm:"size:128" json:"city,omitempty"`
	State       string    `gorm:"size:32" json:"state,omitempty"`
	Lat         float64   `json:"lat,omitempty"`
	Lng         float64   `json:"lng,omitempty"`
	PlaceID     string    `gorm:"size:255" json:"placeId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Members  []Membership   `gorm:"foreignKey:GroupID" json:"-"`
	Messages []GroupMessage `gorm:"foreignKey:GroupID" json:"-"`
}

// Membership joins a user to a group.
type Membership struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	GroupID   string    `gorm:"type:char(36);not null;index:idx_group_member,unique" json:"groupId"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_group_member,unique" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Favorite marks a group a user has starred.
type Favorite struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	GroupID   string    `gorm:"type:char(36);not null;index:idx_group_favorite,unique" json:"groupId"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_group_favorite,unique" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// GroupMessage is a message posted to a group's board.
type GroupMessage struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	GroupID   string    `gorm:"type:char(36);not null;index" json:"groupId"`
	UserID    string    `gorm:"type:char(36);not null" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for Group
func (Group) TableName() string {
	return "groups"
}

// TableName overrides the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}

// TableName overrides the table name for Favorite
func (Favorite) TableName() string {
	return "favorites"
}

// TableName overrides the table name for GroupMessage
func (GroupMessage) TableName() string {
	return "group_messages"
}
