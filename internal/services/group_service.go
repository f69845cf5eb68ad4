package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/clients"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/types"
	"gorm.io/gorm"
)

// GroupInput is the typed request for creating a group.
type GroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// ListGroups returns directory entries, optionally filtered by category.
func ListGroups(db *gorm.DB, category string) ([]models.Group, error) {
	groups := []models.Group{}
	query := db.Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup adds a group to the directory.
func CreateGroup(db *gorm.DB, input GroupInput) (*models.Group, error) {
	if input.Name == "" {
		return nil, types.ErrValidation
	}
	group := models.Group{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		City:        input.City,
		State:       input.State,
	}
	if err := db.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// JoinGroup creates a membership; joining twice is a no-op.
func JoinGroup(db *gorm.DB, groupID, userID string) (*models.Membership, error) {
	if err := ensureGroup(db, groupID); err != nil {
		return nil, err
	}

	var existing models.Membership
	err := db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	membership := models.Membership{
		ID:      uuid.NewString(),
		GroupID: groupID,
		UserID:  userID,
	}
	if err := db.Create(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// LeaveGroup removes a membership.
func LeaveGroup(db *gorm.DB, groupID, userID string) error {
	result := db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ToggleFavorite stars or unstars a group for a user and reports the new
// state.
func ToggleFavorite(db *gorm.DB, groupID, userID string) (bool, error) {
	if err := ensureGroup(db, groupID); err != nil {
		return false, err
	}

	var existing models.Favorite
	err := db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&existing).Error
	if err == nil {
		if err := db.Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	favorite := models.Favorite{
		ID:      uuid.NewString(),
		GroupID: groupID,
		UserID:  userID,
	}
	if err := db.Create(&favorite).Error; err != nil {
		return false, err
	}
	return true, nil
}

// PostGroupMessage adds a message to a group's board.
func PostGroupMessage(db *gorm.DB, groupID, userID, content string) (*models.GroupMessage, error) {
	if content == "" {
		return nil, types.ErrValidation
	}
	if err := ensureGroup(db, groupID); err != nil {
		return nil, err
	}

	message := models.GroupMessage{
		ID:      uuid.NewString(),
		GroupID: groupID,
		UserID:  userID,
		Content: content,
	}
	if err := db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListGroupMessages returns a group's board, newest first.
func ListGroupMessages(db *gorm.DB, groupID string) ([]models.GroupMessage, error) {
	if err := ensureGroup(db, groupID); err != nil {
		return nil, err
	}
	messages := []models.GroupMessage{}
	if err := db.Where("group_id = ?", groupID).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// SeedGroupsFromPlaces looks up nearby place candidates for a zip code and
// inserts any the directory does not already carry. Returns the groups added.
func SeedGroupsFromPlaces(ctx context.Context, db *gorm.DB, geocoder clients.Geocoder, zip, query, category string) ([]models.Group, error) {
	location, err := geocoder.GeocodeZip(ctx, zip)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return []models.Group{}, nil
	}

	places, err := geocoder.SearchNearby(ctx, query, location.Lat, location.Lng)
	if err != nil {
		return nil, err
	}

	added := []models.Group{}
	for _, place := range places {
		var count int64
		if err := db.Model(&models.Group{}).Where("place_id = ?", place.PlaceID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}

		group := models.Group{
			ID:       uuid.NewString(),
			Name:     place.Name,
			Category: category,
			City:     location.City,
			State:    location.State,
			Lat:      place.Lat,
			Lng:      place.Lng,
			PlaceID:  place.PlaceID,
		}
		if err := db.Create(&group).Error; err != nil {
			return nil, err
		}
		added = append(added, group)
	}
	return added, nil
}

func ensureGroup(db *gorm.DB, groupID string) error {
	var count int64
	if err := db.Model(&models.Group{}).Where("id = ?", groupID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return types.ErrNotFound
	}
	return nil
}
