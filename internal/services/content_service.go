package services

import (
	"time"

	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/types"
	"gorm.io/gorm"
)

// ListExperts returns the expert directory, optionally filtered by specialty.
func ListExperts(db *gorm.DB, specialty string) ([]models.Expert, error) {
	experts := []models.Expert{}
	query := db.Order("name ASC")
	if specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}
	if err := query.Find(&experts).Error; err != nil {
		return nil, err
	}
	return experts, nil
}

// ListResources returns the resource library, optionally filtered by
// category.
func ListResources(db *gorm.DB, category string) ([]models.Resource, error) {
	resources := []models.Resource{}
	query := db.Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// AffirmationOfTheDay picks today's affirmation by rotating through the
// seeded set on day-of-year, so every caller sees the same line on a given
// day.
func AffirmationOfTheDay(db *gorm.DB) (*models.Affirmation, error) {
	var affirmations []models.Affirmation
	if err := db.Order("id ASC").Find(&affirmations).Error; err != nil {
		return nil, err
	}
	if len(affirmations) == 0 {
		return nil, types.ErrNotFound
	}

	index := time.Now().UTC().YearDay() % len(affirmations)
	return &affirmations[index], nil
}
