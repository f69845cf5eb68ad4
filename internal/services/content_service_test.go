package services_test

import (
	"testing"

	"github.com/nestwell/nestwell/internal/database"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffirmationOfTheDay(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, database.Seed(db))

	first, err := services.AffirmationOfTheDay(db)
	require.NoError(t, err)
	assert.NotEmpty(t, first.Text)

	// Stable within the day
	second, err := services.AffirmationOfTheDay(db)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAffirmationOfTheDay_Empty(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.AffirmationOfTheDay(db)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, database.Seed(db))
	var before int64
	require.NoError(t, db.Model(&models.Affirmation{}).Count(&before).Error)
	require.NotZero(t, before)

	require.NoError(t, database.Seed(db))
	var after int64
	require.NoError(t, db.Model(&models.Affirmation{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestListExpertsAndResources(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, database.Seed(db))

	experts, err := services.ListExperts(db, "")
	require.NoError(t, err)
	assert.NotEmpty(t, experts)

	resources, err := services.ListResources(db, "")
	require.NoError(t, err)
	assert.NotEmpty(t, resources)

	none, err := services.ListExperts(db, "no-such-specialty")
	require.NoError(t, err)
	assert.Empty(t, none)
}
