package services_test

import (
	"testing"

	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := services.CreateUser(db, services.UserInput{
		Name:    "Ada",
		Email:   "  Ada@Example.COM ",
		Zip:     "94110",
		Stage:   models.StagePregnant,
		Week:    18,
		DueDate: "2026-12-01",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	require.NotNil(t, user.DueDate)
	assert.Equal(t, "2026-12-01", user.DueDate.Format("2006-01-02"))
	assert.Nil(t, user.BirthDate)
}

func TestCreateUser_Validation(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.CreateUser(db, services.UserInput{Email: "a@b.com"})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = services.CreateUser(db, services.UserInput{
		Name:    "Ada",
		Email:   "a@b.com",
		DueDate: "next tuesday",
	})
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestUpdateUser_DueDateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)

	dueDate := "2026-11-15T00:00:00Z"
	updated, err := services.UpdateUser(db, mother.ID, services.UserPatch{
		DueDate: &dueDate,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, "2026-11-15", updated.DueDate.UTC().Format("2006-01-02"))

	// Re-read through the service: the stored date survives unchanged
	fetched, err := services.GetUser(db, mother.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.DueDate)
	assert.True(t, updated.DueDate.Equal(*fetched.DueDate))
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)

	week := 36
	stage := models.StagePostpartum
	updated, err := services.UpdateUser(db, mother.ID, services.UserPatch{
		Week:  &week,
		Stage: &stage,
	})
	require.NoError(t, err)

	assert.Equal(t, 36, updated.Week)
	assert.Equal(t, models.StagePostpartum, updated.Stage)
	// Untouched fields keep their values
	assert.Equal(t, mother.Name, updated.Name)
	assert.Equal(t, mother.OBMidwifeEmail, updated.OBMidwifeEmail)
	assert.True(t, updated.IsPostpartum())
}

func TestUpdateUser_NotFound(t *testing.T) {
	db := setupTestDB(t)

	name := "ghost"
	_, err := services.UpdateUser(db, "no-such-id", services.UserPatch{Name: &name})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = services.GetUser(db, "no-such-id")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
