package services_test

import (
	"testing"

	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/nestwell/nestwell/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRedFlags = []string{"pain", "overwhelmed", "disconnected", "anxious"}

func TestCreateCheckIn_NotConcerning(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)

	checkIn, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:           mother.ID,
		Feeling:          "good",
		BodyCare:         "rested",
		FeelingSupported: "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, "good", checkIn.Feeling)

	// No alert intents for a feeling outside the concerning set
	var count int64
	require.NoError(t, db.Model(&models.NotificationIntent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateCheckIn_ConcerningAlertsEachProvider(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db) // both provider emails set

	checkIn, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "overwhelmed",
	})
	require.NoError(t, err)

	var intents []models.NotificationIntent
	require.NoError(t, db.Order("provider_role ASC").Find(&intents).Error)
	require.Len(t, intents, 2)

	recipients := []string{intents[0].Recipient, intents[1].Recipient}
	assert.Contains(t, recipients, "ob@example.com")
	assert.Contains(t, recipients, "doula@example.com")
	for _, intent := range intents {
		assert.Equal(t, models.IntentPending, intent.Status)
		assert.Equal(t, checkIn.ID, intent.SourceID)
	}
}

func TestCreateCheckIn_OnlyProvidersWithEmail(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", mother.ID).Update("doula_email", "").Error)

	_, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "overwhelmed",
	})
	require.NoError(t, err)

	// Exactly one intent, addressed to the OB
	var intents []models.NotificationIntent
	require.NoError(t, db.Find(&intents).Error)
	require.Len(t, intents, 1)
	assert.Equal(t, models.ProviderOBMidwife, intents[0].ProviderRole)
	assert.Equal(t, "ob@example.com", intents[0].Recipient)
}

func TestCreateCheckIn_OnePerDay(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)

	first, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "good",
	})
	require.NoError(t, err)

	second, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "tired",
	})
	require.NoError(t, err)

	// Same calendar day updates the same row
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.CheckIn{}).Where("user_id = ?", mother.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	today, err := services.TodayCheckIn(db, mother.ID)
	require.NoError(t, err)
	assert.Equal(t, "tired", today.Feeling)
}

func TestCreateCheckIn_SameDayResubmissionAlertsOnce(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db) // both provider emails set

	first, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "overwhelmed",
	})
	require.NoError(t, err)

	second, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "overwhelmed",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	// Still exactly one intent per provider for this check-in
	var count int64
	require.NoError(t, db.Model(&models.NotificationIntent{}).
		Where("source_id = ?", first.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateCheckIn_SameDayEscalationAlerts(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)

	// An ordinary morning entry enqueues nothing
	checkIn, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "good",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.NotificationIntent{}).Count(&count).Error)
	require.Zero(t, count)

	// The feeling turning concerning later the same day alerts the providers
	_, err = services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "overwhelmed",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.NotificationIntent{}).
		Where("source_id = ?", checkIn.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// A further concerning resubmission does not alert again
	_, err = services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "pain",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.NotificationIntent{}).
		Where("source_id = ?", checkIn.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateCheckIn_SameDayResubmissionRefreshesSnapshot(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)
	partner := createTestPartner(t, db)
	partnership := createActivePartnership(t, db, mother.ID, partner.ID, true, false, false, false)

	_, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "good",
	})
	require.NoError(t, err)

	_, err = services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "tired",
	})
	require.NoError(t, err)

	// One feed entry per check-in row, carrying the latest feeling
	var updates []models.PartnerUpdate
	require.NoError(t, db.Where("partnership_id = ?", partnership.ID).Find(&updates).Error)
	require.Len(t, updates, 1)
	assert.Contains(t, string(updates[0].Payload), "tired")
	assert.NotContains(t, string(updates[0].Payload), "good")
}

func TestCreateCheckIn_WritesPartnerUpdates(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)
	partner := createTestPartner(t, db)
	partnership := createActivePartnership(t, db, mother.ID, partner.ID, true, false, false, false)

	checkIn, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "good",
		Notes:   "private thoughts",
	})
	require.NoError(t, err)

	var updates []models.PartnerUpdate
	require.NoError(t, db.Where("partnership_id = ?", partnership.ID).Find(&updates).Error)
	require.Len(t, updates, 1)
	assert.Equal(t, models.UpdateSourceCheckIn, updates[0].SourceType)
	assert.Equal(t, checkIn.ID, updates[0].SourceID)

	// The snapshot is redacted: feeling only, never the free-text notes
	assert.Contains(t, string(updates[0].Payload), "good")
	assert.NotContains(t, string(updates[0].Payload), "private thoughts")
}

func TestCreateCheckIn_NoUpdateWithoutFlag(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)
	partner := createTestPartner(t, db)
	createActivePartnership(t, db, mother.ID, partner.ID, false, true, true, true)

	_, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  mother.ID,
		Feeling: "good",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.PartnerUpdate{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateCheckIn_UnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.CreateCheckIn(db, testRedFlags, services.CheckInInput{
		UserID:  "no-such-user",
		Feeling: "good",
	})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTodayCheckIn_None(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)

	_, err := services.TodayCheckIn(db, mother.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestIsConcerning(t *testing.T) {
	assert.True(t, services.IsConcerning("Overwhelmed", testRedFlags))
	assert.True(t, services.IsConcerning("  pain ", testRedFlags))
	assert.False(t, services.IsConcerning("good", testRedFlags))
	assert.False(t, services.IsConcerning("", testRedFlags))
}
