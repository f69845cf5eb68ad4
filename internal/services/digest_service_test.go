package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type digestEmail struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type recordingSender struct {
	emails []digestEmail
}

func (r *recordingSender) Send(_ context.Context, to, subject, html, text string) bool {
	r.emails = append(r.emails, digestEmail{To: to, Subject: subject, HTML: html, Text: text})
	return true
}

func insertCheckInOn(t *testing.T, db *gorm.DB, userID, feeling string, daysAgo int) {
	t.Helper()

	day := time.Now().UTC().AddDate(0, 0, -daysAgo)
	entry := models.CheckIn{
		ID:        uuid.NewString(),
		UserID:    userID,
		EntryDate: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		Feeling:   feeling,
	}
	require.NoError(t, db.Create(&entry).Error)
}

func TestSendWeeklyDigests(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)

	insertCheckInOn(t, db, mother.ID, "good", 3)
	insertCheckInOn(t, db, mother.ID, "overwhelmed", 1)

	sender := &recordingSender{}
	err := services.SendWeeklyDigests(context.Background(), db, sender, testRedFlags,
		"Your weekly wellness summary", zap.NewNop())
	require.NoError(t, err)

	// One digest per registered provider
	require.Len(t, sender.emails, 2)
	recipients := []string{sender.emails[0].To, sender.emails[1].To}
	assert.Contains(t, recipients, "ob@example.com")
	assert.Contains(t, recipients, "doula@example.com")

	digest := sender.emails[0]
	assert.Equal(t, "Your weekly wellness summary", digest.Subject)
	assert.Contains(t, digest.HTML, "good")
	assert.Contains(t, digest.HTML, "overwhelmed")
	// The concerning entry is flagged, the ordinary one is not
	assert.Contains(t, digest.Text, "overwhelmed [flagged]")
	assert.NotContains(t, digest.Text, "good [flagged]")
}

func TestSendWeeklyDigests_SkipsUsersWithoutProviders(t *testing.T) {
	db := setupTestDB(t)
	partner := createTestPartner(t, db) // no provider emails

	insertCheckInOn(t, db, partner.ID, "good", 1)

	sender := &recordingSender{}
	err := services.SendWeeklyDigests(context.Background(), db, sender, testRedFlags,
		"Your weekly wellness summary", zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, sender.emails)
}

func TestSendWeeklyDigests_OldEntriesExcluded(t *testing.T) {
	db := setupTestDB(t)
	mother := createTestMother(t, db)

	insertCheckInOn(t, db, mother.ID, "ancient-feeling", 20)

	sender := &recordingSender{}
	err := services.SendWeeklyDigests(context.Background(), db, sender, testRedFlags,
		"Your weekly wellness summary", zap.NewNop())
	require.NoError(t, err)

	require.NotEmpty(t, sender.emails)
	assert.NotContains(t, sender.emails[0].HTML, "ancient-feeling")
	assert.Contains(t, sender.emails[0].HTML, "No check-ins recorded this week.")
}
