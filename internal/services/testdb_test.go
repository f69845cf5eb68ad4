package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/database"
	"github.com/nestwell/nestwell/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createTestMother inserts a mother account with both provider emails set
func createTestMother(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		ID:             uuid.NewString(),
		Name:           "Ada",
		Email:          uuid.NewString() + "@example.com",
		Stage:          models.StagePregnant,
		Week:           32,
		OBMidwifeEmail: "ob@example.com",
		DoulaEmail:     "doula@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test mother: %v", err)
	}
	return &user
}

// createTestPartner inserts a partner account
func createTestPartner(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		ID:    uuid.NewString(),
		Name:  "Sam",
		Email: uuid.NewString() + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test partner: %v", err)
	}
	return &user
}

// createActivePartnership links mother and partner directly, bypassing the
// invite flow, with the given visibility flags.
func createActivePartnership(t *testing.T, db *gorm.DB, motherID, partnerID string, checkIns, journal, appointments, resources bool) *models.Partnership {
	t.Helper()

	partnership := models.Partnership{
		ID:                  uuid.NewString(),
		MotherID:            motherID,
		PartnerID:           &partnerID,
		Status:              models.PartnershipActive,
		InviteCode:          uuid.NewString()[:6],
		ExpiresAt:           time.Now().UTC().Add(models.InviteTTL),
		CanViewCheckIns:     checkIns,
		CanViewJournal:      journal,
		CanViewAppointments: appointments,
		CanViewResources:    resources,
	}
	if err := db.Create(&partnership).Error; err != nil {
		t.Fatalf("Failed to create test partnership: %v", err)
	}
	return &partnership
}
