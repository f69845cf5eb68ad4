package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/clients"
	"github.com/nestwell/nestwell/internal/database"
	"github.com/nestwell/nestwell/internal/handlers"
	"github.com/nestwell/nestwell/internal/middleware"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testRedFlags = []string{"pain", "overwhelmed", "disconnected", "anxious"}

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

func createUser(t *testing.T, db *gorm.DB, obEmail string) *models.User {
	t.Helper()

	user := models.User{
		ID:             uuid.NewString(),
		Name:           "Ada",
		Email:          uuid.NewString() + "@example.com",
		Stage:          models.StagePregnant,
		Week:           32,
		OBMidwifeEmail: obEmail,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload interface{}, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestCreatePartnership(t *testing.T) {
	db := setupTestDB(t)
	mother := createUser(t, db, "ob@example.com")

	app := fiber.New()
	handler := &handlers.PartnershipHandler{DB: db}
	app.Post("/api/partnerships", handler.CreatePartnership)

	status, result := doJSON(t, app, "POST", "/api/partnerships", fiber.Map{
		"motherId":         mother.ID,
		"relationshipType": "spouse",
	}, nil)

	require.Equal(t, fiber.StatusCreated, status)
	assert.NotEmpty(t, result["id"])
	assert.Len(t, result["inviteCode"], 6)
	assert.Equal(t, models.PartnershipPending, result["status"])
	assert.NotEmpty(t, result["expiresAt"])
}

func TestCreatePartnership_UnknownMother(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.PartnershipHandler{DB: db}
	app.Post("/api/partnerships", handler.CreatePartnership)

	status, _ := doJSON(t, app, "POST", "/api/partnerships", fiber.Map{
		"motherId": "no-such-user",
	}, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAcceptPartnership_InvalidInviteIs404(t *testing.T) {
	db := setupTestDB(t)
	mother := createUser(t, db, "")
	partner := createUser(t, db, "")

	expired := models.Partnership{
		ID:         uuid.NewString(),
		MotherID:   mother.ID,
		Status:     models.PartnershipPending,
		InviteCode: "ABC123",
		ExpiresAt:  time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&expired).Error)

	app := fiber.New()
	handler := &handlers.PartnershipHandler{DB: db}
	app.Post("/api/partnerships/:id/accept", handler.AcceptPartnership)

	status, result := doJSON(t, app, "POST", "/api/partnerships/"+expired.ID+"/accept", fiber.Map{
		"partnerId": partner.ID,
	}, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	// The invite code never appears in the error payload
	assert.NotContains(t, result["message"], "ABC123")

	status, _ = doJSON(t, app, "POST", "/api/partnerships/no-such-id/accept", fiber.Map{
		"partnerId": partner.ID,
	}, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRedeemInvite(t *testing.T) {
	db := setupTestDB(t)
	mother := createUser(t, db, "")

	invite := models.Partnership{
		ID:         uuid.NewString(),
		MotherID:   mother.ID,
		Status:     models.PartnershipPending,
		InviteCode: "XYZ789",
		ExpiresAt:  time.Now().UTC().Add(models.InviteTTL),
	}
	require.NoError(t, db.Create(&invite).Error)

	app := fiber.New()
	handler := &handlers.PartnershipHandler{DB: db}
	app.Post("/api/partnerships/redeem", handler.RedeemInvite)

	status, result := doJSON(t, app, "POST", "/api/partnerships/redeem", fiber.Map{
		"inviteCode": "XYZ789",
		"partner":    fiber.Map{"name": "Sam", "email": "sam@example.com"},
	}, nil)
	require.Equal(t, fiber.StatusOK, status)

	partnership, ok := result["partnership"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.PartnershipActive, partnership["status"])
	assert.NotEmpty(t, partnership["partnerId"])

	// Single use
	status, _ = doJSON(t, app, "POST", "/api/partnerships/redeem", fiber.Map{
		"inviteCode": "XYZ789",
		"partner":    fiber.Map{"name": "Eve", "email": "eve@example.com"},
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdatePermissions_RequiresActor(t *testing.T) {
	db := setupTestDB(t)
	mother := createUser(t, db, "")
	partner := createUser(t, db, "")

	partnership := models.Partnership{
		ID:              uuid.NewString(),
		MotherID:        mother.ID,
		PartnerID:       &partner.ID,
		Status:          models.PartnershipActive,
		InviteCode:      "PRM001",
		ExpiresAt:       time.Now().UTC().Add(models.InviteTTL),
		CanViewCheckIns: false,
	}
	require.NoError(t, db.Create(&partnership).Error)

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	handler := &handlers.PartnershipHandler{DB: db}
	app.Patch("/api/partnerships/:id/permissions", middleware.RequireActor(), handler.UpdatePermissions)

	target := "/api/partnerships/" + partnership.ID + "/permissions"

	// No actor header
	status, _ := doJSON(t, app, "PATCH", target, fiber.Map{"canViewCheckIns": true}, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// Partner is not allowed to change the mother's flags
	status, _ = doJSON(t, app, "PATCH", target, fiber.Map{"canViewCheckIns": true},
		map[string]string{"X-User-ID": partner.ID})
	assert.Equal(t, fiber.StatusForbidden, status)

	// Mother may
	status, result := doJSON(t, app, "PATCH", target, fiber.Map{"canViewCheckIns": true},
		map[string]string{"X-User-ID": mother.ID})
	require.Equal(t, fiber.StatusOK, status)
	updated := result["partnership"].(map[string]interface{})
	assert.Equal(t, true, updated["canViewCheckIns"])
	assert.Equal(t, false, updated["canViewJournal"])
}

func TestCreateCheckIn(t *testing.T) {
	db := setupTestDB(t)
	mother := createUser(t, db, "ob@example.com")

	app := fiber.New()
	handler := &handlers.CheckInHandler{DB: db, RedFlags: testRedFlags}
	app.Post("/api/checkin", handler.CreateCheckIn)

	status, result := doJSON(t, app, "POST", "/api/checkin", fiber.Map{
		"userId":  mother.ID,
		"feeling": "overwhelmed",
		"notes":   "long night",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)

	checkIn, ok := result["checkIn"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "overwhelmed", checkIn["feeling"])

	// The alert lands in the outbox, never in the response
	assert.NotContains(t, result, "alert")
	var intents int64
	require.NoError(t, db.Model(&models.NotificationIntent{}).Count(&intents).Error)
	assert.Equal(t, int64(1), intents)
}

func TestCreateCheckIn_Validation(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.CheckInHandler{DB: db, RedFlags: testRedFlags}
	app.Post("/api/checkin", handler.CreateCheckIn)

	status, _ := doJSON(t, app, "POST", "/api/checkin", fiber.Map{"feeling": "good"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPartnerDashboard_Filtered(t *testing.T) {
	db := setupTestDB(t)
	mother := createUser(t, db, "")
	partner := createUser(t, db, "")

	partnership := models.Partnership{
		ID:                  uuid.NewString(),
		MotherID:            mother.ID,
		PartnerID:           &partner.ID,
		Status:              models.PartnershipActive,
		InviteCode:          "DSH001",
		ExpiresAt:           time.Now().UTC().Add(models.InviteTTL),
		CanViewCheckIns:     false,
		CanViewAppointments: true,
	}
	require.NoError(t, db.Create(&partnership).Error)

	appointment := models.Appointment{
		ID:     uuid.NewString(),
		UserID: mother.ID,
		Title:  "32-week visit",
		Date:   time.Now().UTC().Add(72 * time.Hour),
	}
	require.NoError(t, db.Create(&appointment).Error)

	app := fiber.New()
	checkInHandler := &handlers.CheckInHandler{DB: db, RedFlags: testRedFlags}
	partnerHandler := &handlers.PartnerHandler{DB: db}
	app.Post("/api/checkin", checkInHandler.CreateCheckIn)
	app.Get("/api/partner/dashboard/:userId", partnerHandler.Dashboard)

	status, _ := doJSON(t, app, "POST", "/api/checkin", fiber.Map{
		"userId":  mother.ID,
		"feeling": "good",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, "GET", "/api/partner/dashboard/"+partner.ID, nil, nil)
	require.Equal(t, fiber.StatusOK, status)

	assert.Empty(t, result["recentCheckIns"])
	appointments, ok := result["upcomingAppointments"].([]interface{})
	require.True(t, ok)
	require.Len(t, appointments, 1)
}

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.UserHandler{DB: db}
	app.Post("/api/users", handler.CreateUser)
	app.Get("/api/users/:id", handler.GetUser)

	status, result := doJSON(t, app, "POST", "/api/users", fiber.Map{
		"name":    "Ada",
		"email":   "ada@example.com",
		"stage":   models.StagePregnant,
		"week":    18,
		"dueDate": "2026-12-01",
	}, nil)
	require.Equal(t, fiber.StatusCreated, status)

	id, _ := result["id"].(string)
	require.NotEmpty(t, id)

	status, result = doJSON(t, app, "GET", "/api/users/"+id, nil, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ada@example.com", result["email"])

	status, _ = doJSON(t, app, "GET", "/api/users/no-such-id", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

type staticResponder struct {
	reply string
}

func (s *staticResponder) Reply(_ context.Context, _ string, _ clients.ChatContext) string {
	return s.reply
}

func TestChat(t *testing.T) {
	db := setupTestDB(t)
	mother := createUser(t, db, "")

	app := fiber.New()
	handler := &handlers.ChatHandler{DB: db, Chat: &staticResponder{reply: "You are doing great."}}
	app.Post("/api/chat", handler.SendMessage)

	status, result := doJSON(t, app, "POST", "/api/chat", fiber.Map{
		"userId":  mother.ID,
		"message": "I barely slept",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "You are doing great.", result["reply"])

	status, _ = doJSON(t, app, "POST", "/api/chat", fiber.Map{"userId": mother.ID}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

// testErrorHandler mirrors the server's error handler for routes behind
// RequireActor, which reports failures via *types.AppError.
func testErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  code,
		"message": message,
		"ok":      false,
	})
}
