package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/models"
	"github.com/nestwell/nestwell/internal/types"
	"gorm.io/gorm"
)

// UserInput is the typed onboarding request.
type UserInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Zip            string `json:"zip"`
	Stage          string `json:"stage"`
	Week           int    `json:"week"`
	DueDate        string `json:"dueDate"`
	BirthDate      string `json:"birthDate"`
	OBMidwifeEmail string `json:"obMidwifeEmail"`
	DoulaEmail     string `json:"doulaEmail"`
}

// UserPatch is a partial profile update. Nil fields are left unchanged.
type UserPatch struct {
	Name           *string `json:"name"`
	Zip            *string `json:"zip"`
	Stage          *string `json:"stage"`
	Week           *int    `json:"week"`
	DueDate        *string `json:"dueDate"`
	BirthDate      *string `json:"birthDate"`
	OBMidwifeEmail *string `json:"obMidwifeEmail"`
	DoulaEmail     *string `json:"doulaEmail"`
}

// CreateUser creates a user at onboarding.
func CreateUser(db *gorm.DB, input UserInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" {
		return nil, types.ErrValidation
	}

	dueDate, err := parseISODate(input.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dueDate", types.ErrValidation)
	}
	birthDate, err := parseISODate(input.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid birthDate", types.ErrValidation)
	}

	user := models.User{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Zip:            input.Zip,
		Stage:          input.Stage,
		Week:           input.Week,
		DueDate:        dueDate,
		BirthDate:      birthDate,
		OBMidwifeEmail: input.OBMidwifeEmail,
		DoulaEmail:     input.DoulaEmail,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches one user by id.
func GetUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial profile update.
func UpdateUser(db *gorm.DB, userID string, patch UserPatch) (*models.User, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Zip != nil {
		updates["zip"] = *patch.Zip
	}
	if patch.Stage != nil {
		updates["stage"] = *patch.Stage
	}
	if patch.Week != nil {
		updates["week"] = *patch.Week
	}
	if patch.DueDate != nil {
		dueDate, err := parseISODate(*patch.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid dueDate", types.ErrValidation)
		}
		updates["due_date"] = dueDate
	}
	if patch.BirthDate != nil {
		birthDate, err := parseISODate(*patch.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid birthDate", types.ErrValidation)
		}
		updates["birth_date"] = birthDate
	}
	if patch.OBMidwifeEmail != nil {
		updates["ob_midwife_email"] = *patch.OBMidwifeEmail
	}
	if patch.DoulaEmail != nil {
		updates["doula_email"] = *patch.DoulaEmail
	}

	if len(updates) > 0 {
		if err := db.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return GetUser(db, userID)
}

// parseISODate accepts RFC 3339 timestamps or bare yyyy-mm-dd dates. Empty
// input yields nil.
func parseISODate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
