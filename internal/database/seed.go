package database

import (
	"github.com/google/uuid"
	"github.com/nestwell/nestwell/internal/models"
	"gorm.io/gorm"
)

// Seed inserts default content rows (affirmations, experts, resources,
// starter groups) if the tables are empty. It is an explicit deploy-time step
// run by cmd/seed, not a runtime guard, and is safe to run repeatedly.
func Seed(db *gorm.DB) error {
	if err := seedAffirmations(db); err != nil {
		return err
	}
	if err := seedExperts(db); err != nil {
		return err
	}
	if err := seedResources(db); err != nil {
		return err
	}
	return seedGroups(db)
}

func seedAffirmations(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Affirmation{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	lines := []string{
		"You are exactly the mother your baby needs.",
		"Rest is productive. Your body is doing remarkable work.",
		"Asking for help is a sign of strength, not weakness.",
		"One day at a time. One feed at a time. One breath at a time.",
		"Your feelings are valid, whatever they are today.",
		"You have made it through every hard day so far.",
		"Growth is happening even on the days you cannot see it.",
	}

	affirmations := make([]models.Affirmation, 0, len(lines))
	for _, line := range lines {
		affirmations = append(affirmations, models.Affirmation{Text: line})
	}
	return db.Create(&affirmations).Error
}

func seedExperts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Expert{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	experts := []models.Expert{
		{ID: uuid.NewString(), Name: "Dr. Maya Okafor", Specialty: "Obstetrics", Bio: "Board-certified OB/GYN focused on high-risk pregnancy."},
		{ID: uuid.NewString(), Name: "Leah Tran", Specialty: "Lactation", Bio: "IBCLC lactation consultant, 12 years in postpartum care."},
		{ID: uuid.NewString(), Name: "Sandra Whitfield", Specialty: "Perinatal Mental Health", Bio: "Licensed therapist specializing in perinatal mood disorders."},
	}
	return db.Create(&experts).Error
}

func seedResources(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Resource{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	resources := []models.Resource{
		{ID: uuid.NewString(), Title: "Warning signs to call your provider about", Category: "health", Summary: "When a symptom needs a same-day call."},
		{ID: uuid.NewString(), Title: "The fourth trimester, explained", Category: "postpartum", Summary: "What the first twelve weeks after birth really look like."},
		{ID: uuid.NewString(), Title: "Building your postpartum support circle", Category: "support", Summary: "Practical ways to line up help before the baby arrives."},
	}
	return db.Create(&resources).Error
}

func seedGroups(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Group{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	groups := []models.Group{
		{ID: uuid.NewString(), Name: "First-Time Moms Circle", Description: "Weekly peer group for first pregnancies.", Category: "support"},
		{ID: uuid.NewString(), Name: "Postpartum Walking Club", Description: "Low-key stroller walks, all paces welcome.", Category: "fitness"},
		{ID: uuid.NewString(), Name: "Feeding Support Group", Description: "Breastfeeding, pumping, and formula questions answered by peers and an IBCLC.", Category: "support"},
	}
	return db.Create(&groups).Error
}
