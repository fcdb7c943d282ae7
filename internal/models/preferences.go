package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DefaultProfileEmoji is used when a user has never picked one.
const DefaultProfileEmoji = "👨‍🍳"

// KitchenEquipmentOptions is the fixed equipment enumeration shown in the
// preferences screen. Stored values are validated against it on upsert.
var KitchenEquipmentOptions = []string{
	"Oven",
	"Air Fryer",
	"Stovetop",
	"Microwave",
	"Slow Cooker",
}

// CookingExperienceOptions enumerates the supported experience levels.
var CookingExperienceOptions = []string{"Beginner", "Intermediate", "Advanced"}

// UserPreferences holds the per-user cooking profile read by the prompt
// builder. An unset field means "no constraint", never an error.
type UserPreferences struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name                string         `gorm:"size:255" json:"name"`
	ProfileEmoji        string         `gorm:"size:16" json:"profile_emoji"`
	KitchenEquipment    pq.StringArray `gorm:"type:text[]" json:"kitchen_equipment"`
	PreferredCuisines   pq.StringArray `gorm:"type:text[]" json:"preferred_cuisines"`
	CookingExperience   string         `gorm:"size:50" json:"cooking_experience"`
	ProteinPreferences  pq.StringArray `gorm:"type:text[]" json:"protein_preferences"`
	DietaryRestrictions string         `gorm:"type:text" json:"dietary_restrictions"`
	AdditionalContext   string         `gorm:"type:text" json:"additional_context"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

func (p *UserPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ProfileEmoji == "" {
		p.ProfileEmoji = DefaultProfileEmoji
	}
	return nil
}
