package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Nutrition holds the per-serving nutrition block of a saved recipe. The
// values are the model's own strings (e.g. "450 calories", "32g") and are
// stored verbatim.
type Nutrition struct {
	Calories string `gorm:"size:100" json:"calories"`
	Protein  string `gorm:"size:100" json:"protein"`
	Carbs    string `gorm:"size:100" json:"carbs"`
	Fat      string `gorm:"size:100" json:"fat"`
}

// SavedRecipe is a recipe the user explicitly kept. Rows are immutable
// after insert except for deletion; the list view orders newest first.
type SavedRecipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"-"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeName   string           `gorm:"size:255;not null" json:"recipe_name"`
	CookingTime  string           `gorm:"size:100" json:"cooking_time"`
	Serves       string           `gorm:"size:100" json:"serves"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	HasNutrition bool             `gorm:"default:false" json:"-"`
	Nutrition    Nutrition        `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	ImageURL     string           `gorm:"type:text" json:"image_url,omitempty"`
	Embedding    pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}

func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
