package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akshay-menon/recipe-flash-generator/internal/models"
	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

// PreferenceService owns the per-user cooking profile.
type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// GetPreferences returns the stored preferences for the user, or nil when
// none have been saved. Absence is not an error: the prompt builder treats
// it as "no constraint".
func (s *PreferenceService) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpsertPreferences creates the preferences row on first save and merges
// the provided fields on subsequent saves. Nil request fields leave stored
// values untouched.
func (s *PreferenceService) UpsertPreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	if req.CookingExperience != nil && *req.CookingExperience != "" {
		if !contains(models.CookingExperienceOptions, *req.CookingExperience) {
			return nil, fmt.Errorf("invalid cooking experience: %s", *req.CookingExperience)
		}
	}
	for _, eq := range req.KitchenEquipment {
		if !contains(models.KitchenEquipmentOptions, eq) {
			return nil, fmt.Errorf("invalid kitchen equipment: %s", eq)
		}
	}

	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err == gorm.ErrRecordNotFound {
		prefs = models.UserPreferences{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	if req.Name != nil {
		prefs.Name = *req.Name
	}
	if req.ProfileEmoji != nil && *req.ProfileEmoji != "" {
		prefs.ProfileEmoji = *req.ProfileEmoji
	}
	if req.KitchenEquipment != nil {
		prefs.KitchenEquipment = req.KitchenEquipment
	}
	if req.PreferredCuisines != nil {
		prefs.PreferredCuisines = req.PreferredCuisines
	}
	if req.CookingExperience != nil {
		prefs.CookingExperience = *req.CookingExperience
	}
	if req.ProteinPreferences != nil {
		prefs.ProteinPreferences = req.ProteinPreferences
	}
	if req.DietaryRestrictions != nil {
		prefs.DietaryRestrictions = *req.DietaryRestrictions
	}
	if req.AdditionalContext != nil {
		prefs.AdditionalContext = *req.AdditionalContext
	}

	if err := s.db.WithContext(ctx).Save(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
