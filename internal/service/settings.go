package service

import (
	"context"
	"fmt"

	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates the settings service.
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// Get returns the user's settings, creating the default row on first
// read.
func (s *settingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if settings != nil {
		return settings, nil
	}

	created, err := s.settingsRepo.Create(ctx, &models.UserSettings{
		UserID:                userID,
		InterventionThreshold: models.DefaultInterventionThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}

	return created, nil
}

func (s *settingsService) Update(ctx context.Context, userID string, req *models.UpdateSettingsRequest) (*models.UserSettings, error) {
	t := req.InterventionThreshold
	if t < models.MinInterventionThreshold || t > models.MaxInterventionThreshold {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrThresholdOutOfRange,
			t, models.MinInterventionThreshold, models.MaxInterventionThreshold)
	}

	// Ensure the row exists so Update always has something to hit.
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	updated, err := s.settingsRepo.Update(ctx, userID, t)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	return updated, nil
}
