package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/pkg/supabase"
)

type settingsRepository struct {
	client *supabase.Client
}

// NewSettingsRepository creates a new user settings repository
func NewSettingsRepository(client *supabase.Client) SettingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
	}

	body, err := r.client.Query("user_settings", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings []models.UserSettings
	if err := json.Unmarshal(body, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// Absent settings means "use defaults", not an error.
	if len(settings) == 0 {
		return nil, nil
	}

	return &settings[0], nil
}

func (r *settingsRepository) Create(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error) {
	data := map[string]interface{}{
		"user_id":                settings.UserID,
		"intervention_threshold": settings.InterventionThreshold,
	}

	body, err := r.client.Upsert("user_settings", data, "user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}

	var created []models.UserSettings
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(created) == 0 {
		return nil, fmt.Errorf("no settings returned")
	}

	return &created[0], nil
}

func (r *settingsRepository) Update(ctx context.Context, userID string, threshold int) (*models.UserSettings, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
	}
	data := map[string]interface{}{
		"intervention_threshold": threshold,
	}

	body, err := r.client.UpdateWhere("user_settings", query, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	var updated []models.UserSettings
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(updated) == 0 {
		return nil, ErrNotFound
	}

	return &updated[0], nil
}
