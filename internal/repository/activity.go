package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/pkg/supabase"
)

type activityRepository struct {
	client *supabase.Client
}

// NewActivityRepository creates a new activity catalog repository
func NewActivityRepository(client *supabase.Client) ActivityRepository {
	return &activityRepository{client: client}
}

func (r *activityRepository) ListAll(ctx context.Context) ([]models.Activity, error) {
	query := map[string]interface{}{
		"select": "*",
		"order":  "key.asc",
	}

	body, err := r.client.Query("activities", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	var activities []models.Activity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return activities, nil
}

func (r *activityRepository) GetByKeys(ctx context.Context, keys []string) ([]models.Activity, error) {
	if len(keys) == 0 {
		return []models.Activity{}, nil
	}

	query := map[string]interface{}{
		"key": fmt.Sprintf("in.(%s)", strings.Join(keys, ",")),
	}

	body, err := r.client.Query("activities", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}

	var activities []models.Activity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return activities, nil
}
