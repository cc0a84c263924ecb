package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/pkg/supabase"
)

type alertRepository struct {
	client *supabase.Client
}

// NewAlertRepository creates a new pattern alert repository
func NewAlertRepository(client *supabase.Client) AlertRepository {
	return &alertRepository{client: client}
}

func (r *alertRepository) Create(ctx context.Context, alert *models.PatternAlert) (*models.PatternAlert, error) {
	data := map[string]interface{}{
		"user_id":     alert.UserID,
		"alert_type":  alert.AlertType,
		"detail":      alert.Detail,
		"detected_at": alert.DetectedAt.Format(time.RFC3339),
		"dismissed":   false,
		"entry_id":    alert.EntryID,
	}

	if alert.ID != "" {
		data["id"] = alert.ID
	}

	body, err := r.client.Insert("pattern_alerts", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	var alerts []models.PatternAlert
	if err := json.Unmarshal(body, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(alerts) == 0 {
		return nil, fmt.Errorf("no alert returned")
	}

	return &alerts[0], nil
}

func (r *alertRepository) GetByID(ctx context.Context, id string) (*models.PatternAlert, error) {
	query := map[string]interface{}{
		"id": fmt.Sprintf("eq.%s", id),
	}

	body, err := r.client.Query("pattern_alerts", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	var alerts []models.PatternAlert
	if err := json.Unmarshal(body, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(alerts) == 0 {
		return nil, ErrNotFound
	}

	return &alerts[0], nil
}

func (r *alertRepository) ListActive(ctx context.Context, userID string) ([]models.PatternAlert, error) {
	query := map[string]interface{}{
		"user_id":   fmt.Sprintf("eq.%s", userID),
		"dismissed": "eq.false",
		"order":     "detected_at.desc",
	}

	body, err := r.client.Query("pattern_alerts", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	var alerts []models.PatternAlert
	if err := json.Unmarshal(body, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return alerts, nil
}

func (r *alertRepository) GetByTypeSince(ctx context.Context, userID string, alertType models.AlertType, since time.Time) ([]models.PatternAlert, error) {
	query := map[string]interface{}{
		"user_id":     fmt.Sprintf("eq.%s", userID),
		"alert_type":  fmt.Sprintf("eq.%s", alertType),
		"detected_at": fmt.Sprintf("gte.%s", since.Format(time.RFC3339)),
	}

	body, err := r.client.Query("pattern_alerts", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent alerts: %w", err)
	}

	var alerts []models.PatternAlert
	if err := json.Unmarshal(body, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return alerts, nil
}

func (r *alertRepository) Dismiss(ctx context.Context, id string, dismissedAt time.Time) (*models.PatternAlert, error) {
	data := map[string]interface{}{
		"dismissed":    true,
		"dismissed_at": dismissedAt.Format(time.RFC3339),
	}

	body, err := r.client.Update("pattern_alerts", id, data)
	if err != nil {
		return nil, fmt.Errorf("failed to dismiss alert: %w", err)
	}

	var alerts []models.PatternAlert
	if err := json.Unmarshal(body, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(alerts) == 0 {
		return nil, ErrNotFound
	}

	return &alerts[0], nil
}
