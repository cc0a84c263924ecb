package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/repository"
)

type alertService struct {
	alertRepo repository.AlertRepository
	clock     dates.Clock
}

// NewAlertService creates the alert service.
func NewAlertService(alertRepo repository.AlertRepository, clock dates.Clock) AlertService {
	return &alertService{alertRepo: alertRepo, clock: clock}
}

func (s *alertService) ListActive(ctx context.Context, userID string) ([]models.PatternAlert, error) {
	alerts, err := s.alertRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// Dismiss marks an alert dismissed. Alerts owned by other users are
// reported as not found without touching them. Dismissing an already
// dismissed alert is a no-op returning the alert as is.
func (s *alertService) Dismiss(ctx context.Context, userID, alertID string) (*models.PatternAlert, error) {
	alert, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	if alert.UserID != userID {
		return nil, ErrNotFound
	}
	if alert.Dismissed {
		return alert, nil
	}

	dismissed, err := s.alertRepo.Dismiss(ctx, alert.ID, s.clock.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("dismiss alert: %w", err)
	}

	return dismissed, nil
}
