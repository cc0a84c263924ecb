package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moodwave/backend/internal/models"
)

func newTestAlertService() (AlertService, *mockAlertRepository) {
	alertRepo := newMockAlertRepository()
	return NewAlertService(alertRepo, testClock()), alertRepo
}

func TestAlerts_ListActive(t *testing.T) {
	svc, alertRepo := newTestAlertService()
	now := testClock().Now()
	dismissedAt := now.Add(-time.Hour)
	alertRepo.add(
		&models.PatternAlert{ID: "a1", UserID: testUser, AlertType: models.AlertSuddenDrop, DetectedAt: now.Add(-time.Hour)},
		&models.PatternAlert{ID: "a2", UserID: testUser, AlertType: models.AlertConsecutiveLow, DetectedAt: now},
		&models.PatternAlert{ID: "a3", UserID: testUser, AlertType: models.AlertSuddenDrop, DetectedAt: now, Dismissed: true, DismissedAt: &dismissedAt},
		&models.PatternAlert{ID: "a4", UserID: "user-2", AlertType: models.AlertSuddenDrop, DetectedAt: now},
	)

	alerts, err := svc.ListActive(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 active alerts, got %d", len(alerts))
	}
	if alerts[0].ID != "a2" {
		t.Errorf("expected newest first, got %s", alerts[0].ID)
	}
}

func TestAlerts_Dismiss(t *testing.T) {
	svc, alertRepo := newTestAlertService()
	alertRepo.add(&models.PatternAlert{ID: "a1", UserID: testUser, AlertType: models.AlertSuddenDrop})

	alert, err := svc.Dismiss(context.Background(), testUser, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !alert.Dismissed {
		t.Error("expected the alert dismissed")
	}
	if alert.DismissedAt == nil || !alert.DismissedAt.Equal(testClock().Now()) {
		t.Errorf("expected the dismissal timestamp set, got %v", alert.DismissedAt)
	}
}

func TestAlerts_DismissNotOwned(t *testing.T) {
	svc, alertRepo := newTestAlertService()
	alertRepo.add(&models.PatternAlert{ID: "a1", UserID: "user-2", AlertType: models.AlertSuddenDrop})

	_, err := svc.Dismiss(context.Background(), testUser, "a1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if alertRepo.alerts["a1"].Dismissed {
		t.Error("a foreign alert must not be mutated")
	}
	if alertRepo.dismissCalls != 0 {
		t.Errorf("expected no dismiss calls, got %d", alertRepo.dismissCalls)
	}
}

func TestAlerts_DismissMissing(t *testing.T) {
	svc, _ := newTestAlertService()
	if _, err := svc.Dismiss(context.Background(), testUser, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAlerts_DismissIdempotent(t *testing.T) {
	svc, alertRepo := newTestAlertService()
	dismissedAt := testClock().Now().Add(-time.Hour)
	alertRepo.add(&models.PatternAlert{
		ID: "a1", UserID: testUser, AlertType: models.AlertSuddenDrop,
		Dismissed: true, DismissedAt: &dismissedAt,
	})

	alert, err := svc.Dismiss(context.Background(), testUser, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !alert.DismissedAt.Equal(dismissedAt) {
		t.Error("a second dismissal must not move the timestamp")
	}
	if alertRepo.dismissCalls != 0 {
		t.Errorf("expected no repository write, got %d calls", alertRepo.dismissCalls)
	}
}
