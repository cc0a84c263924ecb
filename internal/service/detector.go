package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/repository"
)

// detectionWindowDays bounds how far back a detection pass looks. The
// longest run a rule can use is MaxInterventionThreshold days, so this
// window always holds enough history.
const detectionWindowDays = models.MaxInterventionThreshold

// CheckResult reports what a detection pass did. A pass always runs
// every rule; a rule that fails is recorded in Err without stopping the
// others.
type CheckResult struct {
	Created []models.PatternAlert
	Err     error
}

type patternDetector struct {
	entryRepo    repository.MoodEntryRepository
	alertRepo    repository.AlertRepository
	settingsRepo repository.SettingsRepository
	clock        dates.Clock
}

// NewPatternDetector creates the pattern detection service.
func NewPatternDetector(
	entryRepo repository.MoodEntryRepository,
	alertRepo repository.AlertRepository,
	settingsRepo repository.SettingsRepository,
	clock dates.Clock,
) PatternDetector {
	return &patternDetector{
		entryRepo:    entryRepo,
		alertRepo:    alertRepo,
		settingsRepo: settingsRepo,
		clock:        clock,
	}
}

func (d *patternDetector) Check(ctx context.Context, userID string, entry *models.MoodEntry) CheckResult {
	var result CheckResult

	threshold := models.DefaultInterventionThreshold
	settings, err := d.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		// Detection still runs with the default threshold.
		result.Err = errors.Join(result.Err, fmt.Errorf("load settings: %w", err))
	} else if settings != nil {
		threshold = settings.InterventionThreshold
	}

	since := dates.DaysAgo(d.clock, detectionWindowDays)
	entries, err := d.entryRepo.GetCompleteSince(ctx, userID, since, detectionWindowDays)
	if err != nil {
		result.Err = errors.Join(result.Err, fmt.Errorf("load recent entries: %w", err))
		return result
	}

	if alert, err := d.checkConsecutiveLow(ctx, userID, entry, entries, threshold); err != nil {
		result.Err = errors.Join(result.Err, fmt.Errorf("consecutive_low: %w", err))
	} else if alert != nil {
		result.Created = append(result.Created, *alert)
	}

	if alert, err := d.checkSuddenDrop(ctx, userID, entry, entries); err != nil {
		result.Err = errors.Join(result.Err, fmt.Errorf("sudden_drop: %w", err))
	} else if alert != nil {
		result.Created = append(result.Created, *alert)
	}

	return result
}

// checkConsecutiveLow fires when the unbroken run of low-mood entries
// ending at the most recent entry reaches the threshold. The run counts
// entries, not calendar days, so a skipped day does not break it.
func (d *patternDetector) checkConsecutiveLow(ctx context.Context, userID string, entry *models.MoodEntry, entries []models.MoodEntry, threshold int) (*models.PatternAlert, error) {
	// entries are newest first; walk until the first non-low entry.
	run := 0
	for _, e := range entries {
		if !models.IsLowMoodGlyph(e.Emoji()) {
			break
		}
		run++
	}

	if run < threshold {
		return nil, nil
	}

	suppressed, err := d.isSuppressed(ctx, userID, models.AlertConsecutiveLow, models.ConsecutiveLowDedupWindow)
	if err != nil {
		return nil, err
	}
	if suppressed {
		return nil, nil
	}

	// Detail lists the run oldest to newest.
	detail := models.ConsecutiveLowDetail{ConsecutiveDays: run}
	for i := run - 1; i >= 0; i-- {
		detail.Dates = append(detail.Dates, entries[i].EntryDate)
		detail.Emojis = append(detail.Emojis, entries[i].Emoji())
	}

	return d.alertRepo.Create(ctx, &models.PatternAlert{
		UserID:     userID,
		AlertType:  models.AlertConsecutiveLow,
		Detail:     detail,
		DetectedAt: d.clock.Now(),
		EntryID:    entry.ID,
	})
}

// checkSuddenDrop fires when the most recent entry is negative and the
// one before it was positive.
func (d *patternDetector) checkSuddenDrop(ctx context.Context, userID string, entry *models.MoodEntry, entries []models.MoodEntry) (*models.PatternAlert, error) {
	if len(entries) < 2 {
		return nil, nil
	}

	latest, previous := entries[0], entries[1]
	if !models.IsNegativeGlyph(latest.Emoji()) || !models.IsPositiveGlyph(previous.Emoji()) {
		return nil, nil
	}

	suppressed, err := d.isSuppressed(ctx, userID, models.AlertSuddenDrop, models.SuddenDropDedupWindow)
	if err != nil {
		return nil, err
	}
	if suppressed {
		return nil, nil
	}

	return d.alertRepo.Create(ctx, &models.PatternAlert{
		UserID:    userID,
		AlertType: models.AlertSuddenDrop,
		Detail: models.SuddenDropDetail{
			FromEmoji: previous.Emoji(),
			ToEmoji:   latest.Emoji(),
			FromDate:  previous.EntryDate,
			ToDate:    latest.EntryDate,
		},
		DetectedAt: d.clock.Now(),
		EntryID:    entry.ID,
	})
}

// isSuppressed reports whether any alert of the given type, dismissed
// or not, exists inside its de-duplication window.
func (d *patternDetector) isSuppressed(ctx context.Context, userID string, alertType models.AlertType, window time.Duration) (bool, error) {
	existing, err := d.alertRepo.GetByTypeSince(ctx, userID, alertType, d.clock.Now().Add(-window))
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}
