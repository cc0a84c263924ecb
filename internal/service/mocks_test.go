package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/repository"
	"github.com/moodwave/backend/pkg/emotionml"
)

// fixedClock pins "now" for deterministic date math.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// testClock is noon Nov 10 2025 in the canonical zone.
func testClock() fixedClock {
	return fixedClock{now: time.Date(2025, time.November, 10, 12, 0, 0, 0, dates.Zone)}
}

func strPtr(s string) *string { return &s }

// completeEntry builds a finalized entry for the given day.
func completeEntry(id, userID, date, emoji string) *models.MoodEntry {
	d, err := dates.Parse(date)
	if err != nil {
		panic(err)
	}
	return &models.MoodEntry{
		ID:            id,
		UserID:        userID,
		EntryDate:     date,
		DayOfWeek:     d.Weekday().String(),
		SelectedEmoji: strPtr(emoji),
	}
}

// mockEntryRepository is an in-memory MoodEntryRepository.
type mockEntryRepository struct {
	entries map[string]*models.MoodEntry
	nextID  int

	updateCalls     int
	activitiesByID  map[string][]string
	catalog         map[string]models.Activity // activity id -> activity
	failGetComplete error
}

func newMockEntryRepository() *mockEntryRepository {
	return &mockEntryRepository{
		entries:        make(map[string]*models.MoodEntry),
		activitiesByID: make(map[string][]string),
		catalog:        make(map[string]models.Activity),
	}
}

func (m *mockEntryRepository) add(entries ...*models.MoodEntry) {
	for _, e := range entries {
		m.entries[e.ID] = e
	}
}

func (m *mockEntryRepository) Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	for _, existing := range m.entries {
		if existing.UserID == entry.UserID && existing.EntryDate == entry.EntryDate {
			return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateEntry, entry.EntryDate)
		}
	}
	m.nextID++
	entry.ID = fmt.Sprintf("entry-%d", m.nextID)
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()
	m.entries[entry.ID] = entry
	return entry, nil
}

func (m *mockEntryRepository) GetByID(ctx context.Context, id string) (*models.MoodEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *entry
	copied.Activities = nil
	for _, activityID := range m.activitiesByID[id] {
		if a, ok := m.catalog[activityID]; ok {
			copied.Activities = append(copied.Activities, a)
		}
	}
	return &copied, nil
}

func (m *mockEntryRepository) GetByUserAndDate(ctx context.Context, userID string, date dates.Date) (*models.MoodEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.EntryDate == date.Format() {
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockEntryRepository) GetCompleteSince(ctx context.Context, userID string, since dates.Date, limit int) ([]models.MoodEntry, error) {
	if m.failGetComplete != nil {
		return nil, m.failGetComplete
	}
	result := m.complete(userID, nil, nil)
	var filtered []models.MoodEntry
	for _, e := range result {
		d, err := dates.Parse(e.EntryDate)
		if err != nil {
			continue
		}
		if !d.Before(since) {
			filtered = append(filtered, e)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].EntryDate > filtered[j].EntryDate })
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (m *mockEntryRepository) GetCompleteInRange(ctx context.Context, userID string, start, end *time.Time) ([]models.MoodEntry, error) {
	if m.failGetComplete != nil {
		return nil, m.failGetComplete
	}
	result := m.complete(userID, start, end)
	sort.Slice(result, func(i, j int) bool { return result[i].EntryDate < result[j].EntryDate })
	return result, nil
}

func (m *mockEntryRepository) complete(userID string, start, end *time.Time) []models.MoodEntry {
	var result []models.MoodEntry
	for _, e := range m.entries {
		if e.UserID != userID || !e.IsComplete() {
			continue
		}
		if start != nil && e.EntryDate < dates.FromTime(*start).Format() {
			continue
		}
		if end != nil && e.EntryDate > dates.FromTime(*end).Format() {
			continue
		}
		copied := *e
		copied.Activities = nil
		for _, activityID := range m.activitiesByID[e.ID] {
			if a, ok := m.catalog[activityID]; ok {
				copied.Activities = append(copied.Activities, a)
			}
		}
		result = append(result, copied)
	}
	return result
}

func (m *mockEntryRepository) Update(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error) {
	m.updateCalls++
	existing, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if entry.SelectedEmoji != nil {
		existing.SelectedEmoji = entry.SelectedEmoji
	}
	if entry.Notes != nil {
		existing.Notes = entry.Notes
	}
	existing.UpdatedAt = time.Now()
	return existing, nil
}

func (m *mockEntryRepository) SetActivities(ctx context.Context, entryID string, activityIDs []string) error {
	m.activitiesByID[entryID] = activityIDs
	return nil
}

func (m *mockEntryRepository) ClearAudioPath(ctx context.Context, id string) error {
	entry, ok := m.entries[id]
	if !ok {
		return repository.ErrNotFound
	}
	entry.AudioPath = nil
	return nil
}

func (m *mockEntryRepository) Delete(ctx context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// mockAlertRepository is an in-memory AlertRepository.
type mockAlertRepository struct {
	alerts       map[string]*models.PatternAlert
	nextID       int
	createCalls  int
	dismissCalls int
}

func newMockAlertRepository() *mockAlertRepository {
	return &mockAlertRepository{alerts: make(map[string]*models.PatternAlert)}
}

func (m *mockAlertRepository) add(alerts ...*models.PatternAlert) {
	for _, a := range alerts {
		m.alerts[a.ID] = a
	}
}

func (m *mockAlertRepository) Create(ctx context.Context, alert *models.PatternAlert) (*models.PatternAlert, error) {
	m.createCalls++
	m.nextID++
	alert.ID = fmt.Sprintf("alert-%d", m.nextID)
	m.alerts[alert.ID] = alert
	return alert, nil
}

func (m *mockAlertRepository) GetByID(ctx context.Context, id string) (*models.PatternAlert, error) {
	alert, ok := m.alerts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return alert, nil
}

func (m *mockAlertRepository) ListActive(ctx context.Context, userID string) ([]models.PatternAlert, error) {
	var result []models.PatternAlert
	for _, a := range m.alerts {
		if a.UserID == userID && !a.Dismissed {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DetectedAt.After(result[j].DetectedAt) })
	return result, nil
}

func (m *mockAlertRepository) GetByTypeSince(ctx context.Context, userID string, alertType models.AlertType, since time.Time) ([]models.PatternAlert, error) {
	var result []models.PatternAlert
	for _, a := range m.alerts {
		if a.UserID == userID && a.AlertType == alertType && !a.DetectedAt.Before(since) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAlertRepository) Dismiss(ctx context.Context, id string, dismissedAt time.Time) (*models.PatternAlert, error) {
	m.dismissCalls++
	alert, ok := m.alerts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	alert.Dismissed = true
	alert.DismissedAt = &dismissedAt
	return alert, nil
}

// mockSettingsRepository is an in-memory SettingsRepository.
type mockSettingsRepository struct {
	settings    map[string]*models.UserSettings
	createCalls int
	failGet     error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{settings: make(map[string]*models.UserSettings)}
}

func (m *mockSettingsRepository) GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	return m.settings[userID], nil
}

func (m *mockSettingsRepository) Create(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error) {
	m.createCalls++
	m.settings[settings.UserID] = settings
	return settings, nil
}

func (m *mockSettingsRepository) Update(ctx context.Context, userID string, threshold int) (*models.UserSettings, error) {
	settings, ok := m.settings[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	settings.InterventionThreshold = threshold
	return settings, nil
}

// mockActivityRepository is an in-memory ActivityRepository.
type mockActivityRepository struct {
	activities []models.Activity
}

func (m *mockActivityRepository) ListAll(ctx context.Context) ([]models.Activity, error) {
	return m.activities, nil
}

func (m *mockActivityRepository) GetByKeys(ctx context.Context, keys []string) ([]models.Activity, error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var result []models.Activity
	for _, a := range m.activities {
		if want[a.Key] {
			result = append(result, a)
		}
	}
	return result, nil
}

// mockClassifier returns a canned analysis.
type mockClassifier struct {
	analysis *emotionml.Analysis
	err      error
	calls    int
}

func (m *mockClassifier) Analyze(ctx context.Context, audioPath, language string) (*emotionml.Analysis, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.analysis, nil
}

// mockDetector records detection passes.
type mockDetector struct {
	calls  int
	result CheckResult
}

func (m *mockDetector) Check(ctx context.Context, userID string, entry *models.MoodEntry) CheckResult {
	m.calls++
	return m.result
}
