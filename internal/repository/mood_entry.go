package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/pkg/supabase"
)

// entrySelect embeds the activity catalog rows through the
// entry_activities join table.
const entrySelect = "*,activities:activities(*)"

type moodEntryRepository struct {
	client *supabase.Client
}

// NewMoodEntryRepository creates a new mood entry repository
func NewMoodEntryRepository(client *supabase.Client) MoodEntryRepository {
	return &moodEntryRepository{client: client}
}

func (r *moodEntryRepository) Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	data := map[string]interface{}{
		"user_id":          entry.UserID,
		"entry_date":       entry.EntryDate,
		"day_of_week":      entry.DayOfWeek,
		"duration_seconds": entry.DurationSeconds,
		"language":         entry.Language,
		"emotion_scores":   entry.EmotionScores,
		"top_emotions":     entry.TopEmotions,
		"suggested_emojis": entry.SuggestedEmojis,
	}

	if entry.ID != "" {
		data["id"] = entry.ID
	}
	if entry.AudioPath != nil {
		data["audio_path"] = *entry.AudioPath
	}

	body, err := r.client.Insert("mood_entries", data)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.EntryDate)
		}
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no mood entry returned")
	}

	return &entries[0], nil
}

func (r *moodEntryRepository) GetByID(ctx context.Context, id string) (*models.MoodEntry, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": entrySelect,
	}

	body, err := r.client.Query("mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	return &entries[0], nil
}

func (r *moodEntryRepository) GetByUserAndDate(ctx context.Context, userID string, date dates.Date) (*models.MoodEntry, error) {
	query := map[string]interface{}{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"entry_date": fmt.Sprintf("eq.%s", date.Format()),
		"select":     entrySelect,
	}

	body, err := r.client.Query("mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	return &entries[0], nil
}

func (r *moodEntryRepository) GetCompleteSince(ctx context.Context, userID string, since dates.Date, limit int) ([]models.MoodEntry, error) {
	query := map[string]interface{}{
		"user_id":        fmt.Sprintf("eq.%s", userID),
		"selected_emoji": "not.is.null",
		"entry_date":     fmt.Sprintf("gte.%s", since.Format()),
		"select":         entrySelect,
		"order":          "entry_date.desc",
		"limit":          limit,
	}

	body, err := r.client.Query("mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent entries: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}

func (r *moodEntryRepository) GetCompleteInRange(ctx context.Context, userID string, start, end *time.Time) ([]models.MoodEntry, error) {
	query := map[string]interface{}{
		"user_id":        fmt.Sprintf("eq.%s", userID),
		"selected_emoji": "not.is.null",
		"select":         entrySelect,
		"order":          "entry_date.asc",
	}

	// PostgREST needs both bounds on the same column combined with and=().
	if start != nil && end != nil {
		query["and"] = fmt.Sprintf("(entry_date.gte.%s,entry_date.lte.%s)",
			dates.FromTime(*start).Format(), dates.FromTime(*end).Format())
	} else if start != nil {
		query["entry_date"] = fmt.Sprintf("gte.%s", dates.FromTime(*start).Format())
	} else if end != nil {
		query["entry_date"] = fmt.Sprintf("lte.%s", dates.FromTime(*end).Format())
	}

	body, err := r.client.Query("mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries in range: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}

func (r *moodEntryRepository) Update(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error) {
	data := map[string]interface{}{}

	if entry.SelectedEmoji != nil {
		data["selected_emoji"] = *entry.SelectedEmoji
	}
	if entry.Notes != nil {
		data["notes"] = *entry.Notes
	}

	body, err := r.client.Update("mood_entries", id, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	return &entries[0], nil
}

func (r *moodEntryRepository) SetActivities(ctx context.Context, entryID string, activityIDs []string) error {
	// Replace the join rows wholesale; finalize sends the full tag set.
	if err := r.client.DeleteWhere("entry_activities", map[string]interface{}{
		"entry_id": fmt.Sprintf("eq.%s", entryID),
	}); err != nil {
		return fmt.Errorf("failed to clear entry activities: %w", err)
	}

	if len(activityIDs) == 0 {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(activityIDs))
	for _, activityID := range activityIDs {
		rows = append(rows, map[string]interface{}{
			"entry_id":    entryID,
			"activity_id": activityID,
		})
	}

	if _, err := r.client.Insert("entry_activities", rows); err != nil {
		return fmt.Errorf("failed to set entry activities: %w", err)
	}

	return nil
}

func (r *moodEntryRepository) ClearAudioPath(ctx context.Context, id string) error {
	data := map[string]interface{}{
		"audio_path": nil,
	}

	if _, err := r.client.Update("mood_entries", id, data); err != nil {
		return fmt.Errorf("failed to clear audio path: %w", err)
	}

	return nil
}

func (r *moodEntryRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("mood_entries", id); err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}

	return nil
}

// isUniqueViolation sniffs a PostgREST error body for the Postgres
// unique violation code.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
