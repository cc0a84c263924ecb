package models

import "time"

// User represents a user in the system
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity is a taggable activity (exercise, work, social, ...)
type Activity struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// EmotionScore is one ranked entry of the classifier output.
type EmotionScore struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// MoodEntry represents one user's mood record for one calendar day.
// The store enforces uniqueness on (user_id, entry_date). An entry is
// complete once the user has confirmed an emoji; incomplete entries are
// invisible to analytics and pattern detection.
type MoodEntry struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	EntryDate       string             `json:"entry_date"`  // canonical YYYY-MM-DD
	DayOfWeek       string             `json:"day_of_week"` // derived, stored for fast grouping
	DurationSeconds float64            `json:"duration_seconds"`
	Language        string             `json:"language"`
	EmotionScores   map[string]float64 `json:"emotion_scores"`
	TopEmotions     []EmotionScore     `json:"top_emotions"`
	SuggestedEmojis []string           `json:"suggested_emojis"`
	SelectedEmoji   *string            `json:"selected_emoji,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	AudioPath       *string            `json:"audio_path,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Activities      []Activity         `json:"activities,omitempty"`
}

// IsComplete reports whether the user has confirmed a mood emoji.
func (e *MoodEntry) IsComplete() bool {
	return e.SelectedEmoji != nil
}

// Emoji returns the selected emoji, or "" for an incomplete entry.
func (e *MoodEntry) Emoji() string {
	if e.SelectedEmoji == nil {
		return ""
	}
	return *e.SelectedEmoji
}

// Intervention threshold bounds for UserSettings.
const (
	DefaultInterventionThreshold = 5
	MinInterventionThreshold     = 3
	MaxInterventionThreshold     = 14
)

// UserSettings holds per-user detection tuning. Created lazily with
// defaults the first time it is read.
type UserSettings struct {
	UserID                string    `json:"user_id"`
	InterventionThreshold int       `json:"intervention_threshold"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CreateEntryRequest represents the request to record today's mood entry
// from a finished voice recording.
type CreateEntryRequest struct {
	AudioPath       string  `json:"audio_path" binding:"required"`
	DurationSeconds float64 `json:"duration_seconds"`
	Language        string  `json:"language"`
}

// FinalizeEntryRequest represents the request to confirm an entry's
// emoji, activity tags, and optional note. Notes uses NullableString so
// "field absent" and "notes: null" stay distinguishable.
type FinalizeEntryRequest struct {
	SelectedEmoji string         `json:"selected_emoji"`
	ActivityKeys  []string       `json:"activity_keys"`
	Notes         NullableString `json:"notes"`
}

// UpdateSettingsRequest represents the request to change detection tuning.
type UpdateSettingsRequest struct {
	InterventionThreshold int `json:"intervention_threshold"`
}

// MoodDistributionItem is one emoji bucket of the mood distribution.
type MoodDistributionItem struct {
	Emoji      string `json:"emoji"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// SummaryResponse is the progress-view summary payload.
type SummaryResponse struct {
	MoodDistribution []MoodDistributionItem `json:"mood_distribution"`
	TotalEntries     int                    `json:"total_entries"`
	StreakDays       int                    `json:"streak_days"`
	WeeklySummary    string                 `json:"weekly_summary"`
	HasEnoughData    bool                   `json:"has_enough_data"`
}

// CalendarDay is one complete entry rendered for the month calendar.
type CalendarDay struct {
	Date       string     `json:"date"`
	DayOfWeek  string     `json:"day_of_week"`
	Emoji      string     `json:"emoji"`
	Activities []Activity `json:"activities"`
}

// WeekdayDistribution maps each weekday label (Sun..Sat) to its
// emoji counts. All seven buckets are always present.
type WeekdayDistribution map[string]map[string]int

// TrendPoint is one chronological point of the mood trend series.
type TrendPoint struct {
	Date         string   `json:"date"`
	Emoji        string   `json:"emoji"`
	ActivityKeys []string `json:"activity_keys"`
}

// MoodCounts is the flat emoji tally.
type MoodCounts struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// ActivityStat counts how many entries tag an activity.
type ActivityStat struct {
	ActivityKey string `json:"activity_key"`
	Count       int    `json:"count"`
	Percentage  int    `json:"percentage"`
}

// ActivityMoodStat is the average mood level across entries tagging an
// activity.
type ActivityMoodStat struct {
	ActivityKey string  `json:"activity_key"`
	AverageMood float64 `json:"average_mood"`
	Count       int     `json:"count"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest represents the signup request
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
