package service

import (
	"context"

	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/pkg/emotionml"
)

// Classifier analyzes a recorded voice note. Satisfied by
// *emotionml.Client in production.
type Classifier interface {
	Analyze(ctx context.Context, audioPath, language string) (*emotionml.Analysis, error)
}

// EntryService manages the mood entry lifecycle: a draft is created
// from a recording, then finalized with the user's emoji choice.
type EntryService interface {
	CreateFromRecording(ctx context.Context, userID string, req *models.CreateEntryRequest) (*models.MoodEntry, error)
	GetEntry(ctx context.Context, userID, entryID string) (*models.MoodEntry, error)
	FinalizeEntry(ctx context.Context, userID, entryID string, req *models.FinalizeEntryRequest) (*models.MoodEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
	DeleteAudio(ctx context.Context, userID, entryID string) error
}

// PatternDetector evaluates a user's recent history for concerning
// mood patterns and records alerts for any it finds. Detection is
// best-effort: failures are reported in the CheckResult, never as a
// hard error to the entry flow.
type PatternDetector interface {
	Check(ctx context.Context, userID string, entry *models.MoodEntry) CheckResult
}

// AlertService exposes pattern alerts to the user.
type AlertService interface {
	ListActive(ctx context.Context, userID string) ([]models.PatternAlert, error)
	Dismiss(ctx context.Context, userID, alertID string) (*models.PatternAlert, error)
}

// AnalyticsService computes read-only aggregations over finalized
// entries. Optional year/month pointers narrow the range: both nil
// means all history, year alone means that year, year plus month
// means that month.
type AnalyticsService interface {
	Summary(ctx context.Context, userID string, daysBack int) (*models.SummaryResponse, error)
	Calendar(ctx context.Context, userID string, year, month int) ([]models.CalendarDay, error)
	WeekdayDistribution(ctx context.Context, userID string, year, month *int) (models.WeekdayDistribution, error)
	MoodTrend(ctx context.Context, userID string, year, month *int) ([]models.TrendPoint, error)
	MoodCounts(ctx context.Context, userID string, year, month *int) (*models.MoodCounts, error)
	ActivityStats(ctx context.Context, userID string, year, month *int) ([]models.ActivityStat, error)
	MoodActivityCorrelation(ctx context.Context, userID string, year, month *int) ([]models.ActivityMoodStat, error)
}

// SettingsService manages per-user detection settings.
type SettingsService interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
	Update(ctx context.Context, userID string, req *models.UpdateSettingsRequest) (*models.UserSettings, error)
}

// AuthService handles authentication against Supabase Auth.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}
