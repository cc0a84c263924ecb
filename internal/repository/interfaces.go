package repository

import (
	"context"
	"errors"
	"time"

	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/models"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEntry indicates the store rejected a second mood entry for
// the same (user, day). The unique constraint on (user_id, entry_date)
// is the only race guard for concurrent submissions.
var ErrDuplicateEntry = errors.New("entry already exists for this day")

// MoodEntryRepository defines the interface for mood entry data access
type MoodEntryRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	GetByID(ctx context.Context, id string) (*models.MoodEntry, error)
	GetByUserAndDate(ctx context.Context, userID string, date dates.Date) (*models.MoodEntry, error)
	// GetCompleteSince returns up to limit complete entries (selected
	// emoji confirmed) on or after since, newest first.
	GetCompleteSince(ctx context.Context, userID string, since dates.Date, limit int) ([]models.MoodEntry, error)
	// GetCompleteInRange returns complete entries between start and end
	// inclusive, oldest first. Nil bounds mean unbounded.
	GetCompleteInRange(ctx context.Context, userID string, start, end *time.Time) ([]models.MoodEntry, error)
	Update(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error)
	SetActivities(ctx context.Context, entryID string, activityIDs []string) error
	ClearAudioPath(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// AlertRepository defines the interface for pattern alert data access
type AlertRepository interface {
	Create(ctx context.Context, alert *models.PatternAlert) (*models.PatternAlert, error)
	GetByID(ctx context.Context, id string) (*models.PatternAlert, error)
	ListActive(ctx context.Context, userID string) ([]models.PatternAlert, error)
	// GetByTypeSince returns alerts of the given type detected at or
	// after since, dismissed or not. Used for de-duplication windows,
	// which dismissal does not reset.
	GetByTypeSince(ctx context.Context, userID string, alertType models.AlertType, since time.Time) ([]models.PatternAlert, error)
	Dismiss(ctx context.Context, id string, dismissedAt time.Time) (*models.PatternAlert, error)
}

// SettingsRepository defines the interface for user settings data access
type SettingsRepository interface {
	// GetByUserID returns (nil, nil) when the user has no settings row;
	// absence is not an error.
	GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error)
	Create(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error)
	Update(ctx context.Context, userID string, threshold int) (*models.UserSettings, error)
}

// ActivityRepository defines the interface for activity catalog access
type ActivityRepository interface {
	ListAll(ctx context.Context) ([]models.Activity, error)
	GetByKeys(ctx context.Context, keys []string) ([]models.Activity, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
