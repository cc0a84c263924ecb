package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/logger"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/repository"
)

// topEmotionCount is how many ranked emotions a draft entry keeps.
const topEmotionCount = 3

// defaultSuggestions is the fallback when the classifier returns no
// emoji suggestions.
var defaultSuggestions = []string{
	models.EmotionNeutral.Glyph(),
	models.EmotionCalm.Glyph(),
	models.EmotionHappy.Glyph(),
}

type entryService struct {
	entryRepo    repository.MoodEntryRepository
	activityRepo repository.ActivityRepository
	classifier   Classifier
	detector     PatternDetector
	clock        dates.Clock
}

// NewEntryService creates the mood entry service.
func NewEntryService(
	entryRepo repository.MoodEntryRepository,
	activityRepo repository.ActivityRepository,
	classifier Classifier,
	detector PatternDetector,
	clock dates.Clock,
) EntryService {
	return &entryService{
		entryRepo:    entryRepo,
		activityRepo: activityRepo,
		classifier:   classifier,
		detector:     detector,
		clock:        clock,
	}
}

// CreateFromRecording analyzes the uploaded recording and stores a
// draft entry for today. The entry stays invisible to analytics and
// detection until the user finalizes it with an emoji.
func (s *entryService) CreateFromRecording(ctx context.Context, userID string, req *models.CreateEntryRequest) (*models.MoodEntry, error) {
	analysis, err := s.classifier.Analyze(ctx, req.AudioPath, req.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	today := dates.Today(s.clock)

	scores := make(map[string]float64, len(analysis.EmotionScores))
	for _, es := range analysis.EmotionScores {
		scores[es.Emotion] = es.Score
	}

	top := make([]models.EmotionScore, 0, topEmotionCount)
	for i, es := range analysis.EmotionScores {
		if i == topEmotionCount {
			break
		}
		top = append(top, models.EmotionScore{Emotion: es.Emotion, Score: es.Score})
	}

	suggestions := analysis.SuggestedEmojis
	if len(suggestions) == 0 {
		suggestions = defaultSuggestions
	}

	entry := &models.MoodEntry{
		UserID:          userID,
		EntryDate:       today.Format(),
		DayOfWeek:       today.Weekday().String(),
		DurationSeconds: req.DurationSeconds,
		Language:        req.Language,
		EmotionScores:   scores,
		TopEmotions:     top,
		SuggestedEmojis: suggestions,
		AudioPath:       &req.AudioPath,
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}

	return created, nil
}

func (s *entryService) GetEntry(ctx context.Context, userID, entryID string) (*models.MoodEntry, error) {
	return s.ownedEntry(ctx, userID, entryID)
}

// FinalizeEntry confirms the user's emoji choice, tags activities, and
// triggers a pattern detection pass. Detection failures are logged and
// never fail the finalize.
func (s *entryService) FinalizeEntry(ctx context.Context, userID, entryID string, req *models.FinalizeEntryRequest) (*models.MoodEntry, error) {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	activityIDs, err := s.resolveActivities(ctx, req.ActivityKeys)
	if err != nil {
		return nil, err
	}

	update := &models.MoodEntry{
		SelectedEmoji: &req.SelectedEmoji,
		Notes:         req.Notes.ToPtr(),
	}
	if _, err := s.entryRepo.Update(ctx, entry.ID, update); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	if err := s.entryRepo.SetActivities(ctx, entry.ID, activityIDs); err != nil {
		return nil, fmt.Errorf("set activities: %w", err)
	}

	finalized, err := s.entryRepo.GetByID(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("reload entry: %w", err)
	}

	if res := s.detector.Check(ctx, userID, finalized); res.Err != nil {
		logger.Ctx(ctx).Error("pattern detection failed",
			logger.String("entry_id", finalized.ID),
			logger.Err(res.Err))
	}

	return finalized, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if err := s.entryRepo.Delete(ctx, entry.ID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// DeleteAudio discards the stored recording path once the entry is
// finalized. Scores and transcript-derived fields stay.
func (s *entryService) DeleteAudio(ctx context.Context, userID, entryID string) error {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if err := s.entryRepo.ClearAudioPath(ctx, entry.ID); err != nil {
		return fmt.Errorf("clear audio path: %w", err)
	}
	return nil
}

// ownedEntry loads an entry and hides other users' entries behind
// ErrNotFound.
func (s *entryService) ownedEntry(ctx context.Context, userID, entryID string) (*models.MoodEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if entry.UserID != userID {
		return nil, ErrNotFound
	}
	return entry, nil
}

// resolveActivities maps catalog keys to activity IDs, rejecting keys
// the catalog does not know.
func (s *entryService) resolveActivities(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	activities, err := s.activityRepo.GetByKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("resolve activities: %w", err)
	}

	byKey := make(map[string]string, len(activities))
	for _, a := range activities {
		byKey[a.Key] = a.ID
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownActivity, key)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
