package service

import (
	"context"
	"errors"
	"testing"

	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/pkg/emotionml"
)

func newTestEntryService() (EntryService, *mockEntryRepository, *mockActivityRepository, *mockClassifier, *mockDetector) {
	entryRepo := newMockEntryRepository()
	activityRepo := &mockActivityRepository{}
	classifier := &mockClassifier{
		analysis: &emotionml.Analysis{
			Transcription: "today was fine",
			EmotionScores: []emotionml.EmotionScore{
				{Emotion: "happy", Score: 0.52},
				{Emotion: "calm", Score: 0.21},
				{Emotion: "neutral", Score: 0.12},
				{Emotion: "surprised", Score: 0.08},
				{Emotion: "sad", Score: 0.04},
			},
			SuggestedEmojis: []string{"😊", "😌", "😐"},
		},
	}
	detector := &mockDetector{}
	svc := NewEntryService(entryRepo, activityRepo, classifier, detector, testClock())
	return svc, entryRepo, activityRepo, classifier, detector
}

func TestCreateFromRecording(t *testing.T) {
	svc, _, _, _, _ := newTestEntryService()

	entry, err := svc.CreateFromRecording(context.Background(), testUser, &models.CreateEntryRequest{
		AudioPath:       "/audio/rec1.wav",
		DurationSeconds: 12.5,
		Language:        "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.EntryDate != "2025-11-10" {
		t.Errorf("expected today's date, got %s", entry.EntryDate)
	}
	if entry.DayOfWeek != "Mon" {
		t.Errorf("expected Mon, got %s", entry.DayOfWeek)
	}
	if entry.IsComplete() {
		t.Error("a fresh entry must be a draft")
	}
	if len(entry.TopEmotions) != 3 {
		t.Errorf("expected top 3 emotions, got %d", len(entry.TopEmotions))
	}
	if entry.TopEmotions[0].Emotion != "happy" {
		t.Errorf("expected happy first, got %s", entry.TopEmotions[0].Emotion)
	}
	if entry.EmotionScores["sad"] != 0.04 {
		t.Errorf("expected the full score vector, got %+v", entry.EmotionScores)
	}
	if entry.AudioPath == nil || *entry.AudioPath != "/audio/rec1.wav" {
		t.Errorf("expected audio path kept, got %v", entry.AudioPath)
	}
	if len(entry.SuggestedEmojis) != 3 {
		t.Errorf("expected suggestions, got %+v", entry.SuggestedEmojis)
	}
}

func TestCreateFromRecording_DuplicateDay(t *testing.T) {
	svc, entryRepo, _, _, _ := newTestEntryService()
	entryRepo.add(completeEntry("existing", testUser, "2025-11-10", models.EmotionHappy.Glyph()))

	_, err := svc.CreateFromRecording(context.Background(), testUser, &models.CreateEntryRequest{
		AudioPath: "/audio/rec2.wav",
	})
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
}

func TestCreateFromRecording_ClassifierFailure(t *testing.T) {
	svc, _, _, classifier, _ := newTestEntryService()
	classifier.err = errors.New("model unavailable")

	_, err := svc.CreateFromRecording(context.Background(), testUser, &models.CreateEntryRequest{
		AudioPath: "/audio/rec3.wav",
	})
	if !errors.Is(err, ErrClassifierUnavailable) {
		t.Fatalf("err = %v, want ErrClassifierUnavailable", err)
	}
}

func TestCreateFromRecording_FallbackSuggestions(t *testing.T) {
	svc, _, _, classifier, _ := newTestEntryService()
	classifier.analysis.SuggestedEmojis = nil

	entry, err := svc.CreateFromRecording(context.Background(), testUser, &models.CreateEntryRequest{
		AudioPath: "/audio/rec4.wav",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entry.SuggestedEmojis) == 0 {
		t.Fatal("expected fallback suggestions")
	}
	if entry.SuggestedEmojis[0] != models.EmotionNeutral.Glyph() {
		t.Errorf("expected the neutral glyph first, got %s", entry.SuggestedEmojis[0])
	}
}

func TestFinalizeEntry(t *testing.T) {
	svc, entryRepo, activityRepo, _, detector := newTestEntryService()
	activityRepo.activities = []models.Activity{
		{ID: "a1", Key: "exercise"},
		{ID: "a2", Key: "reading"},
	}
	entryRepo.catalog["a1"] = activityRepo.activities[0]
	entryRepo.catalog["a2"] = activityRepo.activities[1]

	draft := &models.MoodEntry{ID: "draft-1", UserID: testUser, EntryDate: "2025-11-10"}
	entryRepo.add(draft)

	req := &models.FinalizeEntryRequest{
		SelectedEmoji: models.EmotionHappy.Glyph(),
		ActivityKeys:  []string{"exercise", "reading"},
	}
	req.Notes = models.NullableString{Value: "good run", Valid: true, Set: true}

	entry, err := svc.FinalizeEntry(context.Background(), testUser, "draft-1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !entry.IsComplete() || entry.Emoji() != models.EmotionHappy.Glyph() {
		t.Errorf("expected the entry finalized with the happy glyph, got %+v", entry)
	}
	if entry.Notes == nil || *entry.Notes != "good run" {
		t.Errorf("expected notes saved, got %v", entry.Notes)
	}
	if len(entry.Activities) != 2 {
		t.Errorf("expected 2 activities joined, got %d", len(entry.Activities))
	}
	if detector.calls != 1 {
		t.Errorf("expected one detection pass, got %d", detector.calls)
	}
}

func TestFinalizeEntry_UnknownActivity(t *testing.T) {
	svc, entryRepo, _, _, detector := newTestEntryService()
	entryRepo.add(&models.MoodEntry{ID: "draft-1", UserID: testUser, EntryDate: "2025-11-10"})

	_, err := svc.FinalizeEntry(context.Background(), testUser, "draft-1", &models.FinalizeEntryRequest{
		SelectedEmoji: models.EmotionHappy.Glyph(),
		ActivityKeys:  []string{"skydiving"},
	})
	if !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("expected ErrUnknownActivity, got %v", err)
	}
	if detector.calls != 0 {
		t.Error("detection must not run on a failed finalize")
	}
}

func TestFinalizeEntry_OtherUsersEntry(t *testing.T) {
	svc, entryRepo, _, _, _ := newTestEntryService()
	entryRepo.add(&models.MoodEntry{ID: "theirs", UserID: "user-2", EntryDate: "2025-11-10"})

	_, err := svc.FinalizeEntry(context.Background(), testUser, "theirs", &models.FinalizeEntryRequest{
		SelectedEmoji: models.EmotionHappy.Glyph(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFinalizeEntry_DetectionFailureDoesNotFail(t *testing.T) {
	svc, entryRepo, _, _, detector := newTestEntryService()
	detector.result = CheckResult{Err: errors.New("store down")}
	entryRepo.add(&models.MoodEntry{ID: "draft-1", UserID: testUser, EntryDate: "2025-11-10"})

	entry, err := svc.FinalizeEntry(context.Background(), testUser, "draft-1", &models.FinalizeEntryRequest{
		SelectedEmoji: models.EmotionSad.Glyph(),
	})
	if err != nil {
		t.Fatalf("finalize must succeed despite detection failure, got %v", err)
	}
	if !entry.IsComplete() {
		t.Error("expected the entry finalized")
	}
}

func TestDeleteAudio(t *testing.T) {
	svc, entryRepo, _, _, _ := newTestEntryService()
	entry := completeEntry("e1", testUser, "2025-11-10", models.EmotionHappy.Glyph())
	entry.AudioPath = strPtr("/audio/rec1.wav")
	entryRepo.add(entry)

	if err := svc.DeleteAudio(context.Background(), testUser, "e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.AudioPath != nil {
		t.Error("expected the audio path cleared")
	}
	if entry.SelectedEmoji == nil {
		t.Error("expected the rest of the entry untouched")
	}
}

func TestDeleteEntry(t *testing.T) {
	svc, entryRepo, _, _, _ := newTestEntryService()
	entryRepo.add(completeEntry("e1", testUser, "2025-11-10", models.EmotionHappy.Glyph()))

	if err := svc.DeleteEntry(context.Background(), testUser, "e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetEntry(context.Background(), testUser, "e1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected the entry gone, got %v", err)
	}
}

func TestDeleteEntry_NotOwned(t *testing.T) {
	svc, entryRepo, _, _, _ := newTestEntryService()
	entryRepo.add(completeEntry("theirs", "user-2", "2025-11-10", models.EmotionHappy.Glyph()))

	if err := svc.DeleteEntry(context.Background(), testUser, "theirs"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := entryRepo.GetByID(context.Background(), "theirs"); err != nil {
		t.Error("the entry must not be deleted")
	}
}
