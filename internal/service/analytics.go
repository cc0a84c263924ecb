package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/repository"
)

const (
	// DefaultLookbackDays is the summary's mood-distribution window when
	// the caller does not pass one.
	DefaultLookbackDays = 30

	// minEntriesForInsights gates hasEnoughData on the summary.
	minEntriesForInsights = 10

	// weeklySummaryEntries is how many recent entries the weekly
	// narrative looks at, and the minimum total required to produce one.
	weeklySummaryEntries = 7

	// weeklySummaryMargin is how far positive and negative counts must
	// diverge before the narrative leaves the balanced middle.
	weeklySummaryMargin = 2
)

// Weekly narrative variants. Clients display these verbatim.
const (
	weeklyMsgNotEnoughData = "Keep logging your moods. We need at least a week of entries to spot your patterns."
	weeklyMsgUpbeat        = "You've had a bright week, with your positive moods clearly outweighing the tough ones."
	weeklyMsgConcerned     = "This week looked heavy. Be gentle with yourself, and consider reaching out to someone you trust."
	weeklyMsgBalanced      = "Your week was a balanced mix of ups and downs."
)

type analyticsService struct {
	entryRepo repository.MoodEntryRepository
	clock     dates.Clock
}

// NewAnalyticsService creates the analytics service.
func NewAnalyticsService(entryRepo repository.MoodEntryRepository, clock dates.Clock) AnalyticsService {
	return &analyticsService{entryRepo: entryRepo, clock: clock}
}

// Summary computes the progress view: mood distribution over the
// lookback window, the current streak, and the weekly narrative. The
// streak and the narrative always consider full history so a short
// lookback cannot hide them.
func (s *analyticsService) Summary(ctx context.Context, userID string, daysBack int) (*models.SummaryResponse, error) {
	if daysBack <= 0 {
		daysBack = DefaultLookbackDays
	}

	entries, err := s.entryRepo.GetCompleteInRange(ctx, userID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	windowStart := dates.DaysAgo(s.clock, daysBack)
	var window []models.MoodEntry
	for _, e := range entries {
		d, err := dates.Parse(e.EntryDate)
		if err != nil {
			continue
		}
		if !d.Before(windowStart) {
			window = append(window, e)
		}
	}

	return &models.SummaryResponse{
		MoodDistribution: moodDistribution(window),
		TotalEntries:     len(window),
		StreakDays:       streakDays(entries),
		WeeklySummary:    weeklySummary(entries),
		HasEnoughData:    len(window) >= minEntriesForInsights,
	}, nil
}

// moodDistribution buckets entries by emoji, percentage over the
// window total, sorted by count descending.
func moodDistribution(entries []models.MoodEntry) []models.MoodDistributionItem {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Emoji()]++
	}

	items := make([]models.MoodDistributionItem, 0, len(counts))
	for emoji, count := range counts {
		items = append(items, models.MoodDistributionItem{
			Emoji:      emoji,
			Count:      count,
			Percentage: int(math.Round(100 * float64(count) / float64(len(entries)))),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Emoji < items[j].Emoji
	})

	return items
}

// streakDays counts consecutive calendar days ending at the most recent
// entry. A gap of anything other than exactly one day breaks the run.
func streakDays(entries []models.MoodEntry) int {
	if len(entries) == 0 {
		return 0
	}

	// entries are oldest first; walk backwards from the newest.
	streak := 1
	for i := len(entries) - 1; i > 0; i-- {
		newer, err := dates.Parse(entries[i].EntryDate)
		if err != nil {
			break
		}
		older, err := dates.Parse(entries[i-1].EntryDate)
		if err != nil {
			break
		}
		if dates.DiffDays(newer, older) != 1 {
			break
		}
		streak++
	}

	return streak
}

// weeklySummary produces the narrative over the 7 most recent entries.
func weeklySummary(entries []models.MoodEntry) string {
	if len(entries) < weeklySummaryEntries {
		return weeklyMsgNotEnoughData
	}

	recent := entries[len(entries)-weeklySummaryEntries:]
	positive, negative := 0, 0
	for _, e := range recent {
		switch {
		case models.IsPositiveGlyph(e.Emoji()):
			positive++
		case models.IsNegativeGlyph(e.Emoji()):
			negative++
		}
	}

	switch {
	case positive-negative > weeklySummaryMargin:
		return weeklyMsgUpbeat
	case negative-positive > weeklySummaryMargin:
		return weeklyMsgConcerned
	default:
		return weeklyMsgBalanced
	}
}

func (s *analyticsService) Calendar(ctx context.Context, userID string, year, month int) ([]models.CalendarDay, error) {
	start, err := dates.MonthStart(year, month)
	if err != nil {
		return nil, err
	}
	end, err := dates.MonthEnd(year, month)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.GetCompleteInRange(ctx, userID, &start, &end)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	days := make([]models.CalendarDay, 0, len(entries))
	for _, e := range entries {
		activities := e.Activities
		if activities == nil {
			activities = []models.Activity{}
		}
		days = append(days, models.CalendarDay{
			Date:       e.EntryDate,
			DayOfWeek:  e.DayOfWeek,
			Emoji:      e.Emoji(),
			Activities: activities,
		})
	}

	return days, nil
}

// WeekdayDistribution groups entries into the seven weekday buckets.
// Every bucket is present even when empty.
func (s *analyticsService) WeekdayDistribution(ctx context.Context, userID string, year, month *int) (models.WeekdayDistribution, error) {
	entries, err := s.rangedEntries(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	dist := make(models.WeekdayDistribution, 7)
	for _, label := range dates.WeekdayLabels() {
		dist[label] = make(map[string]int)
	}

	for _, e := range entries {
		d, err := dates.Parse(e.EntryDate)
		if err != nil {
			continue
		}
		dist[d.Weekday().String()][e.Emoji()]++
	}

	return dist, nil
}

func (s *analyticsService) MoodTrend(ctx context.Context, userID string, year, month *int) ([]models.TrendPoint, error) {
	entries, err := s.rangedEntries(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	points := make([]models.TrendPoint, 0, len(entries))
	for _, e := range entries {
		keys := make([]string, 0, len(e.Activities))
		for _, a := range e.Activities {
			keys = append(keys, a.Key)
		}
		points = append(points, models.TrendPoint{
			Date:         e.EntryDate,
			Emoji:        e.Emoji(),
			ActivityKeys: keys,
		})
	}

	return points, nil
}

func (s *analyticsService) MoodCounts(ctx context.Context, userID string, year, month *int) (*models.MoodCounts, error) {
	entries, err := s.rangedEntries(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Emoji()]++
	}

	return &models.MoodCounts{Counts: counts, Total: len(entries)}, nil
}

// ActivityStats counts how many entries tag each activity. Percentage
// is over total entries, not total tag occurrences.
func (s *analyticsService) ActivityStats(ctx context.Context, userID string, year, month *int) ([]models.ActivityStat, error) {
	entries, err := s.rangedEntries(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, e := range entries {
		for _, a := range e.Activities {
			counts[a.Key]++
		}
	}

	stats := make([]models.ActivityStat, 0, len(counts))
	for key, count := range counts {
		stats = append(stats, models.ActivityStat{
			ActivityKey: key,
			Count:       count,
			Percentage:  int(math.Round(100 * float64(count) / float64(len(entries)))),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].ActivityKey < stats[j].ActivityKey
	})

	return stats, nil
}

// MoodActivityCorrelation averages the mood level of entries tagging
// each activity, sorted by average descending.
func (s *analyticsService) MoodActivityCorrelation(ctx context.Context, userID string, year, month *int) ([]models.ActivityMoodStat, error) {
	entries, err := s.rangedEntries(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	type acc struct {
		sum   int
		count int
	}
	levels := make(map[string]*acc)
	for _, e := range entries {
		level := models.MoodLevel(e.Emoji())
		for _, a := range e.Activities {
			if levels[a.Key] == nil {
				levels[a.Key] = &acc{}
			}
			levels[a.Key].sum += level
			levels[a.Key].count++
		}
	}

	stats := make([]models.ActivityMoodStat, 0, len(levels))
	for key, a := range levels {
		avg := float64(a.sum) / float64(a.count)
		stats = append(stats, models.ActivityMoodStat{
			ActivityKey: key,
			AverageMood: math.Round(avg*100) / 100,
			Count:       a.count,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AverageMood != stats[j].AverageMood {
			return stats[i].AverageMood > stats[j].AverageMood
		}
		return stats[i].ActivityKey < stats[j].ActivityKey
	})

	return stats, nil
}

// rangedEntries loads complete entries for the optional year/month
// filter: no filter means all history, a year alone means that calendar
// year, year plus month means that month.
func (s *analyticsService) rangedEntries(ctx context.Context, userID string, year, month *int) ([]models.MoodEntry, error) {
	var start, end *time.Time

	switch {
	case year == nil && month == nil:
		// all history
	case year == nil:
		return nil, ErrInvalidRange
	case month == nil:
		ys, ye := dates.YearStart(*year), dates.YearEnd(*year)
		start, end = &ys, &ye
	default:
		ms, err := dates.MonthStart(*year, *month)
		if err != nil {
			return nil, err
		}
		me, err := dates.MonthEnd(*year, *month)
		if err != nil {
			return nil, err
		}
		start, end = &ms, &me
	}

	entries, err := s.entryRepo.GetCompleteInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return entries, nil
}
