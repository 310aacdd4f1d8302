package service

import (
	"context"
	"sort"
	"time"

	"ascend/internal/model"
)

// Streak counts consecutive calendar days, ending at today, with an entry of
// entryType present. Presence is what counts: a logged-but-incomplete entry
// still extends the streak. A member who has not logged today yet reads 0,
// whatever yesterday's run looked like: the anchor is always today.
func Streak(entries []model.TrackerEntry, entryType string, today time.Time) int {
	dates := typeDates(entries, entryType)
	if len(dates) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	anchor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	count := 0
	for i, d := range dates {
		expected := anchor.AddDate(0, 0, -i).Format(dateLayout)
		if d != expected {
			break
		}
		count++
	}
	return count
}

// Consistency is the fraction of the trailing days-day window, ending at
// today inclusive, that has an entry of entryType. days must be positive.
func Consistency(entries []model.TrackerEntry, entryType string, days int, today time.Time) float64 {
	if days <= 0 {
		return 0
	}
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Type == entryType {
			present[e.EntryDate] = true
		}
	}

	anchor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	hit := 0
	for i := 0; i < days; i++ {
		if present[anchor.AddDate(0, 0, -i).Format(dateLayout)] {
			hit++
		}
	}
	return float64(hit) / float64(days)
}

func typeDates(entries []model.TrackerEntry, entryType string) []string {
	var dates []string
	for _, e := range entries {
		if e.Type == entryType {
			dates = append(dates, e.EntryDate)
		}
	}
	return dates
}

// StreakFor loads the member's entries and derives streak plus 7-day
// consistency for one tracker type.
func (s *TrackerService) StreakFor(ctx context.Context, memberID int, entryType string) (model.StreakResponse, error) {
	entries, err := s.LoadEntries(ctx, memberID, nil)
	if err != nil {
		return model.StreakResponse{}, err
	}
	now := time.Now()
	return model.StreakResponse{
		Type:        entryType,
		Streak:      Streak(entries, entryType, now),
		Consistency: Consistency(entries, entryType, 7, now),
	}, nil
}
