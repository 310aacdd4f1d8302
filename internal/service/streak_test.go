package service

import (
	"context"
	"testing"
	"time"

	"ascend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var streakToday = time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)

func entriesOn(entryType string, dates ...string) []model.TrackerEntry {
	var out []model.TrackerEntry
	for _, d := range dates {
		out = append(out, model.TrackerEntry{
			MemberID: 1, Type: entryType, EntryDate: d, Value: `{"completed":true}`,
		})
	}
	return out
}

func TestStreakContinuity(t *testing.T) {
	// today, -1, -2 present; gap at -3; -4 present but unreachable
	entries := entriesOn(model.TypeWorkout, "2026-08-31", "2026-08-30", "2026-08-29", "2026-08-27")
	assert.Equal(t, 3, Streak(entries, model.TypeWorkout, streakToday))
}

func TestStreakZeroWhenTodayMissing(t *testing.T) {
	// a long run ending yesterday still reads 0: the anchor is always today
	entries := entriesOn(model.TypeMeditation, "2026-08-30", "2026-08-29", "2026-08-28")
	assert.Equal(t, 0, Streak(entries, model.TypeMeditation, streakToday))
}

func TestStreakIgnoresCompletedFlag(t *testing.T) {
	// presence extends the streak even when the payload says not completed
	entries := []model.TrackerEntry{
		{MemberID: 1, Type: model.TypeHabits, EntryDate: "2026-08-31", Value: `{"completed":false}`},
		{MemberID: 1, Type: model.TypeHabits, EntryDate: "2026-08-30", Value: `{"completed":false}`},
	}
	assert.Equal(t, 2, Streak(entries, model.TypeHabits, streakToday))
}

func TestStreakEmptyAndOtherTypes(t *testing.T) {
	assert.Equal(t, 0, Streak(nil, model.TypeSleep, streakToday))

	entries := entriesOn(model.TypeReading, "2026-08-31", "2026-08-30")
	assert.Equal(t, 0, Streak(entries, model.TypeSleep, streakToday))
	assert.Equal(t, 2, Streak(entries, model.TypeReading, streakToday))
}

func TestStreakSingleDayGapStops(t *testing.T) {
	entries := entriesOn(model.TypeJournal, "2026-08-31", "2026-08-29", "2026-08-28")
	assert.Equal(t, 1, Streak(entries, model.TypeJournal, streakToday))
}

// Duplicate dates violate the one-entry-per-day invariant (the upsert race can
// produce them). The walk compares position i against today-i, so the second
// copy of a date breaks the run rather than being skipped.
func TestStreakDuplicateDates(t *testing.T) {
	entries := entriesOn(model.TypeDiet, "2026-08-31", "2026-08-31", "2026-08-30")
	assert.Equal(t, 1, Streak(entries, model.TypeDiet, streakToday))
}

func TestStreakMonthBoundary(t *testing.T) {
	sept2 := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
	entries := entriesOn(model.TypeWorkout, "2026-09-02", "2026-09-01", "2026-08-31", "2026-08-30")
	assert.Equal(t, 4, Streak(entries, model.TypeWorkout, sept2))
}

func TestConsistency(t *testing.T) {
	entries := entriesOn(model.TypePosture, "2026-08-31", "2026-08-30", "2026-08-28")
	assert.InDelta(t, 3.0/7.0, Consistency(entries, model.TypePosture, 7, streakToday), 1e-9)
	assert.InDelta(t, 1.0, Consistency(entries, model.TypePosture, 2, streakToday), 1e-9)
	assert.Equal(t, 0.0, Consistency(entries, model.TypePosture, 0, streakToday))
	assert.Equal(t, 0.0, Consistency(nil, model.TypePosture, 7, streakToday))
}

// Dates have to survive the store as the exact YYYY-MM-DD strings the walk
// compares against; a DATE-typed column would hand back RFC3339 timestamps
// and zero every streak.
func TestEntryDatesRoundTripAsStrings(t *testing.T) {
	svc := NewTrackerService(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.TrackerEntry{
		MemberID: 1, Type: model.TypeSleep, EntryDate: "2026-08-31", Value: `{"completed":true}`,
	}))

	entries, err := svc.LoadEntries(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-08-31", entries[0].EntryDate)
}

func TestStreakForCountsStoredRun(t *testing.T) {
	svc := NewTrackerService(newTestDB(t))
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, svc.Create(ctx, &model.TrackerEntry{
			MemberID:  1,
			Type:      model.TypeWorkout,
			EntryDate: now.AddDate(0, 0, -i).Format("2006-01-02"),
			Value:     `{"completed":true}`,
		}))
	}

	resp, err := svc.StreakFor(ctx, 1, model.TypeWorkout)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Streak)
	assert.InDelta(t, 1.0, resp.Consistency, 1e-9)
}
