package schedule

import (
	"testing"
	"time"

	"teambattles/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGenerate_NamesForDefaultState(t *testing.T) {
	today := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	batch := Generate(today, 25)
	require.Len(t, batch, 4)

	want := []string{
		"LMAO Day '25' Team Battle",
		"LMAO Night '25' Team Battle",
		"LMAO Day '26' Team Battle",
		"LMAO Night '26' Team Battle",
	}
	for i, tournament := range batch {
		assert.Equal(t, want[i], tournament.Name)
	}
}

func TestGenerate_StartTimes(t *testing.T) {
	today := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	batch := Generate(today, 25)

	assert.Equal(t, time.Date(2025, 10, 8, 6, 58, 0, 0, time.UTC), batch[0].StartsAt)
	assert.Equal(t, time.Date(2025, 10, 8, 18, 58, 0, 0, time.UTC), batch[1].StartsAt)
	assert.Equal(t, time.Date(2025, 10, 9, 6, 58, 0, 0, time.UTC), batch[2].StartsAt)
	assert.Equal(t, time.Date(2025, 10, 9, 18, 58, 0, 0, time.UTC), batch[3].StartsAt)
}

func TestGenerate_CalendarRollover(t *testing.T) {
	testCases := []struct {
		name     string
		today    time.Time
		nextDate time.Time
	}{
		{
			name:     "LeapDay",
			today:    time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			nextDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "NonLeapFebruary",
			today:    time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			nextDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "EndOfYear",
			today:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			nextDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "EndOfThirtyDayMonth",
			today:    time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
			nextDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			batch := Generate(tc.today, 1)

			second := batch[2].StartsAt
			assert.Equal(t, tc.nextDate.Year(), second.Year())
			assert.Equal(t, tc.nextDate.Month(), second.Month())
			assert.Equal(t, tc.nextDate.Day(), second.Day())
		})
	}
}

func TestGenerate_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2025, 10, 8, 23, 59, 59, 999, time.UTC)

	batch := Generate(late, 25)
	assert.Equal(t, time.Date(2025, 10, 8, 6, 58, 0, 0, time.UTC), batch[0].StartsAt)
}

func TestMaxDayNum(t *testing.T) {
	assert.Equal(t, 0, MaxDayNum(nil))
	assert.Equal(t, 26, MaxDayNum(Generate(time.Now(), 25)))
}

func TestPropertyGenerateSequenceNumbers(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		last := rapid.IntRange(0, 1_000_000).Draw(t, "last")
		offsetDays := rapid.IntRange(0, 365*50).Draw(t, "offsetDays")
		today := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offsetDays)

		batch := Generate(today, last+1)

		// Property 1: exactly S+1, S+1, S+2, S+2
		if len(batch) != 4 {
			t.Fatalf("expected 4 tournaments, got %d", len(batch))
		}
		wantNums := []int{last + 1, last + 1, last + 2, last + 2}
		for i, tournament := range batch {
			assert.Equal(t, wantNums[i], tournament.DayNum, "sequence number at %d", i)
		}

		// Property 2: one Day and one Night per sequence number
		wantSlots := []models.Slot{models.SlotDay, models.SlotNight, models.SlotDay, models.SlotNight}
		for i, tournament := range batch {
			assert.Equal(t, wantSlots[i], tournament.Slot)
		}

		// Property 3: fixed UTC start times, second day exactly one calendar day later
		for _, tournament := range batch {
			assert.Equal(t, time.UTC, tournament.StartsAt.Location())
			assert.Equal(t, 58, tournament.StartsAt.Minute())
			assert.Equal(t, 0, tournament.StartsAt.Second())
			assert.Equal(t, 0, tournament.StartsAt.Nanosecond())
		}
		assert.Equal(t, 6, batch[0].StartsAt.Hour())
		assert.Equal(t, 18, batch[1].StartsAt.Hour())
		assert.Equal(t, batch[0].StartsAt.AddDate(0, 0, 1), batch[2].StartsAt)
		assert.Equal(t, batch[1].StartsAt.AddDate(0, 0, 1), batch[3].StartsAt)

		// Property 4: the batch upper bound is S+2
		assert.Equal(t, last+2, MaxDayNum(batch))
	})
}
