package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEpochMillis(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)

	ts := FromEpochMillis(1541721977796, kst)
	assert.Equal(t, 2018, ts.Year())
	assert.Equal(t, time.November, ts.Month())
	assert.Equal(t, 9, ts.Day())
	assert.Equal(t, 9, ts.Hour())
	assert.Equal(t, 6, ts.Minute())
	assert.Equal(t, 17, ts.Second())
	assert.Equal(t, 796*int(time.Millisecond), ts.Nanosecond())

	utc := FromEpochMillis(1541721977796, nil)
	assert.Equal(t, time.UTC, utc.Location())
	assert.Equal(t, 0, utc.Hour())
	assert.True(t, ts.Equal(utc))
}

func TestExtractTime(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)

	input := []time.Time{
		FromEpochMillis(1541721977796, kst),
		time.Date(2018, time.January, 1, 23, 59, 0, 0, time.UTC),
		time.Date(2018, time.January, 7, 0, 0, 0, 0, time.UTC),
		FromEpochMillis(1541721977796, kst),
	}

	cols := ExtractTime(input)

	require.Equal(t, len(input), cols.Len())
	for _, col := range [][]string{cols.Hours, cols.Days, cols.Weeks, cols.Months, cols.Years, cols.Weekdays} {
		assert.Len(t, col, len(input))
	}

	assert.Equal(t, input, cols.Timestamps)
	assert.Equal(t, []string{"09", "23", "00", "09"}, cols.Hours)
	assert.Equal(t, []string{"09", "01", "07", "09"}, cols.Days)
	assert.Equal(t, []string{"44", "00", "01", "44"}, cols.Weeks)
	assert.Equal(t, []string{"11", "01", "01", "11"}, cols.Months)
	assert.Equal(t, []string{"2018", "2018", "2018", "2018"}, cols.Years)
	assert.Equal(t, []string{"Friday", "Monday", "Sunday", "Friday"}, cols.Weekdays)
}

func TestExtractTime_Empty(t *testing.T) {
	cols := ExtractTime(nil)
	assert.Equal(t, 0, cols.Len())
	assert.Empty(t, cols.Entries())
}

func TestSundayWeek(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"year starts on Sunday", time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC), 1},
		{"Saturday before first Sunday", time.Date(2016, time.January, 2, 0, 0, 0, 0, time.UTC), 0},
		{"first Sunday", time.Date(2016, time.January, 3, 0, 0, 0, 0, time.UTC), 1},
		{"last day of leap year", time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC), 52},
		{"mid November", time.Date(2018, time.November, 30, 0, 0, 0, 0, time.UTC), 47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SundayWeek(tt.date))
		})
	}
}

func TestTimeColumns_Entries(t *testing.T) {
	ts := time.Date(2018, time.November, 15, 16, 30, 26, 0, time.UTC)

	entries := ExtractTime([]time.Time{ts}).Entries()
	require.Len(t, entries, 1)

	e := entries[0]
	assert.True(t, ts.Equal(e.StartTime))
	assert.Equal(t, 16, e.Hour)
	assert.Equal(t, 15, e.Day)
	assert.Equal(t, 45, e.Week)
	assert.Equal(t, 11, e.Month)
	assert.Equal(t, 2018, e.Year)
	assert.Equal(t, "Thursday", e.Weekday)
}

func TestTimeColumns_EntriesStoreLocalWallClock(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)

	entries := ExtractTime([]time.Time{FromEpochMillis(1541721977796, kst)}).Entries()
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, time.UTC, e.StartTime.Location())
	assert.Equal(t, e.Hour, e.StartTime.Hour())
	assert.Equal(t, e.Day, e.StartTime.Day())
	assert.Equal(t, e.Weekday, e.StartTime.Weekday().String())
	assert.Equal(t, time.Date(2018, time.November, 9, 9, 6, 17, 796*int(time.Millisecond), time.UTC), e.StartTime)
}

func TestWallClock(t *testing.T) {
	ts := time.Date(2018, time.November, 9, 9, 6, 17, 5, time.FixedZone("KST", 9*60*60))

	wall := WallClock(ts)
	assert.Equal(t, time.UTC, wall.Location())
	assert.Equal(t, time.Date(2018, time.November, 9, 9, 6, 17, 5, time.UTC), wall)

	utc := time.Date(2018, time.November, 9, 0, 6, 17, 0, time.UTC)
	assert.Equal(t, utc, WallClock(utc))
}
