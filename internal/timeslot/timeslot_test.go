package timeslot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/salon-scheduler/internal/timeslot"
	"github.com/lunanails/salon-scheduler/internal/timezone"
)

func TestLabels(t *testing.T) {
	labels := timeslot.Labels(11, 20, 15)

	require.Len(t, labels, 36)
	assert.Equal(t, "11:00 AM", labels[0])
	assert.Equal(t, "11:45 AM", labels[3])
	assert.Equal(t, "12:00 PM", labels[4])
	assert.Equal(t, "7:45 PM", labels[35])
}

func TestToUTCRoundTrip(t *testing.T) {
	loc := timezone.Location("America/Los_Angeles")

	for _, date := range []string{"2024-01-15", "2024-07-04", "2024-11-03"} {
		for _, label := range timeslot.Labels(11, 20, 15) {
			instant, err := timeslot.ToUTC(date, label, loc)
			require.NoError(t, err)

			assert.Equal(t, label, timeslot.Label(instant, loc))
			assert.Equal(t, date, timeslot.DateKey(instant, loc))
		}
	}
}

func TestToUTCDSTOffset(t *testing.T) {
	loc := timezone.Location("America/Los_Angeles")

	// 2024-03-10 02:00 is the US spring-forward transition. The same
	// label two days either side must differ by exactly the 1h delta.
	before, err := timeslot.ToUTC("2024-03-08", "11:00 AM", loc)
	require.NoError(t, err)
	after, err := timeslot.ToUTC("2024-03-11", "11:00 AM", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 8, 19, 0, 0, 0, time.UTC), before)
	assert.Equal(t, time.Date(2024, 3, 11, 18, 0, 0, 0, time.UTC), after)
}

func TestToUTCNonexistentWallTime(t *testing.T) {
	loc := timezone.Location("America/Los_Angeles")

	// 2:30 AM does not exist on the spring-forward day; it resolves
	// forward by the gap to 3:30 AM PDT.
	instant, err := timeslot.ToUTC("2024-03-10", "2:30 AM", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 10, 10, 30, 0, 0, time.UTC), instant)
	assert.Equal(t, "3:30 AM", timeslot.Label(instant, loc))
}

func TestToUTCRejectsGarbage(t *testing.T) {
	loc := timezone.Location("America/Los_Angeles")

	_, err := timeslot.ToUTC("not-a-date", "11:00 AM", loc)
	assert.Error(t, err)

	_, err = timeslot.ToUTC("2024-01-15", "25:61 XX", loc)
	assert.Error(t, err)
}

func TestDayWindow(t *testing.T) {
	loc := timezone.Location("America/Los_Angeles")

	start, end, err := timeslot.DayWindow("2024-03-10", loc)
	require.NoError(t, err)

	// Spring-forward day is only 23 hours long.
	assert.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 23*time.Hour, end.Sub(start))

	inside, err := timeslot.ToUTC("2024-03-10", "7:45 PM", loc)
	require.NoError(t, err)
	assert.True(t, !inside.Before(start) && inside.Before(end))
}

func TestSameMinute(t *testing.T) {
	base := time.Date(2024, 5, 1, 18, 15, 0, 0, time.UTC)

	assert.True(t, timeslot.SameMinute(base, base.Add(30*time.Second)))
	assert.True(t, timeslot.SameMinute(base.Add(59*time.Second), base))
	assert.False(t, timeslot.SameMinute(base, base.Add(time.Minute)))
	assert.False(t, timeslot.SameMinute(base, base.Add(-time.Second)))
}
