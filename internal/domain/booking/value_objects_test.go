//go:build unit

package booking_test

import (
	"testing"
	"time"

	"hall-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, date, start, end string) booking.TimeSlot {
	t.Helper()
	d, err := booking.ParseDate(date)
	require.NoError(t, err)
	s, err := booking.ParseMinuteOfDay(start)
	require.NoError(t, err)
	e, err := booking.ParseMinuteOfDay(end)
	require.NoError(t, err)
	slot, err := booking.NewTimeSlot(d, s, e)
	require.NoError(t, err)
	return slot
}

func TestParseDate(t *testing.T) {
	t.Run("round trips", func(t *testing.T) {
		d, err := booking.ParseDate("2026-10-12")
		require.NoError(t, err)
		assert.Equal(t, "2026-10-12", d.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, raw := range []string{"", "12/10/2026", "2026-13-01", "2026-10-12T00:00:00Z"} {
			_, err := booking.ParseDate(raw)
			assert.Error(t, err, raw)
		}
	})

	t.Run("ordering and arithmetic", func(t *testing.T) {
		a, _ := booking.ParseDate("2026-10-12")
		b, _ := booking.ParseDate("2026-10-13")

		assert.True(t, a.Before(b))
		assert.True(t, b.After(a))
		assert.Equal(t, b, a.AddDays(1))
		assert.Equal(t, a, a.AddDays(0))
	})

	t.Run("DateOf truncates the time of day", func(t *testing.T) {
		at := time.Date(2026, 10, 12, 17, 45, 3, 0, time.UTC)
		assert.Equal(t, "2026-10-12", booking.DateOf(at).String())
	})
}

func TestParseMinuteOfDay(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"19:00", 1140},
		{"23:59", 1439},
	}
	for _, c := range cases {
		m, err := booking.ParseMinuteOfDay(c.raw)
		require.NoError(t, err, c.raw)
		assert.Equal(t, c.want, int(m))
		assert.Equal(t, c.raw, m.String())
	}

	for _, raw := range []string{"", "9:0:0", "24:00", "12:60", "noon"} {
		_, err := booking.ParseMinuteOfDay(raw)
		assert.Error(t, err, raw)
	}
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := mustSlot(t, "2026-10-12", "09:00", "11:00")

	t.Run("overlapping intervals", func(t *testing.T) {
		cases := []booking.TimeSlot{
			mustSlot(t, "2026-10-12", "10:00", "12:00"), // crosses the end
			mustSlot(t, "2026-10-12", "08:00", "09:30"), // crosses the start
			mustSlot(t, "2026-10-12", "09:30", "10:30"), // contained
			mustSlot(t, "2026-10-12", "08:00", "12:00"), // contains
			mustSlot(t, "2026-10-12", "09:00", "11:00"), // identical
		}
		for _, other := range cases {
			assert.True(t, base.Overlaps(other), other.String())
			assert.True(t, other.Overlaps(base), other.String())
		}
	})

	t.Run("back to back slots do not overlap", func(t *testing.T) {
		before := mustSlot(t, "2026-10-12", "07:00", "09:00")
		after := mustSlot(t, "2026-10-12", "11:00", "13:00")

		assert.False(t, base.Overlaps(before))
		assert.False(t, base.Overlaps(after))
	})

	t.Run("same interval on another date does not overlap", func(t *testing.T) {
		other := mustSlot(t, "2026-10-13", "09:00", "11:00")
		assert.False(t, base.Overlaps(other))
	})
}

func TestNewTimeSlot(t *testing.T) {
	d, _ := booking.ParseDate("2026-10-12")
	start, _ := booking.ParseMinuteOfDay("11:00")
	end, _ := booking.ParseMinuteOfDay("09:00")

	_, err := booking.NewTimeSlot(d, start, end)
	assert.ErrorIs(t, err, booking.ErrSlotOrder)

	_, err = booking.NewTimeSlot(d, start, start)
	assert.ErrorIs(t, err, booking.ErrSlotOrder)
}
