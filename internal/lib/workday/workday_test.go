package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestDateOfUsesLocation(t *testing.T) {
	// 03:00 UTC on the 10th is still the 9th in Costa Rica.
	instant := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", FormatDate(DateOf(instant, Location("America/Costa_Rica"))))
	assert.Equal(t, "2025-03-09", FormatDate(DateOf(instant, Location(""))))
}

func TestPreviousBusinessDays(t *testing.T) {
	tests := []struct {
		today string
		want  []string
	}{
		{today: "2025-03-12", want: []string{"2025-03-11", "2025-03-10"}}, // Wednesday
		{today: "2025-03-10", want: []string{"2025-03-07", "2025-03-06"}}, // Monday skips weekend
		{today: "2025-03-11", want: []string{"2025-03-10", "2025-03-07"}}, // Tuesday
		{today: "2025-03-09", want: []string{"2025-03-07", "2025-03-06"}}, // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			var got []string
			for _, d := range PreviousBusinessDays(mustDate(t, tt.today), 2) {
				got = append(got, FormatDate(d))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInJustificationWindow(t *testing.T) {
	today := mustDate(t, "2025-03-10")

	assert.True(t, InJustificationWindow(mustDate(t, "2025-03-07"), today))
	assert.True(t, InJustificationWindow(mustDate(t, "2025-03-06"), today))
	assert.False(t, InJustificationWindow(mustDate(t, "2025-03-08"), today))
	assert.False(t, InJustificationWindow(mustDate(t, "2025-03-05"), today))
	assert.False(t, InJustificationWindow(today, today))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, 450, m)

	m, err = ParseClock("16:30:00")
	require.NoError(t, err)
	assert.Equal(t, DayEnd, m)

	for _, bad := range []string{"", "7", "24:00", "10:60", "ab:cd", "10:5"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidatePartialDay(t *testing.T) {
	start, end, err := ValidatePartialDay("7:00", "09:30")
	require.NoError(t, err)
	assert.Equal(t, "07:00", start)
	assert.Equal(t, "09:30", end)

	_, _, err = ValidatePartialDay("06:30", "08:00")
	assert.EqualError(t, err, "las horas deben estar entre 07:00 y 16:30")

	_, _, err = ValidatePartialDay("10:00", "10:00")
	assert.EqualError(t, err, "hora_fin debe ser posterior a hora_inicio")

	_, _, err = ValidatePartialDay("07:00", "11:01")
	assert.EqualError(t, err, "la media jornada no puede exceder 4 horas")

	_, _, err = ValidatePartialDay("12:00", "16:00")
	assert.NoError(t, err)
}

func TestCompactHours(t *testing.T) {
	assert.Equal(t, "0700-0930", CompactHours("07:00", "09:30"))
	assert.LessOrEqual(t, len(CompactHours("12:15", "16:15")), 10)
}
