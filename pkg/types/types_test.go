package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

func TestParseClockTime(t *testing.T) {
	valid := map[string]types.ClockTime{
		"9:30 AM":  "9:30 AM",
		"09:30am":  "9:30 AM",
		"12:00 pm": "12:00 PM",
		"12:15 AM": "12:15 AM",
		" 2:05 PM": "2:05 PM",
	}
	for in, want := range valid {
		got, err := types.ParseClockTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "9:30", "13:00 PM", "0:30 AM", "9:3 AM", "9:60 AM", "noon"} {
		_, err := types.ParseClockTime(in)
		assert.ErrorIs(t, err, types.ErrInvalidClockTime, in)
	}
}

func TestClockTime_Minutes(t *testing.T) {
	m, err := types.ClockTime("12:15 AM").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 15, m)

	m, err = types.ClockTime("12:00 PM").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 720, m)

	ts, err := types.ClockTime("2:30 PM").TimeString()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:30"), ts)
}

func TestClockFromMinutes(t *testing.T) {
	assert.Equal(t, types.ClockTime("12:00 AM"), types.ClockFromMinutes(0))
	assert.Equal(t, types.ClockTime("2:30 PM"), types.ClockFromMinutes(870))
	assert.Equal(t, types.ClockTime("11:30 PM"), types.ClockFromMinutes(-30))
	assert.Equal(t, types.ClockTime("1:00 AM"), types.ClockFromMinutes(25*60))
}

func TestParseDateKey(t *testing.T) {
	got, err := types.ParseDateKey("05_03_2026")
	require.NoError(t, err)
	assert.Equal(t, types.DateKey("5_3_2026"), got)

	_, err = types.ParseDateKey("29_2_2024")
	assert.NoError(t, err)

	for _, in := range []string{"", "2026-03-05", "31_4_2026", "29_2_2025", "0_1_2026", "1_13_2026", "a_b_c"} {
		_, err := types.ParseDateKey(in)
		assert.ErrorIs(t, err, types.ErrInvalidDateKey, in)
	}
}

func TestDateKey_Conversions(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	day := time.Date(2026, time.October, 18, 23, 30, 0, 0, loc)

	key := types.NewDateKey(day)
	assert.Equal(t, types.DateKey("18_10_2026"), key)
	assert.True(t, key.Equal("18_10_2026"))
	assert.True(t, types.DateKey("05_03_2026").Equal("5_3_2026"))
	assert.False(t, key.Equal("bad"))

	midnight, err := key.Date(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 18, 0, 0, 0, 0, loc), midnight)

	v, err := types.DateKey("5_3_2026").Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", v)

	var scanned types.DateKey
	require.NoError(t, scanned.Scan(time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, types.DateKey("5_3_2026"), scanned)
	assert.Error(t, scanned.Scan(42))

	assert.Equal(t, 29, types.DaysIn(2024, time.February))
	assert.Equal(t, 31, types.DaysIn(2026, time.December))
}

func TestTimeString(t *testing.T) {
	ts, err := types.NewTimeStringFromString("9:05")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:05"), ts)

	ts, err = types.NewTimeStringFromString("10:00:00")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), ts)

	for _, in := range []string{"24:00", "9:5", "9", "ab:cd"} {
		_, err := types.NewTimeStringFromString(in)
		assert.ErrorIs(t, err, types.ErrInvalidTimeString, in)
	}

	next, err := types.TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:15"), next)

	_, err = types.TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, types.ErrTimeOverflow)

	assert.True(t, types.TimeString("09:00").IsBefore("10:00"))
	assert.False(t, types.TimeString("bad").IsBefore("10:00"))
	assert.True(t, types.TimeString("18:00").IsAfter("10:00"))

	clock, err := types.TimeString("14:30").Clock()
	require.NoError(t, err)
	assert.Equal(t, types.ClockTime("2:30 PM"), clock)

	at, err := types.TimeString("14:30").On(time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 18, 14, 30, 0, 0, time.UTC), at)

	var scanned types.TimeString
	require.NoError(t, scanned.Scan([]byte("08:15:00")))
	assert.Equal(t, types.TimeString("08:15"), scanned)
}
