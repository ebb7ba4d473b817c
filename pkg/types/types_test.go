package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "morning", input: "08:00:00", want: NewTimeOfDay(8, 0, 0)},
		{name: "last second", input: "23:59:59", want: NewTimeOfDay(23, 59, 59)},
		{name: "hour out of range", input: "24:00:00", wantErr: true},
		{name: "minutes out of range", input: "10:60:00", wantErr: true},
		{name: "missing seconds", input: "10:00", wantErr: true},
		{name: "single digit hour", input: "8:00:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTimeOfDayOn(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	date := MustParseDate("12/10/2024")

	got := MustParseTimeOfDay("09:30:15").On(date, loc)

	assert.Equal(t, time.Date(2024, time.December, 10, 9, 30, 15, 0, loc), got)
}

func TestTimeOfDayScan(t *testing.T) {
	var fromTime TimeOfDay
	require.NoError(t, fromTime.Scan(time.Date(0, 1, 1, 12, 30, 0, 0, time.UTC)))
	assert.Equal(t, NewTimeOfDay(12, 30, 0), fromTime)

	var fromBytes TimeOfDay
	require.NoError(t, fromBytes.Scan([]byte("07:15:00.000")))
	assert.Equal(t, NewTimeOfDay(7, 15, 0), fromBytes)

	var bad TimeOfDay
	assert.ErrorIs(t, bad.Scan(42), ErrInvalidFormat)
}

func TestParseClockDuration(t *testing.T) {
	d, err := ParseClockDuration("01:30:00")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	d, err = ParseClockDuration("48:00:00")
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, d)
	assert.Equal(t, "48:00:00", FormatClockDuration(d))

	_, err = ParseClockDuration("1h")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("02/29/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, d.Weekday())
	assert.Equal(t, "2024-02-29", d.ISO())
	assert.Equal(t, "02/29/2024", d.String())

	for _, bad := range []string{"2024-02-29", "2/29/2024", "02/30/2024", "13/01/2024", ""} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestDateCompare(t *testing.T) {
	a := MustParseDate("12/31/2024")
	b := MustParseDate("01/01/2025")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(NewDate(2024, time.December, 31)))
	assert.Equal(t, b, a.AddDays(1))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParseDate("12/10/2024"), d)

	require.NoError(t, d.Scan("2025-01-05"))
	assert.Equal(t, MustParseDate("01/05/2025"), d)

	value, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", value)
}

func TestDateAndTimeJSON(t *testing.T) {
	type payload struct {
		Day   Date      `json:"day"`
		Start TimeOfDay `json:"start"`
	}

	raw, err := json.Marshal(payload{Day: MustParseDate("03/15/2025"), Start: MustParseTimeOfDay("10:00:00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"03/15/2025","start":"10:00:00"}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, MustParseDate("03/15/2025"), decoded.Day)

	raw, err = json.Marshal(payload{})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Day.IsZero())
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday("Mon")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)

	wd, err = ParseWeekday("sun")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)
	assert.Equal(t, "Sun", WeekdayAbbrev(wd))

	_, err = ParseWeekday("Monday")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
