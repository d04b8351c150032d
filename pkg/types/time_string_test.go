package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "12:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), ts)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("18:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1080, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	got, err = TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// выход за пределы суток
	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("09:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeString_DistanceMinutes(t *testing.T) {
	d, err := TimeString("09:00").DistanceMinutes("10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, d)

	d, err = TimeString("10:30").DistanceMinutes("09:00")
	require.NoError(t, err)
	assert.Equal(t, 90, d)

	d, err = TimeString("12:00").DistanceMinutes("12:00")
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30"))
	assert.Equal(t, TimeString("14:30"), ts)

	// postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 1, 11, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("11:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.Error(t, err)
}
