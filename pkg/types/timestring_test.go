package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("корректное время", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:00")
		require.NoError(t, err)
		assert.Equal(t, "10:00", ts.String())
	})

	t.Run("нормализация однозначного часа", func(t *testing.T) {
		ts, err := NewTimeStringFromString("8:00")
		require.NoError(t, err)
		assert.Equal(t, "08:00", ts.String())
	})

	t.Run("мусор отклоняется", func(t *testing.T) {
		_, err := NewTimeStringFromString("25:99")
		assert.ErrorIs(t, err, ErrInvalidTimeString)

		_, err = NewTimeStringFromString("abc")
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	t.Run("минуты в пределах суток", func(t *testing.T) {
		ts, err := NewTimeStringFromMinutes(510)
		require.NoError(t, err)
		assert.Equal(t, "08:30", ts.String())
	})

	t.Run("полночь", func(t *testing.T) {
		ts, err := NewTimeStringFromMinutes(0)
		require.NoError(t, err)
		assert.Equal(t, "00:00", ts.String())
	})

	t.Run("за пределами суток отклоняется", func(t *testing.T) {
		_, err := NewTimeStringFromMinutes(24 * 60)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)

		_, err = NewTimeStringFromMinutes(-1)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("10:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	_, err = TimeString("nope").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	result, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", result.String())

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore(TimeString("09:00")))
	assert.False(t, TimeString("09:00").IsBefore(TimeString("09:00")))
	assert.True(t, TimeString("10:00").IsAfter(TimeString("09:59")))

	// Лексикографика совпадает с хронологией благодаря ведущим нулям
	assert.True(t, TimeString("09:59").IsBefore(TimeString("10:00")))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 6, 15, 14, 5, 59, 0, time.UTC)
	assert.Equal(t, "14:05", NewTimeString(moment).String())
}
