package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func labels(ss ...string) []types.TimeString {
	result := make([]types.TimeString, 0, len(ss))
	for _, s := range ss {
		result = append(result, types.TimeString(s))
	}
	return result
}

func TestDecompose(t *testing.T) {
	t.Run("часовые слоты для многочасового интервала", func(t *testing.T) {
		got, err := Decompose(ts("08:00"), ts("11:00"), 60)
		require.NoError(t, err)
		assert.Equal(t, labels("08:00", "09:00", "10:00"), got)
	})

	t.Run("интервал в один слот", func(t *testing.T) {
		got, err := Decompose(ts("14:00"), ts("15:00"), 60)
		require.NoError(t, err)
		assert.Equal(t, labels("14:00"), got)
	})

	t.Run("метки возрастают строго по порядку", func(t *testing.T) {
		got, err := Decompose(ts("06:00"), ts("12:00"), 60)
		require.NoError(t, err)
		require.Len(t, got, 6)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i-1].IsBefore(got[i]),
				"метка %s должна быть раньше %s", got[i-1], got[i])
		}
	})

	t.Run("нулевой интервал отклоняется", func(t *testing.T) {
		_, err := Decompose(ts("08:00"), ts("08:00"), 60)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("конец раньше начала отклоняется", func(t *testing.T) {
		_, err := Decompose(ts("11:00"), ts("08:00"), 60)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("границы не на сетке отклоняются", func(t *testing.T) {
		_, err := Decompose(ts("08:30"), ts("09:30"), 60)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("некорректная длительность слота", func(t *testing.T) {
		_, err := Decompose(ts("08:00"), ts("09:00"), 0)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("получасовая сетка", func(t *testing.T) {
		got, err := Decompose(ts("08:00"), ts("09:30"), 30)
		require.NoError(t, err)
		assert.Equal(t, labels("08:00", "08:30", "09:00"), got)
	})
}

func TestDecomposeWithin(t *testing.T) {
	t.Run("интервал внутри рабочих часов", func(t *testing.T) {
		got, err := DecomposeWithin(ts("10:00"), ts("12:00"), ts("08:00"), ts("22:00"), 60)
		require.NoError(t, err)
		assert.Equal(t, labels("10:00", "11:00"), got)
	})

	t.Run("начало раньше открытия отклоняется", func(t *testing.T) {
		_, err := DecomposeWithin(ts("07:00"), ts("09:00"), ts("08:00"), ts("22:00"), 60)
		assert.ErrorIs(t, err, ErrOutsideHours)
	})

	t.Run("конец позже закрытия отклоняется", func(t *testing.T) {
		_, err := DecomposeWithin(ts("21:00"), ts("23:00"), ts("08:00"), ts("22:00"), 60)
		assert.ErrorIs(t, err, ErrOutsideHours)
	})

	t.Run("перевернутый интервал остается ошибкой интервала", func(t *testing.T) {
		_, err := DecomposeWithin(ts("12:00"), ts("10:00"), ts("08:00"), ts("22:00"), 60)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("интервал ровно в рабочие часы", func(t *testing.T) {
		got, err := DecomposeWithin(ts("08:00"), ts("22:00"), ts("08:00"), ts("22:00"), 60)
		require.NoError(t, err)
		assert.Len(t, got, 14)
	})
}

func TestDayLabels(t *testing.T) {
	t.Run("полная сетка рабочего дня", func(t *testing.T) {
		got, err := DayLabels(ts("08:00"), ts("22:00"), 60)
		require.NoError(t, err)
		require.Len(t, got, 14)
		assert.Equal(t, ts("08:00"), got[0])
		assert.Equal(t, ts("21:00"), got[len(got)-1])
	})

	t.Run("последний слот начинается не позже закрытия минус слот", func(t *testing.T) {
		got, err := DayLabels(ts("08:00"), ts("21:30"), 60)
		require.NoError(t, err)
		// Слот 21:00-22:00 не влезает в день до 21:30
		assert.Equal(t, ts("20:00"), got[len(got)-1])
	})

	t.Run("закрытие раньше открытия отклоняется", func(t *testing.T) {
		_, err := DayLabels(ts("22:00"), ts("08:00"), 60)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}
