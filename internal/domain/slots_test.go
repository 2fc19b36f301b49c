package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultSlots = "08:00-09:30,09:45-11:15,11:30-13:00,13:15-14:45,15:00-16:30,16:45-18:15,18:30-20:00"

func TestParseSlotTable_Default(t *testing.T) {
	table, err := ParseSlotTable(defaultSlots)

	require.NoError(t, err)
	assert.Equal(t, 7, table.Len())
}

func TestParseSlotTable_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"missing separator", "08:00 09:30"},
		{"bad time", "08:00-25:30"},
		{"start after end", "09:30-08:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := ParseSlotTable(tc.raw)
			assert.Error(t, err)
			assert.Nil(t, table)
		})
	}
}

func TestSlotTable_Window_AllSlotsOrdered(t *testing.T) {
	table, err := ParseSlotTable(defaultSlots)
	require.NoError(t, err)

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	for id := 1; id <= table.Len(); id++ {
		start, end := table.Window(day, id)

		assert.True(t, start.Before(end), "slot %d: start must precede end", id)
		assert.Equal(t, day.Day(), start.Day())
		assert.Equal(t, day.Day(), end.Day())
	}
}

func TestSlotTable_Window_FirstSlot(t *testing.T) {
	table, err := ParseSlotTable(defaultSlots)
	require.NoError(t, err)

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	start, end := table.Window(day, 1)

	assert.Equal(t, time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC), end)
}

func TestSlotTable_Window_OutOfRangeFallsBackToMidnight(t *testing.T) {
	table, err := ParseSlotTable(defaultSlots)
	require.NoError(t, err)

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	midnight := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	for _, id := range []int{0, -1, 8, 100} {
		start, end := table.Window(day, id)
		assert.Equal(t, midnight, start, "slot %d", id)
		assert.Equal(t, midnight, end, "slot %d", id)
	}
}

func TestSlotTable_Contains(t *testing.T) {
	table, err := ParseSlotTable(defaultSlots)
	require.NoError(t, err)

	assert.True(t, table.Contains(1))
	assert.True(t, table.Contains(7))
	assert.False(t, table.Contains(0))
	assert.False(t, table.Contains(8))
}
