package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	errEmptySlotTable = errors.New("slot table is empty")
)

// SlotWindow is one wall-clock teaching window of the daily grid.
type SlotWindow struct {
	Start time.Time
	End   time.Time
}

// SlotTable maps 1-based slot indices to wall-clock windows. It is built once
// from configuration and never mutated afterwards.
type SlotTable struct {
	windows []SlotWindow
}

// ParseSlotTable parses a comma separated list of "HH:MM-HH:MM" windows,
// e.g. "08:00-09:30,09:45-11:15". Windows keep their listed order; the first
// entry becomes slot 1.
func ParseSlotTable(raw string) (*SlotTable, error) {
	parts := strings.Split(raw, ",")
	if len(parts) == 0 || strings.TrimSpace(raw) == "" {
		return nil, errEmptySlotTable
	}

	windows := make([]SlotWindow, 0, len(parts))
	for i, part := range parts {
		bounds := strings.SplitN(strings.TrimSpace(part), "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("slot %d: expected HH:MM-HH:MM, got %q", i+1, part)
		}
		start, err := time.Parse("15:04", bounds[0])
		if err != nil {
			return nil, fmt.Errorf("slot %d start: %w", i+1, err)
		}
		end, err := time.Parse("15:04", bounds[1])
		if err != nil {
			return nil, fmt.Errorf("slot %d end: %w", i+1, err)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("slot %d: start %s is not before end %s", i+1, bounds[0], bounds[1])
		}
		windows = append(windows, SlotWindow{Start: start, End: end})
	}

	return &SlotTable{windows: windows}, nil
}

// Len returns the number of slots in the daily grid.
func (t *SlotTable) Len() int {
	return len(t.windows)
}

// Contains reports whether id is a valid 1-based slot index.
func (t *SlotTable) Contains(id int) bool {
	return id >= 1 && id <= len(t.windows)
}

// Window combines a calendar day with a 1-based slot index into concrete
// start/end timestamps. An out-of-range index yields the 00:00-00:00 window
// of that day instead of an error, so a single malformed event cannot blank
// a whole calendar view.
func (t *SlotTable) Window(day time.Time, id int) (time.Time, time.Time) {
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, day.Location())

	if !t.Contains(id) {
		return midnight, midnight
	}

	w := t.windows[id-1]
	start := midnight.Add(time.Duration(w.Start.Hour())*time.Hour + time.Duration(w.Start.Minute())*time.Minute)
	end := midnight.Add(time.Duration(w.End.Hour())*time.Hour + time.Duration(w.End.Minute())*time.Minute)
	return start, end
}
