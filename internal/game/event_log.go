package game

import (
	"fmt"
	"strings"
)

// Event categories.
const (
	CatLayer     = "layer"
	CatObjective = "objective"
	CatThreat    = "threat"
	CatInput     = "input"
	CatCursor    = "cursor"
)

// EventEntry is one recorded gameplay event.
type EventEntry struct {
	Tick     int
	Level    int
	Category string // layer, objective, threat, input, cursor
	Key      string // specific event name within the category
	Value    string // human-readable detail
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] L1 objective  credited        (12,30)
func (e EventEntry) String() string {
	return fmt.Sprintf("[T=%04d] L%d %-10s %-15s %s",
		e.Tick, e.Level, e.Category, e.Key, e.Value)
}

// EventLog collects structured gameplay events. With a positive capacity the
// oldest entries are dropped once it is full.
type EventLog struct {
	entries  []EventEntry
	capacity int
	dropped  int
}

// NewEventLog creates an EventLog. capacity <= 0 means unbounded.
func NewEventLog(capacity int) *EventLog {
	return &EventLog{capacity: capacity}
}

// Add records a new entry.
func (el *EventLog) Add(tick, level int, category, key, value string, numVal float64) {
	if el == nil {
		return
	}
	if el.capacity > 0 && len(el.entries) >= el.capacity {
		n := copy(el.entries, el.entries[1:])
		el.entries = el.entries[:n]
		el.dropped++
	}
	el.entries = append(el.entries, EventEntry{
		Tick:     tick,
		Level:    level,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all retained entries, oldest first.
func (el *EventLog) Entries() []EventEntry {
	return el.entries
}

// Dropped returns how many entries were evicted by the capacity bound.
func (el *EventLog) Dropped() int { return el.dropped }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Tail returns up to the n most recent entries, oldest first.
func (el *EventLog) Tail(n int) []EventEntry {
	if n <= 0 {
		return nil
	}
	if n > len(el.entries) {
		n = len(el.entries)
	}
	return el.entries[len(el.entries)-n:]
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
