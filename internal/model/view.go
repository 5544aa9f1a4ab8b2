// Package model defines calendar view modes and the persisted scroll offset.
package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ViewMode identifies the calendar's current rendering mode.
type ViewMode string

// Known view modes.
const (
	TimeGridWeek    ViewMode = "timeGridWeek"
	TimeGridDay     ViewMode = "timeGridDay"
	TimeGridFourDay ViewMode = "timeGridFourDay"
	DayGridMonth    ViewMode = "dayGridMonth"
	DayGridWeek     ViewMode = "dayGridWeek"
	ListWeek        ViewMode = "listWeek"
)

// DefaultPrefix is the storage namespace for scroll offsets.
const DefaultPrefix = "calendarScrollPosition"

// timeGridPrefix marks every time-grid variant the calendar can offer.
const timeGridPrefix = "timeGrid"

// KnownViews maps each built-in view mode to whether it scrolls.
var KnownViews = map[ViewMode]bool{
	TimeGridWeek:    true,
	TimeGridDay:     true,
	TimeGridFourDay: true,
	DayGridMonth:    false,
	DayGridWeek:     false,
	ListWeek:        false,
}

// Classifier decides whether a view mode keeps scroll memory.
// The zero value classifies built-in modes and any timeGrid* variant.
type Classifier struct {
	extra map[ViewMode]bool
}

// NewClassifier returns a classifier that additionally treats the given
// modes as scrollable.
func NewClassifier(scrollable ...string) Classifier {
	c := Classifier{extra: make(map[ViewMode]bool, len(scrollable))}
	for _, s := range scrollable {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		c.extra[ViewMode(s)] = true
	}
	return c
}

// IsScrollable reports whether persistence, restore and scroll-to-now apply
// to v. It never inspects the rendered page.
func (c Classifier) IsScrollable(v ViewMode) bool {
	if c.extra[v] {
		return true
	}
	if scrollable, ok := KnownViews[v]; ok {
		return scrollable
	}
	return strings.HasPrefix(string(v), timeGridPrefix)
}

// Scrollable lists every mode the classifier knows to be scrollable, sorted.
func (c Classifier) Scrollable() []ViewMode {
	var out []ViewMode
	for v, ok := range KnownViews {
		if ok {
			out = append(out, v)
		}
	}
	for v := range c.extra {
		if _, known := KnownViews[v]; !known {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Key builds the storage key "<prefix>_<view>".
func Key(prefix string, v ViewMode) string {
	return prefix + "_" + string(v)
}

// ParseKey splits a storage key back into its view mode. It reports false
// when key does not belong to prefix.
func ParseKey(prefix, key string) (ViewMode, bool) {
	rest, ok := strings.CutPrefix(key, prefix+"_")
	if !ok || rest == "" {
		return "", false
	}
	return ViewMode(rest), true
}

// ValidOffset reports whether o may be persisted.
func ValidOffset(o float64) bool {
	return o >= 0 && !math.IsNaN(o) && !math.IsInf(o, 0)
}

// FormatOffset encodes an offset the way it is stored ("400", "12.5").
// Negative zero is written as "0".
func FormatOffset(o float64) string {
	if o == 0 {
		o = 0
	}
	return strconv.FormatFloat(o, 'f', -1, 64)
}

// ParseOffset decodes a stored offset. Malformed, negative and non-finite
// values are rejected.
func ParseOffset(s string) (float64, error) {
	o, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse offset %q: %w", s, err)
	}
	if !ValidOffset(o) {
		return 0, fmt.Errorf("offset %q out of range", s)
	}
	return o, nil
}
