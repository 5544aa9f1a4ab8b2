package model

import (
	"math"
	"testing"
)

func TestFormatOffset(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{400, "400"},
		{12.5, "12.5"},
	}
	for _, c := range cases {
		if got := FormatOffset(c.in); got != c.want {
			t.Errorf("FormatOffset(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseOffset(t *testing.T) {
	if o, err := ParseOffset(" 350 "); err != nil || o != 350 {
		t.Errorf("expected 350, got %v (%v)", o, err)
	}
	for _, s := range []string{"", "abc", "-5", "NaN", "+Inf"} {
		if _, err := ParseOffset(s); err == nil {
			t.Errorf("ParseOffset(%q): expected error", s)
		}
	}
}

func TestParseKey(t *testing.T) {
	k := Key(DefaultPrefix, TimeGridWeek)
	if k != "calendarScrollPosition_timeGridWeek" {
		t.Fatalf("unexpected key %q", k)
	}
	if v, ok := ParseKey(DefaultPrefix, k); !ok || v != TimeGridWeek {
		t.Errorf("ParseKey(%q) = %q, %v", k, v, ok)
	}
	if _, ok := ParseKey(DefaultPrefix, "otherPrefix_timeGridWeek"); ok {
		t.Error("expected foreign key rejected")
	}
}
