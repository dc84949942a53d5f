package tuning

import (
	"math"
	"testing"
)

func TestFrequencyReference(t *testing.T) {
	if got := Frequency(69); got != 440.0 {
		t.Errorf("Frequency(69): got %v, want 440.0", got)
	}
}

func TestFrequencyKnownNotes(t *testing.T) {
	tests := []struct {
		note int
		want float64
	}{
		{21, 27.5},     // A0, lowest piano key
		{33, 55.0},     // A1
		{57, 220.0},    // A3
		{60, 261.6256}, // middle C
		{81, 880.0},    // A5
		{108, 4186.01}, // C8, highest piano key
	}
	for _, tt := range tests {
		got := Frequency(tt.note)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("Frequency(%d): got %v, want %v", tt.note, got, tt.want)
		}
	}
}

func TestFrequencyOctaveDoubling(t *testing.T) {
	for note := 21; note <= 96; note++ {
		lower := Frequency(note)
		upper := Frequency(note + 12)
		if math.Abs(upper-2*lower) > 1e-6*lower {
			t.Errorf("note %d: Frequency(%d)=%v is not double Frequency(%d)=%v",
				note, note+12, upper, note, lower)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		note int
		want string
	}{
		{21, "A0"},
		{22, "A#0"},
		{24, "C1"},
		{60, "C4"},
		{69, "A4"},
		{108, "C8"},
	}
	for _, tt := range tests {
		if got := Name(tt.note); got != tt.want {
			t.Errorf("Name(%d): got %q, want %q", tt.note, got, tt.want)
		}
	}
}
