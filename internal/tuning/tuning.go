package tuning

import (
	"fmt"
	"math"
)

// Equal-tempered reference: concert A4 is MIDI note 69 at 440 Hz.
const (
	ReferenceNote      = 69
	ReferenceFrequency = 440.0
)

// Frequency returns the equal-tempered fundamental frequency in Hz for a
// MIDI note number. Defined for any integer; every octave (12 semitones)
// doubles the frequency.
func Frequency(note int) float64 {
	return ReferenceFrequency * math.Pow(2, float64(note-ReferenceNote)/12.0)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name returns the scientific pitch name for a MIDI note number
// (60 = "C4", 69 = "A4", 21 = "A0").
func Name(note int) string {
	octave := note/12 - 1
	return fmt.Sprintf("%s%d", noteNames[((note%12)+12)%12], octave)
}
