package synth

import "math"

// Sine renders a constant-frequency sine tone as interleaved stereo 16-bit
// samples (L0,R0,L1,R1,...) with both channels identical. It produces
// floor(sampleRate*duration) frames sampled on the half-open interval
// [0, duration) at t = i/sampleRate. Each float sample is scaled by 32767
// and truncated by a plain int16 cast; no saturation is applied, which is
// safe for amplitude <= 1.0.
func Sine(sampleRate int, duration, frequency, amplitude float64) []int16 {
	frames := int(float64(sampleRate) * duration)
	out := make([]int16, 0, frames*2)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		s := int16(amplitude * math.Sin(2*math.Pi*frequency*t) * 32767)
		out = append(out, s, s)
	}
	return out
}
