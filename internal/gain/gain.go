package gain

import "math"

// Velocity tiers map to decibel attenuation, not MIDI's 0-127 velocity
// scale: 8 tiers interpolated from the quietest (-30 dB) to the loudest
// (-6 dB), both endpoints included.
const (
	NumTiers = 8
	MinDB    = -30.0
	MaxDB    = -6.0
)

// Amplitude converts a decibel level to a linear amplitude multiplier:
// 10^(db/20). For the supported tier range the result lies in (0, 1).
func Amplitude(db float64) float64 {
	return math.Pow(10, db/20.0)
}

// Levels returns n values linearly interpolated from lo to hi, both
// endpoints included.
func Levels(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

var tierDB = Levels(NumTiers, MinDB, MaxDB)

// TierDB returns the decibel level for a velocity tier in [0, NumTiers).
func TierDB(tier int) float64 {
	return tierDB[tier]
}
