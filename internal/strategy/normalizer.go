package strategy

import "math"

// Normalizer converts blended scores into share counts bounded by MaxVolume.
type Normalizer struct {
	MaxVolume int
}

// Entrance scales a buy score into [0, MaxVolume] shares. It ignores the unit price.
func (n Normalizer) Entrance(score float64) int {
	v := clamp(score*100, 0, float64(n.MaxVolume))
	return int(roundHalfUp(v))
}

// Exit scales a sell score by unit price into [0, MaxVolume] shares to sell.
func (n Normalizer) Exit(score, unitPrice float64) int {
	if unitPrice <= 0 {
		return 0
	}
	v := clamp(score/unitPrice*100, -float64(n.MaxVolume), 0)
	return int(math.Abs(roundHalfUp(v)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
