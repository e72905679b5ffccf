package analysis

import "math"

const (
	volumeWeight    = 0.45
	momentumWeight  = 0.35
	stabilityWeight = 0.20
)

var log101 = math.Log(101)

// CompositeScore blends log-compressed volume, tanh-bounded momentum and
// log-compressed stability into a score in [0, 1], rounded to 4 places.
// A nil week-over-week change counts as 0%.
func CompositeScore(current float64, weekOverWeekPct *float64, fourWeekAverage float64) float64 {
	volume := math.Log(math.Max(current, 0)+1) / log101

	wow := 0.0
	if weekOverWeekPct != nil {
		wow = *weekOverWeekPct
	}
	momentum := (math.Tanh(wow/100) + 1) / 2

	stability := math.Log(math.Max(fourWeekAverage, 0)+1) / log101

	return round(volumeWeight*volume+momentumWeight*momentum+stabilityWeight*stability, 4)
}
