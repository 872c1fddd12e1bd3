package board

import (
	"math"
	"sort"
)

// EvaluateThresholds returns the applicable threshold for value: the one
// with the greatest boundary not exceeding it (typical alarm-banding
// semantics, thresholds at 200/350/450 classify 375 into the 350 bracket).
// The second return is false when the value sits below every boundary; the
// caller defines the fallback (usually a default color).
func EvaluateThresholds(value float64, thresholds []Threshold) (Threshold, bool) {
	if len(thresholds) == 0 {
		return Threshold{}, false
	}
	sorted := append([]Threshold(nil), thresholds...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	for _, t := range sorted {
		if t.Value <= value {
			return t, true
		}
	}
	return Threshold{}, false
}

// ThresholdRegion is one visual region in a legend: a single line, or a
// band stretching from Start to End.
type ThresholdRegion struct {
	Start *float64
	End   float64
	Color string
	Label string
}

// ThresholdRegions converts thresholds into legend regions, pairing band
// thresholds with their start boundary so a [BandStart, Value] range renders
// as one region rather than two lines.
func ThresholdRegions(thresholds []Threshold) []ThresholdRegion {
	regions := make([]ThresholdRegion, 0, len(thresholds))
	for _, t := range thresholds {
		region := ThresholdRegion{End: t.Value, Color: t.Color, Label: t.Label}
		if t.Kind == ThresholdBand && t.BandStart != nil {
			start := *t.BandStart
			region.Start = &start
		}
		regions = append(regions, region)
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].End < regions[j].End
	})
	return regions
}

// Trend classifies the direction of a value change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// trendEpsilon is the noise floor for trend classification; changes smaller
// than this render flat to avoid indicator flicker.
const trendEpsilon = 0.01

// ClassifyTrend compares the current value against the previous
// successfully fetched one.
func ClassifyTrend(previous, current float64) Trend {
	diff := current - previous
	if math.Abs(diff) < trendEpsilon {
		return TrendFlat
	}
	if diff > 0 {
		return TrendUp
	}
	return TrendDown
}
