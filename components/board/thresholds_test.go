package board

import "testing"

func TestEvaluateThresholdsPicksHighestBoundaryNotExceeding(t *testing.T) {
	thresholds := []Threshold{
		{Value: 200, Color: "green"},
		{Value: 350, Color: "yellow"},
		{Value: 450, Color: "red"},
	}

	hit, ok := EvaluateThresholds(375, thresholds)
	if !ok {
		t.Fatalf("expected a threshold match")
	}
	if hit.Value != 350 || hit.Color != "yellow" {
		t.Fatalf("expected the 350 bracket, got %+v", hit)
	}
}

func TestEvaluateThresholdsOrderIndependent(t *testing.T) {
	shuffled := []Threshold{
		{Value: 450, Color: "red"},
		{Value: 200, Color: "green"},
		{Value: 350, Color: "yellow"},
	}

	hit, ok := EvaluateThresholds(460, shuffled)
	if !ok || hit.Color != "red" {
		t.Fatalf("expected red, got %+v ok=%v", hit, ok)
	}
}

func TestEvaluateThresholdsBelowEveryBoundary(t *testing.T) {
	thresholds := []Threshold{{Value: 200}, {Value: 350}}

	if _, ok := EvaluateThresholds(120, thresholds); ok {
		t.Fatalf("value below every boundary must report no match")
	}
}

func TestEvaluateThresholdsExactBoundary(t *testing.T) {
	thresholds := []Threshold{{Value: 200, Color: "green"}, {Value: 350, Color: "yellow"}}

	hit, ok := EvaluateThresholds(350, thresholds)
	if !ok || hit.Color != "yellow" {
		t.Fatalf("boundary value belongs to its own bracket, got %+v", hit)
	}
}

func TestEvaluateThresholdsEmpty(t *testing.T) {
	if _, ok := EvaluateThresholds(10, nil); ok {
		t.Fatalf("no thresholds means no match")
	}
}

func TestThresholdRegionsPairsBands(t *testing.T) {
	start := 100.0
	thresholds := []Threshold{
		{Value: 450, Color: "red", Label: "High"},
		{Value: 200, Color: "green", Label: "OK", Kind: ThresholdBand, BandStart: &start},
	}

	regions := ThresholdRegions(thresholds)
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	if regions[0].End != 200 || regions[0].Start == nil || *regions[0].Start != 100 {
		t.Fatalf("band region should carry its start, got %+v", regions[0])
	}
	if regions[1].End != 450 || regions[1].Start != nil {
		t.Fatalf("line region must have nil start, got %+v", regions[1])
	}
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name     string
		previous float64
		current  float64
		want     Trend
	}{
		{"rising", 10, 12, TrendUp},
		{"falling", 12, 10, TrendDown},
		{"noise floor", 10, 10.005, TrendFlat},
		{"equal", 10, 10, TrendFlat},
		{"just above epsilon", 10, 10.02, TrendUp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyTrend(tc.previous, tc.current); got != tc.want {
				t.Fatalf("ClassifyTrend(%v, %v) = %v, want %v", tc.previous, tc.current, got, tc.want)
			}
		})
	}
}
