package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSeriesWithVolumes(t *testing.T, closes []float64, volumes []int64) *PriceSeries {
	t.Helper()
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]PricePoint, len(closes))
	for i, c := range closes {
		points[i] = PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: volumes[i],
		}
	}
	series, err := NewPriceSeries(points)
	require.NoError(t, err)
	return series
}

func TestRuleMajor_DeclineRisk(t *testing.T) {
	closes := make([]float64, 30)
	volumes := make([]int64, 30)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 1000
	}
	// Drop the last close more than 5% under the recent high.
	closes[29] = 90
	series := flatSeriesWithVolumes(t, closes, volumes)
	series.ComputeIndicators()

	strength, descriptors := ruleMajor(series, 29, 65, SwingLow{})
	assert.Equal(t, -50, strength)
	assert.Contains(t, descriptors, "decline_risk")
}

func TestRuleMajor_VolumeSurgeWarning(t *testing.T) {
	closes := make([]float64, 30)
	volumes := make([]int64, 30)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 1000
	}
	volumes[29] = 5000
	series := flatSeriesWithVolumes(t, closes, volumes)
	series.ComputeIndicators()

	strength, descriptors := ruleMajor(series, 29, 77, SwingLow{})
	assert.Equal(t, -30, strength)
	assert.Contains(t, descriptors, "volume_surge_warning")
}

func TestRuleMajor_ContinueObserving(t *testing.T) {
	closes := make([]float64, 30)
	volumes := make([]int64, 30)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 1000
	}
	series := flatSeriesWithVolumes(t, closes, volumes)
	series.ComputeIndicators()

	strength, descriptors := ruleMajor(series, 29, 65, SwingLow{})
	assert.Equal(t, 10, strength)
	assert.Contains(t, descriptors, "continue_observing")
}

func TestRuleGeneral_TrendDirection(t *testing.T) {
	closes := make([]float64, 30)
	volumes := make([]int64, 30)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 1000
	}
	closes[29] = 105
	rising := flatSeriesWithVolumes(t, closes, volumes)
	strength, descriptors := ruleGeneral(rising, 29, 88, SwingLow{})
	assert.Equal(t, 20, strength)
	assert.Contains(t, descriptors, "five_day_rise")

	closes[29] = 95
	falling := flatSeriesWithVolumes(t, closes, volumes)
	strength, descriptors = ruleGeneral(falling, 29, 88, SwingLow{})
	assert.Equal(t, -20, strength)
	assert.Contains(t, descriptors, "five_day_decline")

	closes[29] = 100
	flat := flatSeriesWithVolumes(t, closes, volumes)
	strength, descriptors = ruleGeneral(flat, 29, 88, SwingLow{})
	assert.Equal(t, 0, strength)
	assert.Contains(t, descriptors, "flat_trend")
}

func TestSignalCategory(t *testing.T) {
	tests := []struct {
		offset   int
		strength int
		want     string
	}{
		{9, 60, "bullish"},
		{9, 40, "neutral"},
		{13, 70, "strong_bullish"},
		{13, 50, "bullish"},
		{13, 30, "neutral"},
		{42, 80, "very_strong_bullish"},
		{42, 60, "strong_bullish"},
		{42, 20, "bullish"},
		{65, -50, "strong_bearish"},
		{65, -10, "bearish"},
		{65, 10, "neutral"},
		{88, 20, "bullish"},
		{88, -20, "bearish"},
		{88, 0, "neutral"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, signalCategory(tt.offset, tt.strength), "offset %d strength %d", tt.offset, tt.strength)
	}
}
