package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vShapeSeries builds a series declining 0.5% per bar into the low index and
// rising 1.5% per bar after it.
func vShapeSeries(t *testing.T, n, lowIdx int) *PriceSeries {
	t.Helper()
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]PricePoint, n)
	price := 100.0
	for i := 0; i < n; i++ {
		if i > 0 {
			if i <= lowIdx {
				price *= 0.995
			} else {
				price *= 1.015
			}
		}
		points[i] = PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   price,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 1000,
		}
	}
	series, err := NewPriceSeries(points)
	require.NoError(t, err)
	return series
}

func TestAnalyzeInflections_CheckpointStates(t *testing.T) {
	// Low 26 bars before the last index: checkpoint 26 is exactly active,
	// earlier offsets are passed, later ones approaching.
	series := vShapeSeries(t, 120, 120-1-26)
	evaluator := NewEvaluator(Config{SwingWindow: 5})

	result, err := evaluator.AnalyzeInflections(series)
	require.NoError(t, err)
	assert.Equal(t, 26, result.DaysSinceLow)
	assert.Equal(t, 120-1-26, result.SwingLow.Index)

	assert.Equal(t, StatusPassed, result.Checkpoints[9].Status)
	assert.Equal(t, StatusPassed, result.Checkpoints[13].Status)
	assert.Equal(t, StatusActive, result.Checkpoints[26].Status)
	assert.Equal(t, StatusApproaching, result.Checkpoints[33].Status)
	assert.Equal(t, StatusApproaching, result.Checkpoints[88].Status)
}

func TestAnalyzeInflections_ToleranceBoundaries(t *testing.T) {
	evaluator := NewEvaluator(Config{SwingWindow: 5})

	// daysSinceLow 21 is inside the ±5 window of offset 26.
	series := vShapeSeries(t, 120, 120-1-21)
	result, err := evaluator.AnalyzeInflections(series)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, result.Checkpoints[26].Status)

	// daysSinceLow 20 is one bar outside.
	series = vShapeSeries(t, 120, 120-1-20)
	result, err = evaluator.AnalyzeInflections(series)
	require.NoError(t, err)
	assert.Equal(t, StatusApproaching, result.Checkpoints[26].Status)

	// daysSinceLow 32 has just left the window.
	series = vShapeSeries(t, 120, 120-1-32)
	result, err = evaluator.AnalyzeInflections(series)
	require.NoError(t, err)
	assert.Equal(t, StatusPassed, result.Checkpoints[26].Status)
}

func TestAnalyzeInflections_Day13Signal(t *testing.T) {
	series := vShapeSeries(t, 120, 120-1-13)
	evaluator := NewEvaluator(Config{SwingWindow: 5})

	result, err := evaluator.AnalyzeInflections(series)
	require.NoError(t, err)

	signal := result.Checkpoints[13]
	require.Equal(t, StatusActive, signal.Status)
	// Timing window, golden cross and the 13-day high all fire on a steady
	// rally off the low.
	assert.GreaterOrEqual(t, signal.Strength, 65)
	assert.Equal(t, "strong_bullish", signal.Category)
	assert.Contains(t, signal.Descriptors, "golden_cross")
	assert.Contains(t, signal.Descriptors, "timing_window")
	assert.NotEmpty(t, result.ActiveSignals)
}

func TestAnalyzeInflections_PassedCheckpointRetrospective(t *testing.T) {
	// 26 bars past the low rising 1.5% per bar: the day-9 checkpoint was
	// followed by a gain well over 5%.
	series := vShapeSeries(t, 120, 120-1-26)
	evaluator := NewEvaluator(Config{SwingWindow: 5})

	result, err := evaluator.AnalyzeInflections(series)
	require.NoError(t, err)

	signal := result.Checkpoints[9]
	require.Equal(t, StatusPassed, signal.Status)
	assert.Equal(t, 80, signal.Strength)
	assert.Equal(t, "retrospective", signal.Category)
}

func TestAnalyzeInflections_GainFromLow(t *testing.T) {
	series := vShapeSeries(t, 120, 120-1-13)
	evaluator := NewEvaluator(Config{SwingWindow: 5})

	result, err := evaluator.AnalyzeInflections(series)
	require.NoError(t, err)
	assert.Greater(t, result.GainFromLow, 0.0)
}

func TestAnalyzeInflections_Idempotent(t *testing.T) {
	series := vShapeSeries(t, 120, 120-1-26)
	evaluator := NewEvaluator(Config{SwingWindow: 5})

	first, err := evaluator.AnalyzeInflections(series)
	require.NoError(t, err)
	second, err := evaluator.AnalyzeInflections(series)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyzeInflections_InsufficientData(t *testing.T) {
	series := vShapeSeries(t, 30, 15)
	evaluator := NewEvaluator(Config{})

	_, err := evaluator.AnalyzeInflections(series)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestAnalyzeInflections_NoSwingLow(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]PricePoint, 120)
	price := 100.0
	for i := range points {
		price *= 1.005
		points[i] = PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   price,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 1000,
		}
	}
	series, err := NewPriceSeries(points)
	require.NoError(t, err)

	evaluator := NewEvaluator(Config{SwingWindow: 5})
	_, err = evaluator.AnalyzeInflections(series)
	assert.ErrorIs(t, err, ErrNoSwingLow)
}

func TestNewPriceSeries_Validation(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	_, err := NewPriceSeries(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = NewPriceSeries([]PricePoint{
		{Date: base, Open: 10, High: 11, Low: 9, Close: -1, Volume: 1},
	})
	assert.Error(t, err)

	_, err = NewPriceSeries([]PricePoint{
		{Date: base, Open: 10, High: 11, Low: 9, Close: 10, Volume: 1},
		{Date: base, Open: 10, High: 11, Low: 9, Close: 10, Volume: 1},
	})
	assert.Error(t, err)
}
