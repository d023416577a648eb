package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointsFromLows(lows []float64) []PricePoint {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]PricePoint, len(lows))
	for i, lo := range lows {
		points[i] = PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   lo + 1,
			High:   lo + 2,
			Low:    lo,
			Close:  lo + 1,
			Volume: 1000,
		}
	}
	return points
}

func TestFindSignificantLow_SingleGlobalMin(t *testing.T) {
	lows := []float64{9, 8, 7, 6, 5, 4, 3, 4, 5, 6, 7, 8, 9}
	low := FindSignificantLow(pointsFromLows(lows), 3)

	require.NotNil(t, low)
	assert.Equal(t, 6, low.Index)
	assert.Equal(t, 3.0, low.Price)
}

func TestFindSignificantLow_TieLatestWins(t *testing.T) {
	lows := []float64{10, 9, 3, 9, 10, 9, 3, 9, 10}
	low := FindSignificantLow(pointsFromLows(lows), 2)

	require.NotNil(t, low)
	assert.Equal(t, 6, low.Index)
	assert.Equal(t, 3.0, low.Price)
}

func TestFindSignificantLow_TooShort(t *testing.T) {
	lows := []float64{5, 4, 5}
	assert.Nil(t, FindSignificantLow(pointsFromLows(lows), 3))
}

func TestFindSignificantLow_MonotoneDecline(t *testing.T) {
	lows := make([]float64, 20)
	for i := range lows {
		lows[i] = 100 - float64(i)
	}
	// Every bar has a strictly lower low ahead of it.
	assert.Nil(t, FindSignificantLow(pointsFromLows(lows), 3))
}

func TestFindSignificantLowCentered(t *testing.T) {
	lows := []float64{9, 8, 7, 1, 7, 8, 9}
	low := FindSignificantLowCentered(pointsFromLows(lows), 3, 0)

	require.NotNil(t, low)
	assert.Equal(t, 3, low.Index)
	assert.Equal(t, 1.0, low.Price)
}

func TestFindSignificantLowCentered_SpanRestriction(t *testing.T) {
	// Two valleys; restricting the span to the tail picks the later one.
	lows := []float64{9, 8, 1, 8, 9, 8, 2, 8, 9}
	low := FindSignificantLowCentered(pointsFromLows(lows), 3, 4)

	require.NotNil(t, low)
	assert.Equal(t, 6, low.Index)
	assert.Equal(t, 2.0, low.Price)
}
