package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampColumns(n int) (highs, lows, closes []float64) {
	highs = make([]float64, n)
	lows = make([]float64, n)
	closes = make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		if i%3 == 0 {
			price *= 1.02
		} else {
			price *= 0.997
		}
		closes[i] = price
		highs[i] = price * 1.01
		lows[i] = price * 0.99
	}
	return highs, lows, closes
}

func TestIchimoku_UndefinedPrefixes(t *testing.T) {
	highs, lows, closes := rampColumns(120)
	lines := Ichimoku(highs, lows, closes)

	for i := 0; i < TenkanPeriod-1; i++ {
		assert.False(t, IsDefined(lines.Tenkan[i]), "tenkan[%d]", i)
	}
	assert.True(t, IsDefined(lines.Tenkan[TenkanPeriod-1]))

	for i := 0; i < KijunPeriod-1; i++ {
		assert.False(t, IsDefined(lines.Kijun[i]), "kijun[%d]", i)
	}
	assert.True(t, IsDefined(lines.Kijun[KijunPeriod-1]))

	// Span B needs a full 52-bar window before its 26-bar forward shift.
	for i := 0; i < SpanBPeriod-1+IchimokuShift; i++ {
		assert.False(t, IsDefined(lines.SpanB[i]), "spanB[%d]", i)
	}
	assert.True(t, IsDefined(lines.SpanB[SpanBPeriod-1+IchimokuShift]))
}

func TestIchimoku_ForwardShift(t *testing.T) {
	highs, lows, closes := rampColumns(120)
	lines := Ichimoku(highs, lows, closes)

	// The span value derived at i lands at i+26.
	for _, i := range []int{60, 75, 90} {
		require.True(t, IsDefined(lines.Tenkan[i]))
		require.True(t, IsDefined(lines.Kijun[i]))
		want := (lines.Tenkan[i] + lines.Kijun[i]) / 2
		assert.InDelta(t, want, lines.SpanA[i+IchimokuShift], 1e-9)
	}
}

func TestIchimoku_ChikouTrailsClose(t *testing.T) {
	highs, lows, closes := rampColumns(120)
	lines := Ichimoku(highs, lows, closes)

	for _, i := range []int{0, 40, 93} {
		assert.Equal(t, closes[i+IchimokuShift], lines.Chikou[i])
	}
	// The last 26 bars have no elapsed horizon.
	for i := 120 - IchimokuShift; i < 120; i++ {
		assert.False(t, IsDefined(lines.Chikou[i]), "chikou[%d]", i)
	}
}

func TestIchimoku_TenkanValue(t *testing.T) {
	highs, lows, closes := rampColumns(60)
	lines := Ichimoku(highs, lows, closes)

	i := 30
	maxHigh, minLow := highs[i], lows[i]
	for j := i - TenkanPeriod + 1; j <= i; j++ {
		if highs[j] > maxHigh {
			maxHigh = highs[j]
		}
		if lows[j] < minLow {
			minLow = lows[j]
		}
	}
	assert.InDelta(t, (maxHigh+minLow)/2, lines.Tenkan[i], 1e-9)
}
