package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := SMA(values, 3)

	require.Len(t, out, 5)
	assert.False(t, IsDefined(out[0]))
	assert.False(t, IsDefined(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestSMA_ShorterThanPeriod(t *testing.T) {
	out := SMA([]float64{1, 2}, 5)
	for _, v := range out {
		assert.False(t, IsDefined(v))
	}
}

func TestEMA_SeededWithFirstValue(t *testing.T) {
	values := []float64{10, 10, 10, 10}
	out := EMA(values, 3)

	assert.Equal(t, 10.0, out[0])
	for _, v := range out {
		assert.InDelta(t, 10.0, v, 1e-9)
	}
}

func TestEMA_Smoothing(t *testing.T) {
	values := []float64{10, 20}
	out := EMA(values, 3) // alpha = 0.5

	assert.InDelta(t, 15.0, out[1], 1e-9)
}

func TestRSI_Bounds(t *testing.T) {
	values := []float64{100, 102, 99, 103, 101, 105, 104, 108, 106, 110,
		109, 112, 111, 115, 113, 117, 116, 120, 118, 122}
	out := RSI(values, RSIPeriod)

	for i := 0; i < RSIPeriod; i++ {
		assert.False(t, IsDefined(out[i]), "index %d should be undefined", i)
	}
	for i := RSIPeriod; i < len(out); i++ {
		require.True(t, IsDefined(out[i]))
		assert.GreaterOrEqual(t, out[i], 0.0)
		assert.LessOrEqual(t, out[i], 100.0)
	}
}

func TestRSI_AllGains(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	out := RSI(values, RSIPeriod)

	// With zero losses the epsilon keeps RS finite but RSI approaches 100.
	assert.Greater(t, out[len(out)-1], 99.0)
	assert.LessOrEqual(t, out[len(out)-1], 100.0)
}

func TestRSI_AllLosses(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 100 - float64(i)
	}
	out := RSI(values, RSIPeriod)

	assert.Less(t, out[len(out)-1], 1.0)
	assert.GreaterOrEqual(t, out[len(out)-1], 0.0)
}

func TestMomentum(t *testing.T) {
	values := []float64{100, 100, 100, 100, 100, 110}
	out := Momentum(values, 5)

	assert.False(t, IsDefined(out[4]))
	assert.InDelta(t, 0.10, out[5], 1e-9)
}

func TestBollinger_BandOrdering(t *testing.T) {
	values := make([]float64, 40)
	price := 100.0
	for i := range values {
		if i%2 == 0 {
			price *= 1.01
		} else {
			price *= 0.995
		}
		values[i] = price
	}
	bb := Bollinger(values, BollingerPeriod, BollingerK)

	for i := BollingerPeriod - 1; i < len(values); i++ {
		require.True(t, IsDefined(bb.Upper[i]))
		assert.GreaterOrEqual(t, bb.Upper[i], bb.Middle[i])
		assert.GreaterOrEqual(t, bb.Middle[i], bb.Lower[i])
		if IsDefined(bb.Position[i]) {
			assert.GreaterOrEqual(t, bb.Position[i], 0.0)
			assert.LessOrEqual(t, bb.Position[i], 1.0)
		}
	}
}

func TestBollinger_CollapsedBands(t *testing.T) {
	values := make([]float64, 25)
	for i := range values {
		values[i] = 50.0
	}
	bb := Bollinger(values, BollingerPeriod, BollingerK)

	last := len(values) - 1
	assert.Equal(t, bb.Upper[last], bb.Lower[last])
	assert.False(t, IsDefined(bb.Position[last]))
}

func TestMACDHistogram_ConstantSeries(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 42.0
	}
	macd := MACDLine(values, MACDFastSpan, MACDSlowSpan)
	hist := MACDHistogram(values, MACDFastSpan, MACDSlowSpan, MACDSignalSpan)

	for i := range values {
		assert.InDelta(t, 0.0, macd[i], 1e-9)
		assert.InDelta(t, 0.0, hist[i], 1e-9)
	}
}

func TestUndefinedSentinel(t *testing.T) {
	assert.True(t, math.IsNaN(Undefined()))
	assert.False(t, IsDefined(Undefined()))
	assert.True(t, IsDefined(0.0))
}
