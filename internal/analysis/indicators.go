package analysis

import "math"

// Default indicator parameters, matching the columns ComputeIndicators fills.
const (
	RSIPeriod       = 14
	MACDFastSpan    = 12
	MACDSlowSpan    = 26
	MACDSignalSpan  = 9
	BollingerPeriod = 20
	BollingerK      = 2.0

	// rsiEpsilon keeps RS finite when the rolling loss is zero.
	rsiEpsilon = 1e-10
)

func undefinedColumn(length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA computes the simple moving average of the trailing period values.
// Slots before index period-1 are undefined.
func SMA(values []float64, period int) []float64 {
	out := undefinedColumn(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes the exponential moving average with smoothing 2/(span+1),
// seeded with the first value and no bias adjustment. Every slot is defined.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSI computes the Relative Strength Index from simple rolling means of
// one-step gains and losses. Defined values always fall in [0,100]; slots
// before index period are undefined.
func RSI(values []float64, period int) []float64 {
	out := undefinedColumn(len(values))
	if period <= 0 || len(values) < period+1 {
		return out
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	sumGain, sumLoss := 0.0, 0.0
	for i := 1; i < len(values); i++ {
		sumGain += gains[i]
		sumLoss += losses[i]
		if i > period {
			sumGain -= gains[i-period]
			sumLoss -= losses[i-period]
		}
		if i >= period {
			avgGain := sumGain / float64(period)
			avgLoss := sumLoss / float64(period)
			rs := avgGain / (avgLoss + rsiEpsilon)
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// MACDLine computes the difference of the fast and slow EMAs.
func MACDLine(values []float64, fast, slow int) []float64 {
	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)
	out := make([]float64, len(values))
	for i := range values {
		out[i] = emaFast[i] - emaSlow[i]
	}
	return out
}

// MACDHistogram computes the MACD line minus its own signal EMA.
func MACDHistogram(values []float64, fast, slow, signal int) []float64 {
	macd := MACDLine(values, fast, slow)
	signalLine := EMA(macd, signal)
	out := make([]float64, len(values))
	for i := range macd {
		out[i] = macd[i] - signalLine[i]
	}
	return out
}

// Momentum computes close[i]/close[i-lag] - 1; slots before index lag are
// undefined.
func Momentum(values []float64, lag int) []float64 {
	out := undefinedColumn(len(values))
	for i := lag; i < len(values); i++ {
		if values[i-lag] != 0 {
			out[i] = values[i]/values[i-lag] - 1
		}
	}
	return out
}

// BollingerBands carries the three bands plus the relative close position
// within them.
type BollingerBands struct {
	Upper    []float64
	Middle   []float64
	Lower    []float64
	Position []float64
}

// Bollinger computes the bands for the given period and width multiplier.
// The rolling standard deviation uses the sample estimator. Position is
// undefined when the bands collapse (upper == lower).
func Bollinger(values []float64, period int, k float64) BollingerBands {
	n := len(values)
	bb := BollingerBands{
		Upper:    undefinedColumn(n),
		Middle:   SMA(values, period),
		Lower:    undefinedColumn(n),
		Position: undefinedColumn(n),
	}
	if period <= 1 || n < period {
		return bb
	}
	for i := period - 1; i < n; i++ {
		mean := bb.Middle[i]
		sumSq := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			sumSq += d * d
		}
		std := math.Sqrt(sumSq / float64(period-1))
		bb.Upper[i] = mean + k*std
		bb.Lower[i] = mean - k*std
		if bb.Upper[i] != bb.Lower[i] {
			bb.Position[i] = (values[i] - bb.Lower[i]) / (bb.Upper[i] - bb.Lower[i])
		}
	}
	return bb
}

// rollingMax computes the trailing window maximum; slots before index
// period-1 are undefined.
func rollingMax(values []float64, period int) []float64 {
	out := undefinedColumn(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		max := values[i]
		for j := i - period + 1; j < i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}
		out[i] = max
	}
	return out
}

// rollingMin computes the trailing window minimum; slots before index
// period-1 are undefined.
func rollingMin(values []float64, period int) []float64 {
	out := undefinedColumn(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		min := values[i]
		for j := i - period + 1; j < i; j++ {
			if values[j] < min {
				min = values[j]
			}
		}
		out[i] = min
	}
	return out
}
