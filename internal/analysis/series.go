package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInsufficientData is returned when a series is shorter than the
	// minimum lookback a computation requires.
	ErrInsufficientData = errors.New("insufficient price data")
	// ErrNoSwingLow is returned when no significant swing low exists in the
	// scanned range, so checkpoint evaluation cannot proceed.
	ErrNoSwingLow = errors.New("no significant swing low found")
)

// Undefined returns the sentinel used for indicator slots whose lookback
// window is not yet satisfied.
func Undefined() float64 { return math.NaN() }

// IsDefined reports whether an indicator value is defined at its index.
func IsDefined(v float64) bool { return !math.IsNaN(v) }

// PricePoint is a single daily OHLCV bar.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries holds an ordered OHLCV series plus derived indicator columns.
// All derived columns have the same length as Points and are aligned by
// index; slots before an indicator's lookback window is satisfied hold the
// undefined sentinel. The series is treated as immutable once built.
type PriceSeries struct {
	Points []PricePoint

	SMA5  []float64
	SMA10 []float64
	SMA20 []float64
	SMA60 []float64

	RSI        []float64
	MACD       []float64
	MACDHist   []float64
	Momentum5  []float64
	Momentum20 []float64

	BBUpper    []float64
	BBMiddle   []float64
	BBLower    []float64
	BBPosition []float64

	Tenkan []float64
	Kijun  []float64
	SpanA  []float64
	SpanB  []float64
	Chikou []float64

	enriched bool
}

// NewPriceSeries validates the bars and wraps them in a PriceSeries.
// Dates must be strictly increasing with no duplicates, prices positive and
// volumes non-negative.
func NewPriceSeries(points []PricePoint) (*PriceSeries, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInsufficientData)
	}
	for i, p := range points {
		if p.Open <= 0 || p.High <= 0 || p.Low <= 0 || p.Close <= 0 {
			return nil, fmt.Errorf("non-positive price at index %d (%s)", i, p.Date.Format("2006-01-02"))
		}
		if p.Volume < 0 {
			return nil, fmt.Errorf("negative volume at index %d (%s)", i, p.Date.Format("2006-01-02"))
		}
		if i > 0 && !points[i-1].Date.Before(p.Date) {
			return nil, fmt.Errorf("dates not strictly increasing at index %d (%s)", i, p.Date.Format("2006-01-02"))
		}
	}
	return &PriceSeries{Points: points}, nil
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Closes extracts the close column.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Highs extracts the high column.
func (s *PriceSeries) Highs() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.High
	}
	return out
}

// Lows extracts the low column.
func (s *PriceSeries) Lows() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Low
	}
	return out
}

// Volumes extracts the volume column as floats.
func (s *PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = float64(p.Volume)
	}
	return out
}

// ComputeIndicators fills every derived column. It is idempotent and never
// fails: columns whose lookback exceeds the series length stay undefined.
func (s *PriceSeries) ComputeIndicators() {
	if s.enriched {
		return
	}
	closes := s.Closes()
	highs := s.Highs()
	lows := s.Lows()

	s.SMA5 = SMA(closes, 5)
	s.SMA10 = SMA(closes, 10)
	s.SMA20 = SMA(closes, 20)
	s.SMA60 = SMA(closes, 60)

	s.RSI = RSI(closes, RSIPeriod)
	s.MACD = MACDLine(closes, MACDFastSpan, MACDSlowSpan)
	s.MACDHist = MACDHistogram(closes, MACDFastSpan, MACDSlowSpan, MACDSignalSpan)
	s.Momentum5 = Momentum(closes, 5)
	s.Momentum20 = Momentum(closes, 20)

	bb := Bollinger(closes, BollingerPeriod, BollingerK)
	s.BBUpper = bb.Upper
	s.BBMiddle = bb.Middle
	s.BBLower = bb.Lower
	s.BBPosition = bb.Position

	ichimoku := Ichimoku(highs, lows, closes)
	s.Tenkan = ichimoku.Tenkan
	s.Kijun = ichimoku.Kijun
	s.SpanA = ichimoku.SpanA
	s.SpanB = ichimoku.SpanB
	s.Chikou = ichimoku.Chikou

	s.enriched = true
}
