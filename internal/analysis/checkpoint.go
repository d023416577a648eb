package analysis

import "fmt"

// CheckpointStatus is the state of one cycle checkpoint relative to the
// current bar.
type CheckpointStatus string

const (
	StatusApproaching CheckpointStatus = "approaching"
	StatusActive      CheckpointStatus = "active"
	StatusPassed      CheckpointStatus = "passed"
)

// CheckpointOffsets are the nine canonical day-offsets from a swing low at
// which trend behavior tends to change.
var CheckpointOffsets = []int{9, 13, 26, 33, 42, 51, 65, 77, 88}

var checkpointLabels = map[int]string{
	9:  "short-term correction",
	13: "correction-end signal",
	26: "bullish-alignment entry",
	33: "major-trend rise",
	42: "third-wave start",
	51: "irresistible inflection",
	65: "trend-change caution",
	77: "long-term inflection",
	88: "cycle turnover",
}

// DefaultTolerance is the half-width in bars of the active window around
// each checkpoint offset, applied uniformly.
const DefaultTolerance = 5

// DefaultLowLookback bounds the trailing range scanned for the swing low,
// covering the full checkpoint cycle.
const DefaultLowLookback = 88

// CheckpointSignal is the ephemeral per-offset result of one analysis call.
type CheckpointSignal struct {
	Offset       int              `json:"offset"`
	Label        string           `json:"label"`
	DaysSinceLow int              `json:"days_since_low"`
	Status       CheckpointStatus `json:"status"`
	Strength     int              `json:"strength"`
	Category     string           `json:"category"`
	Descriptors  []string         `json:"descriptors,omitempty"`
}

// InflectionAnalysis is the result of evaluating every checkpoint against
// the most recent swing low.
type InflectionAnalysis struct {
	SwingLow      SwingLow                 `json:"swing_low"`
	DaysSinceLow  int                      `json:"days_since_low"`
	GainFromLow   float64                  `json:"gain_from_low_pct"`
	Checkpoints   map[int]CheckpointSignal `json:"checkpoints"`
	ActiveSignals []CheckpointSignal       `json:"active_signals"`
}

// checkpointRule scores one active checkpoint. Rules are pure functions of
// the enriched series, the latest index and the low location; the evaluator
// clamps the returned strength to [minStrength, maxStrength].
type checkpointRule struct {
	eval        func(s *PriceSeries, idx int, daysSinceLow int, low SwingLow) (int, []string)
	minStrength int
	maxStrength int
}

// Config tunes the evaluator. Zero values fall back to the canonical
// policy: swing window 20, low lookback 88 bars, tolerance ±5.
type Config struct {
	SwingWindow int
	LowLookback int
	Tolerance   int
}

// Evaluator runs the checkpoint state machine and per-offset rules over a
// price series. It holds no mutable state between calls.
type Evaluator struct {
	cfg   Config
	rules map[int]checkpointRule
}

// NewEvaluator builds an evaluator with the per-offset rule registry.
func NewEvaluator(cfg Config) *Evaluator {
	if cfg.SwingWindow <= 0 {
		cfg.SwingWindow = DefaultSwingWindow
	}
	if cfg.LowLookback <= 0 {
		cfg.LowLookback = DefaultLowLookback
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	return &Evaluator{cfg: cfg, rules: newRuleRegistry()}
}

// AnalyzeInflections locates the most recent significant swing low and
// evaluates all nine checkpoints against it. The analysis date is the last
// bar of the series; no wall clock is consulted, so identical inputs yield
// identical results.
func (e *Evaluator) AnalyzeInflections(series *PriceSeries) (*InflectionAnalysis, error) {
	n := series.Len()
	if n < IchimokuMinLen {
		return nil, fmt.Errorf("%w: need at least %d bars, got %d", ErrInsufficientData, IchimokuMinLen, n)
	}
	minSwingLen := 2*e.cfg.SwingWindow + 1
	if n < minSwingLen {
		return nil, fmt.Errorf("%w: need at least %d bars for swing detection, got %d", ErrInsufficientData, minSwingLen, n)
	}

	series.ComputeIndicators()

	// Swing detection scans the trailing lookback only; the low index is
	// reported in full-series coordinates.
	start := 0
	if n > e.cfg.LowLookback && e.cfg.LowLookback >= minSwingLen {
		start = n - e.cfg.LowLookback
	}
	low := FindSignificantLow(series.Points[start:], e.cfg.SwingWindow)
	if low == nil {
		return nil, ErrNoSwingLow
	}
	low.Index += start

	idx := n - 1
	daysSinceLow := idx - low.Index

	result := &InflectionAnalysis{
		SwingLow:     *low,
		DaysSinceLow: daysSinceLow,
		GainFromLow:  (series.Points[idx].Close/low.Price - 1) * 100,
		Checkpoints:  make(map[int]CheckpointSignal, len(CheckpointOffsets)),
	}

	for _, offset := range CheckpointOffsets {
		signal := e.evaluateCheckpoint(series, idx, daysSinceLow, *low, offset)
		result.Checkpoints[offset] = signal
		if signal.Status == StatusActive {
			result.ActiveSignals = append(result.ActiveSignals, signal)
		}
	}

	return result, nil
}

func (e *Evaluator) evaluateCheckpoint(series *PriceSeries, idx, daysSinceLow int, low SwingLow, offset int) CheckpointSignal {
	signal := CheckpointSignal{
		Offset:       offset,
		Label:        checkpointLabels[offset],
		DaysSinceLow: daysSinceLow,
	}

	d := daysSinceLow - offset
	switch {
	case d < -e.cfg.Tolerance:
		signal.Status = StatusApproaching
		signal.Category = "pending"
	case d > e.cfg.Tolerance:
		signal.Status = StatusPassed
		signal.Strength = retrospectiveStrength(series, idx, low, offset)
		signal.Category = "retrospective"
	default:
		signal.Status = StatusActive
		rule, ok := e.rules[offset]
		if !ok {
			rule = e.rules[fallbackOffset]
		}
		strength, descriptors := rule.eval(series, idx, daysSinceLow, low)
		signal.Strength = clampInt(strength, rule.minStrength, rule.maxStrength)
		signal.Descriptors = descriptors
		signal.Category = signalCategory(offset, signal.Strength)
	}

	return signal
}

// retrospectiveStrength grades a passed checkpoint by how the price moved
// after it: >5% gain since the checkpoint bar scores 80, any gain 40,
// otherwise -20.
func retrospectiveStrength(series *PriceSeries, idx int, low SwingLow, offset int) int {
	target := low.Index + offset
	if target > idx {
		target = idx
	}
	priceAtCheckpoint := series.Points[target].Close
	if priceAtCheckpoint <= 0 {
		return 0
	}
	performance := (series.Points[idx].Close/priceAtCheckpoint - 1) * 100
	switch {
	case performance > 5:
		return 80
	case performance > 0:
		return 40
	default:
		return -20
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
