package analysis

// Ichimoku window lengths in trading days.
const (
	TenkanPeriod   = 9
	KijunPeriod    = 26
	SpanBPeriod    = 52
	IchimokuShift  = 26
	IchimokuMinLen = 52
)

// IchimokuLines holds the five Ichimoku columns, index-aligned with the
// source series.
type IchimokuLines struct {
	Tenkan []float64 // conversion line, (9-day high + 9-day low)/2
	Kijun  []float64 // base line, (26-day high + 26-day low)/2
	SpanA  []float64 // (tenkan+kijun)/2 shifted forward 26 bars
	SpanB  []float64 // (52-day high + 52-day low)/2 shifted forward 26 bars
	Chikou []float64 // close shifted backward 26 bars
}

// Ichimoku computes the five lines. Spans are shifted forward by 26 bars:
// the value derived from data up to index i lands at index i+26 and slots
// whose source window or shift target falls outside the series stay
// undefined; the forward gap is never back-filled.
func Ichimoku(highs, lows, closes []float64) IchimokuLines {
	n := len(closes)
	lines := IchimokuLines{
		Tenkan: undefinedColumn(n),
		Kijun:  undefinedColumn(n),
		SpanA:  undefinedColumn(n),
		SpanB:  undefinedColumn(n),
		Chikou: undefinedColumn(n),
	}

	highMax9 := rollingMax(highs, TenkanPeriod)
	lowMin9 := rollingMin(lows, TenkanPeriod)
	highMax26 := rollingMax(highs, KijunPeriod)
	lowMin26 := rollingMin(lows, KijunPeriod)
	highMax52 := rollingMax(highs, SpanBPeriod)
	lowMin52 := rollingMin(lows, SpanBPeriod)

	for i := 0; i < n; i++ {
		if IsDefined(highMax9[i]) && IsDefined(lowMin9[i]) {
			lines.Tenkan[i] = (highMax9[i] + lowMin9[i]) / 2
		}
		if IsDefined(highMax26[i]) && IsDefined(lowMin26[i]) {
			lines.Kijun[i] = (highMax26[i] + lowMin26[i]) / 2
		}
	}

	for i := 0; i+IchimokuShift < n; i++ {
		if IsDefined(lines.Tenkan[i]) && IsDefined(lines.Kijun[i]) {
			lines.SpanA[i+IchimokuShift] = (lines.Tenkan[i] + lines.Kijun[i]) / 2
		}
		if IsDefined(highMax52[i]) && IsDefined(lowMin52[i]) {
			lines.SpanB[i+IchimokuShift] = (highMax52[i] + lowMin52[i]) / 2
		}
	}

	// Lagging span: the close 26 bars in the future, attached to the bar it
	// trails. Only bars whose horizon has already elapsed get a value.
	for i := 0; i+IchimokuShift < n; i++ {
		lines.Chikou[i] = closes[i+IchimokuShift]
	}

	return lines
}
