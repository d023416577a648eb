package analysis

// fallbackOffset keys the generic trend rule used for checkpoint 88 and any
// offset without a dedicated rule.
const fallbackOffset = 88

func newRuleRegistry() map[int]checkpointRule {
	bullish := func(eval func(*PriceSeries, int, int, SwingLow) (int, []string)) checkpointRule {
		return checkpointRule{eval: eval, minStrength: 0, maxStrength: 100}
	}
	twoSided := func(eval func(*PriceSeries, int, int, SwingLow) (int, []string)) checkpointRule {
		return checkpointRule{eval: eval, minStrength: -100, maxStrength: 100}
	}

	return map[int]checkpointRule{
		9:  bullish(ruleDay9),
		13: bullish(ruleDay13),
		26: bullish(ruleDay26),
		33: bullish(ruleDay33),
		42: bullish(ruleDay42),
		51: bullish(ruleDay51),
		65: twoSided(ruleMajor),
		77: twoSided(ruleMajor),
		88: twoSided(ruleGeneral),
	}
}

// ruleDay9: a 9-day breakout lifts the conversion line, the first hint that
// the short-term correction is over.
func ruleDay9(s *PriceSeries, idx, daysSinceLow int, _ SwingLow) (int, []string) {
	strength := 0
	var found []string

	if daysSinceLow >= 7 && daysSinceLow <= 11 {
		strength += 20
		found = append(found, "timing_window")
	}
	if high, ok := maxHigh(s, idx-8, idx-1); ok && s.Points[idx].High > high {
		strength += 40
		found = append(found, "nine_day_breakout")
	}
	if idx >= 1 && IsDefined(s.Tenkan[idx]) && IsDefined(s.Tenkan[idx-1]) && s.Tenkan[idx] > s.Tenkan[idx-1] {
		strength += 25
		found = append(found, "conversion_rising")
	}
	if IsDefined(s.Tenkan[idx]) && IsDefined(s.SMA10[idx]) && s.Tenkan[idx] > s.SMA10[idx] {
		strength += 15
		found = append(found, "conversion_above_ma10")
	}
	return strength, found
}

// ruleDay13: the correction-end checkpoint; a golden cross here historically
// precedes a run into day 26.
func ruleDay13(s *PriceSeries, idx, daysSinceLow int, _ SwingLow) (int, []string) {
	strength := 0
	var found []string

	if daysSinceLow >= 11 && daysSinceLow <= 15 {
		strength += 25
		found = append(found, "timing_window")
	}
	if IsDefined(s.Tenkan[idx]) && IsDefined(s.Kijun[idx]) && s.Tenkan[idx] > s.Kijun[idx] {
		strength += 40
		found = append(found, "golden_cross")
		if idx >= 1 && IsDefined(s.Tenkan[idx-1]) && IsDefined(s.Kijun[idx-1]) && s.Tenkan[idx-1] <= s.Kijun[idx-1] {
			strength += 20
			found = append(found, "just_crossed")
		}
	}
	if high, ok := maxHigh(s, idx-13, idx-1); ok && s.Points[idx].High > high {
		strength += 20
		found = append(found, "thirteen_day_high")
	}
	if idx >= IchimokuShift {
		back := idx - IchimokuShift
		if IsDefined(s.Tenkan[back]) && s.Points[back].Close > s.Tenkan[back] {
			strength += 15
			found = append(found, "lagging_span_confirmed")
		}
	}
	return strength, found
}

// ruleDay26: full bullish alignment entry above the cloud.
func ruleDay26(s *PriceSeries, idx, daysSinceLow int, _ SwingLow) (int, []string) {
	strength := 0
	var found []string
	close := s.Points[idx].Close

	if daysSinceLow >= 23 && daysSinceLow <= 29 {
		strength += 25
		found = append(found, "timing_window")
	}
	if IsDefined(s.SpanA[idx]) && IsDefined(s.SpanB[idx]) && close > s.SpanA[idx] && close > s.SpanB[idx] {
		strength += 35
		found = append(found, "above_cloud")
	}
	// The 26-day new-high test keeps the original's >= against a trailing
	// max that includes today.
	if high, ok := maxHigh(s, idx-25, idx); ok && s.Points[idx].High >= high {
		strength += 25
		found = append(found, "twenty_six_day_high")
	}
	if IsDefined(s.Tenkan[idx]) && IsDefined(s.Kijun[idx]) && IsDefined(s.SpanA[idx]) && IsDefined(s.SpanB[idx]) &&
		s.Tenkan[idx] > s.Kijun[idx] && close > s.Tenkan[idx] && s.SpanA[idx] > s.SpanB[idx] {
		strength += 15
		found = append(found, "full_alignment")
	}
	return strength, found
}

// ruleDay33: the trend is judged by realized gain, cloud thickness and
// volume expansion.
func ruleDay33(s *PriceSeries, idx, daysSinceLow int, low SwingLow) (int, []string) {
	strength := 0
	var found []string
	close := s.Points[idx].Close

	if daysSinceLow >= 30 && daysSinceLow <= 36 {
		strength += 20
		found = append(found, "timing_window")
	}
	gain := (close/low.Price - 1) * 100
	if gain > 15 {
		strength += 30
		found = append(found, "gain_over_15pct")
	} else if gain > 10 {
		strength += 20
		found = append(found, "gain_over_10pct")
	}
	if IsDefined(s.SpanA[idx]) && IsDefined(s.SpanB[idx]) && cloudThickness(s, idx) > close*0.03 {
		strength += 25
		found = append(found, "thick_cloud_support")
	}
	if recent, prior, ok := splitVolumeAverages(s, idx, 5); ok && recent > prior*1.5 {
		strength += 25
		found = append(found, "volume_expanding")
	}
	return strength, found
}

// ruleDay42: third-wave start; a 60-day breakout here is the strongest
// bullish checkpoint event.
func ruleDay42(s *PriceSeries, idx, daysSinceLow int, _ SwingLow) (int, []string) {
	strength := 0
	var found []string

	if daysSinceLow >= 39 && daysSinceLow <= 45 {
		strength += 20
		found = append(found, "timing_window")
	}
	if high, ok := maxHigh(s, idx-60, idx-1); ok && s.Points[idx].High > high {
		strength += 40
		found = append(found, "sixty_day_breakout")
	}
	if idx >= 16 {
		upDays := 0
		for i := idx - 15; i <= idx; i++ {
			if s.Points[i].Close > s.Points[i-1].Close {
				upDays++
			}
		}
		if upDays >= 10 {
			strength += 25
			found = append(found, "steady_rise")
		}
	}
	if recent, prior, ok := splitVolumeAverages(s, idx, 5); ok && recent > prior*2 {
		strength += 15
		found = append(found, "volume_surge")
	}
	return strength, found
}

// ruleDay51: the irresistible inflection; grades the established trend.
func ruleDay51(s *PriceSeries, idx, daysSinceLow int, low SwingLow) (int, []string) {
	strength := 0
	var found []string
	close := s.Points[idx].Close

	if daysSinceLow >= 47 && daysSinceLow <= 55 {
		strength += 20
		found = append(found, "timing_window")
	}
	gain := (close/low.Price - 1) * 100
	if gain > 30 {
		strength += 35
		found = append(found, "gain_over_30pct")
	} else if gain > 20 {
		strength += 25
		found = append(found, "gain_over_20pct")
	}
	if IsDefined(s.SpanA[idx]) && IsDefined(s.SpanB[idx]) && cloudThickness(s, idx) > close*0.05 {
		strength += 30
		found = append(found, "very_thick_cloud")
	}
	if idx >= IchimokuShift {
		back := idx - IchimokuShift
		if IsDefined(s.SpanA[back]) && IsDefined(s.SpanB[back]) &&
			s.Points[back].Close > s.SpanA[back] && s.Points[back].Close > s.SpanB[back] {
			strength += 20
			found = append(found, "lagging_span_above_cloud")
		}
	}
	return strength, found
}

// ruleMajor covers the 65- and 77-day checkpoints, the top-watch zone. These
// are the only rules that can drive meaningfully negative scores.
func ruleMajor(s *PriceSeries, idx, _ int, _ SwingLow) (int, []string) {
	close := s.Points[idx].Close
	if high, ok := maxHigh(s, idx-4, idx); ok && close < high*0.95 {
		return -50, []string{"decline_risk"}
	}
	if avg, ok := avgVolume(s, idx-19, idx); ok && float64(s.Points[idx].Volume) > avg*2 {
		return -30, []string{"volume_surge_warning"}
	}
	return 10, []string{"continue_observing"}
}

// ruleGeneral is the fallback trend check for checkpoint 88.
func ruleGeneral(s *PriceSeries, idx, _ int, _ SwingLow) (int, []string) {
	if idx < 5 || s.Points[idx-5].Close <= 0 {
		return 0, nil
	}
	change := (s.Points[idx].Close/s.Points[idx-5].Close - 1) * 100
	switch {
	case change > 2:
		return 20, []string{"five_day_rise"}
	case change < -2:
		return -20, []string{"five_day_decline"}
	default:
		return 0, []string{"flat_trend"}
	}
}

// signalCategory maps a strength to the qualitative label each checkpoint
// family reports.
func signalCategory(offset, strength int) string {
	switch offset {
	case 9:
		if strength >= 60 {
			return "bullish"
		}
		return "neutral"
	case 13, 26:
		switch {
		case strength >= 70:
			return "strong_bullish"
		case strength >= 50:
			return "bullish"
		default:
			return "neutral"
		}
	case 33:
		if strength >= 70 {
			return "strong_bullish"
		}
		return "bullish"
	case 42:
		switch {
		case strength >= 80:
			return "very_strong_bullish"
		case strength >= 60:
			return "strong_bullish"
		default:
			return "bullish"
		}
	case 51:
		if strength >= 80 {
			return "very_strong_bullish"
		}
		return "strong_bullish"
	case 65, 77:
		switch {
		case strength <= -50:
			return "strong_bearish"
		case strength < 0:
			return "bearish"
		default:
			return "neutral"
		}
	default:
		switch {
		case strength > 0:
			return "bullish"
		case strength < 0:
			return "bearish"
		default:
			return "neutral"
		}
	}
}

// maxHigh returns the maximum high over the inclusive index range; ok is
// false when the range falls outside the series.
func maxHigh(s *PriceSeries, from, to int) (float64, bool) {
	if from < 0 || to >= s.Len() || from > to {
		return 0, false
	}
	max := s.Points[from].High
	for i := from + 1; i <= to; i++ {
		if s.Points[i].High > max {
			max = s.Points[i].High
		}
	}
	return max, true
}

// avgVolume returns the mean volume over the inclusive index range.
func avgVolume(s *PriceSeries, from, to int) (float64, bool) {
	if from < 0 || to >= s.Len() || from > to {
		return 0, false
	}
	sum := 0.0
	for i := from; i <= to; i++ {
		sum += float64(s.Points[i].Volume)
	}
	return sum / float64(to-from+1), true
}

// splitVolumeAverages compares the trailing span-bar average volume against
// the span bars immediately before it.
func splitVolumeAverages(s *PriceSeries, idx, span int) (recent, prior float64, ok bool) {
	recent, okRecent := avgVolume(s, idx-span+1, idx)
	prior, okPrior := avgVolume(s, idx-2*span+1, idx-span)
	return recent, prior, okRecent && okPrior
}

// cloudThickness is |spanA - spanB| at the given index; callers must check
// both spans are defined.
func cloudThickness(s *PriceSeries, idx int) float64 {
	d := s.SpanA[idx] - s.SpanB[idx]
	if d < 0 {
		return -d
	}
	return d
}
