package analysis

import "time"

// DefaultSwingWindow is the half-width of the symmetric window a bar must
// dominate to count as a significant low.
const DefaultSwingWindow = 20

// SwingLow marks the most recent significant local minimum in the low
// column. It is recomputed fresh on every analysis call, never persisted.
type SwingLow struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// FindSignificantLow scans every index i in [window, len-window) and marks it
// a candidate when no other bar in [i-window, i+window] has a strictly lower
// low. The most recent candidate wins; ties on equal lows therefore resolve
// to the latest index. Returns nil when the series is shorter than
// 2*window+1 or no candidate exists.
func FindSignificantLow(points []PricePoint, window int) *SwingLow {
	if window <= 0 {
		window = DefaultSwingWindow
	}
	if len(points) < 2*window+1 {
		return nil
	}

	var latest *SwingLow
	for i := window; i < len(points)-window; i++ {
		current := points[i].Low
		isLocalMin := true
		for j := i - window; j <= i+window; j++ {
			if j != i && points[j].Low < current {
				isLocalMin = false
				break
			}
		}
		if isLocalMin {
			latest = &SwingLow{Index: i, Date: points[i].Date, Price: current}
		}
	}
	return latest
}

// FindSignificantLowCentered is the centered-rolling-minimum variant used by
// the blended analysis: a bar is significant when its low equals the minimum
// of a centered window of size window, and the chronologically last such bar
// within the trailing span bars is returned. Returns nil when the series is
// shorter than the window or no bar qualifies.
func FindSignificantLowCentered(points []PricePoint, window, span int) *SwingLow {
	if window <= 0 {
		window = DefaultSwingWindow
	}
	if len(points) < window {
		return nil
	}
	if span <= 0 || span > len(points) {
		span = len(points)
	}

	// Centered window bounds follow the rolling convention for even sizes:
	// (window-1)/2 bars behind, window/2 bars ahead.
	behind := (window - 1) / 2
	ahead := window / 2

	start := len(points) - span
	var latest *SwingLow
	for i := start; i < len(points); i++ {
		lo := i - behind
		hi := i + ahead
		if lo < 0 || hi >= len(points) {
			continue
		}
		min := points[lo].Low
		for j := lo + 1; j <= hi; j++ {
			if points[j].Low < min {
				min = points[j].Low
			}
		}
		if points[i].Low == min {
			latest = &SwingLow{Index: i, Date: points[i].Date, Price: points[i].Low}
		}
	}
	return latest
}
