package analysis

// Recommendation is the discrete trading action the combined signal maps to.
type Recommendation string

const (
	StrongBuy  Recommendation = "STRONG_BUY"
	Buy        Recommendation = "BUY"
	Hold       Recommendation = "HOLD"
	Sell       Recommendation = "SELL"
	StrongSell Recommendation = "STRONG_SELL"
)

// Confidence qualifies how decisive the combined score is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Blend weights for the externally supplied ML score versus the cycle score.
const (
	mlWeight    = 0.6
	cycleWeight = 0.4
)

// CombinedSignal merges the cycle checkpoint score with the ML probability
// of a near-term rise.
type CombinedSignal struct {
	MLScore        float64        `json:"ml_score"`
	CycleScore     float64        `json:"cycle_score"`
	CombinedScore  float64        `json:"combined_score"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     Confidence     `json:"confidence"`
}

// CombineSignals blends an ML score in [0,100] with the active checkpoint
// strengths. The cycle score is the mean strength of active checkpoints (0
// when none are active); the ML score is normalized to [-100,100] before
// weighting so both operands share a scale. Recommendation boundaries are
// checked from most extreme to least so the strong categories on both sides
// stay reachable.
func CombineSignals(mlScore float64, checkpoints map[int]CheckpointSignal) CombinedSignal {
	if mlScore < 0 {
		mlScore = 0
	} else if mlScore > 100 {
		mlScore = 100
	}

	cycleScore := 0.0
	active := 0
	for _, signal := range checkpoints {
		if signal.Status == StatusActive {
			cycleScore += float64(signal.Strength)
			active++
		}
	}
	if active > 0 {
		cycleScore /= float64(active)
	}

	normalizedMl := (mlScore - 50) * 2
	combined := normalizedMl*mlWeight + cycleScore*cycleWeight

	signal := CombinedSignal{
		MLScore:       mlScore,
		CycleScore:    cycleScore,
		CombinedScore: combined,
	}

	switch {
	case combined >= 60:
		signal.Recommendation = StrongBuy
		signal.Confidence = ConfidenceHigh
	case combined <= -60:
		signal.Recommendation = StrongSell
		signal.Confidence = ConfidenceHigh
	case combined >= 30:
		signal.Recommendation = Buy
		signal.Confidence = ConfidenceMedium
	case combined <= -30:
		signal.Recommendation = Sell
		signal.Confidence = ConfidenceMedium
	default:
		signal.Recommendation = Hold
		signal.Confidence = ConfidenceLow
	}

	return signal
}
