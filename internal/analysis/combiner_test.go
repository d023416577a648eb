package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineSignals_NeutralCycleBuy(t *testing.T) {
	// mlScore 75 normalizes to +50; with no active checkpoints the combined
	// score is 30, the BUY boundary.
	signal := CombineSignals(75, nil)

	assert.InDelta(t, 0.0, signal.CycleScore, 1e-9)
	assert.InDelta(t, 30.0, signal.CombinedScore, 1e-9)
	assert.Equal(t, Buy, signal.Recommendation)
	assert.Equal(t, ConfidenceMedium, signal.Confidence)
}

func TestCombineSignals_Hold(t *testing.T) {
	signal := CombineSignals(50, nil)

	assert.InDelta(t, 0.0, signal.CombinedScore, 1e-9)
	assert.Equal(t, Hold, signal.Recommendation)
	assert.Equal(t, ConfidenceLow, signal.Confidence)
}

func TestCombineSignals_StrongBuy(t *testing.T) {
	checkpoints := map[int]CheckpointSignal{
		13: {Status: StatusActive, Strength: 100},
	}
	signal := CombineSignals(100, checkpoints)

	assert.InDelta(t, 100.0, signal.CombinedScore, 1e-9)
	assert.Equal(t, StrongBuy, signal.Recommendation)
	assert.Equal(t, ConfidenceHigh, signal.Confidence)
}

func TestCombineSignals_StrongSellReachable(t *testing.T) {
	checkpoints := map[int]CheckpointSignal{
		65: {Status: StatusActive, Strength: -100},
	}
	signal := CombineSignals(0, checkpoints)

	assert.InDelta(t, -100.0, signal.CombinedScore, 1e-9)
	assert.Equal(t, StrongSell, signal.Recommendation)
	assert.Equal(t, ConfidenceHigh, signal.Confidence)
}

func TestCombineSignals_Sell(t *testing.T) {
	signal := CombineSignals(25, nil)

	assert.InDelta(t, -30.0, signal.CombinedScore, 1e-9)
	assert.Equal(t, Sell, signal.Recommendation)
	assert.Equal(t, ConfidenceMedium, signal.Confidence)
}

func TestCombineSignals_ClampsMLScore(t *testing.T) {
	signal := CombineSignals(150, nil)
	assert.Equal(t, 100.0, signal.MLScore)
	assert.InDelta(t, 60.0, signal.CombinedScore, 1e-9)
	assert.Equal(t, StrongBuy, signal.Recommendation)

	signal = CombineSignals(-10, nil)
	assert.Equal(t, 0.0, signal.MLScore)
	assert.InDelta(t, -60.0, signal.CombinedScore, 1e-9)
	assert.Equal(t, StrongSell, signal.Recommendation)
}

func TestCombineSignals_OnlyActiveCheckpointsCount(t *testing.T) {
	checkpoints := map[int]CheckpointSignal{
		9:  {Status: StatusPassed, Strength: 80},
		13: {Status: StatusActive, Strength: 60},
		26: {Status: StatusActive, Strength: 40},
		33: {Status: StatusApproaching, Strength: 0},
	}
	signal := CombineSignals(50, checkpoints)

	assert.InDelta(t, 50.0, signal.CycleScore, 1e-9)
	assert.InDelta(t, 20.0, signal.CombinedScore, 1e-9)
	assert.Equal(t, Hold, signal.Recommendation)
}
