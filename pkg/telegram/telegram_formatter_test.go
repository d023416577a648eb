package telegram

import (
	"strings"
	"testing"
	"time"

	"golang-inflection-analyzer/internal/analyzer/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCycleSignalMessage(t *testing.T) {
	msg := FormatCycleSignalMessage(dto.CycleSignalTelegramResult{
		StockCode:      "005930",
		Recommendation: "BUY",
		Confidence:     "MEDIUM",
		CombinedScore:  42.5,
		DaysSinceLow:   13,
		ActiveOffsets:  []int{9, 13},
	})

	assert.Contains(t, msg, "005930")
	assert.Contains(t, msg, "BUY")
	assert.Contains(t, msg, "MEDIUM")
	assert.Contains(t, msg, "42.5")
	assert.Contains(t, msg, "D+9, D+13")
}

func TestFormatCycleSignalMessage_NoActiveOffsets(t *testing.T) {
	msg := FormatCycleSignalMessage(dto.CycleSignalTelegramResult{
		StockCode:      "000660",
		Recommendation: "HOLD",
		Confidence:     "LOW",
	})

	assert.NotContains(t, msg, "Active Checkpoints")
}

func TestFormatCycleSignalsForTelegram_Empty(t *testing.T) {
	messages := FormatCycleSignalsForTelegram(nil)

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "No cycle signals")
}

func TestFormatCycleSignalsForTelegram_SplitsLongOutput(t *testing.T) {
	signals := make([]dto.CycleSignalTelegramResult, 80)
	for i := range signals {
		signals[i] = dto.CycleSignalTelegramResult{
			StockCode:      strings.Repeat("A", 20),
			Recommendation: "STRONG_BUY",
			Confidence:     "HIGH",
			CombinedScore:  88.8,
			DaysSinceLow:   42,
		}
	}
	messages := FormatCycleSignalsForTelegram(signals)

	assert.Greater(t, len(messages), 1)
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), 4096)
	}
	assert.Contains(t, messages[1], "Part 2")
}

func TestFormatErrorAlertMessage(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	msg := FormatErrorAlertMessage(at, "analysis task retry count exceeded")

	assert.Contains(t, msg, "ERROR ALERT")
	assert.Contains(t, msg, "analysis task retry count exceeded")
	assert.Contains(t, msg, "2025")
}
