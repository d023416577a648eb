package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-inflection-analyzer/internal/analyzer/dto"
	"golang-inflection-analyzer/pkg/utils"
)

func recommendationIcon(recommendation string) string {
	switch strings.ToUpper(recommendation) {
	case "STRONG_BUY":
		return "🚀"
	case "BUY":
		return "🟢"
	case "SELL":
		return "🔴"
	case "STRONG_SELL":
		return "🆘"
	default: // HOLD
		return "🟡"
	}
}

// FormatCycleSignalMessage formats a single cycle signal into a Markdown
// string for Telegram.
func FormatCycleSignalMessage(signal dto.CycleSignalTelegramResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 *Cycle Signal for %s*\n\n", signal.StockCode))
	sb.WriteString(fmt.Sprintf("%s *Recommendation:* %s\n", recommendationIcon(signal.Recommendation), signal.Recommendation))
	sb.WriteString(fmt.Sprintf("🎯 *Confidence:* %s\n", signal.Confidence))
	sb.WriteString(fmt.Sprintf("🧮 *Combined Score:* %.1f\n", signal.CombinedScore))
	sb.WriteString(fmt.Sprintf("📅 *Days Since Low:* %d\n", signal.DaysSinceLow))

	if len(signal.ActiveOffsets) > 0 {
		offsets := make([]string, 0, len(signal.ActiveOffsets))
		for _, offset := range signal.ActiveOffsets {
			offsets = append(offsets, fmt.Sprintf("D+%d", offset))
		}
		sb.WriteString(fmt.Sprintf("🔔 *Active Checkpoints:* %s\n", strings.Join(offsets, ", ")))
	}

	return sb.String()
}

// FormatCycleSignalsForTelegram formats a slice of cycle signals into multiple
// Markdown strings for Telegram, ensuring each message does not exceed the
// specified maximum length.
func FormatCycleSignalsForTelegram(signals []dto.CycleSignalTelegramResult) []string {
	if len(signals) == 0 {
		return []string{"No cycle signals for today."}
	}

	const maxLen = 4090
	var messages []string
	var currentMessage strings.Builder
	part := 1

	// Helper function to start a new message part with the correct header
	startNewPart := func() {
		currentMessage.Reset()
		var header string
		if part == 1 {
			header = "📊 *Daily Cycle Signal Summary* 📊\n\n"
		} else {
			header = fmt.Sprintf("---*Daily Cycle Signal Summary Part %d*---\n\n", part)
		}
		currentMessage.WriteString(header)
	}

	// Start the first part
	startNewPart()

	for _, s := range signals {
		var entryBuilder strings.Builder
		entryBuilder.WriteString(fmt.Sprintf("📈 *- - - - - %s - - - - -*\n", s.StockCode))
		entryBuilder.WriteString(fmt.Sprintf("%s *Recommendation:* %s\n", recommendationIcon(s.Recommendation), s.Recommendation))
		entryBuilder.WriteString(fmt.Sprintf("🎯 *Confidence:* %s\n", s.Confidence))
		entryBuilder.WriteString(fmt.Sprintf("🧮 *Score:* %.1f\n", s.CombinedScore))
		entryBuilder.WriteString(fmt.Sprintf("📅 *Days Since Low:* %d\n", s.DaysSinceLow))
		entryBuilder.WriteString("\n")

		entryString := entryBuilder.String()

		// Check if adding the new entry exceeds the max length. We assume a single entry doesn't exceed the limit.
		if currentMessage.Len()+len(entryString) > maxLen {
			messages = append(messages, currentMessage.String())

			part++
			startNewPart()
		}

		currentMessage.WriteString(entryString)
	}

	messages = append(messages, currentMessage.String())

	return messages
}

// FormatErrorAlertMessage formats an error alert for Telegram.
func FormatErrorAlertMessage(time time.Time, errMsg string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
⚠️ %s
`, utils.PrettyDate(time), errMsg)
}
