package service

import (
	"context"
	"testing"

	"golang-inflection-analyzer/internal/entity"
	"golang-inflection-analyzer/internal/scheduler/config"
	"golang-inflection-analyzer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSignalRepo struct {
	signals []entity.CycleSignal
	err     error
}

func (r *stubSignalRepo) FindLatest(_ context.Context, _ string, _ int) ([]entity.CycleSignal, error) {
	return r.signals, r.err
}

func (r *stubSignalRepo) FindLatestPerStock(_ context.Context) ([]entity.CycleSignal, error) {
	return r.signals, r.err
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) SendMessage(text string) error {
	n.messages = append(n.messages, text)
	return n.err
}

func newTestSignalService(t *testing.T, repo *stubSignalRepo, notifier *recordingNotifier) SignalService {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return NewSignalService(repo, nil, log, &config.Config{}, notifier)
}

func TestSendDailyDigest_CombinesLatestSignals(t *testing.T) {
	repo := &stubSignalRepo{signals: []entity.CycleSignal{
		{StockCode: "005930.KS", Recommendation: "BUY", Confidence: "MEDIUM", CombinedScore: 42.5, DaysSinceLow: 13},
		{StockCode: "000660.KS", Recommendation: "HOLD", Confidence: "LOW", CombinedScore: 5.0, DaysSinceLow: 30},
	}}
	notifier := &recordingNotifier{}
	svc := newTestSignalService(t, repo, notifier)

	err := svc.SendDailyDigest(context.Background())
	require.NoError(t, err)
	require.Len(t, notifier.messages, 1)

	msg := notifier.messages[0]
	assert.Contains(t, msg, "Daily Cycle Signal Summary")
	assert.Contains(t, msg, "005930.KS")
	assert.Contains(t, msg, "000660.KS")
	assert.Contains(t, msg, "BUY")
}

func TestSendDailyDigest_NoSignals(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestSignalService(t, &stubSignalRepo{}, notifier)

	err := svc.SendDailyDigest(context.Background())
	require.NoError(t, err)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "No cycle signals")
}

func TestSendDailyDigest_RepositoryError(t *testing.T) {
	repo := &stubSignalRepo{err: assert.AnError}
	notifier := &recordingNotifier{}
	svc := newTestSignalService(t, repo, notifier)

	err := svc.SendDailyDigest(context.Background())
	require.Error(t, err)
	assert.Empty(t, notifier.messages)
}

func TestSendDailyDigest_NotifierError(t *testing.T) {
	repo := &stubSignalRepo{signals: []entity.CycleSignal{
		{StockCode: "005930.KS", Recommendation: "BUY", Confidence: "MEDIUM"},
	}}
	notifier := &recordingNotifier{err: assert.AnError}
	svc := newTestSignalService(t, repo, notifier)

	err := svc.SendDailyDigest(context.Background())
	require.Error(t, err)
}
