package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-inflection-analyzer/internal/analyzer/config"
	"golang-inflection-analyzer/internal/analyzer/dto"
	"golang-inflection-analyzer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChartServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, payload)
	}))
}

func newTestMarketDataRepo(t *testing.T, baseURL string) MarketDataRepository {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	cfg := &config.Config{}
	cfg.MarketData.BaseURL = baseURL
	repo, err := NewMarketDataRepository(cfg, log)
	require.NoError(t, err)
	return repo
}

func TestMarketDataGet_DecodesChartPayload(t *testing.T) {
	payload := `{"chart":{"result":[{"timestamp":[86400,172800,259200],
		"indicators":{"quote":[{
			"open":[10,11,12],"high":[10.5,11.5,12.5],"low":[9.5,10.5,11.5],
			"close":[10.2,11.2,12.2],"volume":[100,200,300]}]}}],"error":null}}`
	server := newChartServer(t, payload)
	defer server.Close()

	repo := newTestMarketDataRepo(t, server.URL)
	series, err := repo.Get(context.Background(), dto.GetPriceSeriesParam{StockCode: "005930.KS", Interval: "1d", Range: "5d"})
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, 10.2, series.Points[0].Close)
	assert.Equal(t, int64(300), series.Points[2].Volume)
}

func TestMarketDataGet_MisalignedColumns(t *testing.T) {
	payload := `{"chart":{"result":[{"timestamp":[86400,172800,259200],
		"indicators":{"quote":[{
			"open":[10,11],"high":[10.5,11.5,12.5],"low":[9.5,10.5,11.5],
			"close":[10.2,11.2],"volume":[100,200,300]}]}}],"error":null}}`
	server := newChartServer(t, payload)
	defer server.Close()

	repo := newTestMarketDataRepo(t, server.URL)
	_, err := repo.Get(context.Background(), dto.GetPriceSeriesParam{StockCode: "005930.KS", Interval: "1d", Range: "5d"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misaligned")
}

func TestMarketDataGet_SkipsNonPositiveCloses(t *testing.T) {
	payload := `{"chart":{"result":[{"timestamp":[86400,172800,259200],
		"indicators":{"quote":[{
			"open":[10,0,12],"high":[10.5,0,12.5],"low":[9.5,0,11.5],
			"close":[10.2,0,12.2],"volume":[100,0,300]}]}}],"error":null}}`
	server := newChartServer(t, payload)
	defer server.Close()

	repo := newTestMarketDataRepo(t, server.URL)
	series, err := repo.Get(context.Background(), dto.GetPriceSeriesParam{StockCode: "005930.KS", Interval: "1d", Range: "5d"})
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
}

func TestMarketDataGet_ChartAPIError(t *testing.T) {
	payload := `{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`
	server := newChartServer(t, payload)
	defer server.Close()

	repo := newTestMarketDataRepo(t, server.URL)
	_, err := repo.Get(context.Background(), dto.GetPriceSeriesParam{StockCode: "BOGUS", Interval: "1d", Range: "5d"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}
