package analysis

import "fmt"

// FeatureNames lists the indicator slots fed to the external classifier, in
// vector order. The model is trained against these exact columns.
var FeatureNames = []string{
	"SMA_20", "SMA_60", "RSI", "MACD", "MACD_hist",
	"Momentum_5", "Momentum_20", "BB_position",
}

// FeatureVector is the indicator snapshot at the latest bar, aligned with
// FeatureNames.
type FeatureVector struct {
	SMA20      float64 `json:"sma_20"`
	SMA60      float64 `json:"sma_60"`
	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`
	MACDHist   float64 `json:"macd_hist"`
	Momentum5  float64 `json:"momentum_5"`
	Momentum20 float64 `json:"momentum_20"`
	BBPosition float64 `json:"bb_position"`
}

// Values returns the vector in FeatureNames order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.SMA20, f.SMA60, f.RSI, f.MACD, f.MACDHist,
		f.Momentum5, f.Momentum20, f.BBPosition,
	}
}

// ExtractFeatures builds the classifier input from the latest index.
// Undefined slots are substituted with zero here, at the model boundary
// only; the series itself keeps its undefined markers.
func ExtractFeatures(series *PriceSeries) (FeatureVector, error) {
	if series.Len() == 0 {
		return FeatureVector{}, fmt.Errorf("%w: empty series", ErrInsufficientData)
	}
	series.ComputeIndicators()
	idx := series.Len() - 1

	zeroFill := func(v float64) float64 {
		if !IsDefined(v) {
			return 0
		}
		return v
	}

	return FeatureVector{
		SMA20:      zeroFill(series.SMA20[idx]),
		SMA60:      zeroFill(series.SMA60[idx]),
		RSI:        zeroFill(series.RSI[idx]),
		MACD:       zeroFill(series.MACD[idx]),
		MACDHist:   zeroFill(series.MACDHist[idx]),
		Momentum5:  zeroFill(series.Momentum5[idx]),
		Momentum20: zeroFill(series.Momentum20[idx]),
		BBPosition: zeroFill(series.BBPosition[idx]),
	}, nil
}
