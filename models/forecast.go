package models

import "time"

// DailyAggregate is one day of purchase history as returned by the store:
// revenue total, order count and average order value for a calendar day.
type DailyAggregate struct {
	Date    time.Time `json:"fecha"`
	Total   float64   `json:"total"`
	Count   int       `json:"cantidad"`
	Average float64   `json:"promedio"`
}

// ForecastSample is one training/input row for the sales model: a daily
// aggregate plus its derived calendar and rolling-window features. Samples
// are rebuilt from the purchase store on every call and never persisted.
type ForecastSample struct {
	Date       time.Time `json:"fecha"`
	Total      float64   `json:"total"`
	Count      float64   `json:"cantidad"`
	Average    float64   `json:"promedio"`
	DayOfWeek  float64   `json:"dia_semana"`
	DayOfMonth float64   `json:"dia_mes"`
	Month      float64   `json:"mes"`
	DayOfYear  float64   `json:"dia_anio"`
	RollMean7  float64   `json:"media_movil_7"`
	RollStd7   float64   `json:"std_movil_7"`
}

// TrainingMetrics reports model quality on the chronological train/test
// split, plus normalized per-feature importance.
type TrainingMetrics struct {
	TrainSamples      int                `json:"train_samples"`
	TestSamples       int                `json:"test_samples"`
	TrainMAE          float64            `json:"train_mae"`
	TestMAE           float64            `json:"test_mae"`
	TrainRMSE         float64            `json:"train_rmse"`
	TestRMSE          float64            `json:"test_rmse"`
	TrainR2           float64            `json:"train_r2"`
	TestR2            float64            `json:"test_r2"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// Prediction is one forecast day.
type Prediction struct {
	Date  time.Time `json:"fecha"`
	Total float64   `json:"total_predicho"`
}

// ForecastResult carries the predictions together with the method that
// actually produced them, so callers can tell a model forecast from the
// moving-average fallback.
type ForecastResult struct {
	Method      string       `json:"modelo"`
	Predictions []Prediction `json:"predicciones"`
	TrainedAt   *time.Time   `json:"fecha_entrenamiento,omitempty"`
}

// Forecast method tags.
const (
	MethodRandomForest  = "random_forest"
	MethodMovingAverage = "media_movil"
)
