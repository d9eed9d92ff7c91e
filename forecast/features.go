package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"backoffice/models"
)

// HistoryStore is the slice of the purchase store the forecaster consumes:
// daily revenue aggregates for a half-open window [from, to).
type HistoryStore interface {
	DailyTotals(ctx context.Context, from, to time.Time) ([]models.DailyAggregate, error)
}

const (
	// MinHistoryDays is the shortest history that still yields a meaningful
	// 7-day rolling window.
	MinHistoryDays = 7
	// MinTrainingSamples is the minimum sample count to fit the model.
	MinTrainingSamples = 10
	// rollingWindow is the trailing window for mean/std features.
	rollingWindow = 7
)

// FeatureNames lists the model inputs in the order they are vectorized.
var FeatureNames = []string{
	"dia_semana", "dia_mes", "mes", "dia_anio",
	"media_movil_7", "std_movil_7", "cantidad", "promedio",
}

// PrepareTrainingData pulls daily aggregates for the trailing historyDays
// window and derives the calendar and rolling-window features. Fails with
// ErrInsufficientData below MinHistoryDays of history.
func PrepareTrainingData(ctx context.Context, store HistoryStore, historyDays int, now time.Time) ([]models.ForecastSample, error) {
	today := startOfDay(now)
	from := today.AddDate(0, 0, -historyDays)

	days, err := store.DailyTotals(ctx, from, today)
	if err != nil {
		return nil, fmt.Errorf("load daily totals: %w", err)
	}
	if len(days) < MinHistoryDays {
		return nil, fmt.Errorf("%w: %d days of history, need at least %d", ErrInsufficientData, len(days), MinHistoryDays)
	}

	samples := make([]models.ForecastSample, 0, len(days))
	totals := make([]float64, 0, len(days))
	for _, d := range days {
		totals = append(totals, d.Total)
		mean, std := rollingStats(totals, rollingWindow)
		samples = append(samples, models.ForecastSample{
			Date:       d.Date,
			Total:      d.Total,
			Count:      float64(d.Count),
			Average:    d.Average,
			DayOfWeek:  float64(mondayIndexed(d.Date.Weekday())),
			DayOfMonth: float64(d.Date.Day()),
			Month:      float64(int(d.Date.Month())),
			DayOfYear:  float64(d.Date.YearDay()),
			RollMean7:  mean,
			RollStd7:   std,
		})
	}
	return samples, nil
}

// featureVector projects a sample into the model input order.
func featureVector(s models.ForecastSample) []float64 {
	return []float64{
		s.DayOfWeek, s.DayOfMonth, s.Month, s.DayOfYear,
		s.RollMean7, s.RollStd7, s.Count, s.Average,
	}
}

// rollingStats computes mean and sample standard deviation over the trailing
// window of the series, including the last element. A single-element window
// has zero deviation.
func rollingStats(series []float64, window int) (mean, std float64) {
	start := len(series) - window
	if start < 0 {
		start = 0
	}
	tail := series[start:]
	mean = stat.Mean(tail, nil)
	if len(tail) > 1 {
		std = stat.StdDev(tail, nil)
		if math.IsNaN(std) {
			std = 0
		}
	}
	return mean, std
}

// mondayIndexed maps Go's Sunday-first weekday to Monday=0..Sunday=6.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
