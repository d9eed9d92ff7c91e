package forecast

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"backoffice/models"
)

// MovingAverage is the consumer-level fallback when training or prediction
// reports a typed failure: a flat trailing-7-day mean per future day. The
// result is tagged so callers can surface which method produced the numbers.
func MovingAverage(ctx context.Context, hist HistoryStore, daysAhead int, startDate time.Time) (models.ForecastResult, error) {
	start := startOfDay(startDate)
	days, err := hist.DailyTotals(ctx, start.AddDate(0, 0, -rollingWindow), start)
	if err != nil {
		return models.ForecastResult{}, fmt.Errorf("load trailing history: %w", err)
	}

	var mean float64
	if len(days) > 0 {
		totals := make([]float64, len(days))
		for i, d := range days {
			totals[i] = d.Total
		}
		mean = stat.Mean(totals, nil)
	}
	if mean < 0 {
		mean = 0
	}

	preds := make([]models.Prediction, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		preds = append(preds, models.Prediction{Date: start.AddDate(0, 0, i), Total: round2(mean)})
	}
	return models.ForecastResult{Method: models.MethodMovingAverage, Predictions: preds}, nil
}
