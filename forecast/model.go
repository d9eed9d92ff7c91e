// Package forecast trains a tree-ensemble regression on historical daily
// sales aggregates and predicts future daily totals. Failures are typed
// (ErrInsufficientData, ErrModelNotTrained) so callers can route to the
// moving-average fallback.
package forecast

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"backoffice/models"
)

// Forest hyperparameters, fixed across trainings.
const (
	numTrees        = 100
	maxDepth        = 10
	minSamplesSplit = 5
	minSamplesLeaf  = 2
	testFraction    = 0.2
)

// Model is the sales forecaster. Storage is injected by the caller; only one
// Train may run against a given storage location at a time (single-writer),
// callers serialize trainings themselves.
type Model struct {
	store ModelStore
	seed  int64

	trees        []regressionTree
	featureNames []string
	trained      bool
	trainedAt    time.Time
}

// New returns an untrained model bound to the given artifact store.
func New(store ModelStore) *Model {
	return &Model{store: store, seed: 42}
}

// Trained reports whether a fitted ensemble is available in-process.
func (m *Model) Trained() bool { return m.trained }

// TrainedAt returns the training timestamp of the in-process ensemble, or
// nil when untrained.
func (m *Model) TrainedAt() *time.Time {
	if !m.trained {
		return nil
	}
	t := m.trainedAt
	return &t
}

// Train fits the ensemble on the given samples with a chronological 80/20
// holdout (no shuffling) and persists the result as one artifact. Reports
// ErrInsufficientData below MinTrainingSamples.
func (m *Model) Train(samples []models.ForecastSample) (models.TrainingMetrics, error) {
	n := len(samples)
	if n < MinTrainingSamples {
		return models.TrainingMetrics{}, fmt.Errorf("%w: %d samples, need at least %d", ErrInsufficientData, n, MinTrainingSamples)
	}

	X := make([][]float64, n)
	y := make([]float64, n)
	for i, s := range samples {
		X[i] = featureVector(s)
		y[i] = s.Total
	}

	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest < 1 {
		nTest = 1
	}
	nTrain := n - nTest

	rng := rand.New(rand.NewSource(m.seed))
	importance := make([]float64, len(FeatureNames))
	trees := make([]regressionTree, 0, numTrees)
	params := treeParams{maxDepth: maxDepth, minSamplesSplit: minSamplesSplit, minSamplesLeaf: minSamplesLeaf}

	for t := 0; t < numTrees; t++ {
		boot := bootstrapSample(nTrain, rng)
		trees = append(trees, fitTree(X, y, boot, params, importance))
	}

	m.trees = trees
	m.featureNames = append([]string(nil), FeatureNames...)
	m.trained = true
	m.trainedAt = time.Now()

	metrics := models.TrainingMetrics{
		TrainSamples:      nTrain,
		TestSamples:       nTest,
		FeatureImportance: normalizeImportance(importance),
	}
	trainPred := m.predictAll(X[:nTrain])
	testPred := m.predictAll(X[nTrain:])
	metrics.TrainMAE = meanAbsErr(y[:nTrain], trainPred)
	metrics.TestMAE = meanAbsErr(y[nTrain:], testPred)
	metrics.TrainRMSE = rootMeanSqErr(y[:nTrain], trainPred)
	metrics.TestRMSE = rootMeanSqErr(y[nTrain:], testPred)
	metrics.TrainR2 = rSquared(trainPred, y[:nTrain])
	metrics.TestR2 = rSquared(testPred, y[nTrain:])

	if err := m.store.Save(&Artifact{Trees: m.trees, FeatureNames: m.featureNames, TrainedAt: m.trainedAt}); err != nil {
		return metrics, fmt.Errorf("persist trained model: %w", err)
	}
	return metrics, nil
}

// Predict forecasts daysAhead daily totals starting the day after startDate.
// An untrained model first attempts a reload from storage and reports
// ErrModelNotTrained when that also fails. Rolling statistics come from the
// trailing 7 days of real history and are held constant across the horizon;
// every prediction is clamped non-negative.
func (m *Model) Predict(ctx context.Context, hist HistoryStore, daysAhead int, startDate time.Time) (models.ForecastResult, error) {
	if !m.trained {
		if err := m.reload(); err != nil {
			return models.ForecastResult{}, fmt.Errorf("%w: %v", ErrModelNotTrained, err)
		}
	}

	start := startOfDay(startDate)
	days, err := hist.DailyTotals(ctx, start.AddDate(0, 0, -rollingWindow), start)
	if err != nil {
		return models.ForecastResult{}, fmt.Errorf("load trailing history: %w", err)
	}

	var mean, std, countAvg, avgAvg float64
	if len(days) > 0 {
		totals := make([]float64, len(days))
		counts := make([]float64, len(days))
		avgs := make([]float64, len(days))
		for i, d := range days {
			totals[i] = d.Total
			counts[i] = float64(d.Count)
			avgs[i] = d.Average
		}
		mean = stat.Mean(totals, nil)
		if len(totals) > 1 {
			std = stat.StdDev(totals, nil)
		}
		countAvg = stat.Mean(counts, nil)
		avgAvg = stat.Mean(avgs, nil)
	}

	preds := make([]models.Prediction, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		date := start.AddDate(0, 0, i)
		x := []float64{
			float64(mondayIndexed(date.Weekday())),
			float64(date.Day()),
			float64(int(date.Month())),
			float64(date.YearDay()),
			mean, std, countAvg, avgAvg,
		}
		value := m.predictOne(x)
		if value < 0 {
			value = 0
		}
		preds = append(preds, models.Prediction{Date: date, Total: round2(value)})
	}

	return models.ForecastResult{
		Method:      models.MethodRandomForest,
		Predictions: preds,
		TrainedAt:   m.TrainedAt(),
	}, nil
}

// reload restores a persisted artifact into the in-process model.
func (m *Model) reload() error {
	a, err := m.store.Load()
	if err != nil {
		return err
	}
	m.trees = a.Trees
	m.featureNames = a.FeatureNames
	m.trainedAt = a.TrainedAt
	m.trained = true
	return nil
}

func (m *Model) predictOne(x []float64) float64 {
	var sum float64
	for i := range m.trees {
		sum += m.trees[i].predict(x)
	}
	return sum / float64(len(m.trees))
}

func (m *Model) predictAll(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = m.predictOne(x)
	}
	return out
}

func normalizeImportance(raw []float64) map[string]float64 {
	var total float64
	for _, v := range raw {
		total += v
	}
	out := make(map[string]float64, len(FeatureNames))
	for i, name := range FeatureNames {
		if total > 0 {
			out[name] = raw[i] / total
		} else {
			out[name] = 0
		}
	}
	return out
}

func meanAbsErr(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var s float64
	for i := range y {
		s += math.Abs(y[i] - pred[i])
	}
	return s / float64(len(y))
}

func rootMeanSqErr(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var s float64
	for i := range y {
		d := y[i] - pred[i]
		s += d * d
	}
	return math.Sqrt(s / float64(len(y)))
}

func rSquared(pred, y []float64) float64 {
	if len(y) < 2 {
		return 0
	}
	r2 := stat.RSquaredFrom(pred, y, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return 0
	}
	return r2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
