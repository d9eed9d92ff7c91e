package handlers

import (
	"sync"

	"backoffice/forecast"
	"backoffice/history"
	"backoffice/reportquery"
)

// Shared handler dependencies, wired once at startup. Kept as package state
// so handlers stay plain fiber.Handler functions.
var (
	reportBuilder  *reportquery.Builder
	historyStore   history.Recorder
	forecastModel  *forecast.Model
	forecastSource forecast.HistoryStore

	// trainMu serializes training so two concurrent train requests cannot
	// race on the persisted model file.
	trainMu sync.Mutex
)

// Init wires the handler package dependencies.
func Init(builder *reportquery.Builder, recorder history.Recorder, model *forecast.Model, source forecast.HistoryStore) {
	reportBuilder = builder
	historyStore = recorder
	forecastModel = model
	forecastSource = source
}
