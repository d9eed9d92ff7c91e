package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/forecast"
	"backoffice/models"
	"backoffice/reportquery"
)

type stubStore struct{}

func (stubStore) SalesSummary(context.Context, reportquery.Query) (reportquery.SummaryRow, error) {
	return reportquery.SummaryRow{Total: 1200, Count: 4, Average: 300, Max: 500, Min: 100}, nil
}

func (stubStore) SalesByProduct(context.Context, reportquery.Query) ([]reportquery.ProductSalesRow, error) {
	return []reportquery.ProductSalesRow{{Product: "Café", QuantitySold: 12, TotalSold: 240}}, nil
}

func (stubStore) SalesByClient(context.Context, reportquery.Query) ([]reportquery.ClientSalesRow, error) {
	return nil, nil
}

func (stubStore) SalesByCategory(context.Context, reportquery.Query) ([]reportquery.CategorySalesRow, error) {
	return nil, nil
}

func (stubStore) SalesByDay(context.Context, reportquery.Query) ([]reportquery.DailySalesRow, error) {
	return nil, nil
}

func (stubStore) ClientTotals(context.Context, reportquery.Query) ([]reportquery.ClientTotalsRow, error) {
	return nil, nil
}

func (stubStore) ProductSales(context.Context, reportquery.Query) ([]reportquery.ProductRow, error) {
	return nil, nil
}

func (stubStore) TopProducts(context.Context, reportquery.Query) ([]reportquery.TopProductRow, error) {
	return nil, nil
}

func (stubStore) ClientSalesDetail(context.Context, reportquery.Query) ([]reportquery.ClientDetailRow, error) {
	return nil, nil
}

func (stubStore) Inventory(context.Context, reportquery.Query) ([]reportquery.InventoryRow, error) {
	return nil, nil
}

type memRecorder struct {
	entries []models.QueryHistoryEntry
}

func (m *memRecorder) Record(_ context.Context, e models.QueryHistoryEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRecorder) Recent(_ context.Context, limit, offset int) ([]models.QueryHistoryEntry, int, error) {
	return m.entries, len(m.entries), nil
}

type stubHistorySource struct {
	days []models.DailyAggregate
}

func (s *stubHistorySource) DailyTotals(_ context.Context, from, to time.Time) ([]models.DailyAggregate, error) {
	var out []models.DailyAggregate
	for _, d := range s.days {
		if !d.Date.Before(from) && d.Date.Before(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func setupTestApp(t *testing.T) (*fiber.App, *memRecorder) {
	t.Helper()

	recorder := &memRecorder{}
	source := &stubHistorySource{}
	today := time.Now().Truncate(24 * time.Hour)
	for i := 30; i >= 1; i-- {
		source.days = append(source.days, models.DailyAggregate{
			Date:    today.AddDate(0, 0, -i),
			Total:   100 + float64(i),
			Count:   3,
			Average: 40,
		})
	}

	model := forecast.New(forecast.NewFileStore(filepath.Join(t.TempDir(), "model.json")))
	Init(reportquery.NewBuilder(stubStore{}), recorder, model, source)

	app := fiber.New()
	app.Get("/api/v1/reports/dynamic", HandleDynamicReport)
	app.Get("/api/v1/reports/insights", HandleReportInsights)
	app.Get("/api/v1/reports/history", HandleReportHistory)
	app.Get("/api/v1/forecast", HandleForecast)
	app.Post("/api/v1/forecast/train", HandleTrainForecast)
	return app, recorder
}

func decodeBody(t *testing.T, resp io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestDynamicReportRejectsShortPrompt(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/reports/dynamic?prompt=ventas", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDynamicReportScreen(t *testing.T) {
	app, recorder := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/reports/dynamic?prompt="+
		"dame+el+resumen+de+ventas+del+mes", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	report := data["reporte"].(map[string]interface{})
	assert.Equal(t, "resumen_general", report["tipo"])

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "resumen_general", recorder.entries[0].ResultKind)
	assert.Equal(t, 1, recorder.entries[0].ResultRows)
}

func TestDynamicReportFormatOverride(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/reports/dynamic?formato=csv&prompt="+
		"ventas+agrupadas+por+producto", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["archivo"].(string), "data:text/csv"))
	assert.Equal(t, "csv", data["formato"])
	assert.NotEmpty(t, data["filename"])
}

func TestDynamicReportRejectsUnknownFormat(t *testing.T) {
	app, recorder := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/reports/dynamic?formato=docx&prompt="+
		"ventas+agrupadas+por+producto", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// Rejected before interpretation, so no attempt is audited.
	assert.Empty(t, recorder.entries)
}

func TestDynamicReportAcceptsTenCharPrompt(t *testing.T) {
	app, _ := setupTestApp(t)

	// Exactly 10 characters is the shortest accepted prompt.
	req := httptest.NewRequest("GET", "/api/v1/reports/dynamic?prompt=ventas+mes", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestInsightsRecordsHistory(t *testing.T) {
	app, recorder := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/reports/insights?prompt="+
		"dame+el+resumen+de+ventas+del+mes", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "resumen_general", recorder.entries[0].ResultKind)
	assert.Equal(t, 1, recorder.entries[0].ResultRows)
}

func TestReportHistoryListing(t *testing.T) {
	app, recorder := setupTestApp(t)
	recorder.entries = append(recorder.entries, models.QueryHistoryEntry{Prompt: "ventas de enero"})

	req := httptest.NewRequest("GET", "/api/v1/reports/history", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	entries := body["data"].([]interface{})
	require.Len(t, entries, 1)

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["totalItems"])
}

func TestForecastFallsBackToMovingAverage(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/forecast?dias=7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, models.MethodMovingAverage, data["modelo"])
	assert.Len(t, data["predicciones"], 7)
}

func TestTrainForecastThenPredict(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/forecast/train?dias=60", nil)
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	metrics := body["data"].(map[string]interface{})
	assert.NotNil(t, metrics["feature_importance"])

	req = httptest.NewRequest("GET", "/api/v1/forecast?dias=5", nil)
	resp, err = app.Test(req, 30000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body = decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, models.MethodRandomForest, data["modelo"])
	assert.Len(t, data["predicciones"], 5)
}

func TestTrainForecastRejectsShortWindow(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/forecast/train?dias=3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
