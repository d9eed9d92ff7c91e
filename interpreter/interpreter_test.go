package interpreter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/models"
)

var testNow = time.Date(2024, time.October, 20, 12, 0, 0, 0, time.Local)

func TestInterpretSalesByProductWithRangeAndPDF(t *testing.T) {
	intent := InterpretAt("dame las ventas del 01/10/2024 al 15/10/2024 agrupado por producto en pdf", testNow)

	assert.Equal(t, models.ReportSales, intent.ReportType)
	assert.Equal(t, models.FormatPDF, intent.Format)
	assert.Equal(t, []models.Dimension{models.ByProduct}, intent.GroupBy)

	require.NotNil(t, intent.DateStart)
	require.NotNil(t, intent.DateEnd)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.Local), *intent.DateStart)
	assert.Equal(t, time.Date(2024, time.October, 15, 23, 59, 59, 0, time.Local), *intent.DateEnd)

	// No metric words present, so the sales defaults apply.
	assert.Equal(t, []models.Metric{models.MetricTotal, models.MetricCount}, intent.Metrics)
	assert.Equal(t, 100, intent.ResultLimit)
}

func TestInterpretTopProductsShape(t *testing.T) {
	intent := InterpretAt("top 10 productos más vendidos de enero", testNow)

	assert.Equal(t, models.ShapeTopProducts, intent.CustomShape)
	assert.Equal(t, models.ReportProducts, intent.ReportType)
	assert.Equal(t, models.SortTotalDesc, intent.SortOrder)
	assert.Equal(t, 10, intent.ResultLimit)

	require.NotNil(t, intent.DateStart)
	require.NotNil(t, intent.DateEnd)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), *intent.DateStart)
	assert.Equal(t, time.Date(2024, time.January, 31, 23, 59, 59, 0, time.Local), *intent.DateEnd)
}

func TestInterpretClientSalesDetailShape(t *testing.T) {
	intent := InterpretAt("lista con nombre del cliente, cantidad de compras, monto total y rango de fechas", testNow)

	assert.Equal(t, models.ShapeClientSalesDetail, intent.CustomShape)
	assert.Equal(t, models.ReportSales, intent.ReportType)
	assert.Equal(t, []models.Dimension{models.ByClient}, intent.GroupBy)
	assert.True(t, intent.IncludeDateRange)
	assert.Contains(t, intent.Metrics, models.MetricTotal)
	assert.Contains(t, intent.Metrics, models.MetricCount)
}

func TestInterpretInventory(t *testing.T) {
	intent := InterpretAt("quiero el inventario actual en excel", testNow)

	assert.Equal(t, models.ReportInventory, intent.ReportType)
	assert.Equal(t, models.FormatExcel, intent.Format)
	assert.Empty(t, intent.GroupBy)
	assert.Equal(t, MaxResultLimit, intent.ResultLimit)
}

func TestInterpretInventoryWinsOverProductWords(t *testing.T) {
	intent := InterpretAt("stock de productos disponibles", testNow)
	assert.Equal(t, models.ReportInventory, intent.ReportType)
}

func TestInterpretDefaultsToSales(t *testing.T) {
	intent := InterpretAt("no entiendo nada de esto", testNow)

	assert.Equal(t, models.ReportSales, intent.ReportType)
	assert.Equal(t, models.FormatScreen, intent.Format)
	assert.Nil(t, intent.DateStart)
	assert.Nil(t, intent.DateEnd)
	assert.Equal(t, MaxResultLimit, intent.ResultLimit)
}

func TestInterpretLimitClamp(t *testing.T) {
	intent := InterpretAt("top 5000 productos más vendidos", testNow)
	assert.Equal(t, MaxResultLimit, intent.ResultLimit)
}

func TestInterpretRankingWordDefaultsLimitToTen(t *testing.T) {
	intent := InterpretAt("mejores clientes del año", testNow)
	assert.Equal(t, []models.Dimension{models.ByClient}, intent.GroupBy)
	assert.Equal(t, models.SortTotalDesc, intent.SortOrder)
	assert.Equal(t, 10, intent.ResultLimit)
}

func TestInterpretPaidFilter(t *testing.T) {
	paid := InterpretAt("ventas pagadas de este mes", testNow)
	require.NotNil(t, paid.Filters.Paid)
	assert.True(t, *paid.Filters.Paid)

	pending := InterpretAt("ventas pendientes de este mes", testNow)
	require.NotNil(t, pending.Filters.Paid)
	assert.False(t, *pending.Filters.Paid)

	neutral := InterpretAt("ventas de este mes por cliente", testNow)
	assert.Nil(t, neutral.Filters.Paid)
}

func TestInterpretCategoryFilter(t *testing.T) {
	intent := InterpretAt("ventas de la categoría 'Bebidas' por producto", testNow)
	assert.Equal(t, "bebidas", intent.Filters.Category)
}

func TestInterpretSortOrder(t *testing.T) {
	desc := InterpretAt("ventas por cliente de mayor a menor", testNow)
	assert.Equal(t, models.SortTotalDesc, desc.SortOrder)

	asc := InterpretAt("ventas por cliente en orden ascendente", testNow)
	assert.Equal(t, models.SortTotalAsc, asc.SortOrder)
}

func TestInterpretExplicitMetrics(t *testing.T) {
	intent := InterpretAt("promedio de ventas por fecha", testNow)
	assert.Contains(t, intent.Metrics, models.MetricAverage)
	assert.Equal(t, []models.Dimension{models.ByDate}, intent.GroupBy)
}

func TestInterpretIsIdempotent(t *testing.T) {
	prompt := "ventas del 01/10/2024 al 15/10/2024 por producto en csv"
	first := InterpretAt(prompt, testNow)
	second := InterpretAt(prompt, testNow)
	assert.Equal(t, first, second)
}
