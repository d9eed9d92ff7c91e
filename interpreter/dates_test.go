package interpreter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExplicitRange(t *testing.T) {
	start, end := ExtractDateRange("ventas del 1/10/2024 al 15/10/2024", testNow)

	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.Local), *start)
	assert.Equal(t, time.Date(2024, time.October, 15, 23, 59, 59, 0, time.Local), *end)
}

func TestExtractExplicitRangeBeatsNamedMonth(t *testing.T) {
	// The explicit range wins even when a month name appears too.
	start, end := ExtractDateRange("reporte de enero del 1/2/2024 al 10/2/2024", testNow)

	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, time.February, start.Month())
	assert.Equal(t, time.February, end.Month())
}

func TestExtractLiteralPairOrdersBounds(t *testing.T) {
	start, end := ExtractDateRange("entre 15/10/2024 y 1/10/2024", testNow)

	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())
}

func TestExtractSingleLiteralSetsOnlyStart(t *testing.T) {
	start, end := ExtractDateRange("ventas desde 5/3/2024", testNow)

	require.NotNil(t, start)
	assert.Nil(t, end)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local), *start)
}

func TestExtractNamedMonthWithYear(t *testing.T) {
	start, end := ExtractDateRange("ventas de febrero 2023", testNow)

	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.Local), *start)
	assert.Equal(t, time.Date(2023, time.February, 28, 23, 59, 59, 0, time.Local), *end)
}

func TestExtractNamedMonthDefaultsToCurrentYear(t *testing.T) {
	start, _ := ExtractDateRange("ventas de junio", testNow)

	require.NotNil(t, start)
	assert.Equal(t, testNow.Year(), start.Year())
	assert.Equal(t, time.June, start.Month())
}

func TestExtractRelativePhrases(t *testing.T) {
	start, end := ExtractDateRange("ventas de la última semana", testNow)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, testNow.AddDate(0, 0, -7), *start)
	assert.Equal(t, testNow, *end)

	start, end = ExtractDateRange("ventas del último mes", testNow)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, testNow.AddDate(0, 0, -30), *start)
	assert.Equal(t, testNow, *end)

	start, end = ExtractDateRange("ventas de este mes", testNow)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, time.Date(testNow.Year(), testNow.Month(), 1, 0, 0, 0, 0, time.Local), *start)
	assert.Equal(t, testNow, *end)
}

func TestExtractYearFirstLiteral(t *testing.T) {
	start, end := ExtractDateRange("ventas desde 2024-03-05", testNow)

	require.NotNil(t, start)
	assert.Nil(t, end)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local), *start)
}

func TestExtractNoSignal(t *testing.T) {
	start, end := ExtractDateRange("ventas por producto", testNow)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestExtractRejectsImpossibleDates(t *testing.T) {
	start, end := ExtractDateRange("ventas desde 5/13/2024", testNow)
	assert.Nil(t, start)
	assert.Nil(t, end)
}
