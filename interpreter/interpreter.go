// Package interpreter turns free-text report requests into structured query
// intents. It is a pure, rule-based pipeline over fixed Spanish vocabularies:
// malformed or ambiguous input never fails, it just leaves fields at their
// documented defaults.
package interpreter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"backoffice/models"
)

// MaxResultLimit caps "top N" requests to keep queries bounded.
const MaxResultLimit = 1000

var outputFormats = []struct {
	format models.OutputFormat
	words  []string
}{
	{models.FormatPDF, []string{"pdf"}},
	{models.FormatExcel, []string{"excel", "xls", "xlsx"}},
	{models.FormatCSV, []string{"csv"}},
	{models.FormatScreen, []string{"pantalla", "web", "html"}},
}

var groupings = []struct {
	dim   models.Dimension
	words []string
}{
	{models.ByProduct, []string{"producto", "productos", "artículo", "artículos", "item", "items"}},
	{models.ByClient, []string{"cliente", "clientes", "comprador", "compradores"}},
	{models.ByCategory, []string{"categoría", "categorias", "tipo", "tipos"}},
	{models.ByDate, []string{"fecha", "día", "dia", "mes", "año"}},
	{models.BySalesperson, []string{"vendedor", "vendedores", "empleado", "empleados"}},
}

var metricWords = []struct {
	metric models.Metric
	words  []string
}{
	{models.MetricTotal, []string{"total", "suma", "monto", "dinero", "pagado"}},
	{models.MetricCount, []string{"cantidad", "número", "numero", "count", "cuantos"}},
	{models.MetricAverage, []string{"promedio", "media", "avg", "average"}},
	{models.MetricMax, []string{"máximo", "maximo", "max", "mayor"}},
	{models.MetricMin, []string{"mínimo", "minimo", "min", "menor"}},
}

// Inventory keywords are checked before the generic table so that "stock"
// is never miscategorized as a product report.
var inventoryWords = []string{"inventario", "stock", "existencia", "existencias"}

var reportTypes = []struct {
	rt    models.ReportType
	words []string
}{
	{models.ReportSales, []string{"venta", "ventas", "compra", "compras", "pedido", "pedidos"}},
	{models.ReportClients, []string{"cliente", "clientes"}},
	{models.ReportProducts, []string{"producto", "productos"}},
}

var (
	reTopN      = regexp.MustCompile(`top\s+(\d+)`)
	reMejoresN  = regexp.MustCompile(`mejores\s+(\d+)`)
	rePrimerosN = regexp.MustCompile(`primeros?\s+(\d+)`)
	reCategory  = regexp.MustCompile(`categoría\s+["']?([^"']+)["']?`)
)

// Interpret parses a natural-language report request into a QueryIntent.
// Interpreting the same prompt twice yields an identical intent.
func Interpret(prompt string) models.QueryIntent {
	return InterpretAt(prompt, time.Now())
}

// InterpretAt is Interpret with an injectable clock for relative date
// phrases and default month years.
func InterpretAt(prompt string, now time.Time) models.QueryIntent {
	text := strings.ToLower(prompt)

	intent := models.QueryIntent{
		Format: models.FormatScreen,
	}

	detectFormat(text, &intent)
	detectDates(text, now, &intent)
	detectReportType(text, &intent)
	detectCustomShape(text, &intent)
	detectGrouping(text, &intent)
	detectMetrics(text, &intent)
	detectFilters(text, &intent)
	detectSortOrder(text, &intent)
	detectResultLimit(text, &intent)

	return intent
}

func detectFormat(text string, intent *models.QueryIntent) {
	for _, f := range outputFormats {
		for _, w := range f.words {
			if strings.Contains(text, w) {
				intent.Format = f.format
				return
			}
		}
	}
}

func detectDates(text string, now time.Time, intent *models.QueryIntent) {
	intent.DateStart, intent.DateEnd = ExtractDateRange(text, now)
}

func detectReportType(text string, intent *models.QueryIntent) {
	for _, w := range inventoryWords {
		if strings.Contains(text, w) {
			intent.ReportType = models.ReportInventory
			return
		}
	}
	for _, rt := range reportTypes {
		for _, w := range rt.words {
			if strings.Contains(text, w) {
				intent.ReportType = rt.rt
				return
			}
		}
	}
	intent.ReportType = models.ReportSales
}

// detectCustomShape recognizes a small number of canned query shapes that
// short-circuit the generic type/grouping logic.
func detectCustomShape(text string, intent *models.QueryIntent) {
	clientFields := []string{"nombre del cliente", "cantidad de compras", "monto total"}
	allPresent := true
	for _, f := range clientFields {
		if !strings.Contains(text, f) {
			allPresent = false
			break
		}
	}
	if allPresent {
		intent.CustomShape = models.ShapeClientSalesDetail
		intent.ReportType = models.ReportSales
		intent.GroupBy = []models.Dimension{models.ByClient}
		if strings.Contains(text, "rango de fechas") {
			intent.IncludeDateRange = true
		}
	}

	if (strings.Contains(text, "top") && strings.Contains(text, "productos")) ||
		strings.Contains(text, "productos más vendidos") {
		intent.CustomShape = models.ShapeTopProducts
		intent.ReportType = models.ReportProducts
		intent.SortOrder = models.SortTotalDesc
	}
}

func detectGrouping(text string, intent *models.QueryIntent) {
	add := func(d models.Dimension) {
		if !intent.GroupsBy(d) {
			intent.GroupBy = append(intent.GroupBy, d)
		}
	}

	for _, g := range groupings {
		for _, w := range g.words {
			if strings.Contains(text, "por "+w) || strings.Contains(text, "agrupado por "+w) {
				add(g.dim)
			}
		}
	}

	// "top clientes" / "mejores productos" work without the "por" phrase.
	if hasRankingWord(text) {
		for _, g := range groupings {
			if g.dim != models.ByClient && g.dim != models.ByProduct && g.dim != models.ByCategory {
				continue
			}
			for _, w := range g.words {
				if strings.Contains(text, w) {
					add(g.dim)
					break
				}
			}
		}
	}
}

func detectMetrics(text string, intent *models.QueryIntent) {
	for _, m := range metricWords {
		for _, w := range m.words {
			if strings.Contains(text, w) {
				if !hasMetric(intent.Metrics, m.metric) {
					intent.Metrics = append(intent.Metrics, m.metric)
				}
				break
			}
		}
	}

	if len(intent.Metrics) > 0 {
		return
	}
	switch intent.ReportType {
	case models.ReportSales:
		intent.Metrics = []models.Metric{models.MetricTotal, models.MetricCount}
	case models.ReportClients:
		intent.Metrics = []models.Metric{models.MetricCount, models.MetricTotal}
	case models.ReportProducts:
		intent.Metrics = []models.Metric{models.MetricCount}
	}
}

func detectFilters(text string, intent *models.QueryIntent) {
	if strings.Contains(text, "pagada") || strings.Contains(text, "pagado") {
		paid := true
		intent.Filters.Paid = &paid
	} else if strings.Contains(text, "pendiente") || strings.Contains(text, "sin pagar") {
		paid := false
		intent.Filters.Paid = &paid
	}

	if m := reCategory.FindStringSubmatch(text); m != nil {
		intent.Filters.Category = strings.TrimSpace(m[1])
	}
}

func detectSortOrder(text string, intent *models.QueryIntent) {
	if strings.Contains(text, "mayor") || strings.Contains(text, "descendente") || strings.Contains(text, "desc") {
		intent.SortOrder = models.SortTotalDesc
	} else if strings.Contains(text, "menor") || strings.Contains(text, "ascendente") || strings.Contains(text, "asc") {
		intent.SortOrder = models.SortTotalAsc
	}
	if intent.SortOrder == models.SortNone && hasRankingWord(text) {
		intent.SortOrder = models.SortTotalDesc
	}
}

func detectResultLimit(text string, intent *models.QueryIntent) {
	for _, re := range []*regexp.Regexp{reTopN, reMejoresN, rePrimerosN} {
		if m := re.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			if n > MaxResultLimit {
				n = MaxResultLimit
			}
			intent.ResultLimit = n
			return
		}
	}

	if len(intent.GroupBy) > 0 {
		if hasRankingWord(text) {
			intent.ResultLimit = 10
		} else {
			intent.ResultLimit = 100
		}
		return
	}
	intent.ResultLimit = MaxResultLimit
}

func hasRankingWord(text string) bool {
	return strings.Contains(text, "top") || strings.Contains(text, "mejores") || strings.Contains(text, "ranking")
}

func hasMetric(ms []models.Metric, m models.Metric) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}
