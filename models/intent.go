package models

import "time"

// ReportType identifies which report family a prompt resolved to.
type ReportType string

const (
	ReportSales     ReportType = "ventas"
	ReportClients   ReportType = "clientes"
	ReportProducts  ReportType = "productos"
	ReportInventory ReportType = "inventario"
)

// OutputFormat is the requested delivery encoding for a report.
type OutputFormat string

const (
	FormatScreen OutputFormat = "pantalla"
	FormatPDF    OutputFormat = "pdf"
	FormatExcel  OutputFormat = "excel"
	FormatCSV    OutputFormat = "csv"
)

// Dimension is a grouping axis for aggregation.
type Dimension string

const (
	ByProduct     Dimension = "producto"
	ByClient      Dimension = "cliente"
	ByCategory    Dimension = "categoria"
	ByDate        Dimension = "fecha"
	BySalesperson Dimension = "vendedor"
)

// Metric names an aggregate the caller asked for.
type Metric string

const (
	MetricTotal   Metric = "total"
	MetricCount   Metric = "cantidad"
	MetricAverage Metric = "promedio"
	MetricMax     Metric = "maximo"
	MetricMin     Metric = "minimo"
)

// SortOrder is the requested ordering over the total column.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortTotalDesc SortOrder = "-total"
	SortTotalAsc  SortOrder = "total"
)

// CustomShape tags one of the canned query shapes recognized by the
// interpreter's secondary pass. These short-circuit the generic plan.
type CustomShape string

const (
	ShapeNone              CustomShape = ""
	ShapeClientSalesDetail CustomShape = "ventas_clientes_detallado"
	ShapeTopProducts       CustomShape = "top_productos"
)

// IntentFilters holds the typed predicates a prompt can carry.
type IntentFilters struct {
	// Paid is nil when the prompt says nothing about payment status.
	Paid *bool `json:"pagado,omitempty"`
	// Category is an explicit category name ("categoría 'Bebidas'").
	Category string `json:"categoria,omitempty"`
}

// QueryIntent is the structured interpretation of a natural-language report
// request. Interpretation never fails: unrecognized parts fall back to the
// documented defaults, so ReportType and ResultLimit are always populated.
type QueryIntent struct {
	ReportType       ReportType    `json:"tipo_reporte"`
	DateStart        *time.Time    `json:"fecha_inicio,omitempty"`
	DateEnd          *time.Time    `json:"fecha_fin,omitempty"`
	GroupBy          []Dimension   `json:"agrupar_por"`
	Metrics          []Metric      `json:"metricas"`
	Format           OutputFormat  `json:"formato"`
	Filters          IntentFilters `json:"filtros"`
	SortOrder        SortOrder     `json:"orden"`
	ResultLimit      int           `json:"limite"`
	CustomShape      CustomShape   `json:"consulta_personalizada,omitempty"`
	IncludeDateRange bool          `json:"incluir_rango_fechas,omitempty"`
}

// GroupsBy reports whether the intent includes the given dimension.
func (qi QueryIntent) GroupsBy(d Dimension) bool {
	for _, g := range qi.GroupBy {
		if g == d {
			return true
		}
	}
	return false
}

// Descending reports whether results should be ordered by total, largest
// first. The same flag drives stock ordering for inventory reports.
func (qi QueryIntent) Descending() bool {
	return qi.SortOrder == SortTotalDesc
}
