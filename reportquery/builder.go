package reportquery

import (
	"context"
	"time"

	"backoffice/models"
)

// Builder turns a QueryIntent into a tabular QueryResult by dispatching to
// one of the canned aggregation plans. It holds no state across calls.
type Builder struct {
	store Store
	now   func() time.Time
}

func NewBuilder(store Store) *Builder {
	return &Builder{store: store, now: time.Now}
}

// Build executes the plan selected by the intent. An unrecognized report
// type falls back to the ungrouped sales summary; store failures are
// returned unchanged.
func (b *Builder) Build(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	switch intent.CustomShape {
	case models.ShapeClientSalesDetail:
		return b.clientSalesDetail(ctx, intent)
	case models.ShapeTopProducts:
		return b.topProducts(ctx, intent)
	}

	switch intent.ReportType {
	case models.ReportSales:
		return b.sales(ctx, intent)
	case models.ReportClients:
		return b.clients(ctx, intent)
	case models.ReportProducts:
		return b.products(ctx, intent)
	case models.ReportInventory:
		return b.inventory(ctx, intent)
	default:
		// Permissive default: unknown types get the summary plan.
		return b.salesSummary(ctx, intent)
	}
}

func (b *Builder) query(intent models.QueryIntent) Query {
	return Query{
		Start:      intent.DateStart,
		End:        intent.DateEnd,
		Paid:       intent.Filters.Paid,
		Category:   intent.Filters.Category,
		Limit:      intent.ResultLimit,
		Descending: intent.Descending(),
	}
}

// salesQuery is query() with the product-report payment rule applied: a
// dated product ranking counts paid purchases only, unless the prompt
// explicitly asked for pending ones.
func (b *Builder) salesQuery(intent models.QueryIntent) Query {
	q := b.query(intent)
	if (q.Start != nil || q.End != nil) && q.Paid == nil {
		paid := true
		q.Paid = &paid
	}
	return q
}

func (b *Builder) sales(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	switch {
	case len(intent.GroupBy) == 0:
		return b.salesSummary(ctx, intent)
	case intent.GroupsBy(models.ByProduct):
		return b.salesByProduct(ctx, intent)
	case intent.GroupsBy(models.ByClient):
		return b.salesByClient(ctx, intent)
	case intent.GroupsBy(models.ByCategory):
		return b.salesByCategory(ctx, intent)
	case intent.GroupsBy(models.ByDate):
		return b.salesByDay(ctx, intent)
	default:
		return models.QueryResult{Kind: "vacio", Columns: nil, Rows: []models.Row{}}, nil
	}
}

func (b *Builder) salesSummary(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	sum, err := b.store.SalesSummary(ctx, b.query(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	return models.QueryResult{
		Kind:    "resumen_general",
		Columns: []string{"total_ventas", "cantidad_compras", "promedio_venta", "venta_maxima", "venta_minima"},
		Rows: []models.Row{{
			"total_ventas":     sum.Total,
			"cantidad_compras": sum.Count,
			"promedio_venta":   sum.Average,
			"venta_maxima":     sum.Max,
			"venta_minima":     sum.Min,
		}},
	}, nil
}

func (b *Builder) salesByProduct(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.SalesByProduct(ctx, b.query(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	result := models.QueryResult{
		Kind:    "por_producto",
		Columns: []string{"producto", "sku", "categoria", "cantidad_vendida", "total_vendido", "precio_unitario_promedio", "numero_ventas"},
		Rows:    make([]models.Row, 0, len(rows)),
	}
	for _, r := range rows {
		result.Rows = append(result.Rows, models.Row{
			"producto":                 r.Product,
			"sku":                      r.SKU,
			"categoria":                orUncategorized(r.Category),
			"cantidad_vendida":         r.QuantitySold,
			"total_vendido":            r.TotalSold,
			"precio_unitario_promedio": r.AvgUnitPrice,
			"numero_ventas":            r.SaleCount,
		})
	}
	return result, nil
}

func (b *Builder) salesByClient(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.SalesByClient(ctx, b.query(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	today := b.now()
	result := models.QueryResult{
		Kind: "por_cliente",
		Columns: []string{"cliente", "email", "telefono", "cantidad_compras", "total_pagado",
			"promedio_compra", "fecha_primera_compra", "fecha_ultima_compra", "dias_desde_ultima_compra"},
		Rows: make([]models.Row, 0, len(rows)),
	}
	for _, r := range rows {
		var daysSince interface{}
		if r.LastPurchase != nil {
			daysSince = int(today.Sub(*r.LastPurchase).Hours() / 24)
		}
		result.Rows = append(result.Rows, models.Row{
			"cliente":                  r.Client,
			"email":                    r.Email,
			"telefono":                 orDefault(r.Phone, "Sin teléfono"),
			"cantidad_compras":         r.PurchaseCount,
			"total_pagado":             r.TotalPaid,
			"promedio_compra":          r.AvgPurchase,
			"fecha_primera_compra":     dayString(r.FirstPurchase),
			"fecha_ultima_compra":      dayString(r.LastPurchase),
			"dias_desde_ultima_compra": daysSince,
		})
	}
	return result, nil
}

func (b *Builder) salesByCategory(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.SalesByCategory(ctx, b.query(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	result := models.QueryResult{
		Kind:    "por_categoria",
		Columns: []string{"categoria", "cantidad_productos", "total_vendido"},
		Rows:    make([]models.Row, 0, len(rows)),
	}
	for _, r := range rows {
		result.Rows = append(result.Rows, models.Row{
			"categoria":          orUncategorized(r.Category),
			"cantidad_productos": r.ProductCount,
			"total_vendido":      r.TotalSold,
		})
	}
	return result, nil
}

func (b *Builder) salesByDay(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.SalesByDay(ctx, b.query(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	result := models.QueryResult{
		Kind:    "por_fecha",
		Columns: []string{"fecha", "cantidad_compras", "total_vendido"},
		Rows:    make([]models.Row, 0, len(rows)),
	}
	// Chronological by contract; the descending flag does not apply here.
	for _, r := range rows {
		result.Rows = append(result.Rows, models.Row{
			"fecha":            r.Date.Format("2006-01-02"),
			"cantidad_compras": r.PurchaseCount,
			"total_vendido":    r.TotalSold,
		})
	}
	return result, nil
}

func (b *Builder) clients(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.ClientTotals(ctx, b.query(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	result := models.QueryResult{
		Kind:    "clientes",
		Columns: []string{"nombre", "email", "telefono", "total_compras", "monto_total"},
		Rows:    make([]models.Row, 0, len(rows)),
	}
	for _, r := range rows {
		result.Rows = append(result.Rows, models.Row{
			"nombre":        r.Name,
			"email":         r.Email,
			"telefono":      r.Phone,
			"total_compras": r.PurchaseCount,
			"monto_total":   r.TotalAmount,
		})
	}
	return result, nil
}

func (b *Builder) products(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.ProductSales(ctx, b.salesQuery(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	result := models.QueryResult{
		Kind:    "productos",
		Columns: []string{"sku", "nombre", "categoria", "precio", "stock", "ventas_totales", "total_vendido"},
		Rows:    make([]models.Row, 0, len(rows)),
	}
	for _, r := range rows {
		result.Rows = append(result.Rows, models.Row{
			"sku":            r.SKU,
			"nombre":         r.Name,
			"categoria":      orUncategorized(r.Category),
			"precio":         r.Price,
			"stock":          r.Stock,
			"ventas_totales": r.UnitsSold,
			"total_vendido":  r.TotalSold,
		})
	}
	return result, nil
}

func (b *Builder) inventory(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.Inventory(ctx, b.query(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	result := models.QueryResult{
		Kind:    "inventario",
		Columns: []string{"sku", "nombre", "categoria", "stock", "precio", "valor_inventario"},
		Rows:    make([]models.Row, 0, len(rows)),
	}
	for _, r := range rows {
		result.Rows = append(result.Rows, models.Row{
			"sku":              r.SKU,
			"nombre":           r.Name,
			"categoria":        orUncategorized(r.Category),
			"stock":            r.Stock,
			"precio":           r.Price,
			"valor_inventario": r.Price * float64(r.Stock),
		})
	}
	return result, nil
}

func (b *Builder) clientSalesDetail(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.ClientSalesDetail(ctx, b.salesQuery(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	result := models.QueryResult{
		Kind:    "ventas_clientes_detallado",
		Columns: []string{"cliente", "email", "cantidad_compras", "monto_total", "rango_fechas"},
		Rows:    make([]models.Row, 0, len(rows)),
	}
	for _, r := range rows {
		rangeStr := "N/A - N/A"
		if r.FirstPurchase != nil && r.LastPurchase != nil {
			rangeStr = r.FirstPurchase.Format("02/01/2006") + " - " + r.LastPurchase.Format("02/01/2006")
		}
		result.Rows = append(result.Rows, models.Row{
			"cliente":          r.Client,
			"email":            r.Email,
			"cantidad_compras": r.PurchaseCount,
			"monto_total":      r.TotalAmount,
			"rango_fechas":     rangeStr,
		})
	}
	return result, nil
}

func (b *Builder) topProducts(ctx context.Context, intent models.QueryIntent) (models.QueryResult, error) {
	rows, err := b.store.TopProducts(ctx, b.salesQuery(intent))
	if err != nil {
		return models.QueryResult{}, err
	}
	result := models.QueryResult{
		Kind:    "top_productos",
		Columns: []string{"ranking", "producto", "sku", "categoria", "ventas_totales", "total_vendido", "precio_promedio"},
		Rows:    make([]models.Row, 0, len(rows)),
	}
	for i, r := range rows {
		result.Rows = append(result.Rows, models.Row{
			"ranking":         i + 1,
			"producto":        r.Product,
			"sku":             r.SKU,
			"categoria":       orUncategorized(r.Category),
			"ventas_totales":  r.UnitsSold,
			"total_vendido":   r.TotalSold,
			"precio_promedio": r.AvgPrice,
		})
	}
	return result, nil
}

func orUncategorized(s string) string { return orDefault(s, "Sin categoría") }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func dayString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
