// Package store implements the aggregate-query contracts against PostgreSQL.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/models"
	"backoffice/reportquery"
)

// Postgres answers semantic aggregate requests over the purchase tables.
// It implements reportquery.Store plus the daily-totals feed consumed by
// the forecast model.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// purchaseFilter renders the shared purchase predicates (date window, paid
// state) for a query, starting argument numbering at the given index.
func purchaseFilter(q reportquery.Query, alias string, args []interface{}) (string, []interface{}) {
	clause := ""
	if q.Start != nil {
		args = append(args, *q.Start)
		clause += fmt.Sprintf(" AND %s.purchased_at >= $%d", alias, len(args))
	}
	if q.End != nil {
		args = append(args, *q.End)
		clause += fmt.Sprintf(" AND %s.purchased_at <= $%d", alias, len(args))
	}
	if q.Paid != nil {
		if *q.Paid {
			clause += fmt.Sprintf(" AND %s.paid_at IS NOT NULL", alias)
		} else {
			clause += fmt.Sprintf(" AND %s.paid_at IS NULL", alias)
		}
	}
	return clause, args
}

// categoryFilter renders the category-name predicate for queries that join
// the categories table under the cat alias.
func categoryFilter(q reportquery.Query, args []interface{}) (string, []interface{}) {
	if q.Category == "" {
		return "", args
	}
	args = append(args, q.Category)
	return fmt.Sprintf(" AND LOWER(cat.name) = LOWER($%d)", len(args)), args
}

func direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}

func limitClause(q reportquery.Query, args []interface{}) (string, []interface{}) {
	if q.Limit <= 0 {
		return "", args
	}
	args = append(args, q.Limit)
	return fmt.Sprintf(" LIMIT $%d", len(args)), args
}

func (p *Postgres) SalesSummary(ctx context.Context, q reportquery.Query) (reportquery.SummaryRow, error) {
	query := `
        SELECT COALESCE(SUM(c.total), 0)::float8,
               COUNT(c.id),
               COALESCE(AVG(c.total), 0)::float8,
               COALESCE(MAX(c.total), 0)::float8,
               COALESCE(MIN(c.total), 0)::float8
        FROM purchases c
        WHERE 1=1`
	clause, args := purchaseFilter(q, "c", nil)

	var row reportquery.SummaryRow
	err := p.db.QueryRow(ctx, query+clause, args...).Scan(
		&row.Total, &row.Count, &row.Average, &row.Max, &row.Min,
	)
	if err != nil {
		return reportquery.SummaryRow{}, fmt.Errorf("sales summary query: %w", err)
	}
	return row, nil
}

func (p *Postgres) SalesByProduct(ctx context.Context, q reportquery.Query) ([]reportquery.ProductSalesRow, error) {
	query := `
        SELECT pr.name, pr.sku, COALESCE(cat.name, ''),
               COALESCE(SUM(ci.quantity), 0),
               COALESCE(SUM(ci.subtotal), 0)::float8,
               COALESCE(AVG(ci.unit_price), 0)::float8,
               COUNT(DISTINCT ci.purchase_id)
        FROM purchase_items ci
        JOIN purchases c ON ci.purchase_id = c.id
        JOIN products pr ON ci.product_id = pr.id
        LEFT JOIN categories cat ON pr.category_id = cat.id
        WHERE 1=1`
	clause, args := purchaseFilter(q, "c", nil)
	query += clause
	clause, args = categoryFilter(q, args)
	query += clause + " GROUP BY pr.name, pr.sku, cat.name"
	if q.Descending {
		query += " ORDER BY SUM(ci.subtotal) DESC"
	} else {
		query += " ORDER BY pr.name"
	}
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by product query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.ProductSalesRow, 0)
	for rows.Next() {
		var r reportquery.ProductSalesRow
		if err := rows.Scan(&r.Product, &r.SKU, &r.Category, &r.QuantitySold, &r.TotalSold, &r.AvgUnitPrice, &r.SaleCount); err != nil {
			return nil, fmt.Errorf("sales by product scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) SalesByClient(ctx context.Context, q reportquery.Query) ([]reportquery.ClientSalesRow, error) {
	query := `
        SELECT cl.name, cl.email, COALESCE(cl.phone, ''),
               COUNT(c.id),
               COALESCE(SUM(c.total), 0)::float8,
               COALESCE(AVG(c.total), 0)::float8,
               MIN(c.purchased_at),
               MAX(c.purchased_at)
        FROM purchases c
        JOIN clients cl ON c.client_id = cl.id
        WHERE 1=1`
	clause, args := purchaseFilter(q, "c", nil)
	query += clause + " GROUP BY cl.name, cl.email, cl.phone"
	if q.Descending {
		query += " ORDER BY SUM(c.total) DESC"
	} else {
		query += " ORDER BY cl.name"
	}
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by client query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.ClientSalesRow, 0)
	for rows.Next() {
		var r reportquery.ClientSalesRow
		if err := rows.Scan(&r.Client, &r.Email, &r.Phone, &r.PurchaseCount, &r.TotalPaid, &r.AvgPurchase, &r.FirstPurchase, &r.LastPurchase); err != nil {
			return nil, fmt.Errorf("sales by client scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) SalesByCategory(ctx context.Context, q reportquery.Query) ([]reportquery.CategorySalesRow, error) {
	query := `
        SELECT COALESCE(cat.name, ''),
               COUNT(DISTINCT ci.product_id),
               COALESCE(SUM(ci.subtotal), 0)::float8
        FROM purchase_items ci
        JOIN purchases c ON ci.purchase_id = c.id
        JOIN products pr ON ci.product_id = pr.id
        LEFT JOIN categories cat ON pr.category_id = cat.id
        WHERE 1=1`
	clause, args := purchaseFilter(q, "c", nil)
	query += clause
	clause, args = categoryFilter(q, args)
	query += clause + " GROUP BY cat.name"
	if q.Descending {
		query += " ORDER BY SUM(ci.subtotal) DESC"
	} else {
		query += " ORDER BY cat.name"
	}
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by category query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.CategorySalesRow, 0)
	for rows.Next() {
		var r reportquery.CategorySalesRow
		if err := rows.Scan(&r.Category, &r.ProductCount, &r.TotalSold); err != nil {
			return nil, fmt.Errorf("sales by category scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) SalesByDay(ctx context.Context, q reportquery.Query) ([]reportquery.DailySalesRow, error) {
	query := `
        SELECT DATE(c.purchased_at) AS day,
               COUNT(c.id),
               COALESCE(SUM(c.total), 0)::float8
        FROM purchases c
        WHERE 1=1`
	clause, args := purchaseFilter(q, "c", nil)
	// Chronological regardless of the sort flag.
	query += clause + " GROUP BY day ORDER BY day"
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by day query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.DailySalesRow, 0)
	for rows.Next() {
		var r reportquery.DailySalesRow
		if err := rows.Scan(&r.Date, &r.PurchaseCount, &r.TotalSold); err != nil {
			return nil, fmt.Errorf("sales by day scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) ClientTotals(ctx context.Context, q reportquery.Query) ([]reportquery.ClientTotalsRow, error) {
	query := `
        SELECT cl.name, cl.email, COALESCE(cl.phone, ''),
               COUNT(c.id),
               COALESCE(SUM(c.total), 0)::float8
        FROM clients cl
        LEFT JOIN purchases c ON c.client_id = cl.id
        GROUP BY cl.name, cl.email, cl.phone`
	if q.Descending {
		query += " ORDER BY SUM(c.total) DESC NULLS LAST"
	} else {
		query += " ORDER BY cl.name"
	}
	var args []interface{}
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("client totals query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.ClientTotalsRow, 0)
	for rows.Next() {
		var r reportquery.ClientTotalsRow
		if err := rows.Scan(&r.Name, &r.Email, &r.Phone, &r.PurchaseCount, &r.TotalAmount); err != nil {
			return nil, fmt.Errorf("client totals scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) ProductSales(ctx context.Context, q reportquery.Query) ([]reportquery.ProductRow, error) {
	// Products with no matching sales still appear, so the date/paid
	// predicates live inside the joined subquery, not the outer WHERE.
	clause, args := purchaseFilter(q, "c", nil)
	query := `
        SELECT pr.sku, pr.name, COALESCE(cat.name, ''),
               pr.price::float8, pr.stock,
               COALESCE(SUM(s.quantity), 0),
               COALESCE(SUM(s.subtotal), 0)::float8
        FROM products pr
        LEFT JOIN categories cat ON pr.category_id = cat.id
        LEFT JOIN (
            SELECT ci.product_id, ci.quantity, ci.subtotal
            FROM purchase_items ci
            JOIN purchases c ON ci.purchase_id = c.id
            WHERE 1=1` + clause + `
        ) s ON s.product_id = pr.id
        WHERE pr.active = TRUE`
	clause, args = categoryFilter(q, args)
	query += clause + `
        GROUP BY pr.sku, pr.name, cat.name, pr.price, pr.stock`
	if q.Descending {
		query += " ORDER BY SUM(s.quantity) DESC NULLS LAST"
	} else {
		query += " ORDER BY pr.name"
	}
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("product sales query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.ProductRow, 0)
	for rows.Next() {
		var r reportquery.ProductRow
		if err := rows.Scan(&r.SKU, &r.Name, &r.Category, &r.Price, &r.Stock, &r.UnitsSold, &r.TotalSold); err != nil {
			return nil, fmt.Errorf("product sales scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) TopProducts(ctx context.Context, q reportquery.Query) ([]reportquery.TopProductRow, error) {
	query := `
        SELECT pr.name, pr.sku, COALESCE(cat.name, ''),
               SUM(ci.quantity),
               SUM(ci.subtotal)::float8,
               AVG(ci.unit_price)::float8
        FROM purchase_items ci
        JOIN purchases c ON ci.purchase_id = c.id
        JOIN products pr ON ci.product_id = pr.id
        LEFT JOIN categories cat ON pr.category_id = cat.id
        WHERE pr.active = TRUE`
	clause, args := purchaseFilter(q, "c", nil)
	query += clause
	clause, args = categoryFilter(q, args)
	query += clause + `
        GROUP BY pr.name, pr.sku, cat.name
        HAVING SUM(ci.quantity) > 0
        ORDER BY SUM(ci.quantity) DESC`
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top products query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.TopProductRow, 0)
	for rows.Next() {
		var r reportquery.TopProductRow
		if err := rows.Scan(&r.Product, &r.SKU, &r.Category, &r.UnitsSold, &r.TotalSold, &r.AvgPrice); err != nil {
			return nil, fmt.Errorf("top products scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) ClientSalesDetail(ctx context.Context, q reportquery.Query) ([]reportquery.ClientDetailRow, error) {
	query := `
        SELECT cl.name, cl.email,
               COUNT(c.id),
               COALESCE(SUM(c.total), 0)::float8,
               MIN(c.purchased_at),
               MAX(c.purchased_at)
        FROM purchases c
        JOIN clients cl ON c.client_id = cl.id
        WHERE 1=1`
	clause, args := purchaseFilter(q, "c", nil)
	query += clause + `
        GROUP BY cl.name, cl.email
        ORDER BY SUM(c.total) DESC`
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("client sales detail query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.ClientDetailRow, 0)
	for rows.Next() {
		var r reportquery.ClientDetailRow
		if err := rows.Scan(&r.Client, &r.Email, &r.PurchaseCount, &r.TotalAmount, &r.FirstPurchase, &r.LastPurchase); err != nil {
			return nil, fmt.Errorf("client sales detail scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) Inventory(ctx context.Context, q reportquery.Query) ([]reportquery.InventoryRow, error) {
	query := `
        SELECT pr.sku, pr.name, COALESCE(cat.name, ''), pr.stock, pr.price::float8
        FROM products pr
        LEFT JOIN categories cat ON pr.category_id = cat.id
        WHERE pr.active = TRUE`
	clause, args := categoryFilter(q, nil)
	query += clause + " ORDER BY pr.stock " + direction(q.Descending)
	var limit string
	limit, args = limitClause(q, args)
	query += limit

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventory query: %w", err)
	}
	defer rows.Close()

	out := make([]reportquery.InventoryRow, 0)
	for rows.Next() {
		var r reportquery.InventoryRow
		if err := rows.Scan(&r.SKU, &r.Name, &r.Category, &r.Stock, &r.Price); err != nil {
			return nil, fmt.Errorf("inventory scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DailyTotals returns one aggregate per calendar day in [from, to), feeding
// the forecast feature pipeline.
func (p *Postgres) DailyTotals(ctx context.Context, from, to time.Time) ([]models.DailyAggregate, error) {
	query := `
        SELECT DATE(c.purchased_at) AS day,
               COALESCE(SUM(c.total), 0)::float8,
               COUNT(c.id),
               COALESCE(AVG(c.total), 0)::float8
        FROM purchases c
        WHERE c.purchased_at >= $1 AND c.purchased_at < $2
        GROUP BY day
        ORDER BY day`

	rows, err := p.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily totals query: %w", err)
	}
	defer rows.Close()

	out := make([]models.DailyAggregate, 0)
	for rows.Next() {
		var d models.DailyAggregate
		if err := rows.Scan(&d.Date, &d.Total, &d.Count, &d.Average); err != nil {
			return nil, fmt.Errorf("daily totals scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
