// Package reportquery maps query intents onto canned aggregation plans over
// the purchase store and projects the results into renderer-agnostic tables.
package reportquery

import (
	"context"
	"time"
)

// Query is the semantic aggregate request handed to the store: an inclusive
// date window, optional predicates, and ordering/limit hints. The core never
// issues raw SQL itself; the store owns the physical query shapes.
type Query struct {
	Start      *time.Time
	End        *time.Time
	Paid       *bool
	Category   string
	Limit      int
	Descending bool
}

// SummaryRow is the ungrouped sales aggregate.
type SummaryRow struct {
	Total   float64
	Count   int
	Average float64
	Max     float64
	Min     float64
}

// ProductSalesRow aggregates purchased items per product.
type ProductSalesRow struct {
	Product      string
	SKU          string
	Category     string
	QuantitySold int
	TotalSold    float64
	AvgUnitPrice float64
	SaleCount    int
}

// ClientSalesRow aggregates purchases per client.
type ClientSalesRow struct {
	Client        string
	Email         string
	Phone         string
	PurchaseCount int
	TotalPaid     float64
	AvgPurchase   float64
	FirstPurchase *time.Time
	LastPurchase  *time.Time
}

// CategorySalesRow aggregates purchased items per category.
type CategorySalesRow struct {
	Category     string
	ProductCount int
	TotalSold    float64
}

// DailySalesRow aggregates purchases per calendar day.
type DailySalesRow struct {
	Date          time.Time
	PurchaseCount int
	TotalSold     float64
}

// ClientTotalsRow is the all-clients listing with lifetime totals.
type ClientTotalsRow struct {
	Name          string
	Email         string
	Phone         string
	PurchaseCount int
	TotalAmount   float64
}

// ProductRow is the product catalog listing with sales stats for the window.
type ProductRow struct {
	SKU       string
	Name      string
	Category  string
	Price     float64
	Stock     int
	UnitsSold int
	TotalSold float64
}

// TopProductRow is one entry of the best-sellers ranking.
type TopProductRow struct {
	Product   string
	SKU       string
	Category  string
	UnitsSold int
	TotalSold float64
	AvgPrice  float64
}

// ClientDetailRow is one entry of the detailed per-client sales shape.
type ClientDetailRow struct {
	Client        string
	Email         string
	PurchaseCount int
	TotalAmount   float64
	FirstPurchase *time.Time
	LastPurchase  *time.Time
}

// InventoryRow is one active product with its stock level.
type InventoryRow struct {
	SKU      string
	Name     string
	Category string
	Stock    int
	Price    float64
}

// Store is the aggregate-query contract consumed by the plan builder. Each
// method returns a fixed row shape; failures surface unchanged to the caller.
type Store interface {
	SalesSummary(ctx context.Context, q Query) (SummaryRow, error)
	SalesByProduct(ctx context.Context, q Query) ([]ProductSalesRow, error)
	SalesByClient(ctx context.Context, q Query) ([]ClientSalesRow, error)
	SalesByCategory(ctx context.Context, q Query) ([]CategorySalesRow, error)
	SalesByDay(ctx context.Context, q Query) ([]DailySalesRow, error)
	ClientTotals(ctx context.Context, q Query) ([]ClientTotalsRow, error)
	ProductSales(ctx context.Context, q Query) ([]ProductRow, error)
	TopProducts(ctx context.Context, q Query) ([]TopProductRow, error)
	ClientSalesDetail(ctx context.Context, q Query) ([]ClientDetailRow, error)
	Inventory(ctx context.Context, q Query) ([]InventoryRow, error)
}
