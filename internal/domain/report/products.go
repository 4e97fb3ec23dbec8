package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// Umbral y tope de la lista de bajo stock.
const (
	LowStockThreshold = 10
	LowStockLimit     = 20
)

// ProductsSummary totales del reporte de productos.
type ProductsSummary struct {
	TotalProducts         int             `json:"total_products"`
	ActiveProducts        int             `json:"active_products"`
	DraftProducts         int             `json:"draft_products"`
	SoldOutProducts       int             `json:"sold_out_products"`
	TotalInventoryValue   decimal.Decimal `json:"total_inventory_value"`
	AveragePrice          decimal.Decimal `json:"avg_price"`
	TotalCharityPotential decimal.Decimal `json:"total_charity_potential"`
}

// VendorProducts productos agregados por vendedor.
type VendorProducts struct {
	VendorID       string          `json:"vendor_id"`
	VendorName     string          `json:"vendor_name"`
	ProductsCount  int             `json:"products_count"`
	ActiveProducts int             `json:"active_products"`
	TotalValue     decimal.Decimal `json:"total_value"`
}

// CategoryCount conteo por categoría.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// LowStockProduct producto con existencias bajo el umbral.
type LowStockProduct struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	StockQuantity int    `json:"stock_quantity"`
	Threshold     int    `json:"threshold"`
}

// ProductsReport payload del reporte de productos.
type ProductsReport struct {
	Meta
	Summary    ProductsSummary   `json:"summary"`
	ByVendor   []VendorProducts  `json:"by_vendor"`
	ByCategory []CategoryCount   `json:"by_category"`
	LowStock   []LowStockProduct `json:"low_stock"`
	TopSelling []ProductSales    `json:"top_selling"`
}

// charityPotential porción de caridad que generaría vender todo el stock del producto.
func charityPotential(p *entity.Product) decimal.Decimal {
	perUnit := p.Price.Mul(p.CharityPercentage).Div(hundred).Add(p.CharityFixedAmount)
	return perUnit.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

// AggregateProducts calcula el resumen del catálogo. sold son las líneas vendidas
// del período (para el ranking de más vendidos); puede ser nil.
func AggregateProducts(products []*entity.Product, sold []*entity.OrderItem) *ProductsReport {
	var (
		active, draft, soldOut   int
		value, prices, potential decimal.Decimal
	)
	vendorKeys, catKeys := newOrderedKeys(), newOrderedKeys()
	var (
		byVendor   []VendorProducts
		vendorVals []decimal.Decimal
		byCategory []CategoryCount
	)
	lowStock := []LowStockProduct{}

	for _, p := range products {
		stockValue := p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
		value = value.Add(stockValue)
		prices = prices.Add(p.Price)
		potential = potential.Add(charityPotential(p))
		switch p.Status {
		case entity.ProductStatusActive:
			active++
		case entity.ProductStatusDraft:
			draft++
		}
		if p.StockQuantity == 0 {
			soldOut++
		}
		if p.StockQuantity < LowStockThreshold && len(lowStock) < LowStockLimit {
			lowStock = append(lowStock, LowStockProduct{
				ProductID: p.ID, ProductName: p.Name,
				StockQuantity: p.StockQuantity, Threshold: LowStockThreshold,
			})
		}

		if p.VendorID != "" {
			i, isNew := vendorKeys.index(p.VendorID)
			if isNew {
				byVendor = append(byVendor, VendorProducts{VendorID: p.VendorID, VendorName: p.VendorName})
				vendorVals = append(vendorVals, decimal.Zero)
			}
			byVendor[i].ProductsCount++
			if p.Status == entity.ProductStatusActive {
				byVendor[i].ActiveProducts++
			}
			vendorVals[i] = vendorVals[i].Add(stockValue)
		}

		cat := orDefault(p.Category, UnknownKey)
		if i, isNew := catKeys.index(cat); isNew {
			byCategory = append(byCategory, CategoryCount{Category: cat, Count: 1})
		} else {
			byCategory[i].Count++
		}
	}
	for i := range byVendor {
		byVendor[i].TotalValue = money(vendorVals[i])
	}
	if byVendor == nil {
		byVendor = []VendorProducts{}
	}
	if byCategory == nil {
		byCategory = []CategoryCount{}
	}

	return &ProductsReport{
		Meta: Meta{ReportType: KindProducts},
		Summary: ProductsSummary{
			TotalProducts:         len(products),
			ActiveProducts:        active,
			DraftProducts:         draft,
			SoldOutProducts:       soldOut,
			TotalInventoryValue:   money(value),
			AveragePrice:          average(prices, len(products)),
			TotalCharityPotential: money(potential),
		},
		ByVendor:   byVendor,
		ByCategory: byCategory,
		LowStock:   lowStock,
		TopSelling: topSelling(sold, RankingSize),
	}
}

// topSelling agrupa líneas vendidas por producto y devuelve las n de mayor cantidad.
func topSelling(items []*entity.OrderItem, n int) []ProductSales {
	keys := newOrderedKeys()
	var acc []productAcc
	for _, it := range items {
		if it.ProductID == "" {
			continue
		}
		i, isNew := keys.index(it.ProductID)
		if isNew {
			acc = append(acc, productAcc{id: it.ProductID, name: it.ProductName})
		}
		acc[i].quantity += it.Quantity
		acc[i].revenue = acc[i].revenue.Add(it.Subtotal)
		acc[i].charity = acc[i].charity.Add(it.CharityTotal)
	}
	all := make([]ProductSales, 0, len(acc))
	for _, a := range acc {
		all = append(all, a.toDTO())
	}
	return topN(all, n, func(a, b ProductSales) bool { return a.QuantitySold > b.QuantitySold })
}

// Fields implementa Payload.
func (r *ProductsReport) Fields() []Field {
	s := r.Summary
	return append(r.metaFields(),
		Field{Key: "total_products", Value: s.TotalProducts, Format: FormatNumber},
		Field{Key: "active_products", Value: s.ActiveProducts, Format: FormatNumber},
		Field{Key: "draft_products", Value: s.DraftProducts, Format: FormatNumber},
		Field{Key: "sold_out_products", Value: s.SoldOutProducts, Format: FormatNumber},
		Field{Key: "total_inventory_value", Value: s.TotalInventoryValue, Format: FormatCurrency},
		Field{Key: "avg_price", Value: s.AveragePrice, Format: FormatCurrency},
		Field{Key: "total_charity_potential", Value: s.TotalCharityPotential, Format: FormatCurrency},
	)
}

// Ranking implementa Payload: productos más vendidos por cantidad.
func (r *ProductsReport) Ranking() (string, []RankingRow) {
	if len(r.TopSelling) == 0 {
		return "", nil
	}
	rows := make([]RankingRow, 0, len(r.TopSelling))
	for i, p := range r.TopSelling {
		rows = append(rows, RankingRow{Rank: i + 1, ID: p.ProductID, Name: p.ProductName, Value: p.QuantitySold})
	}
	return "top_selling_products", rows
}

// Comparison implementa Payload.
func (r *ProductsReport) Comparison() []ComparisonRow { return nil }
