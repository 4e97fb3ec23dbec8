package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// SalesSummary totales del reporte de ventas.
type SalesSummary struct {
	TotalOrders        int             `json:"total_orders"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	AverageOrderValue  decimal.Decimal `json:"average_order_value"`
	TotalItemsSold     int             `json:"total_items_sold"`
	TotalCharityAmount decimal.Decimal `json:"total_charity_amount"`
	CharityPercentage  decimal.Decimal `json:"charity_percentage"`
	UniqueCustomers    int             `json:"unique_customers"`
	CompletedOrders    int             `json:"completed_orders"`
	CancelledOrders    int             `json:"cancelled_orders"`
}

// ProductSales ventas agregadas de un producto.
type ProductSales struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category,omitempty"`
	VendorName    string          `json:"vendor_name,omitempty"`
	QuantitySold  int             `json:"quantity_sold"`
	Revenue       decimal.Decimal `json:"revenue"`
	CharityAmount decimal.Decimal `json:"charity_amount"`
}

// CharitySales ventas agregadas por organización destinataria.
type CharitySales struct {
	CharityID         string          `json:"charity_id"`
	CharityName       string          `json:"charity_name"`
	OrderCount        int             `json:"order_count"`
	Revenue           decimal.Decimal `json:"revenue"`
	CharityAmount     decimal.Decimal `json:"charity_amount"`
	CharityPercentage decimal.Decimal `json:"charity_percentage"`
}

// SalesReport payload del reporte de ventas.
type SalesReport struct {
	Meta
	Summary      SalesSummary    `json:"summary"`
	ByProduct    []ProductSales  `json:"by_product"`
	ByCharity    []CharitySales  `json:"by_charity"`
	DailyTrend   []PeriodSales   `json:"daily_trend"`
	MonthlyTrend []PeriodSales   `json:"monthly_trend"`
	TopProducts  []ProductSales  `json:"top_products,omitempty"`
	Compare      []ComparisonRow `json:"comparison,omitempty"`
}

// AggregateSales calcula el resumen y los desgloses por producto y organización.
// Los pedidos recibidos ya vienen filtrados (sin cancelados si así se pidió); los
// cancelados presentes se cuentan en CancelledOrders igualmente.
func AggregateSales(orders []*entity.Order, items []*entity.OrderItem) *SalesReport {
	var (
		revenue, charity decimal.Decimal
		completed        int
		cancelled        int
		customers        = make(map[string]struct{})
	)
	charityKeys := newOrderedKeys()
	var byCharity []charityAcc

	for _, o := range orders {
		revenue = revenue.Add(o.GrandTotal)
		charity = charity.Add(o.CharityAmount)
		if o.CustomerID != "" {
			customers[o.CustomerID] = struct{}{}
		}
		switch o.Status {
		case entity.OrderStatusDelivered:
			completed++
		case entity.OrderStatusCancelled:
			cancelled++
		}
		if o.CharityID == "" {
			continue
		}
		i, isNew := charityKeys.index(o.CharityID)
		if isNew {
			byCharity = append(byCharity, charityAcc{id: o.CharityID})
		}
		byCharity[i].orders++
		byCharity[i].revenue = byCharity[i].revenue.Add(o.GrandTotal)
		byCharity[i].charity = byCharity[i].charity.Add(o.CharityAmount)
	}

	var itemsSold int
	productKeys := newOrderedKeys()
	var byProduct []productAcc
	for _, it := range items {
		itemsSold += it.Quantity
		if it.ProductID == "" {
			continue
		}
		i, isNew := productKeys.index(it.ProductID)
		if isNew {
			byProduct = append(byProduct, productAcc{id: it.ProductID, name: it.ProductName})
		}
		byProduct[i].quantity += it.Quantity
		byProduct[i].revenue = byProduct[i].revenue.Add(it.Subtotal)
		byProduct[i].charity = byProduct[i].charity.Add(it.CharityTotal)
	}

	rep := &SalesReport{
		Meta: Meta{ReportType: KindSales},
		Summary: SalesSummary{
			TotalOrders:        len(orders),
			TotalRevenue:       money(revenue),
			AverageOrderValue:  average(revenue, len(orders)),
			TotalItemsSold:     itemsSold,
			TotalCharityAmount: money(charity),
			CharityPercentage:  percent(charity, revenue),
			UniqueCustomers:    len(customers),
			CompletedOrders:    completed,
			CancelledOrders:    cancelled,
		},
		ByProduct: make([]ProductSales, 0, len(byProduct)),
		ByCharity: make([]CharitySales, 0, len(byCharity)),
	}
	for _, p := range byProduct {
		rep.ByProduct = append(rep.ByProduct, p.toDTO())
	}
	for _, c := range byCharity {
		rep.ByCharity = append(rep.ByCharity, CharitySales{
			CharityID:         c.id,
			OrderCount:        c.orders,
			Revenue:           money(c.revenue),
			CharityAmount:     money(c.charity),
			CharityPercentage: percent(c.charity, c.revenue),
		})
	}
	rep.TopProducts = TopProductsByRevenue(rep.ByProduct, RankingSize)
	return rep
}

// TopProductsByRevenue devuelve los n productos de mayor ingreso (empates por orden de aparición).
func TopProductsByRevenue(products []ProductSales, n int) []ProductSales {
	return topN(products, n, func(a, b ProductSales) bool { return a.Revenue.GreaterThan(b.Revenue) })
}

type productAcc struct {
	id, name         string
	quantity         int
	revenue, charity decimal.Decimal
}

func (p productAcc) toDTO() ProductSales {
	return ProductSales{
		ProductID:     p.id,
		ProductName:   p.name,
		QuantitySold:  p.quantity,
		Revenue:       money(p.revenue),
		CharityAmount: money(p.charity),
	}
}

type charityAcc struct {
	id               string
	orders           int
	revenue, charity decimal.Decimal
}

// Fields implementa Payload.
func (r *SalesReport) Fields() []Field {
	s := r.Summary
	return append(r.metaFields(),
		Field{Key: "total_orders", Value: s.TotalOrders, Format: FormatNumber},
		Field{Key: "total_revenue", Value: s.TotalRevenue, Format: FormatCurrency},
		Field{Key: "average_order_value", Value: s.AverageOrderValue, Format: FormatCurrency},
		Field{Key: "total_items_sold", Value: s.TotalItemsSold, Format: FormatNumber},
		Field{Key: "total_charity_amount", Value: s.TotalCharityAmount, Format: FormatCurrency},
		Field{Key: "charity_percentage", Value: s.CharityPercentage, Format: FormatPercent},
		Field{Key: "unique_customers", Value: s.UniqueCustomers, Format: FormatNumber},
		Field{Key: "completed_orders", Value: s.CompletedOrders, Format: FormatNumber},
		Field{Key: "cancelled_orders", Value: s.CancelledOrders, Format: FormatNumber},
	)
}

// Ranking implementa Payload: top de productos por ingreso.
func (r *SalesReport) Ranking() (string, []RankingRow) {
	if len(r.TopProducts) == 0 {
		return "", nil
	}
	rows := make([]RankingRow, 0, len(r.TopProducts))
	for i, p := range r.TopProducts {
		rows = append(rows, RankingRow{Rank: i + 1, ID: p.ProductID, Name: p.ProductName, Value: p.Revenue})
	}
	return "top_products_by_revenue", rows
}

// Comparison implementa Payload.
func (r *SalesReport) Comparison() []ComparisonRow { return r.Compare }
