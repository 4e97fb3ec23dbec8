package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// FinancialSummary totales del estado financiero.
type FinancialSummary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	OrderCharity      decimal.Decimal `json:"order_charity"`
	DonationsTotal    decimal.Decimal `json:"donations_total"`
	TotalCharity      decimal.Decimal `json:"total_charity"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	TotalShipping     decimal.Decimal `json:"total_shipping"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	NetRevenue        decimal.Decimal `json:"net_revenue"`
	CharityPercentage decimal.Decimal `json:"charity_percentage"`
	OrderCount        int             `json:"order_count"`
	DonationCount     int             `json:"donation_count"`
}

// FinancialReport payload del estado financiero.
type FinancialReport struct {
	Meta
	Summary         FinancialSummary     `json:"summary"`
	ByPaymentMethod []PaymentMethodTotal `json:"by_payment_method"`
	MonthlyTrend    []PeriodSales        `json:"monthly_trend"`
	Compare         []ComparisonRow      `json:"comparison,omitempty"`
}

// AggregateFinancial calcula ingresos, caridad combinada (pedidos + donaciones), impuestos,
// envíos, descuentos e ingreso neto (ingresos − impuestos − envíos).
func AggregateFinancial(orders []*entity.Order, donations []*entity.Donation) *FinancialReport {
	var revenue, orderCharity, donated, tax, shipping, discount decimal.Decimal
	for _, o := range orders {
		revenue = revenue.Add(o.GrandTotal)
		orderCharity = orderCharity.Add(o.CharityAmount)
		tax = tax.Add(o.TaxAmount)
		shipping = shipping.Add(o.ShippingCost)
		discount = discount.Add(o.DiscountAmount)
	}
	for _, d := range donations {
		donated = donated.Add(d.Amount)
	}
	charity := orderCharity.Add(donated)

	rep := &FinancialReport{
		Meta: Meta{ReportType: KindFinancial},
		Summary: FinancialSummary{
			TotalRevenue:      money(revenue),
			OrderCharity:      money(orderCharity),
			DonationsTotal:    money(donated),
			TotalCharity:      money(charity),
			TotalTax:          money(tax),
			TotalShipping:     money(shipping),
			TotalDiscount:     money(discount),
			NetRevenue:        money(revenue.Sub(tax).Sub(shipping)),
			CharityPercentage: percent(charity, revenue),
			OrderCount:        len(orders),
			DonationCount:     len(donations),
		},
		ByPaymentMethod: []PaymentMethodTotal{},
	}
	grandTotal := func(o *entity.Order) decimal.Decimal { return o.GrandTotal }
	method := func(o *entity.Order) string { return o.PaymentMethod }
	for _, g := range groupBy(orders, method, grandTotal, UnknownKey) {
		rep.ByPaymentMethod = append(rep.ByPaymentMethod, PaymentMethodTotal{
			PaymentMethod: g.id, Count: g.count, Total: money(g.sum),
		})
	}
	return rep
}

// Fields implementa Payload.
func (r *FinancialReport) Fields() []Field {
	s := r.Summary
	return append(r.metaFields(),
		Field{Key: "total_revenue", Value: s.TotalRevenue, Format: FormatCurrency},
		Field{Key: "total_charity", Value: s.TotalCharity, Format: FormatCurrency},
		Field{Key: "total_tax", Value: s.TotalTax, Format: FormatCurrency},
		Field{Key: "total_shipping", Value: s.TotalShipping, Format: FormatCurrency},
		Field{Key: "total_discount", Value: s.TotalDiscount, Format: FormatCurrency},
		Field{Key: "net_revenue", Value: s.NetRevenue, Format: FormatCurrency},
		Field{Key: "charity_percentage", Value: s.CharityPercentage, Format: FormatPercent},
		Field{Key: "order_count", Value: s.OrderCount, Format: FormatNumber},
	)
}

// Ranking implementa Payload.
func (r *FinancialReport) Ranking() (string, []RankingRow) { return "", nil }

// Comparison implementa Payload.
func (r *FinancialReport) Comparison() []ComparisonRow { return r.Compare }
