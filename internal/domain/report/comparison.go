package report

import "github.com/shopspring/decimal"

// ComparisonRow métrica del período actual contra la ventana anterior de igual duración.
type ComparisonRow struct {
	Metric    string          `json:"metric"`
	Current   decimal.Decimal `json:"current"`
	Previous  decimal.Decimal `json:"previous"`
	GrowthPct decimal.Decimal `json:"growth_pct"`
	Format    ValueFormat     `json:"format,omitempty"`
}

// Growth calcula (current-previous)/previous × 100 con 2 decimales. 0 si previous no es positivo.
func Growth(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

func compareRow(metric string, cur, prev decimal.Decimal, f ValueFormat) ComparisonRow {
	return ComparisonRow{Metric: metric, Current: cur, Previous: prev, GrowthPct: Growth(cur, prev), Format: f}
}

func countDec(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// CompareSales compara dos resúmenes de ventas.
func CompareSales(cur, prev SalesSummary) []ComparisonRow {
	return []ComparisonRow{
		compareRow("total_orders", countDec(cur.TotalOrders), countDec(prev.TotalOrders), FormatNumber),
		compareRow("total_revenue", cur.TotalRevenue, prev.TotalRevenue, FormatCurrency),
		compareRow("average_order_value", cur.AverageOrderValue, prev.AverageOrderValue, FormatCurrency),
		compareRow("total_items_sold", countDec(cur.TotalItemsSold), countDec(prev.TotalItemsSold), FormatNumber),
		compareRow("total_charity_amount", cur.TotalCharityAmount, prev.TotalCharityAmount, FormatCurrency),
		compareRow("unique_customers", countDec(cur.UniqueCustomers), countDec(prev.UniqueCustomers), FormatNumber),
	}
}

// CompareDonations compara dos resúmenes de donaciones.
func CompareDonations(cur, prev DonationsSummary) []ComparisonRow {
	return []ComparisonRow{
		compareRow("total_donations", countDec(cur.TotalDonations), countDec(prev.TotalDonations), FormatNumber),
		compareRow("total_amount", cur.TotalAmount, prev.TotalAmount, FormatCurrency),
		compareRow("average_donation", cur.AverageDonation, prev.AverageDonation, FormatCurrency),
		compareRow("unique_donors", countDec(cur.UniqueDonors), countDec(prev.UniqueDonors), FormatNumber),
	}
}

// CompareFinancial compara dos resúmenes financieros.
func CompareFinancial(cur, prev FinancialSummary) []ComparisonRow {
	return []ComparisonRow{
		compareRow("total_revenue", cur.TotalRevenue, prev.TotalRevenue, FormatCurrency),
		compareRow("total_charity", cur.TotalCharity, prev.TotalCharity, FormatCurrency),
		compareRow("total_tax", cur.TotalTax, prev.TotalTax, FormatCurrency),
		compareRow("total_shipping", cur.TotalShipping, prev.TotalShipping, FormatCurrency),
		compareRow("net_revenue", cur.NetRevenue, prev.NetRevenue, FormatCurrency),
		compareRow("order_count", countDec(cur.OrderCount), countDec(prev.OrderCount), FormatNumber),
	}
}
