package export

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

// Nombres de hojas y encabezados (locale fa).
const (
	DefaultTitle        = "گزارش"
	GenericSheetName    = "گزارش"
	RankingSheetName    = "رتبه‌بندی"
	ComparisonSheetName = "مقایسه دوره‌ها"
)

func col(key, header string) Column { return Column{Key: key, Header: header} }

func money(key, header string) Column {
	return Column{Key: key, Header: header, Format: report.FormatCurrency}
}

func pct(key, header string) Column {
	return Column{Key: key, Header: header, Format: report.FormatPercent}
}

// layout construye las hojas de una plantilla a partir de un payload del tipo correcto.
// ok=false si el payload no corresponde a la plantilla.
type layout func(p report.Payload) (sheets []Sheet, ok bool)

var layouts = map[Template]layout{
	TemplateSalesSummary:       salesLayout,
	TemplateDonationsDetailed:  donationsLayout,
	TemplateNeedsReport:        needsLayout,
	TemplateFinancialStatement: financialLayout,
	TemplateCharityImpact:      charityImpactLayout,
}

// Shape convierte (plantilla, payload) en el documento a renderizar. Plantillas sin diseño
// propio (tax_report) o payloads de otro tipo caen a una hoja genérica con los valores
// escalares de primer nivel.
func Shape(tmpl Template, p report.Payload, title string) *Document {
	if title == "" {
		title = DefaultTitle
	}
	doc := &Document{
		Title:       title,
		Template:    tmpl,
		GeneratedAt: p.Header().GeneratedAt,
		Payload:     p,
	}
	if l, found := layouts[tmpl]; found {
		if sheets, ok := l(p); ok {
			doc.Sheets = sheets
		}
	}
	if doc.Sheets == nil {
		doc.Sheets = []Sheet{GenericSheet(p)}
	}
	doc.Ranking = rankingSheet(p)
	doc.Comparison = comparisonSheet(p)
	return doc
}

// GenericSheet una sola fila con los valores escalares del payload como columnas.
func GenericSheet(p report.Payload) Sheet {
	fields := p.Fields()
	s := Sheet{Name: GenericSheetName, Columns: make([]Column, 0, len(fields))}
	row := make(Row, len(fields))
	for _, f := range fields {
		s.Columns = append(s.Columns, Column{Key: f.Key, Header: f.Key, Format: f.Format})
		row[f.Key] = f.Value
	}
	s.Rows = []Row{row}
	return s
}

// ── Diseños por plantilla ─────────────────────────────────────────────────────

func periodSalesRows(ps []report.PeriodSales) []Row {
	rows := make([]Row, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, Row{"period": p.Period, "order_count": p.OrderCount, "revenue": p.Revenue, "charity_amount": p.CharityAmount})
	}
	return rows
}

func salesLayout(p report.Payload) ([]Sheet, bool) {
	r, ok := p.(*report.SalesReport)
	if !ok {
		return nil, false
	}
	products := make([]Row, 0, len(r.ByProduct))
	for _, x := range r.ByProduct {
		products = append(products, Row{
			"product_name": x.ProductName, "quantity_sold": x.QuantitySold,
			"revenue": x.Revenue, "charity_amount": x.CharityAmount,
		})
	}
	charities := make([]Row, 0, len(r.ByCharity))
	for _, x := range r.ByCharity {
		charities = append(charities, Row{
			"charity_name": x.CharityName, "order_count": x.OrderCount, "charity_amount": x.CharityAmount,
		})
	}
	return []Sheet{
		{
			Name:    "خلاصه فروش",
			Columns: []Column{col("period", "دوره"), col("order_count", "تعداد سفارش"), money("revenue", "درآمد"), money("charity_amount", "کمک به خیریه")},
			Rows:    periodSalesRows(r.DailyTrend),
		},
		{
			Name:    "محصولات",
			Columns: []Column{col("product_name", "محصول"), col("quantity_sold", "تعداد فروش"), money("revenue", "درآمد"), money("charity_amount", "کمک")},
			Rows:    products,
		},
		{
			Name:    "خیریه‌ها",
			Columns: []Column{col("charity_name", "خیریه"), col("order_count", "تعداد سفارش"), money("charity_amount", "کمک دریافتی")},
			Rows:    charities,
		},
	}, true
}

func donationsLayout(p report.Payload) ([]Sheet, bool) {
	r, ok := p.(*report.DonationsReport)
	if !ok {
		return nil, false
	}
	periods := make([]Row, 0, len(r.DailyTrend))
	for _, x := range r.DailyTrend {
		periods = append(periods, Row{
			"period": x.Period, "donation_count": x.DonationCount,
			"total_amount": x.TotalAmount, "average_amount": x.AverageAmount,
		})
	}
	charities := make([]Row, 0, len(r.ByCharity))
	for _, x := range r.ByCharity {
		charities = append(charities, Row{
			"charity_name": x.CharityName, "donation_count": x.DonationCount, "total_amount": x.TotalAmount,
		})
	}
	return []Sheet{
		{
			Name:    "خلاصه کمک‌ها",
			Columns: []Column{col("period", "دوره"), col("donation_count", "تعداد کمک"), money("total_amount", "مبلغ کل"), money("average_amount", "میانگین")},
			Rows:    periods,
		},
		{
			Name:    "کمک‌ها بر اساس خیریه",
			Columns: []Column{col("charity_name", "خیریه"), col("donation_count", "تعداد کمک"), money("total_amount", "مبلغ کل")},
			Rows:    charities,
		},
	}, true
}

func needsLayout(p report.Payload) ([]Sheet, bool) {
	r, ok := p.(*report.NeedsReport)
	if !ok {
		return nil, false
	}
	categories := make([]Row, 0, len(r.ByCategory))
	for _, x := range r.ByCategory {
		categories = append(categories, Row{
			"category": x.Category, "count": x.Count,
			"target_amount": x.TargetAmount, "collected_amount": x.CollectedAmount, "progress": x.Progress,
		})
	}
	charities := make([]Row, 0, len(r.ByCharity))
	for _, x := range r.ByCharity {
		charities = append(charities, Row{
			"charity_name": x.CharityName, "needs_count": x.NeedsCount,
			"target_amount": x.TargetAmount, "collected_amount": x.CollectedAmount,
		})
	}
	return []Sheet{
		{
			Name: "نیازها بر اساس دسته",
			Columns: []Column{
				col("category", "دسته"), col("count", "تعداد"),
				money("target_amount", "مبلغ هدف"), money("collected_amount", "جمع‌آوری شده"), pct("progress", "پیشرفت"),
			},
			Rows: categories,
		},
		{
			Name: "نیازها بر اساس خیریه",
			Columns: []Column{
				col("charity_name", "خیریه"), col("needs_count", "تعداد نیاز"),
				money("target_amount", "مبلغ هدف"), money("collected_amount", "جمع‌آوری شده"),
			},
			Rows: charities,
		},
	}, true
}

func financialLayout(p report.Payload) ([]Sheet, bool) {
	r, ok := p.(*report.FinancialReport)
	if !ok {
		return nil, false
	}
	s := r.Summary
	methods := make([]Row, 0, len(r.ByPaymentMethod))
	for _, x := range r.ByPaymentMethod {
		methods = append(methods, Row{"payment_method": x.PaymentMethod, "count": x.Count, "total": x.Total})
	}
	return []Sheet{
		{
			Name: "خلاصه مالی",
			Columns: []Column{
				money("total_revenue", "درآمد کل"), money("total_charity", "کل کمک به خیریه"),
				money("total_tax", "مالیات"), money("total_shipping", "هزینه ارسال"),
				money("total_discount", "تخفیف"), money("net_revenue", "درآمد خالص"),
				pct("charity_percentage", "درصد خیریه"), col("order_count", "تعداد سفارش"),
			},
			Rows: []Row{{
				"total_revenue": s.TotalRevenue, "total_charity": s.TotalCharity,
				"total_tax": s.TotalTax, "total_shipping": s.TotalShipping,
				"total_discount": s.TotalDiscount, "net_revenue": s.NetRevenue,
				"charity_percentage": s.CharityPercentage, "order_count": s.OrderCount,
			}},
		},
		{
			Name:    "روش‌های پرداخت",
			Columns: []Column{col("payment_method", "روش پرداخت"), col("count", "تعداد"), money("total", "مبلغ")},
			Rows:    methods,
		},
		{
			Name:    "روند ماهانه",
			Columns: []Column{col("period", "دوره"), col("order_count", "تعداد سفارش"), money("revenue", "درآمد"), money("charity_amount", "کمک به خیریه")},
			Rows:    periodSalesRows(r.MonthlyTrend),
		},
	}, true
}

func charityImpactLayout(p report.Payload) ([]Sheet, bool) {
	r, ok := p.(*report.CharitiesReport)
	if !ok {
		return nil, false
	}
	rows := make([]Row, 0, len(r.Charities))
	for _, x := range r.Charities {
		rows = append(rows, Row{
			"charity_name": x.CharityName, "needs_count": x.NeedsCount,
			"donations_total": x.DonationsTotal, "orders_total": x.OrdersTotal, "total_received": x.TotalReceived,
		})
	}
	return []Sheet{{
		Name: "تأثیر خیریه‌ها",
		Columns: []Column{
			col("charity_name", "خیریه"), col("needs_count", "تعداد نیاز"),
			money("donations_total", "کمک‌های مستقیم"), money("orders_total", "کمک از فروش"), money("total_received", "جمع کل"),
		},
		Rows: rows,
	}}, true
}

// ── Secciones opcionales ──────────────────────────────────────────────────────

func rankingSheet(p report.Payload) *Sheet {
	_, ranked := p.Ranking()
	if len(ranked) == 0 {
		return nil
	}
	valueFormat := report.FormatNumber
	if _, isMoney := ranked[0].Value.(decimal.Decimal); isMoney {
		valueFormat = report.FormatCurrency
	}
	s := &Sheet{
		Name:    RankingSheetName,
		Columns: []Column{col("rank", "رتبه"), col("name", "نام"), {Key: "value", Header: "مقدار", Format: valueFormat}},
		Rows:    make([]Row, 0, len(ranked)),
	}
	for _, r := range ranked {
		s.Rows = append(s.Rows, Row{"rank": r.Rank, "name": r.Name, "value": r.Value})
	}
	return s
}

func comparisonSheet(p report.Payload) *Sheet {
	cmp := p.Comparison()
	if len(cmp) == 0 {
		return nil
	}
	s := &Sheet{
		Name: ComparisonSheetName,
		Columns: []Column{
			col("metric", "شاخص"), money("current", "دوره جاری"),
			money("previous", "دوره قبل"), pct("growth_pct", "رشد"),
		},
		Rows: make([]Row, 0, len(cmp)),
	}
	for _, c := range cmp {
		s.Rows = append(s.Rows, Row{"metric": c.Metric, "current": c.Current, "previous": c.Previous, "growth_pct": c.GrowthPct})
	}
	return s
}
