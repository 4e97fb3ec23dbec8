package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// MonthlyIncome fila mensual del estado de ingresos.
type MonthlyIncome struct {
	Month       int             `json:"month"`
	Period      string          `json:"period"`
	Revenue     decimal.Decimal `json:"revenue"`
	Donations   decimal.Decimal `json:"donations"`
	TotalIncome decimal.Decimal `json:"total_income"`
}

// IncomeStatement estado de ingresos anual: 12 filas mensuales más totales.
type IncomeStatement struct {
	Year           int             `json:"year"`
	CharityID      string          `json:"charity_id,omitempty"`
	Months         []MonthlyIncome `json:"months"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalDonations decimal.Decimal `json:"total_donations"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// BuildIncomeStatement reparte ingresos por pedidos y donaciones en los 12 meses de year (UTC).
// Los registros fuera del año se ignoran; el filtrado por estado lo hace quien llama.
func BuildIncomeStatement(year int, orders []*entity.Order, donations []*entity.Donation) *IncomeStatement {
	var revenue, donated [12]decimal.Decimal
	for _, o := range orders {
		t := o.CreatedAt.UTC()
		if t.Year() == year {
			revenue[t.Month()-1] = revenue[t.Month()-1].Add(o.GrandTotal)
		}
	}
	for _, d := range donations {
		t := d.CreatedAt.UTC()
		if t.Year() == year {
			donated[t.Month()-1] = donated[t.Month()-1].Add(d.Amount)
		}
	}

	st := &IncomeStatement{Year: year, Months: make([]MonthlyIncome, 0, 12)}
	var totalRev, totalDon decimal.Decimal
	for m := 0; m < 12; m++ {
		totalRev = totalRev.Add(revenue[m])
		totalDon = totalDon.Add(donated[m])
		st.Months = append(st.Months, MonthlyIncome{
			Month:       m + 1,
			Period:      time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Revenue:     money(revenue[m]),
			Donations:   money(donated[m]),
			TotalIncome: money(revenue[m].Add(donated[m])),
		})
	}
	st.TotalRevenue = money(totalRev)
	st.TotalDonations = money(totalDon)
	st.TotalIncome = money(totalRev.Add(totalDon))
	return st
}

// CharityFinancials resumen financiero anual de una organización.
type CharityFinancials struct {
	CharityID      string            `json:"charity_id"`
	CharityName    string            `json:"charity_name"`
	Year           int               `json:"year"`
	DonationCount  int               `json:"donation_count"`
	DonationsTotal decimal.Decimal   `json:"donations_total"`
	OrderCount     int               `json:"order_count"`
	OrdersCharity  decimal.Decimal   `json:"orders_charity_total"`
	TotalReceived  decimal.Decimal   `json:"total_received"`
	Monthly        []PeriodDonations `json:"monthly_donations"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// BuildCharityFinancials agrega donaciones y caridad de pedidos de una organización en year.
func BuildCharityFinancials(c *entity.Charity, year int, orders []*entity.Order, donations []*entity.Donation) *CharityFinancials {
	out := &CharityFinancials{CharityID: c.ID, CharityName: c.Name, Year: year}
	var donated, fromOrders decimal.Decimal
	var inYear []*entity.Donation
	for _, d := range donations {
		if d.CharityID != c.ID || d.CreatedAt.UTC().Year() != year {
			continue
		}
		out.DonationCount++
		donated = donated.Add(d.Amount)
		inYear = append(inYear, d)
	}
	for _, o := range orders {
		if o.CharityID != c.ID || o.CreatedAt.UTC().Year() != year {
			continue
		}
		out.OrderCount++
		fromOrders = fromOrders.Add(o.CharityAmount)
	}
	out.DonationsTotal = money(donated)
	out.OrdersCharity = money(fromOrders)
	out.TotalReceived = money(donated.Add(fromOrders))
	out.Monthly = DonationsByPeriod(inYear, ByMonth)
	return out
}
