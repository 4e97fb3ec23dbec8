package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// Granularity agrupación temporal de una serie.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByMonth Granularity = "month"
)

// PeriodKey devuelve la clave de agrupación de t en UTC: "2006-01-02" o "2006-01".
func PeriodKey(t time.Time, g Granularity) string {
	if g == ByMonth {
		return t.UTC().Format("2006-01")
	}
	return t.UTC().Format("2006-01-02")
}

// PeriodSales punto de una serie de ventas.
type PeriodSales struct {
	Period        string          `json:"period"`
	OrderCount    int             `json:"order_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	CharityAmount decimal.Decimal `json:"charity_amount"`
}

// PeriodDonations punto de una serie de donaciones.
type PeriodDonations struct {
	Period        string          `json:"period"`
	DonationCount int             `json:"donation_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

// PeriodCount punto de una serie de conteo (necesidades creadas por mes).
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"needs_count"`
}

// OrdersByPeriod agrupa pedidos por día o mes, ordenado por clave ascendente.
func OrdersByPeriod(orders []*entity.Order, g Granularity) []PeriodSales {
	acc := make(map[string]*PeriodSales)
	for _, o := range orders {
		k := PeriodKey(o.CreatedAt, g)
		p, ok := acc[k]
		if !ok {
			p = &PeriodSales{Period: k}
			acc[k] = p
		}
		p.OrderCount++
		p.Revenue = p.Revenue.Add(o.GrandTotal)
		p.CharityAmount = p.CharityAmount.Add(o.CharityAmount)
	}
	out := make([]PeriodSales, 0, len(acc))
	for _, p := range acc {
		p.Revenue = money(p.Revenue)
		p.CharityAmount = money(p.CharityAmount)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// DonationsByPeriod agrupa donaciones por día o mes, ordenado por clave ascendente.
func DonationsByPeriod(donations []*entity.Donation, g Granularity) []PeriodDonations {
	acc := make(map[string]*PeriodDonations)
	for _, d := range donations {
		k := PeriodKey(d.CreatedAt, g)
		p, ok := acc[k]
		if !ok {
			p = &PeriodDonations{Period: k}
			acc[k] = p
		}
		p.DonationCount++
		p.TotalAmount = p.TotalAmount.Add(d.Amount)
	}
	out := make([]PeriodDonations, 0, len(acc))
	for _, p := range acc {
		p.AverageAmount = average(p.TotalAmount, p.DonationCount)
		p.TotalAmount = money(p.TotalAmount)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// NeedsByPeriod cuenta necesidades creadas por día o mes.
func NeedsByPeriod(needs []*entity.NeedAd, g Granularity) []PeriodCount {
	acc := make(map[string]int)
	for _, n := range needs {
		acc[PeriodKey(n.CreatedAt, g)]++
	}
	out := make([]PeriodCount, 0, len(acc))
	for k, c := range acc {
		out = append(out, PeriodCount{Period: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
