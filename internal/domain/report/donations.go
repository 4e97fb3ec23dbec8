package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// DonationsSummary totales del reporte de donaciones.
type DonationsSummary struct {
	TotalDonations     int             `json:"total_donations"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	AverageDonation    decimal.Decimal `json:"average_donation"`
	LargestDonation    decimal.Decimal `json:"largest_donation"`
	SmallestDonation   decimal.Decimal `json:"smallest_donation"`
	UniqueDonors       int             `json:"unique_donors"`
	CompletedDonations int             `json:"completed_donations"`
	PendingDonations   int             `json:"pending_donations"`
}

// CharityDonations donaciones agregadas por organización.
type CharityDonations struct {
	CharityID     string          `json:"charity_id"`
	CharityName   string          `json:"charity_name"`
	DonationCount int             `json:"donation_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

// NeedDonations donaciones agregadas por necesidad.
type NeedDonations struct {
	NeedID        string          `json:"need_id"`
	NeedTitle     string          `json:"need_title"`
	DonationCount int             `json:"donation_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

// PaymentMethodTotal conteo y suma por medio de pago.
type PaymentMethodTotal struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// DonationsReport payload del reporte de donaciones.
type DonationsReport struct {
	Meta
	Summary         DonationsSummary     `json:"summary"`
	ByCharity       []CharityDonations   `json:"by_charity"`
	ByNeed          []NeedDonations      `json:"by_need"`
	ByPaymentMethod []PaymentMethodTotal `json:"by_payment_method"`
	DailyTrend      []PeriodDonations    `json:"daily_trend"`
	MonthlyTrend    []PeriodDonations    `json:"monthly_trend"`
	Compare         []ComparisonRow      `json:"comparison,omitempty"`
}

type groupAcc struct {
	id    string
	count int
	sum   decimal.Decimal
}

// groupBy acumula conteo y suma por clave en orden de primera aparición.
// Con sentinel vacío las claves vacías se omiten; si no, se agrupan bajo sentinel.
func groupBy[T any](items []T, key func(T) string, amount func(T) decimal.Decimal, sentinel string) []groupAcc {
	keys := newOrderedKeys()
	var out []groupAcc
	for _, it := range items {
		k := key(it)
		if k == "" {
			if sentinel == "" {
				continue
			}
			k = sentinel
		}
		i, isNew := keys.index(k)
		if isNew {
			out = append(out, groupAcc{id: k})
		}
		out[i].count++
		out[i].sum = out[i].sum.Add(amount(it))
	}
	return out
}

// AggregateDonations calcula el resumen y los desgloses de donaciones.
func AggregateDonations(donations []*entity.Donation) *DonationsReport {
	var (
		total              decimal.Decimal
		largest, smallest  decimal.Decimal
		completed, pending int
		donors             = make(map[string]struct{})
	)
	for i, d := range donations {
		total = total.Add(d.Amount)
		if i == 0 || d.Amount.GreaterThan(largest) {
			largest = d.Amount
		}
		if i == 0 || d.Amount.LessThan(smallest) {
			smallest = d.Amount
		}
		if d.DonorID != "" {
			donors[d.DonorID] = struct{}{}
		}
		switch d.Status {
		case entity.DonationStatusCompleted:
			completed++
		case entity.DonationStatusPending:
			pending++
		}
	}

	amount := func(d *entity.Donation) decimal.Decimal { return d.Amount }
	rep := &DonationsReport{
		Meta: Meta{ReportType: KindDonations},
		Summary: DonationsSummary{
			TotalDonations:     len(donations),
			TotalAmount:        money(total),
			AverageDonation:    average(total, len(donations)),
			LargestDonation:    money(largest),
			SmallestDonation:   money(smallest),
			UniqueDonors:       len(donors),
			CompletedDonations: completed,
			PendingDonations:   pending,
		},
		ByCharity:       []CharityDonations{},
		ByNeed:          []NeedDonations{},
		ByPaymentMethod: []PaymentMethodTotal{},
	}
	for _, g := range groupBy(donations, func(d *entity.Donation) string { return d.CharityID }, amount, "") {
		rep.ByCharity = append(rep.ByCharity, CharityDonations{
			CharityID: g.id, DonationCount: g.count,
			TotalAmount: money(g.sum), AverageAmount: average(g.sum, g.count),
		})
	}
	for _, g := range groupBy(donations, func(d *entity.Donation) string { return d.NeedID }, amount, "") {
		rep.ByNeed = append(rep.ByNeed, NeedDonations{
			NeedID: g.id, DonationCount: g.count,
			TotalAmount: money(g.sum), AverageAmount: average(g.sum, g.count),
		})
	}
	for _, g := range groupBy(donations, func(d *entity.Donation) string { return d.PaymentMethod }, amount, UnknownKey) {
		rep.ByPaymentMethod = append(rep.ByPaymentMethod, PaymentMethodTotal{
			PaymentMethod: g.id, Count: g.count, Total: money(g.sum),
		})
	}
	return rep
}

// Fields implementa Payload.
func (r *DonationsReport) Fields() []Field {
	s := r.Summary
	return append(r.metaFields(),
		Field{Key: "total_donations", Value: s.TotalDonations, Format: FormatNumber},
		Field{Key: "total_amount", Value: s.TotalAmount, Format: FormatCurrency},
		Field{Key: "average_donation", Value: s.AverageDonation, Format: FormatCurrency},
		Field{Key: "largest_donation", Value: s.LargestDonation, Format: FormatCurrency},
		Field{Key: "smallest_donation", Value: s.SmallestDonation, Format: FormatCurrency},
		Field{Key: "unique_donors", Value: s.UniqueDonors, Format: FormatNumber},
		Field{Key: "completed_donations", Value: s.CompletedDonations, Format: FormatNumber},
		Field{Key: "pending_donations", Value: s.PendingDonations, Format: FormatNumber},
	)
}

// Ranking implementa Payload. El reporte de donaciones no tiene sección de ranking.
func (r *DonationsReport) Ranking() (string, []RankingRow) { return "", nil }

// Comparison implementa Payload.
func (r *DonationsReport) Comparison() []ComparisonRow { return r.Compare }
