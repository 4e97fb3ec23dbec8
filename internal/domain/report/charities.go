package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// CharityImpact impacto acumulado de una organización.
type CharityImpact struct {
	CharityID      string          `json:"charity_id"`
	CharityName    string          `json:"charity_name"`
	Verified       bool            `json:"verified"`
	NeedsCount     int             `json:"needs_count"`
	DonationsTotal decimal.Decimal `json:"donations_total"`
	OrdersTotal    decimal.Decimal `json:"orders_total"`
	TotalReceived  decimal.Decimal `json:"total_received"`
}

// CharitiesSummary totales del reporte de impacto.
type CharitiesSummary struct {
	TotalCharities    int             `json:"total_charities"`
	VerifiedCharities int             `json:"verified_charities"`
	TotalReceived     decimal.Decimal `json:"total_received"`
}

// CharitiesReport payload del reporte de impacto de organizaciones.
type CharitiesReport struct {
	Meta
	Summary      CharitiesSummary `json:"summary"`
	Charities    []CharityImpact  `json:"charities"`
	TopCharities []CharityImpact  `json:"top_charities,omitempty"`
}

// MatchesSearch indica si la organización contiene search (sin distinguir mayúsculas)
// en el nombre o la descripción. Búsqueda vacía coincide siempre.
func MatchesSearch(c *entity.Charity, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), search) ||
		strings.Contains(strings.ToLower(c.Description), search)
}

// AggregateCharities calcula por organización: necesidades publicadas, donaciones completadas,
// caridad de pedidos entregados o confirmados y el total recibido.
func AggregateCharities(
	charities []*entity.Charity,
	needs []*entity.NeedAd,
	donations []*entity.Donation,
	orders []*entity.Order,
	search string,
) *CharitiesReport {
	needsCount := make(map[string]int)
	for _, n := range needs {
		if n.CharityID != "" {
			needsCount[n.CharityID]++
		}
	}
	donated := make(map[string]decimal.Decimal)
	for _, d := range donations {
		if d.CharityID != "" && d.Status == entity.DonationStatusCompleted {
			donated[d.CharityID] = donated[d.CharityID].Add(d.Amount)
		}
	}
	fromOrders := make(map[string]decimal.Decimal)
	for _, o := range orders {
		if o.CharityID == "" {
			continue
		}
		if o.Status == entity.OrderStatusDelivered || o.Status == entity.OrderStatusConfirmed {
			fromOrders[o.CharityID] = fromOrders[o.CharityID].Add(o.CharityAmount)
		}
	}

	rep := &CharitiesReport{
		Meta:      Meta{ReportType: KindCharities},
		Charities: []CharityImpact{},
	}
	var received decimal.Decimal
	for _, c := range charities {
		if !MatchesSearch(c, search) {
			continue
		}
		total := donated[c.ID].Add(fromOrders[c.ID])
		received = received.Add(total)
		if c.Verified {
			rep.Summary.VerifiedCharities++
		}
		rep.Charities = append(rep.Charities, CharityImpact{
			CharityID:      c.ID,
			CharityName:    c.Name,
			Verified:       c.Verified,
			NeedsCount:     needsCount[c.ID],
			DonationsTotal: money(donated[c.ID]),
			OrdersTotal:    money(fromOrders[c.ID]),
			TotalReceived:  money(total),
		})
	}
	rep.Summary.TotalCharities = len(rep.Charities)
	rep.Summary.TotalReceived = money(received)
	rep.TopCharities = topN(rep.Charities, RankingSize, func(a, b CharityImpact) bool {
		return a.TotalReceived.GreaterThan(b.TotalReceived)
	})
	return rep
}

// Fields implementa Payload.
func (r *CharitiesReport) Fields() []Field {
	s := r.Summary
	return append(r.metaFields(),
		Field{Key: "total_charities", Value: s.TotalCharities, Format: FormatNumber},
		Field{Key: "verified_charities", Value: s.VerifiedCharities, Format: FormatNumber},
		Field{Key: "total_received", Value: s.TotalReceived, Format: FormatCurrency},
	)
}

// Ranking implementa Payload: organizaciones con mayor total recibido.
func (r *CharitiesReport) Ranking() (string, []RankingRow) {
	if len(r.TopCharities) == 0 {
		return "", nil
	}
	rows := make([]RankingRow, 0, len(r.TopCharities))
	for i, c := range r.TopCharities {
		rows = append(rows, RankingRow{Rank: i + 1, ID: c.CharityID, Name: c.CharityName, Value: c.TotalReceived})
	}
	return "top_charities_by_received", rows
}

// Comparison implementa Payload.
func (r *CharitiesReport) Comparison() []ComparisonRow { return nil }
