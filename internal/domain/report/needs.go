package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// NeedsSummary totales del reporte de necesidades.
type NeedsSummary struct {
	TotalNeeds      int             `json:"total_needs"`
	ActiveNeeds     int             `json:"active_needs"`
	CompletedNeeds  int             `json:"completed_needs"`
	PendingNeeds    int             `json:"pending_needs"`
	UrgentNeeds     int             `json:"urgent_needs"`
	EmergencyNeeds  int             `json:"emergency_needs"`
	TotalTarget     decimal.Decimal `json:"total_target_amount"`
	TotalCollected  decimal.Decimal `json:"total_collected_amount"`
	OverallProgress decimal.Decimal `json:"overall_progress"`
	CompletionRate  decimal.Decimal `json:"completion_rate"`
}

// CategoryNeeds necesidades agregadas por categoría.
type CategoryNeeds struct {
	Category        string          `json:"category"`
	Count           int             `json:"count"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	Progress        decimal.Decimal `json:"progress"`
}

// CharityNeeds necesidades agregadas por organización.
type CharityNeeds struct {
	CharityID       string          `json:"charity_id"`
	CharityName     string          `json:"charity_name"`
	NeedsCount      int             `json:"needs_count"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
}

// StatusCount conteo por estado.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// UrgencyBreakdown conteo por nivel de urgencia. Normal son las necesidades sin
// ninguna de las dos marcas.
type UrgencyBreakdown struct {
	Urgent    int `json:"urgent"`
	Emergency int `json:"emergency"`
	Normal    int `json:"normal"`
}

// NeedsReport payload del reporte de necesidades.
type NeedsReport struct {
	Meta
	Summary      NeedsSummary     `json:"summary"`
	ByCategory   []CategoryNeeds  `json:"by_category"`
	ByStatus     []StatusCount    `json:"by_status"`
	ByUrgency    UrgencyBreakdown `json:"by_urgency"`
	ByCharity    []CharityNeeds   `json:"by_charity"`
	MonthlyTrend []PeriodCount    `json:"monthly_trend"`
}

type categoryAcc struct {
	key               string
	count             int
	target, collected decimal.Decimal
}

// AggregateNeeds calcula el resumen y los desgloses de necesidades.
func AggregateNeeds(needs []*entity.NeedAd) *NeedsReport {
	var (
		active, completed, pending int
		urgency                    UrgencyBreakdown
		target, collected          decimal.Decimal
	)
	catKeys, statusKeys, charityKeys := newOrderedKeys(), newOrderedKeys(), newOrderedKeys()
	var (
		byCategory []categoryAcc
		byCharity  []categoryAcc
		byStatus   []StatusCount
	)

	for _, n := range needs {
		target = target.Add(n.TargetAmount)
		collected = collected.Add(n.CollectedAmount)
		switch n.Status {
		case entity.NeedStatusActive:
			active++
		case entity.NeedStatusCompleted:
			completed++
		case entity.NeedStatusPending:
			pending++
		}
		if n.IsUrgent {
			urgency.Urgent++
		}
		if n.IsEmergency {
			urgency.Emergency++
		}
		if !n.IsUrgent && !n.IsEmergency {
			urgency.Normal++
		}

		i, isNew := catKeys.index(orDefault(n.Category, OtherCategory))
		if isNew {
			byCategory = append(byCategory, categoryAcc{key: orDefault(n.Category, OtherCategory)})
		}
		byCategory[i].count++
		byCategory[i].target = byCategory[i].target.Add(n.TargetAmount)
		byCategory[i].collected = byCategory[i].collected.Add(n.CollectedAmount)

		status := orDefault(n.Status, UnknownKey)
		if i, isNew := statusKeys.index(status); isNew {
			byStatus = append(byStatus, StatusCount{Status: status, Count: 1})
		} else {
			byStatus[i].Count++
		}

		if n.CharityID != "" {
			i, isNew := charityKeys.index(n.CharityID)
			if isNew {
				byCharity = append(byCharity, categoryAcc{key: n.CharityID})
			}
			byCharity[i].count++
			byCharity[i].target = byCharity[i].target.Add(n.TargetAmount)
			byCharity[i].collected = byCharity[i].collected.Add(n.CollectedAmount)
		}
	}

	rep := &NeedsReport{
		Meta: Meta{ReportType: KindNeeds},
		Summary: NeedsSummary{
			TotalNeeds:      len(needs),
			ActiveNeeds:     active,
			CompletedNeeds:  completed,
			PendingNeeds:    pending,
			UrgentNeeds:     urgency.Urgent,
			EmergencyNeeds:  urgency.Emergency,
			TotalTarget:     money(target),
			TotalCollected:  money(collected),
			OverallProgress: percent(collected, target),
			CompletionRate:  percent(countDec(completed), countDec(len(needs))),
		},
		ByCategory: make([]CategoryNeeds, 0, len(byCategory)),
		ByStatus:   byStatus,
		ByUrgency:  urgency,
		ByCharity:  make([]CharityNeeds, 0, len(byCharity)),
	}
	if rep.ByStatus == nil {
		rep.ByStatus = []StatusCount{}
	}
	for _, c := range byCategory {
		rep.ByCategory = append(rep.ByCategory, CategoryNeeds{
			Category:        c.key,
			Count:           c.count,
			TargetAmount:    money(c.target),
			CollectedAmount: money(c.collected),
			Progress:        percent(c.collected, c.target),
		})
	}
	for _, c := range byCharity {
		rep.ByCharity = append(rep.ByCharity, CharityNeeds{
			CharityID:       c.key,
			NeedsCount:      c.count,
			TargetAmount:    money(c.target),
			CollectedAmount: money(c.collected),
		})
	}
	return rep
}

// Fields implementa Payload.
func (r *NeedsReport) Fields() []Field {
	s := r.Summary
	return append(r.metaFields(),
		Field{Key: "total_needs", Value: s.TotalNeeds, Format: FormatNumber},
		Field{Key: "active_needs", Value: s.ActiveNeeds, Format: FormatNumber},
		Field{Key: "completed_needs", Value: s.CompletedNeeds, Format: FormatNumber},
		Field{Key: "pending_needs", Value: s.PendingNeeds, Format: FormatNumber},
		Field{Key: "urgent_needs", Value: s.UrgentNeeds, Format: FormatNumber},
		Field{Key: "emergency_needs", Value: s.EmergencyNeeds, Format: FormatNumber},
		Field{Key: "total_target_amount", Value: s.TotalTarget, Format: FormatCurrency},
		Field{Key: "total_collected_amount", Value: s.TotalCollected, Format: FormatCurrency},
		Field{Key: "overall_progress", Value: s.OverallProgress, Format: FormatPercent},
		Field{Key: "completion_rate", Value: s.CompletionRate, Format: FormatPercent},
	)
}

// Ranking implementa Payload.
func (r *NeedsReport) Ranking() (string, []RankingRow) { return "", nil }

// Comparison implementa Payload.
func (r *NeedsReport) Comparison() []ComparisonRow { return nil }
