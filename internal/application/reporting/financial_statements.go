package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/charity-reports-api/internal/domain"
	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

func yearRange(year int) repository.DateRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return repository.DateRange{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
}

// yearData pedidos entregados o confirmados y donaciones completadas del año.
func (uc *ReportUseCase) yearData(ctx context.Context, year int, charityID string) ([]*entity.Order, []*entity.Donation, error) {
	rng := yearRange(year)
	orders, err := uc.orders.List(ctx, repository.OrderFilter{
		Range:     rng,
		CharityID: charityID,
		Statuses:  impactOrderStatuses,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("pedidos: %w", err)
	}
	donations, err := uc.donations.List(ctx, repository.DonationFilter{
		Range:     rng,
		CharityID: charityID,
		Statuses:  completedDonations,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("donaciones: %w", err)
	}
	return orders, donations, nil
}

func checkYear(year int) error {
	if year < 2000 || year > 9999 {
		return fmt.Errorf("%w: año %d fuera de rango", domain.ErrInvalidInput, year)
	}
	return nil
}

// IncomeStatement estado de ingresos mensual del año, opcionalmente de una sola organización.
func (uc *ReportUseCase) IncomeStatement(ctx context.Context, year int, charityID string) (*report.IncomeStatement, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	orders, donations, err := uc.yearData(ctx, year, charityID)
	if err != nil {
		return nil, fmt.Errorf("reporting.IncomeStatement: %w", err)
	}
	st := report.BuildIncomeStatement(year, orders, donations)
	st.CharityID = charityID
	st.GeneratedAt = uc.now().UTC()
	return st, nil
}

// CharityFinancials resumen financiero anual de una organización. ErrNotFound si no existe.
func (uc *ReportUseCase) CharityFinancials(ctx context.Context, charityID string, year int) (*report.CharityFinancials, error) {
	if charityID == "" {
		return nil, fmt.Errorf("%w: charity_id requerido", domain.ErrInvalidInput)
	}
	if err := checkYear(year); err != nil {
		return nil, err
	}
	charity, err := uc.charities.GetByID(ctx, charityID)
	if err != nil {
		return nil, fmt.Errorf("reporting.CharityFinancials: %w", err)
	}
	if charity == nil {
		return nil, domain.ErrNotFound
	}
	orders, donations, err := uc.yearData(ctx, year, charityID)
	if err != nil {
		return nil, fmt.Errorf("reporting.CharityFinancials: %w", err)
	}
	out := report.BuildCharityFinancials(charity, year, orders, donations)
	out.GeneratedAt = uc.now().UTC()
	return out, nil
}
