package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

var _ repository.DonationRepository = (*DonationRepo)(nil)

// DonationRepo implementación de DonationRepository sobre PostgreSQL.
type DonationRepo struct {
	q Querier
}

// NewDonationRepository construye el adaptador de lectura de donaciones.
func NewDonationRepository(q Querier) *DonationRepo {
	return &DonationRepo{q: q}
}

// List donaciones que cumplen el filtro. CompletedAt se toma de updated_at para las completadas.
func (r *DonationRepo) List(ctx context.Context, f repository.DonationFilter) ([]*entity.Donation, error) {
	var w where
	w.between("d.created_at", f.Range)
	w.eq("d.charity_id::text", f.CharityID)
	w.eq("d.need_id::text", f.NeedID)
	w.in("d.status", f.Statuses)

	query := `
		SELECT d.id::text, d.amount, COALESCE(d.payment_method, ''), d.status,
		       COALESCE(d.donor_id::text, ''), COALESCE(d.charity_id::text, ''), COALESCE(d.need_id::text, ''),
		       d.created_at,
		       CASE WHEN d.status = 'completed' THEN d.updated_at END
		FROM donations d` + w.sql() + ` ORDER BY d.created_at, d.id`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Donation
	for rows.Next() {
		var d entity.Donation
		if err := rows.Scan(
			&d.ID, &d.Amount, &d.PaymentMethod, &d.Status,
			&d.DonorID, &d.CharityID, &d.NeedID,
			&d.CreatedAt, &d.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
