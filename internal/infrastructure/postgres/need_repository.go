package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

var _ repository.NeedRepository = (*NeedRepo)(nil)

// NeedRepo implementación de NeedRepository sobre la tabla need_ads.
type NeedRepo struct {
	q Querier
}

// NewNeedRepository construye el adaptador de lectura de necesidades.
func NewNeedRepository(q Querier) *NeedRepo {
	return &NeedRepo{q: q}
}

const needColumns = `
	n.id::text, n.title, COALESCE(n.category, ''), n.target_amount, COALESCE(n.collected_amount, 0),
	n.status, COALESCE(n.is_urgent, false), COALESCE(n.is_emergency, false),
	COALESCE(n.charity_id::text, ''), n.created_at`

func scanNeed(row pgx.Row) (*entity.NeedAd, error) {
	var n entity.NeedAd
	err := row.Scan(
		&n.ID, &n.Title, &n.Category, &n.TargetAmount, &n.CollectedAmount,
		&n.Status, &n.IsUrgent, &n.IsEmergency,
		&n.CharityID, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// List necesidades que cumplen el filtro.
func (r *NeedRepo) List(ctx context.Context, f repository.NeedFilter) ([]*entity.NeedAd, error) {
	var w where
	w.between("n.created_at", f.Range)
	w.eq("n.charity_id::text", f.CharityID)
	w.eq("n.category", f.Category)

	rows, err := r.q.Query(ctx, `SELECT `+needColumns+` FROM need_ads n`+w.sql()+` ORDER BY n.created_at, n.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list needs: %w", err)
	}
	defer rows.Close()

	var list []*entity.NeedAd
	for rows.Next() {
		n, err := scanNeed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan need: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// GetByID obtiene una necesidad por ID.
func (r *NeedRepo) GetByID(ctx context.Context, id string) (*entity.NeedAd, error) {
	n, err := scanNeed(r.q.QueryRow(ctx, `SELECT `+needColumns+` FROM need_ads n WHERE n.id::text = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get need: %w", err)
	}
	return n, nil
}
