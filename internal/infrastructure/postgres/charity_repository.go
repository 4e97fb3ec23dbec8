package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

var _ repository.CharityRepository = (*CharityRepo)(nil)

// CharityRepo implementación de CharityRepository sobre PostgreSQL.
type CharityRepo struct {
	q Querier
}

// NewCharityRepository construye el adaptador de lectura de organizaciones.
func NewCharityRepository(q Querier) *CharityRepo {
	return &CharityRepo{q: q}
}

const charityColumns = `c.id::text, c.name, COALESCE(c.description, ''), COALESCE(c.verified, false)`

// List organizaciones activas que cumplen el filtro.
func (r *CharityRepo) List(ctx context.Context, f repository.CharityFilter) ([]*entity.Charity, error) {
	var w where
	w.clauses = append(w.clauses, "COALESCE(c.active, true)")
	if f.Search != "" {
		w.add(`(c.name ILIKE ? OR c.description ILIKE ?)`, likePattern(f.Search))
	}
	if f.VerifiedOnly {
		w.clauses = append(w.clauses, "c.verified")
	}

	rows, err := r.q.Query(ctx, `SELECT `+charityColumns+` FROM charities c`+w.sql()+` ORDER BY c.name, c.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list charities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Charity
	for rows.Next() {
		var c entity.Charity
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Verified); err != nil {
			return nil, fmt.Errorf("scan charity: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetByID obtiene una organización por ID.
func (r *CharityRepo) GetByID(ctx context.Context, id string) (*entity.Charity, error) {
	var c entity.Charity
	err := r.q.QueryRow(ctx, `SELECT `+charityColumns+` FROM charities c WHERE c.id::text = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Verified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get charity: %w", err)
	}
	return &c, nil
}
