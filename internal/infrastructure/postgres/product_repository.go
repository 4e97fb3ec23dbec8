package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id::text, p.name, COALESCE(p.category, ''), p.price, COALESCE(p.stock_quantity, 0), p.status,
	COALESCE(p.vendor_id::text, ''), COALESCE(u.full_name, u.email, ''),
	COALESCE(p.charity_percentage, 0), COALESCE(p.charity_fixed_amount, 0)`

const productFrom = ` FROM products p LEFT JOIN users u ON u.id = p.vendor_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.StockQuantity, &p.Status,
		&p.VendorID, &p.VendorName,
		&p.CharityPercentage, &p.CharityFixedAmount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List productos que cumplen el filtro.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var w where
	w.eq("p.vendor_id::text", f.VendorID)
	w.eq("p.category", f.Category)

	rows, err := r.q.Query(ctx, `SELECT `+productColumns+productFrom+w.sql()+` ORDER BY p.name, p.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id::text = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}
