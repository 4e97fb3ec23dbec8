package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de lectura de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `
	o.id::text, o.order_number, o.status, COALESCE(o.payment_status, ''), COALESCE(o.payment_method, ''),
	o.subtotal, COALESCE(o.shipping_cost, 0), COALESCE(o.tax_amount, 0), COALESCE(o.discount_amount, 0),
	COALESCE(o.charity_amount, 0), o.grand_total,
	COALESCE(o.customer_id::text, ''), COALESCE(o.charity_id::text, ''), COALESCE(o.need_id::text, ''),
	o.created_at`

// List pedidos que cumplen el filtro, ordenados por fecha de creación.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var w where
	w.between("o.created_at", f.Range)
	w.eq("o.charity_id::text", f.CharityID)
	w.eq("o.need_id::text", f.NeedID)
	w.in("o.status", f.Statuses)
	w.notIn("o.status", f.ExcludeStatuses)
	orderHasProduct(&w, f.VendorID, f.Category)

	query := `SELECT ` + orderColumns + ` FROM orders o` + w.sql() + ` ORDER BY o.created_at, o.id`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
			&o.Subtotal, &o.ShippingCost, &o.TaxAmount, &o.DiscountAmount,
			&o.CharityAmount, &o.GrandTotal,
			&o.CustomerID, &o.CharityID, &o.NeedID,
			&o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// orderHasProduct exige una línea del pedido con producto del vendedor y categoría dados.
func orderHasProduct(w *where, vendorID, category string) {
	var conds []string
	var args []any
	if vendorID != "" {
		args = append(args, vendorID)
		conds = append(conds, "p.vendor_id::text = ?"+strconv.Itoa(len(args)))
	}
	if category != "" {
		args = append(args, category)
		conds = append(conds, "p.category = ?"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return
	}
	w.addMany(`EXISTS (SELECT 1 FROM order_items i JOIN products p ON p.id = i.product_id
		WHERE i.order_id = o.id AND `+strings.Join(conds, " AND ")+`)`, args...)
}

// ListItems líneas de pedido. VendorID y Category filtran por el producto vendido.
func (r *OrderRepo) ListItems(ctx context.Context, f repository.OrderItemFilter) ([]*entity.OrderItem, error) {
	var w where
	w.in("i.order_id::text", f.OrderIDs)
	w.eq("i.product_id::text", f.ProductID)
	w.eq("p.vendor_id::text", f.VendorID)
	w.eq("p.category", f.Category)

	query := `
		SELECT i.id::text, i.order_id::text, i.product_id::text, i.product_name, i.quantity,
		       i.unit_price, i.subtotal, COALESCE(i.charity_total, 0)
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id` + w.sql() + ` ORDER BY i.order_id, i.id`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitPrice, &it.Subtotal, &it.CharityTotal,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
