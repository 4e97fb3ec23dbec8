package repository

import (
	"context"
	"time"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
)

// DateRange intervalo cerrado [Start, End]. Un valor cero en ambos extremos
// significa "sin restricción de fechas".
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero indica si el rango no restringe nada.
func (r DateRange) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

// OrderFilter criterios de consulta de pedidos. Todos los campos se combinan con AND;
// los vacíos no filtran.
type OrderFilter struct {
	Range           DateRange
	CharityID       string
	NeedID          string
	Statuses        []string // IN (...)
	ExcludeStatuses []string // NOT IN (...)
	// VendorID y Category: el pedido debe tener al menos una línea cuyo producto
	// cumpla ambos a la vez.
	VendorID string
	Category string
}

// OrderItemFilter criterios para líneas de pedido.
type OrderItemFilter struct {
	OrderIDs  []string
	ProductID string
	VendorID  string
	Category  string
}

// DonationFilter criterios de consulta de donaciones.
type DonationFilter struct {
	Range     DateRange
	CharityID string
	NeedID    string
	Statuses  []string
}

// NeedFilter criterios de consulta de necesidades.
type NeedFilter struct {
	Range     DateRange
	CharityID string
	Category  string
}

// ProductFilter criterios de consulta de productos.
type ProductFilter struct {
	VendorID string
	Category string
}

// CharityFilter criterios de consulta de organizaciones.
// Search aplica una coincidencia de subcadena sin distinguir mayúsculas sobre nombre o descripción.
type CharityFilter struct {
	Search       string
	VerifiedOnly bool
}

// OrderRepository puerto de lectura de pedidos.
type OrderRepository interface {
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	ListItems(ctx context.Context, f OrderItemFilter) ([]*entity.OrderItem, error)
}

// DonationRepository puerto de lectura de donaciones.
type DonationRepository interface {
	List(ctx context.Context, f DonationFilter) ([]*entity.Donation, error)
}

// NeedRepository puerto de lectura de necesidades.
// GetByID devuelve (nil, nil) si no existe.
type NeedRepository interface {
	List(ctx context.Context, f NeedFilter) ([]*entity.NeedAd, error)
	GetByID(ctx context.Context, id string) (*entity.NeedAd, error)
}

// ProductRepository puerto de lectura de productos.
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}

// CharityRepository puerto de lectura de organizaciones benéficas.
// GetByID devuelve (nil, nil) si no existe.
type CharityRepository interface {
	List(ctx context.Context, f CharityFilter) ([]*entity.Charity, error)
	GetByID(ctx context.Context, id string) (*entity.Charity, error)
}
