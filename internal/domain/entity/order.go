package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order pedido de la tienda. Un pedido puede destinar parte de su valor a una
// organización benéfica (CharityAmount) y opcionalmente a una necesidad concreta.
// CustomerID, CharityID y NeedID vacíos equivalen a NULL.
type Order struct {
	ID             string
	OrderNumber    string
	Status         string
	PaymentStatus  string
	PaymentMethod  string
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	CharityAmount  decimal.Decimal
	GrandTotal     decimal.Decimal
	CustomerID     string
	CharityID      string
	NeedID         string
	CreatedAt      time.Time
}

// OrderItem línea de un pedido.
type OrderItem struct {
	ID           string
	OrderID      string
	ProductID    string
	ProductName  string
	Quantity     int
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
	CharityTotal decimal.Decimal // parte de la línea destinada a caridad
}
