package entity

import (
	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive  = "active"
	ProductStatusDraft   = "draft"
	ProductStatusSoldOut = "sold_out"
)

// Product producto publicado por un vendedor. CharityPercentage y CharityFixedAmount
// definen la porción de cada venta que se destina a caridad.
type Product struct {
	ID                 string
	Name               string
	Category           string
	Price              decimal.Decimal
	StockQuantity      int
	Status             string
	VendorID           string
	VendorName         string
	CharityPercentage  decimal.Decimal // 0..100
	CharityFixedAmount decimal.Decimal
}
