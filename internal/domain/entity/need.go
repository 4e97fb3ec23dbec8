package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una necesidad publicada.
const (
	NeedStatusDraft     = "draft"
	NeedStatusPending   = "pending"
	NeedStatusActive    = "active"
	NeedStatusCompleted = "completed"
	NeedStatusRejected  = "rejected"
)

// NeedAd necesidad publicada por una organización (meta de recaudo y avance).
type NeedAd struct {
	ID              string
	Title           string
	Category        string // vacío = sin categoría
	TargetAmount    decimal.Decimal
	CollectedAmount decimal.Decimal
	Status          string
	IsUrgent        bool
	IsEmergency     bool
	CharityID       string
	CreatedAt       time.Time
}
