package reporting

import (
	"fmt"
	"time"

	"github.com/jhoicas/charity-reports-api/internal/domain"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

// Períodos con nombre y su duración hacia atrás desde "ahora".
var namedPeriods = map[string]time.Duration{
	"daily":     24 * time.Hour,
	"weekly":    7 * 24 * time.Hour,
	"monthly":   30 * 24 * time.Hour,
	"quarterly": 90 * 24 * time.Hour,
	"yearly":    365 * 24 * time.Hour,
}

const defaultPeriod = "monthly"

// Filters parámetros de un reporte ya validados por la capa HTTP.
type Filters struct {
	Period       string
	StartDate    *time.Time
	EndDate      *time.Time
	CharityID    string
	NeedID       string
	VendorID     string
	Category     string
	Search       string
	VerifiedOnly bool
	Compare      bool
}

// HasExplicitRange indica si el rango viene dado por fechas explícitas.
func (f Filters) HasExplicitRange() bool { return f.StartDate != nil && f.EndDate != nil }

// asMap filtros no vacíos para la cabecera del payload.
func (f Filters) asMap() map[string]string {
	m := make(map[string]string)
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("period", f.Period)
	put("charity_id", f.CharityID)
	put("need_id", f.NeedID)
	put("vendor_id", f.VendorID)
	put("category", f.Category)
	put("search", f.Search)
	if f.VerifiedOnly {
		m["verified_only"] = "true"
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// ResolvePeriod calcula la ventana efectiva: el rango explícito gana; si no, el período con
// nombre termina en now; por defecto 30 días. Devuelve también una etiqueta legible.
func ResolvePeriod(now time.Time, f Filters) (repository.DateRange, string, error) {
	if f.HasExplicitRange() {
		if f.EndDate.Before(*f.StartDate) {
			return repository.DateRange{}, "", fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
		}
		return repository.DateRange{Start: *f.StartDate, End: *f.EndDate}, "custom", nil
	}
	name := f.Period
	span, ok := namedPeriods[name]
	if !ok {
		name = defaultPeriod
		span = namedPeriods[defaultPeriod]
	}
	return repository.DateRange{Start: now.Add(-span), End: now}, name, nil
}

// PreviousWindow ventana inmediatamente anterior de igual duración.
func PreviousWindow(r repository.DateRange) repository.DateRange {
	span := r.End.Sub(r.Start)
	end := r.Start.Add(-time.Nanosecond)
	return repository.DateRange{Start: r.Start.Add(-span), End: end}
}
