// Package report es el motor de agregación: funciones puras que convierten listas planas
// de pedidos, líneas, donaciones, necesidades, productos y organizaciones en reportes
// estadísticos tipados. No hace I/O ni falla con entradas vacías.
//
// Convenciones:
//   - Acumuladores en decimal sin redondear; montos redondeados a unidades (Round(0))
//     y porcentajes a 2 decimales sólo al construir el payload.
//   - Denominador cero ⇒ porcentaje/promedio 0.
//   - Desgloses categóricos envían claves nulas a un bucket centinela ("unknown", "other");
//     desgloses por entidad (producto, organización, necesidad, vendedor) las omiten.
//   - Los desgloses conservan el orden de primera aparición.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/charity-reports-api/internal/domain"
)

// Kind tipo de reporte.
type Kind string

const (
	KindSales     Kind = "sales"
	KindDonations Kind = "donations"
	KindNeeds     Kind = "needs"
	KindProducts  Kind = "products"
	KindFinancial Kind = "financial"
	KindCharities Kind = "charities"
)

// Kinds lista cerrada de tipos soportados, en orden de documentación.
var Kinds = []Kind{KindSales, KindDonations, KindNeeds, KindProducts, KindFinancial, KindCharities}

// ParseKind convierte un texto en Kind. Devuelve domain.ErrUnsupportedReportType si no existe.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedReportType, s)
}

// Sentinelas para claves nulas en desgloses categóricos.
const (
	UnknownKey    = "unknown"
	OtherCategory = "other"
)

// ValueFormat pista de presentación de un valor escalar.
type ValueFormat string

const (
	FormatText     ValueFormat = ""
	FormatNumber   ValueFormat = "number"
	FormatCurrency ValueFormat = "currency"
	FormatPercent  ValueFormat = "percent"
	FormatDate     ValueFormat = "date"
)

// Field valor escalar de primer nivel de un payload (volcado genérico).
type Field struct {
	Key    string
	Value  any
	Format ValueFormat
}

// Payload resultado inmutable de un reporte. Conjunto cerrado: sólo los tipos de este
// paquete lo implementan.
type Payload interface {
	Kind() Kind
	Header() Meta
	// Fields devuelve los valores escalares de primer nivel en orden estable.
	Fields() []Field
	// Ranking devuelve la sección "top N" si existe (título, filas).
	Ranking() (title string, rows []RankingRow)
	// Comparison devuelve la comparación contra el período anterior si se calculó.
	Comparison() []ComparisonRow
	// Stamp fija la cabecera (fecha de generación, período, filtros); conserva el tipo.
	Stamp(m Meta)

	sealed()
}

// Period ventana temporal efectiva del reporte.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

// Meta cabecera común de todos los payloads.
type Meta struct {
	ReportType  Kind              `json:"report_type"`
	GeneratedAt time.Time         `json:"generated_at"`
	Period      Period            `json:"period"`
	Filters     map[string]string `json:"filters,omitempty"`
}

// Header implementa Payload.
func (m Meta) Header() Meta { return m }

// Kind implementa Payload.
func (m Meta) Kind() Kind { return m.ReportType }

func (Meta) sealed() {}

// Stamp implementa Payload.
func (m *Meta) Stamp(h Meta) {
	kind := m.ReportType
	*m = h
	m.ReportType = kind
}

// metaFields campos escalares comunes para el volcado genérico.
func (m Meta) metaFields() []Field {
	fields := []Field{
		{Key: "report_type", Value: string(m.ReportType)},
		{Key: "generated_at", Value: m.GeneratedAt, Format: FormatDate},
	}
	if !m.Period.Start.IsZero() {
		fields = append(fields, Field{Key: "period_start", Value: m.Period.Start, Format: FormatDate})
	}
	if !m.Period.End.IsZero() {
		fields = append(fields, Field{Key: "period_end", Value: m.Period.End, Format: FormatDate})
	}
	return fields
}

// RankingRow fila de una sección "top N".
type RankingRow struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// RankingSize tamaño de las secciones "top N".
const RankingSize = 10

// Decode reconstruye un payload serializado en JSON según su tipo.
func Decode(kind Kind, data []byte) (Payload, error) {
	var p Payload
	switch kind {
	case KindSales:
		p = &SalesReport{}
	case KindDonations:
		p = &DonationsReport{}
	case KindNeeds:
		p = &NeedsReport{}
	case KindProducts:
		p = &ProductsReport{}
	case KindFinancial:
		p = &FinancialReport{}
	case KindCharities:
		p = &CharitiesReport{}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedReportType, kind)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("report.Decode: %w", err)
	}
	return p, nil
}
