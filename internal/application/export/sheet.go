package export

import (
	"time"

	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

// Column descriptor de columna: clave en la fila, encabezado visible y formato opcional.
type Column struct {
	Key    string
	Header string
	Format report.ValueFormat
}

// Row fila de datos indexada por clave de columna. Las claves ausentes se renderizan vacías.
type Row map[string]any

// Sheet tabla con nombre, unidad de modelado de la exportación.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    []Row
}

// Document entrada común de todos los renderizadores.
type Document struct {
	Title       string
	Template    Template
	GeneratedAt time.Time
	Sheets      []Sheet
	// Secciones opcionales: nil si el payload no las trae.
	Ranking    *Sheet
	Comparison *Sheet
	// Payload original, para los formatos que lo serializan completo (JSON).
	Payload report.Payload
}

// SheetNames nombres de las hojas principales en orden.
func (d *Document) SheetNames() []string {
	names := make([]string, 0, len(d.Sheets))
	for _, s := range d.Sheets {
		names = append(names, s.Name)
	}
	return names
}
