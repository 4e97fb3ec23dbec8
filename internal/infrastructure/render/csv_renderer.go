package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/charity-reports-api/internal/application/export"
)

var _ export.Renderer = (*CSVRenderer)(nil)

// CSVRenderer escribe sólo la primera hoja del documento, con todos los campos entre
// comillas y prefijo BOM UTF-8 para que las hojas de cálculo detecten la codificación.
type CSVRenderer struct {
	formatter export.Formatter
}

// NewCSVRenderer construye el renderizador.
func NewCSVRenderer(f export.Formatter) *CSVRenderer { return &CSVRenderer{formatter: f} }

// Render implementa export.Renderer.
func (r *CSVRenderer) Render(_ context.Context, doc *export.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())

	if len(doc.Sheets) > 0 {
		sheet := doc.Sheets[0]
		headers := make([]string, len(sheet.Columns))
		for i, c := range sheet.Columns {
			headers[i] = c.Header
		}
		if err := writeQuoted(w, headers); err != nil {
			return nil, err
		}
		record := make([]string, len(sheet.Columns))
		for _, row := range sheet.Rows {
			for i, c := range sheet.Columns {
				record[i] = rawText(r.formatter, row[c.Key])
			}
			if err := writeQuoted(w, record); err != nil {
				return nil, err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("csv: cerrar: %w", err)
	}
	return buf.Bytes(), nil
}

// writeQuoted escribe un registro con todos los campos entre comillas dobles.
// encoding/csv sólo cita cuando hace falta, por eso se escribe a mano.
func writeQuoted(w io.Writer, fields []string) error {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteString("\r\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("csv: escribir registro: %w", err)
	}
	return nil
}
