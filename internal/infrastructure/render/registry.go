package render

import (
	"github.com/jhoicas/charity-reports-api/internal/application/export"
)

// NewRenderers registra un renderizador por formato soportado.
func NewRenderers(f export.Formatter, fontPath string) (map[export.Format]export.Renderer, error) {
	pdf, err := NewPDFRenderer(f, fontPath)
	if err != nil {
		return nil, err
	}
	return map[export.Format]export.Renderer{
		export.FormatCSV:   NewCSVRenderer(f),
		export.FormatExcel: NewXLSXRenderer(f),
		export.FormatPDF:   pdf,
		export.FormatJSON:  NewJSONRenderer(),
	}, nil
}
