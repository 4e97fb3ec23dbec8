package export

import (
	"fmt"
	"strings"

	"github.com/jhoicas/charity-reports-api/internal/domain"
)

// Format formato de salida de una exportación. Conjunto cerrado.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
	FormatJSON  Format = "json"
)

type formatSpec struct {
	ext         string
	contentType string
}

var formatSpecs = map[Format]formatSpec{
	FormatCSV:   {ext: "csv", contentType: "text/csv; charset=utf-8"},
	FormatExcel: {ext: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	FormatPDF:   {ext: "pdf", contentType: "application/pdf"},
	FormatJSON:  {ext: "json", contentType: "application/json; charset=utf-8"},
}

// ParseFormat valida el formato. Devuelve domain.ErrUnsupportedFormat si no existe.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formatSpecs[f]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
	return f, nil
}

// Extension extensión de archivo sin punto.
func (f Format) Extension() string { return formatSpecs[f].ext }

// ContentType tipo MIME del artefacto.
func (f Format) ContentType() string { return formatSpecs[f].contentType }

// FormatFromFilename deduce el formato por la extensión del archivo.
func FormatFromFilename(name string) (Format, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	ext := strings.ToLower(name[i+1:])
	for f, spec := range formatSpecs {
		if spec.ext == ext {
			return f, true
		}
	}
	return "", false
}
