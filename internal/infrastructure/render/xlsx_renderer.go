package render

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/charity-reports-api/internal/application/export"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

var _ export.Renderer = (*XLSXRenderer)(nil)

const (
	maxSheetName   = 31
	minColumnWidth = 12.0
	maxColumnWidth = 48.0
)

// XLSXRenderer escribe una hoja por cada hoja del documento, seguidas por las secciones
// opcionales de ranking y comparación. Los montos quedan como números con formato de miles.
type XLSXRenderer struct {
	formatter export.Formatter
}

// NewXLSXRenderer construye el renderizador.
func NewXLSXRenderer(f export.Formatter) *XLSXRenderer { return &XLSXRenderer{formatter: f} }

type xlsxStyles struct {
	header   int
	currency int
	percent  int
}

// Render implementa export.Renderer.
func (r *XLSXRenderer) Render(_ context.Context, doc *export.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	sheets := append([]export.Sheet{}, doc.Sheets...)
	if doc.Ranking != nil {
		sheets = append(sheets, *doc.Ranking)
	}
	if doc.Comparison != nil {
		sheets = append(sheets, *doc.Comparison)
	}
	if len(sheets) == 0 {
		sheets = append(sheets, export.Sheet{Name: doc.Title})
	}

	used := make(map[string]bool, len(sheets))
	rtl := r.formatter.RightToLeft()
	for i, s := range sheets {
		name := uniqueSheetName(SheetName(s.Name), used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %q: %w", name, err)
		}
		if err := f.SetSheetView(name, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return nil, fmt.Errorf("xlsx: vista de hoja: %w", err)
		}
		if err := r.writeSheet(f, name, s, styles); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var st xlsxStyles
	var err error
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	st.currency, err = f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return st, fmt.Errorf("xlsx: estilo moneda: %w", err)
	}
	pctFmt := `0.0"%"`
	st.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &pctFmt})
	if err != nil {
		return st, fmt.Errorf("xlsx: estilo porcentaje: %w", err)
	}
	return st, nil
}

func (r *XLSXRenderer) writeSheet(f *excelize.File, name string, s export.Sheet, st xlsxStyles) error {
	widths := make([]int, len(s.Columns))
	for c, column := range s.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetCellValue(name, cell, column.Header); err != nil {
			return fmt.Errorf("xlsx: encabezado: %w", err)
		}
		widths[c] = utf8.RuneCountInString(column.Header)
	}
	if len(s.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(s.Columns), 1)
		if err := f.SetCellStyle(name, "A1", last, st.header); err != nil {
			return fmt.Errorf("xlsx: estilo encabezado: %w", err)
		}
	}

	for i, row := range s.Rows {
		for c, column := range s.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return fmt.Errorf("xlsx: celda: %w", err)
			}
			value, style := r.cellValue(row[column.Key], column.Format, st)
			if value == nil {
				continue
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("xlsx: valor %s: %w", cell, err)
			}
			if style != 0 {
				if err := f.SetCellStyle(name, cell, cell, style); err != nil {
					return fmt.Errorf("xlsx: estilo %s: %w", cell, err)
				}
			}
			if n := utf8.RuneCountInString(displayText(r.formatter, row[column.Key], column.Format)); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for c, w := range widths {
		colName, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return fmt.Errorf("xlsx: columna: %w", err)
		}
		width := float64(w) + 2
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(name, colName, colName, width); err != nil {
			return fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}
	return nil
}

// cellValue valor nativo de la celda y su estilo (0 = sin estilo).
func (r *XLSXRenderer) cellValue(v any, format report.ValueFormat, st xlsxStyles) (any, int) {
	style := 0
	switch format {
	case report.FormatCurrency, report.FormatNumber:
		style = st.currency
	case report.FormatPercent:
		style = st.percent
	}
	switch x := v.(type) {
	case nil:
		return nil, 0
	case decimal.Decimal:
		return x.InexactFloat64(), style
	case int:
		return x, style
	case int64:
		return x, style
	case time.Time:
		return r.formatter.FormatDate(x), 0
	default:
		return v, 0
	}
}

// SheetName adapta un nombre a las reglas de Excel: sin []:*?/\ y como máximo 31 caracteres.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if name == "" {
		name = "Sheet"
	}
	return name
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
