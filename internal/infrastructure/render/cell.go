// Package render contiene los renderizadores de exportación (CSV, XLSX, PDF y JSON).
// Cada uno implementa export.Renderer y recibe el formateador de locale por inyección.
package render

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/application/export"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

// displayText texto de una celda aplicando el formato de la columna.
// Claves ausentes (nil) se muestran vacías.
func displayText(f export.Formatter, v any, format report.ValueFormat) string {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		switch format {
		case report.FormatPercent:
			return f.FormatPercent(x)
		case report.FormatCurrency, report.FormatNumber:
			return f.FormatCurrency(x)
		}
		return x.String()
	case int:
		if format == report.FormatPercent {
			return f.FormatPercent(decimal.NewFromInt(int64(x)))
		}
		if format == report.FormatCurrency || format == report.FormatNumber {
			return f.FormatNumber(int64(x))
		}
		return fmt.Sprint(x)
	case time.Time:
		return f.FormatDate(x)
	case bool:
		if x {
			return "✓"
		}
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// rawText texto sin agrupación de miles, para formatos que otras herramientas vuelven a leer.
func rawText(f export.Formatter, v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return f.FormatDate(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
