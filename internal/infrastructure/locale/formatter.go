// Package locale implementa export.Formatter sobre golang.org/x/text: agrupación de miles
// según el idioma, porcentajes con un decimal, fechas AAAA/MM/DD y detección de escritura RTL.
package locale

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/charity-reports-api/internal/application/export"
)

var _ export.Formatter = (*Formatter)(nil)

// Escrituras de derecha a izquierda (ISO 15924).
var rtlScripts = map[string]bool{
	"Arab": true, "Hebr": true, "Syrc": true, "Thaa": true, "Nkoo": true, "Adlm": true,
}

// Formatter formato dependiente del idioma. Los dígitos son siempre latinos para que las
// cifras sean legibles por hojas de cálculo y procesos posteriores.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	rtl     bool
}

// New construye un formateador para la etiqueta BCP 47 dada ("fa", "es-CO"...).
// Una etiqueta inválida cae a inglés.
func New(tag string) *Formatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.English
	}
	script, _ := t.Script()
	numbers, err := language.Parse(t.String() + "-u-nu-latn")
	if err != nil {
		numbers = t
	}
	return &Formatter{
		tag:     t,
		printer: message.NewPrinter(numbers),
		rtl:     rtlScripts[script.String()],
	}
}

// Tag etiqueta de idioma efectiva.
func (f *Formatter) Tag() string { return f.tag.String() }

// FormatCurrency entero redondeado con separador de miles del idioma.
func (f *Formatter) FormatCurrency(amount decimal.Decimal) string {
	return f.printer.Sprintf("%d", amount.Round(0).IntPart())
}

// FormatPercent un decimal y signo de porcentaje: 12.5%.
func (f *Formatter) FormatPercent(value decimal.Decimal) string {
	return value.StringFixed(1) + "%"
}

// FormatNumber entero con separador de miles.
func (f *Formatter) FormatNumber(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// FormatDate AAAA/MM/DD.
func (f *Formatter) FormatDate(t time.Time) string { return t.Format("2006/01/02") }

// FormatDateTime AAAA/MM/DD HH:MM.
func (f *Formatter) FormatDateTime(t time.Time) string { return t.Format("2006/01/02 15:04") }

// RightToLeft indica si el idioma se escribe de derecha a izquierda.
func (f *Formatter) RightToLeft() bool { return f.rtl }
