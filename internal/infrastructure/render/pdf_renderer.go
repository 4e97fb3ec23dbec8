package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/charity-reports-api/internal/application/export"
)

// MaxPDFRows filas de datos por tabla; el resto se omite con una nota.
const MaxPDFRows = 100

const (
	gridSize       = 24
	customFontName = "report-font"
)

// Fuente por defecto con glifos árabes y persas (DejaVu Sans, ver fonts/LICENSE).
var (
	//go:embed fonts/DejaVuSans.ttf
	embeddedRegular []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	embeddedBold []byte
)

// gofpdf escribe fuentes e imágenes en el orden de un map salvo que se ordene el catálogo.
func init() {
	gofpdf.SetDefaultCatalogSort(true)
}

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ export.Renderer = (*PDFRenderer)(nil)

// PDFRenderer genera un PDF apaisado con una tabla por hoja usando Maroto v2.
//
// Maroto no hace shaping bidireccional: en idiomas RTL se invierte el orden de columnas
// y se alinea a la derecha; la forma de los glifos depende de la fuente configurada.
type PDFRenderer struct {
	formatter export.Formatter
	fonts     []*entity.CustomFont
	family    string
}

// NewPDFRenderer construye el renderizador. fontPath opcional: TTF con cobertura Unicode
// que sustituye a la fuente embebida.
func NewPDFRenderer(f export.Formatter, fontPath string) (*PDFRenderer, error) {
	repo := repository.New()
	if fontPath == "" {
		repo = repo.
			AddUTF8FontFromBytes(customFontName, fontstyle.Normal, embeddedRegular).
			AddUTF8FontFromBytes(customFontName, fontstyle.Bold, embeddedBold)
	} else {
		repo = repo.
			AddUTF8Font(customFontName, fontstyle.Normal, fontPath).
			AddUTF8Font(customFontName, fontstyle.Bold, fontPath)
	}
	fonts, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuente %q: %w", fontPath, err)
	}
	return &PDFRenderer{formatter: f, fonts: fonts, family: customFontName}, nil
}

// Render implementa export.Renderer.
func (r *PDFRenderer) Render(_ context.Context, doc *export.Document) ([]byte, error) {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(gridSize).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: r.family, Size: 8}).
		WithTitle(doc.Title, true).
		WithCreationDate(doc.GeneratedAt).
		WithCustomFonts(r.fonts)
	m := maroto.New(b.Build())

	m.AddRows(r.titleRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, s := range doc.Sheets {
		m.AddRows(r.tableRows(s)...)
	}
	// el ranking empieza en página nueva
	if doc.Ranking != nil {
		m.AddPages(page.New().Add(r.tableRows(*doc.Ranking)...))
	}
	if doc.Comparison != nil {
		m.AddRows(r.tableRows(*doc.Comparison)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return stampModDate(out.GetBytes(), doc.GeneratedAt), nil
}

// stampModDate iguala /ModDate a la fecha de generación; maroto sólo fija /CreationDate.
// Misma longitud, así que la tabla xref sigue siendo válida.
func stampModDate(pdf []byte, at time.Time) []byte {
	if at.IsZero() {
		return pdf
	}
	marker := []byte("/ModDate (D:")
	i := bytes.Index(pdf, marker)
	stamp := at.Format("20060102150405")
	if i < 0 || len(pdf) < i+len(marker)+len(stamp) {
		return pdf
	}
	copy(pdf[i+len(marker):], stamp)
	return pdf
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título centrado y fecha de generación a la derecha.
func (r *PDFRenderer) titleRow(doc *export.Document) core.Row {
	return row.New(16).Add(
		col.New(gridSize).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
			text.New(r.formatter.FormatDateTime(doc.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 10,
			}),
		),
	)
}

// tableRows: título de la sección, cabecera con fondo y hasta MaxPDFRows filas.
func (r *PDFRenderer) tableRows(s export.Sheet) []core.Row {
	a := r.textAlign()
	columns := r.orderedColumns(s.Columns)
	sizes := columnSizes(len(columns))

	rows := []core.Row{
		row.New(4),
		row.New(8).Add(col.New(gridSize).Add(text.New(s.Name, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a, Color: colorPrimary, Top: 2,
		}))),
	}
	if len(columns) == 0 {
		return rows
	}

	header := make([]core.Col, len(columns))
	for i, c := range columns {
		header[i] = col.New(sizes[i]).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	rows = append(rows, row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(header...))

	data := LimitRows(s.Rows)
	for n, values := range data {
		cells := make([]core.Col, len(columns))
		for i, c := range columns {
			cells[i] = col.New(sizes[i]).Add(text.New(displayText(r.formatter, values[c.Key], c.Format), props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		dr := row.New(6).Add(cells...)
		if n%2 == 1 {
			dr = dr.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, dr)
	}

	if omitted := len(s.Rows) - len(data); omitted > 0 {
		note := fmt.Sprintf("%s / %s",
			r.formatter.FormatNumber(int64(len(data))),
			r.formatter.FormatNumber(int64(len(s.Rows))))
		rows = append(rows, row.New(6).Add(col.New(gridSize).Add(text.New(note, props.Text{
			Size: 7, Align: a, Color: colorGray, Top: 1,
		}))))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// LimitRows primeras MaxPDFRows filas, en orden.
func LimitRows(rows []export.Row) []export.Row {
	if len(rows) > MaxPDFRows {
		return rows[:MaxPDFRows]
	}
	return rows
}

func (r *PDFRenderer) textAlign() align.Type {
	if r.formatter.RightToLeft() {
		return align.Right
	}
	return align.Left
}

// orderedColumns invierte el orden de las columnas en idiomas RTL. Como máximo gridSize columnas.
func (r *PDFRenderer) orderedColumns(columns []export.Column) []export.Column {
	if len(columns) > gridSize {
		columns = columns[:gridSize]
	}
	out := make([]export.Column, len(columns))
	copy(out, columns)
	if r.formatter.RightToLeft() {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// columnSizes reparte la grilla entre n columnas; el sobrante va a las primeras.
func columnSizes(n int) []int {
	if n == 0 {
		return nil
	}
	sizes := make([]int, n)
	base, rem := gridSize/n, gridSize%n
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}
