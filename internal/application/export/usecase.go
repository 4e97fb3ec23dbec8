// Package export convierte payloads de reportes en artefactos descargables: modela las hojas
// según la plantilla, delega la serialización al renderizador del formato pedido y persiste
// el resultado en el almacén de exportaciones.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/charity-reports-api/internal/application/dto"
	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/internal/domain"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

// Deps dependencias del caso de uso. Metrics, Now y Token son opcionales.
type Deps struct {
	Reports   ReportGenerator
	Renderers map[Format]Renderer
	Store     FileStore
	BaseURL   string // prefijo de file_url, ej. /api/exports/download
	Metrics   Metrics
	Logger    zerolog.Logger
	Now       func() time.Time
	Token     func() string
}

// ExportUseCase genera, guarda, sirve y limpia exportaciones.
type ExportUseCase struct {
	reports   ReportGenerator
	renderers map[Format]Renderer
	store     FileStore
	baseURL   string
	metrics   Metrics
	log       zerolog.Logger
	now       func() time.Time
	token     func() string
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(d Deps) *ExportUseCase {
	uc := &ExportUseCase{
		reports:   d.Reports,
		renderers: d.Renderers,
		store:     d.Store,
		baseURL:   strings.TrimRight(d.BaseURL, "/"),
		metrics:   d.Metrics,
		log:       d.Logger,
		now:       d.Now,
		token:     d.Token,
	}
	if uc.metrics == nil {
		uc.metrics = nopMetrics{}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.token == nil {
		uc.token = randomToken
	}
	return uc
}

// randomToken 8 caracteres hexadecimales para desambiguar nombres generados en el mismo segundo.
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Filename nombre del artefacto: {plantilla}_{YYYYMMDD_HHMMSS UTC}_{token}.{ext}
func Filename(tmpl Template, format Format, at time.Time, token string) string {
	return fmt.Sprintf("%s_%s_%s.%s", tmpl, at.UTC().Format("20060102_150405"), token, format.Extension())
}

// ExportReport genera el reporte de origen de la plantilla y lo exporta.
func (uc *ExportUseCase) ExportReport(
	ctx context.Context,
	tmpl Template,
	format Format,
	title string,
	f reporting.Filters,
) (*dto.ExportResult, error) {
	if _, ok := uc.renderers[format]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	payload, err := uc.reports.Generate(ctx, tmpl.ReportKind(), f)
	if err != nil {
		return nil, err
	}
	return uc.Export(ctx, payload, tmpl, format, title)
}

// Export renderiza el payload y lo persiste.
func (uc *ExportUseCase) Export(
	ctx context.Context,
	payload report.Payload,
	tmpl Template,
	format Format,
	title string,
) (result *dto.ExportResult, err error) {
	defer func() {
		size := 0
		if result != nil {
			size = int(result.FileSize)
		}
		uc.metrics.ObserveExport(string(format), size, err)
	}()

	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	doc := Shape(tmpl, payload, title)
	data, err := renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("export.Export render %s: %w", format, err)
	}

	now := uc.now().UTC()
	name := Filename(tmpl, format, now, uc.token())
	size, err := uc.store.Store(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("export.Export: %w", err)
	}

	result = &dto.ExportResult{
		Success:     true,
		Format:      string(format),
		Filename:    name,
		FileSize:    size,
		FileURL:     uc.baseURL + "/" + name,
		GeneratedAt: now,
	}
	if format == FormatExcel {
		result.Sheets = WorkbookSheetNames(doc)
	}

	uc.log.Info().
		Str("template", string(tmpl)).
		Str("format", string(format)).
		Str("filename", name).
		Int64("bytes", size).
		Msg("exportación generada")
	return result, nil
}

// WorkbookSheetNames hojas que contendrá el libro: las del diseño más las secciones opcionales.
func WorkbookSheetNames(doc *Document) []string {
	names := doc.SheetNames()
	if doc.Ranking != nil {
		names = append(names, doc.Ranking.Name)
	}
	if doc.Comparison != nil {
		names = append(names, doc.Comparison.Name)
	}
	return names
}

// Download devuelve el contenido del artefacto y su tipo MIME. ErrNotFound si no existe.
func (uc *ExportUseCase) Download(ctx context.Context, filename string) ([]byte, string, error) {
	data, err := uc.store.Retrieve(ctx, filename)
	if err != nil {
		return nil, "", err
	}
	contentType := "application/octet-stream"
	if f, ok := FormatFromFilename(filename); ok {
		contentType = f.ContentType()
	}
	return data, contentType, nil
}

// Cleanup elimina exportaciones con más de days días. Los fallos individuales no abortan.
func (uc *ExportUseCase) Cleanup(ctx context.Context, days int) (*dto.CleanupResponse, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days debe ser >= 1", domain.ErrInvalidInput)
	}
	res, err := uc.store.Cleanup(ctx, time.Duration(days)*24*time.Hour)
	uc.metrics.ObserveCleanup(res.Deleted, len(res.Failures))
	if err != nil {
		return nil, fmt.Errorf("export.Cleanup: %w", err)
	}

	out := &dto.CleanupResponse{
		Success:      len(res.Failures) == 0,
		DeletedFiles: res.Deleted,
		Message:      fmt.Sprintf("%d archivo(s) con más de %d día(s) eliminados", res.Deleted, days),
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, dto.CleanupFailure{Filename: f.Filename, Error: f.Error})
	}
	uc.log.Info().
		Int("days", days).
		Int("deleted", res.Deleted).
		Int("failed", len(res.Failures)).
		Msg("limpieza de exportaciones")
	return out, nil
}
