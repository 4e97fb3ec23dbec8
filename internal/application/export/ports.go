package export

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

// Renderer serializa un documento en un formato concreto.
type Renderer interface {
	Render(ctx context.Context, doc *Document) ([]byte, error)
}

// Formatter capacidad de formato dependiente del locale, inyectada en los renderizadores.
type Formatter interface {
	FormatCurrency(amount decimal.Decimal) string
	FormatPercent(value decimal.Decimal) string
	FormatNumber(n int64) string
	FormatDate(t time.Time) string
	FormatDateTime(t time.Time) string
	RightToLeft() bool
}

// CleanupFailure archivo que no pudo eliminarse durante la limpieza.
type CleanupFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// CleanupResult resultado de una limpieza por antigüedad.
type CleanupResult struct {
	Deleted  int              `json:"deleted_files"`
	Failures []CleanupFailure `json:"failures,omitempty"`
}

// FileStore almacenamiento de artefactos exportados.
// Retrieve devuelve domain.ErrNotFound si el archivo no existe o el nombre no es válido.
type FileStore interface {
	Store(ctx context.Context, name string, data []byte) (int64, error)
	Retrieve(ctx context.Context, name string) ([]byte, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (CleanupResult, error)
}

// ReportGenerator fuente de payloads (implementado por reporting.ReportUseCase).
type ReportGenerator interface {
	Generate(ctx context.Context, kind report.Kind, f reporting.Filters) (report.Payload, error)
}

// Metrics instrumentación de exportaciones.
type Metrics interface {
	ObserveExport(format string, size int, err error)
	ObserveCleanup(deleted, failed int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveExport(string, int, error) {}
func (nopMetrics) ObserveCleanup(int, int)          {}
