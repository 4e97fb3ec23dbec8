package reporting

import (
	"context"
	"time"
)

// ReportCache puerto de caché de payloads serializados (implementado sobre Redis).
// Get devuelve (nil, false, nil) ante un fallo de caché.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Metrics puerto de instrumentación del orquestador.
type Metrics interface {
	ObserveReport(kind string, elapsed time.Duration, err error)
	ReportCacheHit(kind string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveReport(string, time.Duration, error) {}
func (nopMetrics) ReportCacheHit(string)                      {}
