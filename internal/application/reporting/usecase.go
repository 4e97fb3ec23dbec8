// Package reporting orquesta la generación de reportes: resuelve la ventana de fechas,
// consulta los repositorios, invoca el motor de agregación y enriquece el resultado.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/charity-reports-api/internal/domain"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

// Deps dependencias del caso de uso. Cache y Metrics son opcionales.
type Deps struct {
	Orders    repository.OrderRepository
	Donations repository.DonationRepository
	Needs     repository.NeedRepository
	Products  repository.ProductRepository
	Charities repository.CharityRepository
	Cache     ReportCache
	CacheTTL  time.Duration
	Metrics   Metrics
	Logger    zerolog.Logger
	Now       func() time.Time
}

// generator construye un payload para la ventana y filtros dados.
type generator func(ctx context.Context, window repository.DateRange, f Filters) (report.Payload, error)

// ReportUseCase genera reportes estadísticos.
type ReportUseCase struct {
	orders    repository.OrderRepository
	donations repository.DonationRepository
	needs     repository.NeedRepository
	products  repository.ProductRepository
	charities repository.CharityRepository
	cache     ReportCache
	cacheTTL  time.Duration
	metrics   Metrics
	log       zerolog.Logger
	now       func() time.Time

	generators map[report.Kind]generator
}

// NewReportUseCase construye el orquestador.
func NewReportUseCase(d Deps) *ReportUseCase {
	uc := &ReportUseCase{
		orders:    d.Orders,
		donations: d.Donations,
		needs:     d.Needs,
		products:  d.Products,
		charities: d.Charities,
		cache:     d.Cache,
		cacheTTL:  d.CacheTTL,
		metrics:   d.Metrics,
		log:       d.Logger,
		now:       d.Now,
	}
	if uc.metrics == nil {
		uc.metrics = nopMetrics{}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.cacheTTL <= 0 {
		uc.cacheTTL = 10 * time.Minute
	}
	uc.generators = map[report.Kind]generator{
		report.KindSales:     uc.sales,
		report.KindDonations: uc.donationsReport,
		report.KindNeeds:     uc.needsReport,
		report.KindProducts:  uc.productsReport,
		report.KindFinancial: uc.financial,
		report.KindCharities: uc.charitiesReport,
	}
	return uc
}

// Generate produce el payload del tipo pedido. Los reportes con rango explícito se cachean
// (si hay caché configurada), porque su resultado no depende del instante de la consulta.
func (uc *ReportUseCase) Generate(ctx context.Context, kind report.Kind, f Filters) (payload report.Payload, err error) {
	gen, ok := uc.generators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedReportType, kind)
	}

	start := uc.now()
	defer func() { uc.metrics.ObserveReport(string(kind), time.Since(start), err) }()

	now := start.UTC()
	window, label, err := ResolvePeriod(now, f)
	if err != nil {
		return nil, err
	}

	cacheKey := ""
	if uc.cache != nil && f.HasExplicitRange() {
		cacheKey = cacheKeyFor(kind, f)
		if p := uc.fromCache(ctx, kind, cacheKey); p != nil {
			uc.metrics.ReportCacheHit(string(kind))
			return p, nil
		}
	}

	payload, err = gen(ctx, window, f)
	if err != nil {
		return nil, fmt.Errorf("reporting.Generate %s: %w", kind, err)
	}
	meta := report.Meta{
		GeneratedAt: now,
		Period:      report.Period{Start: window.Start, End: window.End, Label: label},
		Filters:     f.asMap(),
	}
	if kind == report.KindCharities {
		// impacto acumulado: no se restringe a la ventana
		meta.Period = report.Period{Label: "all_time"}
	}
	payload.Stamp(meta)

	uc.log.Info().
		Str("report_type", string(kind)).
		Str("period", label).
		Dur("elapsed", time.Since(start)).
		Msg("reporte generado")

	if cacheKey != "" {
		uc.toCache(ctx, cacheKey, payload)
	}
	return payload, nil
}

func cacheKeyFor(kind report.Kind, f Filters) string {
	return fmt.Sprintf("report:%s:%s:%s:%s:%s:%s:%s:%s:%t:%t",
		kind,
		f.StartDate.UTC().Format(time.RFC3339), f.EndDate.UTC().Format(time.RFC3339),
		f.CharityID, f.NeedID, f.VendorID, f.Category, f.Search, f.VerifiedOnly, f.Compare,
	)
}

func (uc *ReportUseCase) fromCache(ctx context.Context, kind report.Kind, key string) report.Payload {
	data, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de reportes no disponible")
		return nil
	}
	if !ok {
		return nil
	}
	p, err := report.Decode(kind, data)
	if err != nil {
		// entrada corrupta: se regenera
		uc.log.Warn().Err(err).Str("key", key).Msg("entrada de caché inválida")
		return nil
	}
	return p
}

func (uc *ReportUseCase) toCache(ctx context.Context, key string, p report.Payload) {
	data, err := json.Marshal(p)
	if err != nil {
		uc.log.Warn().Err(err).Msg("serializar reporte para caché")
		return
	}
	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("guardar reporte en caché")
	}
}
