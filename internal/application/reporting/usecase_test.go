package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/internal/domain"
	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fixture struct {
	orders    *fakeOrders
	donations *fakeDonations
	needs     *fakeNeeds
	products  *fakeProducts
	charities *fakeCharities
	cache     *memoryCache
	metrics   *countingMetrics
}

func newFixture() *fixture {
	daysAgo := func(n int) time.Time { return fixedNow.AddDate(0, 0, -n) }
	f := &fixture{
		orders: &fakeOrders{
			orders: []*entity.Order{
				{ID: "o1", Status: entity.OrderStatusDelivered, GrandTotal: dec(100), CharityAmount: dec(10), CharityID: "ch1", CustomerID: "u1", CreatedAt: daysAgo(1)},
				{ID: "o2", Status: entity.OrderStatusConfirmed, GrandTotal: dec(200), CharityAmount: dec(20), CharityID: "ch1", CustomerID: "u2", CreatedAt: daysAgo(2)},
				{ID: "o3", Status: entity.OrderStatusCancelled, GrandTotal: dec(999), CharityAmount: dec(99), CreatedAt: daysAgo(2)},
				{ID: "o4", Status: entity.OrderStatusDelivered, GrandTotal: dec(50), CharityAmount: dec(5), CreatedAt: daysAgo(45)},
			},
			items: []*entity.OrderItem{
				{OrderID: "o1", ProductID: "p1", ProductName: "nombre viejo", Quantity: 2, Subtotal: dec(100)},
				{OrderID: "o2", ProductID: "p-borrado", ProductName: "Huérfano", Quantity: 1, Subtotal: dec(200)},
				{OrderID: "o3", ProductID: "p1", Quantity: 50, Subtotal: dec(999)},
			},
		},
		donations: &fakeDonations{donations: []*entity.Donation{
			{Amount: dec(300), Status: entity.DonationStatusCompleted, CharityID: "ch1", NeedID: "n1", CreatedAt: daysAgo(3)},
			{Amount: dec(700), Status: entity.DonationStatusPending, CharityID: "ch1", CreatedAt: daysAgo(3)},
		}},
		needs: &fakeNeeds{needs: []*entity.NeedAd{
			{ID: "n1", Title: "Útiles escolares", CharityID: "ch1", TargetAmount: dec(1000), CollectedAmount: dec(300), Status: entity.NeedStatusActive, CreatedAt: daysAgo(5)},
		}},
		products: &fakeProducts{products: []*entity.Product{
			{ID: "p1", Name: "Taza solidaria", Category: "hogar", VendorName: "Taller Sur", Price: dec(50), StockQuantity: 3, Status: entity.ProductStatusActive, VendorID: "v1"},
		}},
		charities: &fakeCharities{charities: []*entity.Charity{
			{ID: "ch1", Name: "Fundación Luz", Verified: true},
			{ID: "ch2", Name: "Refugio Animal"},
		}},
		cache:   newMemoryCache(),
		metrics: &countingMetrics{},
	}
	f.orders.catalog = f.products
	return f
}

func (f *fixture) useCase() *reporting.ReportUseCase {
	return reporting.NewReportUseCase(reporting.Deps{
		Orders:    f.orders,
		Donations: f.donations,
		Needs:     f.needs,
		Products:  f.products,
		Charities: f.charities,
		Cache:     f.cache,
		Metrics:   f.metrics,
		Logger:    zerolog.Nop(),
		Now:       func() time.Time { return fixedNow },
	})
}

// ── Período ───────────────────────────────────────────────────────────────────

func TestResolvePeriod(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filters   reporting.Filters
		wantStart time.Time
		wantLabel string
	}{
		{"por defecto 30 días", reporting.Filters{}, fixedNow.AddDate(0, 0, -30), "monthly"},
		{"diario", reporting.Filters{Period: "daily"}, fixedNow.Add(-24 * time.Hour), "daily"},
		{"semanal", reporting.Filters{Period: "weekly"}, fixedNow.AddDate(0, 0, -7), "weekly"},
		{"trimestral", reporting.Filters{Period: "quarterly"}, fixedNow.AddDate(0, 0, -90), "quarterly"},
		{"anual", reporting.Filters{Period: "yearly"}, fixedNow.AddDate(0, 0, -365), "yearly"},
		{"desconocido cae al defecto", reporting.Filters{Period: "bimestral"}, fixedNow.AddDate(0, 0, -30), "monthly"},
		{"rango explícito gana", reporting.Filters{Period: "daily", StartDate: &start, EndDate: &end}, start, "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, label, err := reporting.ResolvePeriod(fixedNow, tt.filters)
			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(rng.Start), "start = %s", rng.Start)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestResolvePeriod_RangoInvertido(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := reporting.ResolvePeriod(fixedNow, reporting.Filters{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPreviousWindow_MismaDuracion(t *testing.T) {
	rng, _, _ := reporting.ResolvePeriod(fixedNow, reporting.Filters{Period: "weekly"})
	prev := reporting.PreviousWindow(rng)
	assert.True(t, prev.Start.Equal(rng.Start.AddDate(0, 0, -7)))
	assert.True(t, prev.End.Before(rng.Start))
}

// ── Generate ──────────────────────────────────────────────────────────────────

func TestGenerate_TipoDesconocido(t *testing.T) {
	uc := newFixture().useCase()
	_, err := uc.Generate(context.Background(), report.Kind("inventory"), reporting.Filters{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedReportType)
}

func TestGenerate_VentasExcluyeCanceladosYEnriquece(t *testing.T) {
	f := newFixture()
	p, err := f.useCase().Generate(context.Background(), report.KindSales, reporting.Filters{})
	require.NoError(t, err)

	rep, ok := p.(*report.SalesReport)
	require.True(t, ok)
	assert.Equal(t, 2, rep.Summary.TotalOrders, "cancelados y fuera de ventana excluidos")
	assert.True(t, rep.Summary.TotalRevenue.Equal(dec(300)))
	assert.Equal(t, 3, rep.Summary.TotalItemsSold)
	assert.True(t, fixedNow.Equal(rep.GeneratedAt))
	assert.Equal(t, "monthly", rep.Period.Label)

	require.Len(t, rep.ByProduct, 2)
	assert.Equal(t, "Taza solidaria", rep.ByProduct[0].ProductName)
	assert.Equal(t, "hogar", rep.ByProduct[0].Category)
	assert.Equal(t, "Huérfano", rep.ByProduct[1].ProductName, "producto inexistente conserva el nombre de la línea")

	require.Len(t, rep.ByCharity, 1)
	assert.Equal(t, "Fundación Luz", rep.ByCharity[0].CharityName)
	assert.Len(t, rep.DailyTrend, 2)
	assert.Empty(t, rep.Compare)
}

func TestGenerate_EnriquecimientoToleraErrores(t *testing.T) {
	f := newFixture()
	f.products.getErr = errDB
	p, err := f.useCase().Generate(context.Background(), report.KindSales, reporting.Filters{})
	require.NoError(t, err)

	rep := p.(*report.SalesReport)
	assert.Equal(t, "nombre viejo", rep.ByProduct[0].ProductName)
}

func TestGenerate_ErrorDeRepositorio(t *testing.T) {
	f := newFixture()
	f.orders.err = errDB
	_, err := f.useCase().Generate(context.Background(), report.KindFinancial, reporting.Filters{})
	require.ErrorIs(t, err, errDB)
	assert.Equal(t, 1, f.metrics.errors)
}

func TestGenerate_DonacionesSoloCompletadas(t *testing.T) {
	p, err := newFixture().useCase().Generate(context.Background(), report.KindDonations, reporting.Filters{})
	require.NoError(t, err)

	rep := p.(*report.DonationsReport)
	assert.Equal(t, 1, rep.Summary.TotalDonations)
	require.Len(t, rep.ByNeed, 1)
	assert.Equal(t, "Útiles escolares", rep.ByNeed[0].NeedTitle)
}

func TestGenerate_FinancieroConComparacion(t *testing.T) {
	p, err := newFixture().useCase().Generate(context.Background(), report.KindFinancial, reporting.Filters{Compare: true})
	require.NoError(t, err)

	rep := p.(*report.FinancialReport)
	assert.True(t, rep.Summary.TotalRevenue.Equal(dec(300)))
	assert.True(t, rep.Summary.TotalCharity.Equal(dec(330)))
	require.NotEmpty(t, rep.Comparison())

	revenue := rep.Comparison()[0]
	assert.Equal(t, "total_revenue", revenue.Metric)
	assert.True(t, revenue.Previous.Equal(dec(50)))
	assert.Equal(t, "500", revenue.GrowthPct.String())
}

func TestGenerate_ProductosConMasVendidos(t *testing.T) {
	p, err := newFixture().useCase().Generate(context.Background(), report.KindProducts, reporting.Filters{})
	require.NoError(t, err)

	rep := p.(*report.ProductsReport)
	assert.Equal(t, 1, rep.Summary.TotalProducts)
	require.Len(t, rep.TopSelling, 1, "sólo líneas de pedidos entregados")
	assert.Equal(t, "Taza solidaria", rep.TopSelling[0].ProductName)
}

func TestGenerate_OrganizacionesAcumulado(t *testing.T) {
	p, err := newFixture().useCase().Generate(context.Background(), report.KindCharities, reporting.Filters{VerifiedOnly: true})
	require.NoError(t, err)

	rep := p.(*report.CharitiesReport)
	assert.Equal(t, "all_time", rep.Period.Label)
	require.Len(t, rep.Charities, 1)
	// 300 de donación completada + 10 + 20 de pedidos entregados/confirmados (el pedido antiguo no tiene organización)
	assert.True(t, rep.Charities[0].TotalReceived.Equal(dec(330)), rep.Charities[0].TotalReceived.String())
}

func TestGenerate_CacheSoloConRangoExplicito(t *testing.T) {
	f := newFixture()
	uc := f.useCase()
	ctx := context.Background()

	_, err := uc.Generate(ctx, report.KindSales, reporting.Filters{})
	require.NoError(t, err)
	assert.Equal(t, 0, f.cache.sets, "ventanas relativas no se cachean")

	start, end := fixedNow.AddDate(0, 0, -10), fixedNow
	filters := reporting.Filters{StartDate: &start, EndDate: &end}
	first, err := uc.Generate(ctx, report.KindSales, filters)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.sets)

	second, err := uc.Generate(ctx, report.KindSales, filters)
	require.NoError(t, err)
	assert.Equal(t, 1, f.metrics.hits)
	assert.True(t, first.(*report.SalesReport).Summary.TotalRevenue.Equal(second.(*report.SalesReport).Summary.TotalRevenue))
}

// ── Estados anuales ───────────────────────────────────────────────────────────

func TestIncomeStatement(t *testing.T) {
	st, err := newFixture().useCase().IncomeStatement(context.Background(), 2024, "")
	require.NoError(t, err)
	require.Len(t, st.Months, 12)
	assert.True(t, st.Months[5].Revenue.Equal(dec(300)), "junio: pedidos entregados y confirmados")
	assert.True(t, st.Months[4].Revenue.Equal(dec(50)), "mayo")
	assert.True(t, st.TotalDonations.Equal(dec(300)))

	_, err = newFixture().useCase().IncomeStatement(context.Background(), 12, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCharityFinancials_NoExiste(t *testing.T) {
	_, err := newFixture().useCase().CharityFinancials(context.Background(), "nope", 2024)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCharityFinancials(t *testing.T) {
	cf, err := newFixture().useCase().CharityFinancials(context.Background(), "ch1", 2024)
	require.NoError(t, err)
	assert.Equal(t, "Fundación Luz", cf.CharityName)
	assert.Equal(t, 1, cf.DonationCount)
	assert.Equal(t, 2, cf.OrderCount)
	assert.True(t, cf.TotalReceived.Equal(dec(330)))
}

func TestCharityFinancials_AnioFueraDeRango(t *testing.T) {
	uc := newFixture().useCase()
	for _, year := range []int{0, 1999, 10000} {
		_, err := uc.CharityFinancials(context.Background(), "ch1", year)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "año %d", year)
	}
}

// ── Alcance por vendedor y categoría ──────────────────────────────────────────

func TestGenerate_VentasFiltradasPorVendedor(t *testing.T) {
	f := newFixture()
	p, err := f.useCase().Generate(context.Background(), report.KindSales, reporting.Filters{VendorID: "v1"})
	require.NoError(t, err)

	rep := p.(*report.SalesReport)
	// sólo o1 tiene líneas de productos de v1
	assert.Equal(t, 1, rep.Summary.TotalOrders)
	assert.True(t, rep.Summary.TotalRevenue.Equal(dec(100)), rep.Summary.TotalRevenue.String())
	assert.True(t, rep.Summary.TotalCharityAmount.Equal(dec(10)))
	assert.Equal(t, 2, rep.Summary.TotalItemsSold)
	require.Len(t, rep.ByProduct, 1)
	assert.Equal(t, "p1", rep.ByProduct[0].ProductID)
	assert.Len(t, rep.DailyTrend, 1)
	require.Len(t, rep.ByCharity, 1)
	assert.True(t, rep.ByCharity[0].CharityAmount.Equal(dec(10)))
}

func TestGenerate_VendedorSinVentasVeCeros(t *testing.T) {
	p, err := newFixture().useCase().Generate(context.Background(), report.KindSales, reporting.Filters{VendorID: "vendedor-sin-ventas"})
	require.NoError(t, err)

	rep := p.(*report.SalesReport)
	assert.Zero(t, rep.Summary.TotalOrders)
	assert.True(t, rep.Summary.TotalRevenue.IsZero())
	assert.True(t, rep.Summary.TotalCharityAmount.IsZero())
	assert.True(t, rep.Summary.AverageOrderValue.IsZero())
	assert.Empty(t, rep.ByCharity)
	assert.Empty(t, rep.DailyTrend)
	assert.Empty(t, rep.MonthlyTrend)
}

func TestGenerate_VentasVendedorYCategoriaSeCombinan(t *testing.T) {
	uc := newFixture().useCase()

	p, err := uc.Generate(context.Background(), report.KindSales, reporting.Filters{Category: "hogar"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.(*report.SalesReport).Summary.TotalOrders)

	p, err = uc.Generate(context.Background(), report.KindSales, reporting.Filters{VendorID: "v1", Category: "ropa"})
	require.NoError(t, err)
	assert.Zero(t, p.(*report.SalesReport).Summary.TotalOrders)
}

func TestGenerate_FinancieroFiltradoPorVendedor(t *testing.T) {
	p, err := newFixture().useCase().Generate(context.Background(), report.KindFinancial, reporting.Filters{VendorID: "v1"})
	require.NoError(t, err)

	rep := p.(*report.FinancialReport)
	assert.True(t, rep.Summary.TotalRevenue.Equal(dec(100)), rep.Summary.TotalRevenue.String())
}
