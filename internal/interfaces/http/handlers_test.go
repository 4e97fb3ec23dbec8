package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/charity-reports-api/internal/application/dto"
	"github.com/jhoicas/charity-reports-api/internal/application/export"
	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/internal/domain"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
	apphttp "github.com/jhoicas/charity-reports-api/internal/interfaces/http"
)

// ── Fakes ───────────────────────────────────────────────────────────────────

type fakeReports struct {
	kind      report.Kind
	filters   reporting.Filters
	year      int
	charityID string
	err       error
	block     bool
}

func (f *fakeReports) Generate(ctx context.Context, kind report.Kind, fl reporting.Filters) (report.Payload, error) {
	f.kind, f.filters = kind, fl
	if f.block {
		<-ctx.Done()
		return nil, fmt.Errorf("reporting.Generate: %w", ctx.Err())
	}
	if f.err != nil {
		return nil, f.err
	}
	return &report.SalesReport{Meta: report.Meta{ReportType: kind}}, nil
}

func (f *fakeReports) IncomeStatement(_ context.Context, year int, charityID string) (*report.IncomeStatement, error) {
	f.year, f.charityID = year, charityID
	return &report.IncomeStatement{Year: year, CharityID: charityID}, f.err
}

func (f *fakeReports) CharityFinancials(_ context.Context, charityID string, year int) (*report.CharityFinancials, error) {
	f.year, f.charityID = year, charityID
	if f.err != nil {
		return nil, f.err
	}
	return &report.CharityFinancials{CharityID: charityID, Year: year}, nil
}

type fakeExports struct {
	tmpl     export.Template
	format   export.Format
	title    string
	filters  reporting.Filters
	days     int
	files    map[string][]byte
	cleanErr error
}

func (f *fakeExports) ExportReport(_ context.Context, tmpl export.Template, format export.Format, title string, fl reporting.Filters) (*dto.ExportResult, error) {
	f.tmpl, f.format, f.title, f.filters = tmpl, format, title, fl
	name := export.Filename(tmpl, format, time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC), "deadbeef")
	return &dto.ExportResult{
		Success:  true,
		Format:   string(format),
		Filename: name,
		FileURL:  "/api/exports/download/" + name,
	}, nil
}

func (f *fakeExports) Download(_ context.Context, name string) ([]byte, string, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, "", fmt.Errorf("export.Download: %w", domain.ErrNotFound)
	}
	format, _ := export.FormatFromFilename(name)
	return data, format.ContentType(), nil
}

func (f *fakeExports) Cleanup(_ context.Context, days int) (*dto.CleanupResponse, error) {
	f.days = days
	if f.cleanErr != nil {
		return nil, f.cleanErr
	}
	return &dto.CleanupResponse{Success: true, DeletedFiles: 2}, nil
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func buildRouter(reports *fakeReports, exports *fakeExports, timeout time.Duration) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Reports:   apphttp.NewReportHandler(reports, timeout, zerolog.Nop()),
		Exports:   apphttp.NewExportHandler(exports, timeout, 7, zerolog.Nop()),
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, target, auth string, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e.Code
}

// ── Reportes ────────────────────────────────────────────────────────────────

func TestReport_Generate_AdminConRango(t *testing.T) {
	reports := &fakeReports{}
	app := buildRouter(reports, &fakeExports{}, time.Second)

	resp := call(t, app, http.MethodGet,
		"/api/reports/sales?start_date=2024-01-01&end_date=2024-01-31&compare=true&charity_id=c9",
		tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, report.KindSales, reports.kind)
	require.True(t, reports.filters.HasExplicitRange())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *reports.filters.StartDate)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *reports.filters.EndDate)
	assert.True(t, reports.filters.Compare)
	assert.Equal(t, "c9", reports.filters.CharityID)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "sales", body["report_type"])
}

func TestReport_Generate_TipoDesconocido(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodGet, "/api/reports/inventory", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_REPORT_TYPE", errorCode(t, resp))
}

func TestReport_Generate_PeriodoInvalido(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodGet, "/api/reports/sales?period=hourly", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
}

func TestReport_Generate_CharityManagerForzadoASuOrganizacion(t *testing.T) {
	reports := &fakeReports{}
	app := buildRouter(reports, &fakeExports{}, time.Second)

	resp := call(t, app, http.MethodGet, "/api/reports/donations?charity_id=otra",
		tokenForRole(t, apphttp.RoleCharityManager), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testCharityID, reports.filters.CharityID)
}

func TestReport_Generate_VendorSinAccesoADonaciones(t *testing.T) {
	reports := &fakeReports{}
	app := buildRouter(reports, &fakeExports{}, time.Second)

	resp := call(t, app, http.MethodGet, "/api/reports/donations", tokenForRole(t, apphttp.RoleVendor), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
	assert.Empty(t, reports.kind, "no debe generarse el reporte")
}

func TestReport_Generate_VendorForzadoASusProductos(t *testing.T) {
	reports := &fakeReports{}
	app := buildRouter(reports, &fakeExports{}, time.Second)

	resp := call(t, app, http.MethodGet, "/api/reports/products?vendor_id=otro", tokenForRole(t, apphttp.RoleVendor), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testVendorID, reports.filters.VendorID)
}

func TestReport_Generate_Timeout(t *testing.T) {
	app := buildRouter(&fakeReports{block: true}, &fakeExports{}, 20*time.Millisecond)
	resp := call(t, app, http.MethodGet, "/api/reports/sales", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "TIMEOUT", errorCode(t, resp))
}

func TestReport_Generate_ErrorInternoNoExponeDetalle(t *testing.T) {
	app := buildRouter(&fakeReports{err: fmt.Errorf("postgres: conexión rechazada")}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodGet, "/api/reports/sales", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "postgres")
}

func TestReport_IncomeStatement_AnioPorDefecto(t *testing.T) {
	reports := &fakeReports{}
	app := buildRouter(reports, &fakeExports{}, time.Second)

	resp := call(t, app, http.MethodGet, "/api/reports/income-statement", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, time.Now().UTC().Year(), reports.year)
	assert.Empty(t, reports.charityID)
}

func TestReport_IncomeStatement_CharityManagerOtraOrganizacion(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodGet, "/api/reports/income-statement?year=2023&charity_id=otra",
		tokenForRole(t, apphttp.RoleCharityManager), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestReport_IncomeStatement_VendorBloqueado(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodGet, "/api/reports/income-statement", tokenForRole(t, apphttp.RoleVendor), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestReport_CharityFinancials(t *testing.T) {
	reports := &fakeReports{}
	app := buildRouter(reports, &fakeExports{}, time.Second)

	resp := call(t, app, http.MethodGet, "/api/reports/charities/"+testCharityID+"/financials?year=2023",
		tokenForRole(t, apphttp.RoleCharityManager), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2023, reports.year)
	assert.Equal(t, testCharityID, reports.charityID)
}

func TestReport_CharityFinancials_NoEncontrada(t *testing.T) {
	reports := &fakeReports{err: fmt.Errorf("reporting.CharityFinancials: %w", domain.ErrNotFound)}
	app := buildRouter(reports, &fakeExports{}, time.Second)

	resp := call(t, app, http.MethodGet, "/api/reports/charities/x/financials", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ── Exportaciones ───────────────────────────────────────────────────────────

func TestExport_Create(t *testing.T) {
	exports := &fakeExports{}
	app := buildRouter(&fakeReports{}, exports, time.Second)

	body := `{"template":"financial_statement","format":"EXCEL","title":"Cierre","filters":{"period":"yearly"}}`
	resp := call(t, app, http.MethodPost, "/api/exports", tokenForRole(t, apphttp.RoleAdmin), body)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, export.TemplateFinancialStatement, exports.tmpl)
	assert.Equal(t, export.FormatExcel, exports.format)
	assert.Equal(t, "Cierre", exports.title)
	assert.Equal(t, "yearly", exports.filters.Period)

	var res dto.ExportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.True(t, res.Success)
	assert.True(t, strings.HasSuffix(res.Filename, ".xlsx"))
}

func TestExport_Create_FormatoNoSoportado(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodPost, "/api/exports", tokenForRole(t, apphttp.RoleAdmin),
		`{"template":"sales_summary","format":"docx"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_FORMAT", errorCode(t, resp))
}

func TestExport_Create_SinPlantilla(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodPost, "/api/exports", tokenForRole(t, apphttp.RoleAdmin), `{"format":"csv"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
}

func TestExport_Create_VendorNoPuedeExportarFinanzas(t *testing.T) {
	exports := &fakeExports{}
	app := buildRouter(&fakeReports{}, exports, time.Second)

	resp := call(t, app, http.MethodPost, "/api/exports", tokenForRole(t, apphttp.RoleVendor),
		`{"template":"financial_statement","format":"pdf"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, exports.tmpl)
}

func TestExport_Download(t *testing.T) {
	name := "sales_summary_20240630_120000_deadbeef.csv"
	exports := &fakeExports{files: map[string][]byte{name: []byte("a,b\r\n")}}
	app := buildRouter(&fakeReports{}, exports, time.Second)

	resp := call(t, app, http.MethodGet, "/api/exports/download/"+name, tokenForRole(t, apphttp.RoleVendor), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.FormatCSV.ContentType(), resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), name)
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "a,b\r\n", string(data))
}

func TestExport_Download_Inexistente(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodGet, "/api/exports/download/nada.pdf", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExport_Cleanup(t *testing.T) {
	exports := &fakeExports{}
	app := buildRouter(&fakeReports{}, exports, time.Second)

	resp := call(t, app, http.MethodDelete, "/api/exports/cleanup?days=30", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 30, exports.days)

	resp2 := call(t, app, http.MethodDelete, "/api/exports/cleanup", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, 7, exports.days, "sin days se usa la retención configurada")
}

func TestExport_Cleanup_DiasInvalidos(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodDelete, "/api/exports/cleanup?days=abc", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, resp))
}

func TestExport_Cleanup_SoloAdmin(t *testing.T) {
	app := buildRouter(&fakeReports{}, &fakeExports{}, time.Second)
	resp := call(t, app, http.MethodDelete, "/api/exports/cleanup", tokenForRole(t, apphttp.RoleCharityManager), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExport_Cleanup_DiasCero(t *testing.T) {
	exports := &fakeExports{}
	app := buildRouter(&fakeReports{}, exports, time.Second)
	resp := call(t, app, http.MethodDelete, "/api/exports/cleanup?days=0", tokenForRole(t, apphttp.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
	assert.Zero(t, exports.days, "no debe invocarse la limpieza")
}
