package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/charity-reports-api/internal/application/dto"
	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

// reportService lo implementa *reporting.ReportUseCase.
type reportService interface {
	Generate(ctx context.Context, kind report.Kind, f reporting.Filters) (report.Payload, error)
	IncomeStatement(ctx context.Context, year int, charityID string) (*report.IncomeStatement, error)
	CharityFinancials(ctx context.Context, charityID string, year int) (*report.CharityFinancials, error)
}

// ReportHandler maneja los endpoints de reportes.
type ReportHandler struct {
	uc      reportService
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

// NewReportHandler construye el handler. timeout <= 0 desactiva el límite.
func NewReportHandler(uc reportService, timeout time.Duration, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, timeout: timeout, log: log, now: time.Now}
}

func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), timeout)
}

// Generate godoc
// @Summary      Genera un reporte
// @Description  Tipos: sales, donations, needs, products, financial, charities. El rango explícito
// @Description  (start_date + end_date) tiene prioridad sobre period. compare=true añade la
// @Description  comparación con el período anterior (sales, donations, financial).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type           path   string  true   "Tipo de reporte"
// @Param        period         query  string  false  "daily | weekly | monthly | quarterly | yearly"
// @Param        start_date     query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date       query  string  false  "Fin inclusive (YYYY-MM-DD)"
// @Param        charity_id     query  string  false  "Organización"
// @Param        need_id        query  string  false  "Necesidad"
// @Param        vendor_id      query  string  false  "Vendedor (products, sales)"
// @Param        category       query  string  false  "Categoría"
// @Param        search         query  string  false  "Búsqueda (charities)"
// @Param        verified_only  query  bool    false  "Sólo organizaciones verificadas"
// @Param        compare        query  bool    false  "Comparar con el período anterior"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/reports/{type} [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	kind, err := report.ParseKind(c.Params("type"))
	if err != nil {
		return writeError(c, h.log, err)
	}

	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	if err := validate.Struct(q); err != nil {
		return validationError(c, err)
	}
	f, err := toFilters(q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := scopeFilters(c, kind, &f); err != nil {
		return writeError(c, h.log, err)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()
	payload, err := h.uc.Generate(ctx, kind, f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(payload)
}

// IncomeStatement godoc
// @Summary      Estado de ingresos anual
// @Description  Doce filas mensuales de ventas, donaciones e ingreso total. ADMIN puede filtrar por
// @Description  organización; CHARITY_MANAGER sólo ve la suya.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year        query  int     false  "Año (default: año actual)"
// @Param        charity_id  query  string  false  "Organización"
// @Success      200  {object}  report.IncomeStatement
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/income-statement [get]
func (h *ReportHandler) IncomeStatement(c *fiber.Ctx) error {
	var q dto.YearQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	if err := validate.Struct(q); err != nil {
		return validationError(c, err)
	}
	charityID, err := scopeCharity(c, q.CharityID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	year := q.Year
	if year == 0 {
		year = h.now().UTC().Year()
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()
	stmt, err := h.uc.IncomeStatement(ctx, year, charityID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(stmt)
}

// CharityFinancials godoc
// @Summary      Resumen financiero anual de una organización
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "Organización"
// @Param        year  query  int     false  "Año (default: año actual)"
// @Success      200  {object}  report.CharityFinancials
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/charities/{id}/financials [get]
func (h *ReportHandler) CharityFinancials(c *fiber.Ctx) error {
	var q dto.YearQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	if err := validate.Struct(q); err != nil {
		return validationError(c, err)
	}
	charityID, err := scopeCharity(c, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	year := q.Year
	if year == 0 {
		year = h.now().UTC().Year()
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()
	out, err := h.uc.CharityFinancials(ctx, charityID, year)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
