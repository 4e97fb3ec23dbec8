package http

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/charity-reports-api/internal/application/dto"
	"github.com/jhoicas/charity-reports-api/internal/application/export"
	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/internal/domain"
)

// exportService lo implementa *export.ExportUseCase.
type exportService interface {
	ExportReport(ctx context.Context, tmpl export.Template, format export.Format, title string, f reporting.Filters) (*dto.ExportResult, error)
	Download(ctx context.Context, filename string) ([]byte, string, error)
	Cleanup(ctx context.Context, days int) (*dto.CleanupResponse, error)
}

// ExportHandler maneja generación, descarga y limpieza de exportaciones.
type ExportHandler struct {
	uc            exportService
	timeout       time.Duration
	retentionDays int
	log           zerolog.Logger
}

// NewExportHandler construye el handler. retentionDays es el valor por defecto de la limpieza.
func NewExportHandler(uc exportService, timeout time.Duration, retentionDays int, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, timeout: timeout, retentionDays: retentionDays, log: log}
}

// Create godoc
// @Summary      Exporta un reporte
// @Description  Genera el reporte de origen de la plantilla y lo serializa en csv, excel, pdf o json.
// @Description  CSV sólo incluye la primera hoja.
// @Tags         exports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExportRequest  true  "Plantilla, formato, título y filtros"
// @Success      201  {object}  dto.ExportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/exports [post]
func (h *ExportHandler) Create(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo JSON inválido",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return writeError(c, h.log, err)
	}
	tmpl, err := export.ParseTemplate(req.Template)
	if err != nil {
		return writeError(c, h.log, err)
	}
	f, err := toFilters(req.Filters)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := scopeFilters(c, tmpl.ReportKind(), &f); err != nil {
		return writeError(c, h.log, err)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()
	res, err := h.uc.ExportReport(ctx, tmpl, format, req.Title, f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Download godoc
// @Summary      Descarga un archivo exportado
// @Tags         exports
// @Security     Bearer
// @Produce      octet-stream
// @Param        filename  path  string  true  "Nombre devuelto por POST /api/exports"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exports/download/{filename} [get]
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	name := c.Params("filename")
	data, contentType, err := h.uc.Download(c.UserContext(), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}

// Cleanup godoc
// @Summary      Elimina exportaciones antiguas
// @Description  Borra los archivos con más de `days` días. Los fallos individuales no abortan la
// @Description  limpieza; success=false indica limpieza parcial.
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Antigüedad mínima en días (>= 1)"
// @Success      200  {object}  dto.CleanupResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/exports/cleanup [delete]
func (h *ExportHandler) Cleanup(c *fiber.Ctx) error {
	days := h.retentionDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, h.log, fmt.Errorf("%w: days debe ser un entero", domain.ErrInvalidInput))
		}
		days = n
	}
	if err := validate.Var(days, "min=1"); err != nil {
		return validationError(c, err)
	}
	res, err := h.uc.Cleanup(c.UserContext(), days)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}
