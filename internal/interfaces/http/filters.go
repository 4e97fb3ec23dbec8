package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/charity-reports-api/internal/application/dto"
	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/internal/domain"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

const dateLayout = "2006-01-02"

// toFilters convierte la consulta validada en filtros. end_date incluye el día completo (UTC).
// Si sólo llega una de las dos fechas se ignora y se usa el período.
func toFilters(q dto.ReportQuery) (reporting.Filters, error) {
	f := reporting.Filters{
		Period:       q.Period,
		CharityID:    q.CharityID,
		NeedID:       q.NeedID,
		VendorID:     q.VendorID,
		Category:     q.Category,
		Search:       q.Search,
		VerifiedOnly: q.VerifiedOnly,
		Compare:      q.Compare,
	}
	if q.StartDate == "" || q.EndDate == "" {
		return f, nil
	}
	start, err := time.ParseInLocation(dateLayout, q.StartDate, time.UTC)
	if err != nil {
		return f, fmt.Errorf("%w: start_date", domain.ErrInvalidInput)
	}
	end, err := time.ParseInLocation(dateLayout, q.EndDate, time.UTC)
	if err != nil {
		return f, fmt.Errorf("%w: end_date", domain.ErrInvalidInput)
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	f.StartDate, f.EndDate = &start, &end
	return f, nil
}

// Reportes visibles por rol; ADMIN ve todos.
var roleKinds = map[string]map[report.Kind]bool{
	RoleCharityManager: {
		report.KindSales: true, report.KindDonations: true, report.KindNeeds: true,
		report.KindFinancial: true, report.KindCharities: true,
	},
	RoleVendor: {report.KindSales: true, report.KindProducts: true},
}

// scopeFilters restringe los filtros al alcance del token: CHARITY_MANAGER a su organización
// y VENDOR a sus productos. Devuelve domain.ErrForbidden si el rol no puede ver el reporte.
func scopeFilters(c *fiber.Ctx, kind report.Kind, f *reporting.Filters) error {
	role := GetRole(c)
	if role == RoleAdmin {
		return nil
	}
	kinds, ok := roleKinds[role]
	if !ok || !kinds[kind] {
		return fmt.Errorf("%w: el rol %s no puede ver el reporte %s", domain.ErrForbidden, role, kind)
	}
	switch role {
	case RoleCharityManager:
		id := GetCharityID(c)
		if id == "" {
			return fmt.Errorf("%w: token sin charity_id", domain.ErrForbidden)
		}
		f.CharityID = id
	case RoleVendor:
		id := GetVendorID(c)
		if id == "" {
			return fmt.Errorf("%w: token sin vendor_id", domain.ErrForbidden)
		}
		f.VendorID = id
	}
	return nil
}

// scopeCharity organización efectiva para los estados anuales.
func scopeCharity(c *fiber.Ctx, requested string) (string, error) {
	switch GetRole(c) {
	case RoleAdmin:
		return requested, nil
	case RoleCharityManager:
		own := GetCharityID(c)
		if own == "" || (requested != "" && requested != own) {
			return "", fmt.Errorf("%w: organización fuera de alcance", domain.ErrForbidden)
		}
		return own, nil
	default:
		return "", fmt.Errorf("%w: rol sin acceso a estados financieros", domain.ErrForbidden)
	}
}
