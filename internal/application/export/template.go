package export

import (
	"fmt"
	"strings"

	"github.com/jhoicas/charity-reports-api/internal/domain"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

// Template plantilla de exportación: define el reporte de origen y el diseño de hojas.
type Template string

const (
	TemplateSalesSummary       Template = "sales_summary"
	TemplateDonationsDetailed  Template = "donations_detailed"
	TemplateNeedsReport        Template = "needs_report"
	TemplateFinancialStatement Template = "financial_statement"
	TemplateTaxReport          Template = "tax_report"
	TemplateCharityImpact      Template = "charity_impact"
)

// templateSources tipo de reporte que alimenta cada plantilla.
var templateSources = map[Template]report.Kind{
	TemplateSalesSummary:       report.KindSales,
	TemplateDonationsDetailed:  report.KindDonations,
	TemplateNeedsReport:        report.KindNeeds,
	TemplateFinancialStatement: report.KindFinancial,
	TemplateTaxReport:          report.KindFinancial,
	TemplateCharityImpact:      report.KindCharities,
}

// ParseTemplate valida la plantilla.
func ParseTemplate(s string) (Template, error) {
	t := Template(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := templateSources[t]; !ok {
		return "", fmt.Errorf("%w: plantilla %q desconocida", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// ReportKind tipo de reporte de origen de la plantilla.
func (t Template) ReportKind() report.Kind { return templateSources[t] }
