package dto

// ReportQuery parámetros comunes de los reportes (query string o cuerpo JSON).
// Fechas en formato YYYY-MM-DD; el rango explícito tiene prioridad sobre Period.
type ReportQuery struct {
	Period       string `query:"period" json:"period" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	StartDate    string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	CharityID    string `query:"charity_id" json:"charity_id" validate:"omitempty,max=64"`
	NeedID       string `query:"need_id" json:"need_id" validate:"omitempty,max=64"`
	VendorID     string `query:"vendor_id" json:"vendor_id" validate:"omitempty,max=64"`
	Category     string `query:"category" json:"category" validate:"omitempty,max=100"`
	Search       string `query:"search" json:"search" validate:"omitempty,max=200"`
	VerifiedOnly bool   `query:"verified_only" json:"verified_only"`
	Compare      bool   `query:"compare" json:"compare"`
}

// YearQuery parámetros de los estados anuales.
type YearQuery struct {
	Year      int    `query:"year" validate:"omitempty,min=2000,max=9999"`
	CharityID string `query:"charity_id" validate:"omitempty,max=64"`
}
