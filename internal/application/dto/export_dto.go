package dto

import "time"

// ExportRequest cuerpo de POST /api/exports.
type ExportRequest struct {
	Template string      `json:"template" validate:"required"`
	Format   string      `json:"format" validate:"required"`
	Title    string      `json:"title" validate:"max=200"`
	Filters  ReportQuery `json:"filters"`
}

// ExportResult resultado de una exportación.
type ExportResult struct {
	Success     bool      `json:"success"`
	Format      string    `json:"format"`
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"file_size"`
	FileURL     string    `json:"file_url"`
	GeneratedAt time.Time `json:"generated_at"`
	Sheets      []string  `json:"sheets,omitempty"`
}

// CleanupResponse resultado de DELETE /api/exports/cleanup.
type CleanupResponse struct {
	Success      bool             `json:"success"`
	DeletedFiles int              `json:"deleted_files"`
	Failures     []CleanupFailure `json:"failures,omitempty"`
	Message      string           `json:"message"`
}

// CleanupFailure archivo que no pudo eliminarse.
type CleanupFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}
