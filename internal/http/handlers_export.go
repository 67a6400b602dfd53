package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"spendtrack/internal/services"
)

// handleExport streams the profile's full history as a CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filename := services.ExportFilename(s.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := s.export.WriteCSV(r.Context(), currentProfile(r), w); err != nil {
		// Headers are already out; all we can do is log the break.
		slog.ErrorContext(r.Context(), "Export failed mid-stream", "error", err)
	}
}
