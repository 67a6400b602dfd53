package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"spendtrack/internal/core"
	"spendtrack/internal/importer"
)

type uploadResponse struct {
	Success  bool                `json:"success"`
	Imported int                 `json:"imported"`
	Skipped  int                 `json:"skipped"`
	Errors   []importer.RowError `json:"errors,omitempty"`
}

// handleCreditUpload accepts a multipart CSV statement, imports it row by
// row and reports the per-row outcome. A bad row never aborts the rest.
func (s *Server) handleCreditUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, "only .csv files are accepted")
		return
	}

	profileID := currentProfile(r)
	report, err := s.credit.ImportStatement(r.Context(), profileID, header.Filename, file)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	s.invalidateProfile(profileID)
	writeJSON(r.Context(), w, http.StatusOK, uploadResponse{
		Success:  true,
		Imported: report.Imported,
		Skipped:  report.Skipped,
		Errors:   report.Errors,
	})
}

func (s *Server) handleListStatements(w http.ResponseWriter, r *http.Request) {
	statements, err := s.repo.ListCreditStatements(r.Context(), currentProfile(r))
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to list statements")
		return
	}
	if statements == nil {
		statements = []core.CreditStatement{}
	}
	writeJSON(r.Context(), w, http.StatusOK, statements)
}
