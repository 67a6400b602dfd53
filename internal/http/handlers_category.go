package http

import (
	"errors"
	"net/http"
	"strings"

	"spendtrack/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.repo.ListCategories(r.Context(), currentProfile(r))
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to list categories")
		return
	}
	if cats == nil {
		cats = []core.Category{}
	}
	writeJSON(r.Context(), w, http.StatusOK, cats)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, core.ErrEmptyName.Error())
		return
	}

	err := s.repo.CreateCategory(r.Context(), currentProfile(r), name)
	if errors.Is(err, core.ErrCategoryExists) {
		writeError(r.Context(), w, http.StatusConflict, codeConflict, "category already exists")
		return
	}
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to create category")
		return
	}
	writeSuccess(r.Context(), w)
}

// handleDeleteCategory removes the named category. Expenses and budgets
// that reference the name keep it; nothing cascades.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if strings.TrimSpace(name) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, core.ErrEmptyName.Error())
		return
	}

	if err := s.repo.DeleteCategory(r.Context(), currentProfile(r), name); err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to delete category")
		return
	}
	writeSuccess(r.Context(), w)
}
