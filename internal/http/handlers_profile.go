package http

import (
	"net/http"
	"strings"

	"spendtrack/internal/core"
)

type profileView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Theme     string `json:"theme"`
	IsCurrent bool   `json:"is_current"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.repo.ListProfiles(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to list profiles")
		return
	}

	current := currentProfile(r)
	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, profileView{
			ID:        p.ID,
			Name:      p.Name,
			Theme:     p.Theme,
			IsCurrent: p.ID == current,
		})
	}
	writeJSON(r.Context(), w, http.StatusOK, views)
}

func (s *Server) handleSwitchProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID int64 `json:"profile_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	profiles, err := s.repo.ListProfiles(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to look up profile")
		return
	}
	found := false
	for _, p := range profiles {
		if p.ID == req.ProfileID {
			found = true
			break
		}
	}
	if !found {
		writeError(r.Context(), w, http.StatusNotFound, codeNotFound, core.ErrProfileNotFound.Error())
		return
	}

	setProfileCookie(w, req.ProfileID)
	writeSuccess(r.Context(), w)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, core.ErrEmptyName.Error())
		return
	}

	if err := s.repo.RenameProfile(r.Context(), currentProfile(r), strings.TrimSpace(req.Name)); err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to rename profile")
		return
	}
	writeSuccess(r.Context(), w)
}

func (s *Server) handleUpdateTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Theme) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, "empty theme")
		return
	}

	if err := s.repo.UpdateProfileTheme(r.Context(), currentProfile(r), strings.TrimSpace(req.Theme)); err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to update theme")
		return
	}
	writeSuccess(r.Context(), w)
}
