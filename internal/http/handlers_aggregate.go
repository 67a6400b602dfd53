package http

import (
	"log/slog"
	"net/http"

	"spendtrack/internal/core"
)

// periodParams pulls the aggregation bounds off the query string. An
// unknown or missing period resolves to lifetime downstream.
func periodParams(r *http.Request) (core.Period, string, string) {
	q := r.URL.Query()
	return core.Period(q.Get("period")), q.Get("start"), q.Get("end")
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	profileID := currentProfile(r)
	period, start, end := periodParams(r)

	key := aggregateKey(profileID, period, start, end)
	if cached, ok := s.summaryCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Summary cache hit", "key", key)
		writeJSON(r.Context(), w, http.StatusOK, cached)
		return
	}

	summary, err := s.analytics.Summary(r.Context(), profileID, period, start, end)
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to compute summary")
		return
	}

	s.summaryCache.Set(key, summary)
	writeJSON(r.Context(), w, http.StatusOK, summary)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	profileID := currentProfile(r)
	period, start, end := periodParams(r)

	key := aggregateKey(profileID, period, start, end)
	if cached, ok := s.analyticsCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Analytics cache hit", "key", key)
		writeJSON(r.Context(), w, http.StatusOK, cached)
		return
	}

	analytics, err := s.analytics.Analytics(r.Context(), profileID, period, start, end)
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to compute analytics")
		return
	}

	s.analyticsCache.Set(key, analytics)
	writeJSON(r.Context(), w, http.StatusOK, analytics)
}

type budgetsView struct {
	Monthly    float64            `json:"monthly"`
	Categories map[string]float64 `json:"categories"`
}

func (s *Server) handleGetBudgets(w http.ResponseWriter, r *http.Request) {
	profileID := currentProfile(r)

	monthly, err := s.repo.MonthlyBudget(r.Context(), profileID)
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to load budgets")
		return
	}
	categories, err := s.repo.CategoryBudgets(r.Context(), profileID)
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to load budgets")
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, budgetsView{Monthly: monthly, Categories: categories})
}

func (s *Server) handleSetMonthlyBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if req.Amount < 0 {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, core.ErrInvalidAmount.Error())
		return
	}

	profileID := currentProfile(r)
	if err := s.repo.SetMonthlyBudget(r.Context(), profileID, req.Amount); err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to save budget")
		return
	}

	s.invalidateProfile(profileID)
	writeSuccess(r.Context(), w)
}

func (s *Server) handleSetCategoryBudgets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Budgets map[string]float64 `json:"budgets"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if len(req.Budgets) == 0 {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, "no budgets provided")
		return
	}
	for cat, amount := range req.Budgets {
		if amount < 0 {
			writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest,
				"negative budget for category "+cat)
			return
		}
	}

	profileID := currentProfile(r)
	if err := s.repo.SetCategoryBudgets(r.Context(), profileID, req.Budgets); err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to save budgets")
		return
	}

	s.invalidateProfile(profileID)
	writeSuccess(r.Context(), w)
}
