package http

import (
	"net/http"

	"spendtrack/internal/core"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.repo.ListExpenses(r.Context(), currentProfile(r))
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to list expenses")
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(r.Context(), w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount        float64 `json:"amount"`
		Description   string  `json:"description"`
		PaymentMethod string  `json:"paymentMethod"`
		Category      string  `json:"category"`
		Date          string  `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	profileID := currentProfile(r)
	expense := core.Expense{
		ProfileID:     profileID,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Category:      req.Category,
		Date:          req.Date,
		Timestamp:     core.Timestamp(),
	}
	if expense.Date == "" {
		expense.Date = core.Today()
	}
	if err := expense.Validate(); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	id, err := s.repo.CreateExpense(r.Context(), expense)
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to save expense")
		return
	}

	s.invalidateProfile(profileID)
	writeJSON(r.Context(), w, http.StatusOK, struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}{Success: true, ID: id})
}

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	incomes, err := s.repo.ListIncome(r.Context(), currentProfile(r))
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to list income")
		return
	}
	if incomes == nil {
		incomes = []core.Income{}
	}
	writeJSON(r.Context(), w, http.StatusOK, incomes)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
		Source string  `json:"source"`
		Type   string  `json:"type"`
		Date   string  `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	profileID := currentProfile(r)
	income := core.Income{
		ProfileID: profileID,
		Amount:    req.Amount,
		Source:    req.Source,
		Type:      req.Type,
		Date:      req.Date,
		Timestamp: core.Timestamp(),
	}
	if income.Date == "" {
		income.Date = core.Today()
	}
	if err := income.Validate(); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	id, err := s.repo.CreateIncome(r.Context(), income)
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, codeInternal, "failed to save income")
		return
	}

	s.invalidateProfile(profileID)
	writeJSON(r.Context(), w, http.StatusOK, struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}{Success: true, ID: id})
}
