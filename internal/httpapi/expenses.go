package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/homeshare/internal/middleware"
	"github.com/mmynk/homeshare/internal/service"
)

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}

	expense, err := s.expenseSvc.Create(r.Context(), chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()), service.ExpenseInput{
			Description: req.Description,
			PayerID:     req.PayerID,
			Amount:      req.Amount,
			Split:       req.Split,
		})
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toExpenseDTO(expense))
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenseSvc.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]expenseDTO, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseDTO(e))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenseSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toExpenseDTO(expense))
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}

	expense, err := s.expenseSvc.Update(r.Context(), chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()), service.ExpenseInput{
			Description: req.Description,
			PayerID:     req.PayerID,
			Amount:      req.Amount,
			Split:       req.Split,
		})
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toExpenseDTO(expense))
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenseSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusNoContent, nil)
}
