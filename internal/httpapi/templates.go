package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mmynk/homeshare/internal/models"
	"github.com/mmynk/homeshare/internal/schedule"
)

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "id")

	var req templateRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	if msg := validateTemplate(&req); msg != "" {
		badRequest(w, msg)
		return
	}
	if req.Interval < 1 {
		req.Interval = 1
	}

	tmpl := &models.RecurringTemplate{
		ID:             uuid.New().String(),
		HouseholdID:    householdID,
		Kind:           models.TemplateKind(req.Kind),
		Frequency:      req.Frequency,
		Interval:       req.Interval,
		NextOccurrence: req.NextOccurrence,
		EndDate:        req.EndDate,
		Active:         true,

		TaskTitle:      req.TaskTitle,
		TaskAssigneeID: req.TaskAssigneeID,

		ExpenseDescription: req.ExpenseDescription,
		ExpensePayerID:     req.ExpensePayerID,
		ExpenseAmount:      req.ExpenseAmount,
		ExpenseSplit:       req.ExpenseSplit,
	}
	if err := s.store.CreateTemplate(r.Context(), tmpl); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toTemplateDTO(tmpl))
}

func validateTemplate(req *templateRequest) string {
	switch models.TemplateKind(req.Kind) {
	case models.TemplateTask:
		if req.TaskTitle == "" {
			return "task_title is required for task templates"
		}
	case models.TemplateExpense:
		if req.ExpenseAmount < 0 {
			return "expense_amount cannot be negative"
		}
		if req.ExpensePayerID == "" {
			return "expense_payer_id is required for expense templates"
		}
		if req.ExpenseSplit == nil {
			return "expense_split is required for expense templates"
		}
	default:
		return "kind must be task or expense"
	}

	switch schedule.Frequency(req.Frequency) {
	case schedule.Daily, schedule.Weekly, schedule.Monthly:
	default:
		return "frequency must be daily, weekly or monthly"
	}

	if _, err := time.Parse(schedule.DayLayout, req.NextOccurrence); err != nil {
		return "next_occurrence must be a calendar day (YYYY-MM-DD)"
	}
	if req.EndDate != "" {
		if _, err := time.Parse(schedule.DayLayout, req.EndDate); err != nil {
			return "end_date must be a calendar day (YYYY-MM-DD)"
		}
	}
	return ""
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.ListTemplates(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]templateDTO, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateDTO(t))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.store.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTemplateDTO(tmpl))
}

// runTemplates triggers a catch-up pass outside the scheduler's cadence.
// The caller may pin "today" for reproducible runs.
func (s *Server) runTemplates(w http.ResponseWriter, r *http.Request) {
	var req runTemplatesRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			badRequest(w, "malformed request body")
			return
		}
	}

	today := req.Today
	if today == "" {
		today = time.Now().Format(schedule.DayLayout)
	} else if _, err := time.Parse(schedule.DayLayout, today); err != nil {
		badRequest(w, "today must be a calendar day (YYYY-MM-DD)")
		return
	}

	generated, err := s.recurSvc.ProcessDue(r.Context(), today)
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, runTemplatesResponse{Generated: generated})
}
