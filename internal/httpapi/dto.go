package httpapi

import (
	"github.com/mmynk/homeshare/internal/ledger"
	"github.com/mmynk/homeshare/internal/models"
)

// Request payloads.

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type householdRequest struct {
	Name string `json:"name"`
}

type memberRequest struct {
	DisplayName string `json:"display_name"`
	UserID      string `json:"user_id,omitempty"`
}

type expenseRequest struct {
	Description string           `json:"description"`
	PayerID     string           `json:"payer_id"`
	Amount      int64            `json:"amount"`
	Split       models.SplitSpec `json:"split"`
}

type settlementRequest struct {
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Amount       int64  `json:"amount"`
	Note         string `json:"note,omitempty"`
}

type taskRequest struct {
	Title      string `json:"title"`
	AssigneeID string `json:"assignee_id,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
	Done       bool   `json:"done"`
}

type templateRequest struct {
	Kind           string `json:"kind"`
	Frequency      string `json:"frequency"`
	Interval       int    `json:"interval"`
	NextOccurrence string `json:"next_occurrence"`
	EndDate        string `json:"end_date,omitempty"`

	TaskTitle      string `json:"task_title,omitempty"`
	TaskAssigneeID string `json:"task_assignee_id,omitempty"`

	ExpenseDescription string            `json:"expense_description,omitempty"`
	ExpensePayerID     string            `json:"expense_payer_id,omitempty"`
	ExpenseAmount      int64             `json:"expense_amount,omitempty"`
	ExpenseSplit       *models.SplitSpec `json:"expense_split,omitempty"`
}

type runTemplatesRequest struct {
	Today string `json:"today,omitempty"`
}

// Response payloads.

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type householdDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

type memberDTO struct {
	ID          string `json:"id"`
	HouseholdID string `json:"household_id"`
	DisplayName string `json:"display_name"`
	UserID      string `json:"user_id,omitempty"`
}

type splitLineDTO struct {
	MemberID string `json:"member_id"`
	Amount   int64  `json:"amount"`
}

type expenseDTO struct {
	ID          string         `json:"id"`
	HouseholdID string         `json:"household_id"`
	Description string         `json:"description"`
	PayerID     string         `json:"payer_id"`
	Amount      int64          `json:"amount"`
	Method      string         `json:"method"`
	Lines       []splitLineDTO `json:"lines"`
	CreatedBy   string         `json:"created_by,omitempty"`
	CreatedAt   int64          `json:"created_at"`
}

type settlementDTO struct {
	ID           string `json:"id"`
	HouseholdID  string `json:"household_id"`
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Amount       int64  `json:"amount"`
	Note         string `json:"note,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

type taskDTO struct {
	ID          string `json:"id"`
	HouseholdID string `json:"household_id"`
	Title       string `json:"title"`
	AssigneeID  string `json:"assignee_id,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Done        bool   `json:"done"`
	CreatedAt   int64  `json:"created_at"`
}

type templateDTO struct {
	ID             string `json:"id"`
	HouseholdID    string `json:"household_id"`
	Kind           string `json:"kind"`
	Frequency      string `json:"frequency"`
	Interval       int    `json:"interval"`
	NextOccurrence string `json:"next_occurrence"`
	EndDate        string `json:"end_date,omitempty"`
	Active         bool   `json:"active"`

	TaskTitle      string `json:"task_title,omitempty"`
	TaskAssigneeID string `json:"task_assignee_id,omitempty"`

	ExpenseDescription string            `json:"expense_description,omitempty"`
	ExpensePayerID     string            `json:"expense_payer_id,omitempty"`
	ExpenseAmount      int64             `json:"expense_amount,omitempty"`
	ExpenseSplit       *models.SplitSpec `json:"expense_split,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

type balanceRowDTO struct {
	MemberID    string `json:"member_id"`
	DisplayName string `json:"display_name"`
	Net         int64  `json:"net"`
}

type runTemplatesResponse struct {
	Generated int `json:"generated"`
}

// Mapping helpers.

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toHouseholdDTO(h *models.Household) householdDTO {
	return householdDTO{ID: h.ID, Name: h.Name, CreatedBy: h.CreatedBy, CreatedAt: h.CreatedAt}
}

func toMemberDTO(m *models.Member) memberDTO {
	return memberDTO{ID: m.ID, HouseholdID: m.HouseholdID, DisplayName: m.DisplayName, UserID: m.UserID}
}

func toExpenseDTO(e *models.Expense) expenseDTO {
	lines := make([]splitLineDTO, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, splitLineDTO{MemberID: l.MemberID, Amount: l.Amount})
	}
	return expenseDTO{
		ID:          e.ID,
		HouseholdID: e.HouseholdID,
		Description: e.Description,
		PayerID:     e.PayerID,
		Amount:      e.Amount,
		Method:      string(e.Method),
		Lines:       lines,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toSettlementDTO(s *models.Settlement) settlementDTO {
	return settlementDTO{
		ID:           s.ID,
		HouseholdID:  s.HouseholdID,
		FromMemberID: s.FromMemberID,
		ToMemberID:   s.ToMemberID,
		Amount:       s.Amount,
		Note:         s.Note,
		CreatedAt:    s.CreatedAt,
	}
}

func toTaskDTO(t *models.Task) taskDTO {
	return taskDTO{
		ID:          t.ID,
		HouseholdID: t.HouseholdID,
		Title:       t.Title,
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		Done:        t.Done,
		CreatedAt:   t.CreatedAt,
	}
}

func toTemplateDTO(t *models.RecurringTemplate) templateDTO {
	return templateDTO{
		ID:             t.ID,
		HouseholdID:    t.HouseholdID,
		Kind:           string(t.Kind),
		Frequency:      t.Frequency,
		Interval:       t.Interval,
		NextOccurrence: t.NextOccurrence,
		EndDate:        t.EndDate,
		Active:         t.Active,

		TaskTitle:      t.TaskTitle,
		TaskAssigneeID: t.TaskAssigneeID,

		ExpenseDescription: t.ExpenseDescription,
		ExpensePayerID:     t.ExpensePayerID,
		ExpenseAmount:      t.ExpenseAmount,
		ExpenseSplit:       t.ExpenseSplit,

		CreatedAt: t.CreatedAt,
	}
}

func toBalanceRows(rows []ledger.BalanceRow) []balanceRowDTO {
	out := make([]balanceRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, balanceRowDTO{MemberID: r.MemberID, DisplayName: r.DisplayName, Net: r.Net})
	}
	return out
}

func toPairwiseRows(rows []ledger.PairwiseRow) []balanceRowDTO {
	out := make([]balanceRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, balanceRowDTO{MemberID: r.MemberID, DisplayName: r.DisplayName, Net: r.Net})
	}
	return out
}
