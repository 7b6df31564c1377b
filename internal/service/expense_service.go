// Package service implements HomeShare's application services: the
// transport-free orchestration between the pure ledger/schedule core and
// the storage layer.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/homeshare/internal/ledger"
	"github.com/mmynk/homeshare/internal/models"
	"github.com/mmynk/homeshare/internal/storage"
)

// ExpenseInput is what a caller supplies to record or edit an expense.
type ExpenseInput struct {
	Description string
	PayerID     string
	Amount      int64
	Split       models.SplitSpec
}

// ExpenseService records and edits shared expenses. Split lines are
// always computed by the ledger core from the supplied policy and written
// atomically with the expense, so an expense whose lines do not sum to
// its total can never reach storage.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create computes the splits for a new expense and persists both in one
// transaction.
func (s *ExpenseService) Create(ctx context.Context, householdID, userID string, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.buildExpense(ctx, householdID, userID, in)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to persist expense: %w", err)
	}

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"household_id", householdID,
		"amount", expense.Amount,
		"method", expense.Method,
		"lines", len(expense.Lines),
	)
	return expense, nil
}

// Update recomputes an existing expense from fresh input and replaces its
// split lines wholesale.
func (s *ExpenseService) Update(ctx context.Context, expenseID, userID string, in ExpenseInput) (*models.Expense, error) {
	existing, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	expense, err := s.buildExpense(ctx, existing.HouseholdID, userID, in)
	if err != nil {
		return nil, err
	}
	expense.ID = existing.ID
	expense.CreatedBy = existing.CreatedBy
	expense.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// Delete removes an expense and its lines.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	return s.store.DeleteExpense(ctx, expenseID)
}

// Get retrieves one expense with its lines.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// List retrieves a household's expenses with their lines.
func (s *ExpenseService) List(ctx context.Context, householdID string) ([]*models.Expense, error) {
	return s.store.ListExpenses(ctx, householdID)
}

// buildExpense validates the input against the household roster, runs the
// split policy, and assembles the expense with its lines.
func (s *ExpenseService) buildExpense(ctx context.Context, householdID, userID string, in ExpenseInput) (*models.Expense, error) {
	if in.Amount < 0 {
		return nil, &ledger.ValidationError{Reason: "negative amount"}
	}
	if in.PayerID == "" {
		return nil, &ledger.ValidationError{Reason: "missing payer"}
	}

	members, err := s.store.ListMembers(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	roster := make(map[string]bool, len(members))
	for _, m := range members {
		roster[m.ID] = true
	}
	if !roster[in.PayerID] {
		return nil, &ledger.ValidationError{Reason: "payer is not a household member"}
	}

	policy, err := policyFromSpec(&in.Split)
	if err != nil {
		return nil, &ledger.ValidationError{Reason: err.Error()}
	}
	shares, err := policy.Split(in.Amount)
	if err != nil {
		return nil, err
	}

	lines := make([]models.SplitLine, 0, len(shares))
	var sum int64
	for _, share := range shares {
		if !roster[share.MemberID] {
			return nil, &ledger.ValidationError{Reason: fmt.Sprintf("member %s is not in the household", share.MemberID)}
		}
		lines = append(lines, models.SplitLine{MemberID: share.MemberID, Amount: share.Amount})
		sum += share.Amount
	}
	if sum != in.Amount {
		return nil, fmt.Errorf("split lines sum to %d, expense total is %d", sum, in.Amount)
	}

	return &models.Expense{
		HouseholdID: householdID,
		Description: in.Description,
		PayerID:     in.PayerID,
		Amount:      in.Amount,
		Method:      in.Split.Method,
		Lines:       lines,
		CreatedBy:   userID,
	}, nil
}
