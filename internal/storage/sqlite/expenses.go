package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/homeshare/internal/models"
	"github.com/mmynk/homeshare/internal/storage"
)

// CreateExpense persists an expense and its split lines in one
// transaction. The lines are the expense's only source of truth for who
// owes what; they are never written without their parent.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertExpense(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertExpense writes an expense and its lines inside an open transaction.
func insertExpense(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO expenses (id, household_id, description, payer_id, amount, method, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.HouseholdID, expense.Description, expense.PayerID,
		expense.Amount, string(expense.Method), expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, line := range expense.Lines {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO split_lines (expense_id, member_id, amount) VALUES (?, ?, ?)",
			expense.ID, line.MemberID, line.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split line: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense by ID including its split lines.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	var method string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, household_id, description, payer_id, amount, method, created_by, created_at FROM expenses WHERE id = ?",
		id,
	).Scan(&expense.ID, &expense.HouseholdID, &expense.Description, &expense.PayerID,
		&expense.Amount, &method, &expense.CreatedBy, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Method = models.SplitMethod(method)

	lines, err := s.linesForExpense(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	expense.Lines = lines
	return expense, nil
}

func (s *SQLiteStore) linesForExpense(ctx context.Context, expenseID string) ([]models.SplitLine, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, member_id, amount FROM split_lines WHERE expense_id = ? ORDER BY member_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get split lines: %w", err)
	}
	defer rows.Close()

	var lines []models.SplitLine
	for rows.Next() {
		var line models.SplitLine
		if err := rows.Scan(&line.ExpenseID, &line.MemberID, &line.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split lines: %w", err)
	}
	return lines, nil
}

// ListExpenses retrieves all expenses of a household, newest first,
// including split lines.
func (s *SQLiteStore) ListExpenses(ctx context.Context, householdID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, household_id, description, payer_id, amount, method, created_by, created_at FROM expenses WHERE household_id = ? ORDER BY created_at DESC, id",
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var method string
		if err := rows.Scan(&expense.ID, &expense.HouseholdID, &expense.Description, &expense.PayerID,
			&expense.Amount, &method, &expense.CreatedBy, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Method = models.SplitMethod(method)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		lines, err := s.linesForExpense(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Lines = lines
	}
	return expenses, nil
}

// UpdateExpense rewrites an expense and replaces its split lines
// wholesale: delete all, reinsert the recomputed set. Lines are never
// patched one at a time.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE expenses SET description = ?, payer_id = ?, amount = ?, method = ? WHERE id = ?",
		expense.Description, expense.PayerID, expense.Amount, string(expense.Method), expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM split_lines WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to delete split lines: %w", err)
	}
	for _, line := range expense.Lines {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO split_lines (expense_id, member_id, amount) VALUES (?, ?, ?)",
			expense.ID, line.MemberID, line.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense; split lines cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
