package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/homeshare/internal/models"
	"github.com/mmynk/homeshare/internal/storage"
)

const templateColumns = `id, household_id, kind, frequency, interval, next_occurrence, end_date, active,
	task_title, task_assignee_id, expense_description, expense_payer_id, expense_amount, expense_split, created_at`

// CreateTemplate persists a new recurring template.
func (s *SQLiteStore) CreateTemplate(ctx context.Context, tmpl *models.RecurringTemplate) error {
	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}
	if tmpl.CreatedAt == 0 {
		tmpl.CreatedAt = time.Now().Unix()
	}

	var split any
	if tmpl.ExpenseSplit != nil {
		data, err := json.Marshal(tmpl.ExpenseSplit)
		if err != nil {
			return fmt.Errorf("failed to marshal split spec: %w", err)
		}
		split = string(data)
	}
	var endDate any
	if tmpl.EndDate != "" {
		endDate = tmpl.EndDate
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recurring_templates (`+templateColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tmpl.ID, tmpl.HouseholdID, string(tmpl.Kind), tmpl.Frequency, tmpl.Interval,
		tmpl.NextOccurrence, endDate, tmpl.Active,
		nullIfEmpty(tmpl.TaskTitle), nullIfEmpty(tmpl.TaskAssigneeID),
		nullIfEmpty(tmpl.ExpenseDescription), nullIfEmpty(tmpl.ExpensePayerID),
		tmpl.ExpenseAmount, split, tmpl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanTemplate(scan func(dest ...any) error) (*models.RecurringTemplate, error) {
	tmpl := &models.RecurringTemplate{}
	var kind string
	var endDate, taskTitle, taskAssignee, expDesc, expPayer, expSplit sql.NullString
	var expAmount sql.NullInt64

	err := scan(&tmpl.ID, &tmpl.HouseholdID, &kind, &tmpl.Frequency, &tmpl.Interval,
		&tmpl.NextOccurrence, &endDate, &tmpl.Active,
		&taskTitle, &taskAssignee, &expDesc, &expPayer, &expAmount, &expSplit, &tmpl.CreatedAt)
	if err != nil {
		return nil, err
	}

	tmpl.Kind = models.TemplateKind(kind)
	tmpl.EndDate = endDate.String
	tmpl.TaskTitle = taskTitle.String
	tmpl.TaskAssigneeID = taskAssignee.String
	tmpl.ExpenseDescription = expDesc.String
	tmpl.ExpensePayerID = expPayer.String
	tmpl.ExpenseAmount = expAmount.Int64
	if expSplit.Valid {
		spec := &models.SplitSpec{}
		if err := json.Unmarshal([]byte(expSplit.String), spec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal split spec: %w", err)
		}
		tmpl.ExpenseSplit = spec
	}
	return tmpl, nil
}

// GetTemplate retrieves a recurring template by ID.
func (s *SQLiteStore) GetTemplate(ctx context.Context, id string) (*models.RecurringTemplate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM recurring_templates WHERE id = ?`, id)
	tmpl, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return tmpl, nil
}

// ListTemplates retrieves all templates for a household.
func (s *SQLiteStore) ListTemplates(ctx context.Context, householdID string) ([]*models.RecurringTemplate, error) {
	return s.listTemplates(ctx, "household_id = ?", householdID)
}

// ListActiveTemplates retrieves every active template across households,
// for the recurrence worker.
func (s *SQLiteStore) ListActiveTemplates(ctx context.Context) ([]*models.RecurringTemplate, error) {
	return s.listTemplates(ctx, "active = ?", true)
}

func (s *SQLiteStore) listTemplates(ctx context.Context, where string, arg any) ([]*models.RecurringTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM recurring_templates WHERE `+where+` ORDER BY created_at, id`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.RecurringTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate templates: %w", err)
	}
	return templates, nil
}

// ApplyRecurrence persists everything one catch-up pass produced for a
// template, the generated expenses (with lines), the generated tasks,
// and the advanced cursor/active flag, in a single transaction. A crash
// cannot leave generated records behind with an unadvanced cursor, which
// is what would cause duplicate generation on retry.
func (s *SQLiteStore) ApplyRecurrence(ctx context.Context, tmpl *models.RecurringTemplate, expenses []*models.Expense, tasks []*models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, expense := range expenses {
		if expense.ID == "" {
			expense.ID = uuid.New().String()
		}
		if expense.CreatedAt == 0 {
			expense.CreatedAt = now
		}
		if err := insertExpense(ctx, tx, expense); err != nil {
			return err
		}
	}
	for _, task := range tasks {
		if task.ID == "" {
			task.ID = uuid.New().String()
		}
		if task.CreatedAt == 0 {
			task.CreatedAt = now
		}
		if err := insertTask(ctx, tx, task); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE recurring_templates SET next_occurrence = ?, active = ? WHERE id = ?",
		tmpl.NextOccurrence, tmpl.Active, tmpl.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to advance template cursor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check cursor update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
