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

// CreateTask persists a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt == 0 {
		task.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTask(ctx, tx, task); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertTask(ctx context.Context, tx *sql.Tx, task *models.Task) error {
	var assignee, dueDate any
	if task.AssigneeID != "" {
		assignee = task.AssigneeID
	}
	if task.DueDate != "" {
		dueDate = task.DueDate
	}

	_, err := tx.ExecContext(ctx,
		"INSERT INTO tasks (id, household_id, title, assignee_id, due_date, done, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.HouseholdID, task.Title, assignee, dueDate, task.Done, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{}
	var assignee, dueDate sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, household_id, title, assignee_id, due_date, done, created_at FROM tasks WHERE id = ?",
		id,
	).Scan(&task.ID, &task.HouseholdID, &task.Title, &assignee, &dueDate, &task.Done, &task.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if assignee.Valid {
		task.AssigneeID = assignee.String
	}
	if dueDate.Valid {
		task.DueDate = dueDate.String
	}
	return task, nil
}

// ListTasks retrieves all tasks of a household, soonest due first
// (tasks without a due date last).
func (s *SQLiteStore) ListTasks(ctx context.Context, householdID string) ([]*models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, household_id, title, assignee_id, due_date, done, created_at FROM tasks WHERE household_id = ? ORDER BY due_date IS NULL, due_date, created_at",
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		var assignee, dueDate sql.NullString
		if err := rows.Scan(&task.ID, &task.HouseholdID, &task.Title, &assignee, &dueDate, &task.Done, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if assignee.Valid {
			task.AssigneeID = assignee.String
		}
		if dueDate.Valid {
			task.DueDate = dueDate.String
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask rewrites a task's mutable fields.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *models.Task) error {
	var assignee, dueDate any
	if task.AssigneeID != "" {
		assignee = task.AssigneeID
	}
	if task.DueDate != "" {
		dueDate = task.DueDate
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, assignee_id = ?, due_date = ?, done = ? WHERE id = ?",
		task.Title, assignee, dueDate, task.Done, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTask removes a task.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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
