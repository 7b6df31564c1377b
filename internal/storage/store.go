// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/homeshare/internal/models"
)

// ErrNotFound signals a missing record across storage implementations.
var ErrNotFound = errors.New("not found")

// Store defines the interface for HomeShare's persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Two contracts matter to the ledger core:
//
//  1. CreateExpense and UpdateExpense persist the expense and its split
//     lines in one transaction; lines are replaced wholesale on update so
//     the "lines sum to total" invariant stays trivially checkable.
//  2. ApplyRecurrence persists every record generated from a template
//     together with the template's advanced cursor in one transaction,
//     so a crash between "create expense" and "advance template" cannot
//     duplicate generation on retry.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Households and members
	CreateHousehold(ctx context.Context, household *models.Household) error
	GetHousehold(ctx context.Context, id string) (*models.Household, error)
	AddMember(ctx context.Context, member *models.Member) error
	ListMembers(ctx context.Context, householdID string) ([]*models.Member, error)

	// Expenses (with split lines)
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	ListExpenses(ctx context.Context, householdID string) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error

	// Settlements
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	ListSettlements(ctx context.Context, householdID string) ([]*models.Settlement, error)

	// Tasks
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context, householdID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id string) error

	// Recurring templates
	CreateTemplate(ctx context.Context, tmpl *models.RecurringTemplate) error
	GetTemplate(ctx context.Context, id string) (*models.RecurringTemplate, error)
	ListTemplates(ctx context.Context, householdID string) ([]*models.RecurringTemplate, error)
	ListActiveTemplates(ctx context.Context) ([]*models.RecurringTemplate, error)
	ApplyRecurrence(ctx context.Context, tmpl *models.RecurringTemplate, expenses []*models.Expense, tasks []*models.Task) error

	// Close releases any resources held by the store.
	Close() error
}
