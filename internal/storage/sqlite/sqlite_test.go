package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/homeshare/internal/models"
	"github.com/mmynk/homeshare/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "homeshare-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seedHousehold creates a household with two members and returns their IDs.
func seedHousehold(t *testing.T, store *SQLiteStore) (householdID, alice, bob string) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: "owner@example.com", Name: "Owner", PasswordHash: "x"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	household := &models.Household{Name: "Maple St Flat", CreatedBy: user.ID}
	if err := store.CreateHousehold(ctx, household); err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}

	a := &models.Member{HouseholdID: household.ID, DisplayName: "Alice", UserID: user.ID}
	if err := store.AddMember(ctx, a); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	b := &models.Member{HouseholdID: household.ID, DisplayName: "Bob"}
	if err := store.AddMember(ctx, b); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	return household.ID, a.ID, b.ID
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{Email: "alice@example.com", Name: "Alice", PasswordHash: "hash"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" {
		t.Error("Expected user ID to be generated")
	}
	if user.CreatedAt == 0 {
		t.Error("Expected CreatedAt to be set")
	}

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID || got.Name != "Alice" {
			t.Errorf("Got user %+v, want ID=%s Name=Alice", got, user.ID)
		}
	})

	t.Run("GetUserByEmail not found", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Duplicate email rejected", func(t *testing.T) {
		dup := &models.User{Email: "alice@example.com", Name: "Other", PasswordHash: "hash"}
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected duplicate email insert to fail")
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	householdID, alice, bob := seedHousehold(t, store)

	expense := &models.Expense{
		HouseholdID: householdID,
		Description: "Groceries",
		PayerID:     alice,
		Amount:      1000,
		Method:      models.SplitEqual,
		Lines: []models.SplitLine{
			{MemberID: alice, Amount: 500},
			{MemberID: bob, Amount: 500},
		},
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	t.Run("GetExpense returns lines", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount != 1000 || got.Method != models.SplitEqual {
			t.Errorf("Got %+v, want amount=1000 method=equal", got)
		}
		if len(got.Lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d", len(got.Lines))
		}
		var sum int64
		for _, l := range got.Lines {
			sum += l.Amount
		}
		if sum != got.Amount {
			t.Errorf("Lines sum to %d, expense total is %d", sum, got.Amount)
		}
	})

	t.Run("UpdateExpense replaces lines wholesale", func(t *testing.T) {
		expense.Amount = 900
		expense.Lines = []models.SplitLine{
			{MemberID: alice, Amount: 300},
			{MemberID: bob, Amount: 600},
		}
		if err := store.UpdateExpense(ctx, expense); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount != 900 || len(got.Lines) != 2 {
			t.Fatalf("Got amount=%d lines=%d, want 900/2", got.Amount, len(got.Lines))
		}
		for _, l := range got.Lines {
			if l.MemberID == bob && l.Amount != 600 {
				t.Errorf("Bob's line is %d, want 600", l.Amount)
			}
		}
	})

	t.Run("DeleteExpense removes it", func(t *testing.T) {
		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("UpdateExpense on missing id", func(t *testing.T) {
		missing := &models.Expense{ID: "no-such-id", HouseholdID: householdID, PayerID: alice, Amount: 1}
		if err := store.UpdateExpense(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStoreSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	householdID, alice, bob := seedHousehold(t, store)

	settlement := &models.Settlement{
		HouseholdID:  householdID,
		FromMemberID: bob,
		ToMemberID:   alice,
		Amount:       200,
		Note:         "venmo",
	}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	settlements, err := store.ListSettlements(ctx, householdID)
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("Expected 1 settlement, got %d", len(settlements))
	}
	got := settlements[0]
	if got.FromMemberID != bob || got.ToMemberID != alice || got.Amount != 200 || got.Note != "venmo" {
		t.Errorf("Got settlement %+v", got)
	}
}

func TestSQLiteStoreTasks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	householdID, alice, _ := seedHousehold(t, store)

	task := &models.Task{
		HouseholdID: householdID,
		Title:       "Take out recycling",
		AssigneeID:  alice,
		DueDate:     "2026-09-01",
	}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	t.Run("Unassigned task round-trips empty fields", func(t *testing.T) {
		bare := &models.Task{HouseholdID: householdID, Title: "Water plants"}
		if err := store.CreateTask(ctx, bare); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
		got, err := store.GetTask(ctx, bare.ID)
		if err != nil {
			t.Fatalf("GetTask failed: %v", err)
		}
		if got.AssigneeID != "" || got.DueDate != "" {
			t.Errorf("Expected empty assignee and due date, got %+v", got)
		}
	})

	t.Run("UpdateTask marks done", func(t *testing.T) {
		task.Done = true
		if err := store.UpdateTask(ctx, task); err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		got, err := store.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetTask failed: %v", err)
		}
		if !got.Done {
			t.Error("Expected task to be done")
		}
	})

	t.Run("DeleteTask", func(t *testing.T) {
		if err := store.DeleteTask(ctx, task.ID); err != nil {
			t.Fatalf("DeleteTask failed: %v", err)
		}
		if _, err := store.GetTask(ctx, task.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestSQLiteStoreTemplates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	householdID, alice, bob := seedHousehold(t, store)

	tmpl := &models.RecurringTemplate{
		HouseholdID:        householdID,
		Kind:               models.TemplateExpense,
		Frequency:          "monthly",
		Interval:           1,
		NextOccurrence:     "2026-09-01",
		Active:             true,
		ExpenseDescription: "Rent",
		ExpensePayerID:     alice,
		ExpenseAmount:      150000,
		ExpenseSplit: &models.SplitSpec{
			Method:         models.SplitEqual,
			ParticipantIDs: []string{alice, bob},
		},
	}
	if err := store.CreateTemplate(ctx, tmpl); err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	t.Run("GetTemplate round-trips split spec", func(t *testing.T) {
		got, err := store.GetTemplate(ctx, tmpl.ID)
		if err != nil {
			t.Fatalf("GetTemplate failed: %v", err)
		}
		if got.Kind != models.TemplateExpense || got.ExpenseAmount != 150000 {
			t.Errorf("Got template %+v", got)
		}
		if got.ExpenseSplit == nil {
			t.Fatal("Expected split spec to round-trip")
		}
		if got.ExpenseSplit.Method != models.SplitEqual || len(got.ExpenseSplit.ParticipantIDs) != 2 {
			t.Errorf("Got split spec %+v", got.ExpenseSplit)
		}
	})

	t.Run("ApplyRecurrence persists records and cursor atomically", func(t *testing.T) {
		expense := &models.Expense{
			HouseholdID: householdID,
			Description: "Rent",
			PayerID:     alice,
			Amount:      150000,
			Method:      models.SplitEqual,
			Lines: []models.SplitLine{
				{MemberID: alice, Amount: 75000},
				{MemberID: bob, Amount: 75000},
			},
		}
		tmpl.NextOccurrence = "2026-10-01"
		if err := store.ApplyRecurrence(ctx, tmpl, []*models.Expense{expense}, nil); err != nil {
			t.Fatalf("ApplyRecurrence failed: %v", err)
		}

		got, err := store.GetTemplate(ctx, tmpl.ID)
		if err != nil {
			t.Fatalf("GetTemplate failed: %v", err)
		}
		if got.NextOccurrence != "2026-10-01" {
			t.Errorf("Cursor is %s, want 2026-10-01", got.NextOccurrence)
		}

		expenses, err := store.ListExpenses(ctx, householdID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("Expected 1 generated expense, got %d", len(expenses))
		}
	})

	t.Run("ListActiveTemplates skips retired", func(t *testing.T) {
		retired := &models.RecurringTemplate{
			HouseholdID:    householdID,
			Kind:           models.TemplateTask,
			Frequency:      "weekly",
			Interval:       1,
			NextOccurrence: "2026-09-08",
			EndDate:        "2026-09-01",
			Active:         false,
			TaskTitle:      "Old chore",
		}
		if err := store.CreateTemplate(ctx, retired); err != nil {
			t.Fatalf("CreateTemplate failed: %v", err)
		}

		active, err := store.ListActiveTemplates(ctx)
		if err != nil {
			t.Fatalf("ListActiveTemplates failed: %v", err)
		}
		for _, a := range active {
			if a.ID == retired.ID {
				t.Error("Retired template returned as active")
			}
		}
	})
}
