package models

// TemplateKind distinguishes what a recurring template generates.
type TemplateKind string

const (
	TemplateTask    TemplateKind = "task"
	TemplateExpense TemplateKind = "expense"
)

// RecurringTemplate is a stored cadence plus payload that periodically
// generates concrete Task or Expense records.
//
// The template's only mutable state is the occurrence cursor: NextOccurrence
// advances monotonically forward as occurrences are generated, and Active
// flips to false once the cursor has moved past EndDate. The cursor is
// never recomputed from scratch.
type RecurringTemplate struct {
	// ID is the unique identifier for the template (UUID format).
	ID string

	// HouseholdID is the household this template belongs to.
	HouseholdID string

	// Kind selects the payload: task or expense.
	Kind TemplateKind

	// Frequency is daily, weekly or monthly.
	Frequency string

	// Interval is the number of frequency units between occurrences
	// (e.g., Frequency=weekly Interval=2 is fortnightly). Minimum 1.
	Interval int

	// NextOccurrence is the ISO calendar day of the next occurrence
	// that has not been generated yet.
	NextOccurrence string

	// EndDate is the ISO calendar day after which no occurrences are
	// generated. Empty means no end.
	EndDate string

	// Active is false once the cursor has passed EndDate.
	Active bool

	// Task payload (Kind == task).
	TaskTitle      string
	TaskAssigneeID string

	// Expense payload (Kind == expense).
	ExpenseDescription string
	ExpensePayerID     string
	ExpenseAmount      int64
	ExpenseSplit       *SplitSpec

	// CreatedAt is the Unix timestamp when the template was created.
	CreatedAt int64
}
