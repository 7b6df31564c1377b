package models

// Task represents a one-off household chore.
type Task struct {
	// ID is the unique identifier for the task (UUID format).
	ID string

	// HouseholdID is the household this task belongs to.
	HouseholdID string

	// Title is the chore description (e.g., "Take out recycling").
	Title string

	// AssigneeID is the member responsible. Empty means unassigned.
	AssigneeID string

	// DueDate is the ISO calendar day the task is due, or empty.
	DueDate string

	// Done marks the task complete.
	Done bool

	// CreatedAt is the Unix timestamp when the task was created.
	CreatedAt int64
}
