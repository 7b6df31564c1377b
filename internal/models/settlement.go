package models

// Settlement represents a direct payment between two members to clear
// debt outside the expense ledger. It reduces what From owes To.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// HouseholdID is the household this settlement belongs to.
	HouseholdID string

	// FromMemberID is the member who paid (debtor settling up).
	FromMemberID string

	// ToMemberID is the member who received payment.
	ToMemberID string

	// Amount is the payment amount in cents.
	Amount int64

	// Note is an optional description for the settlement.
	Note string

	// CreatedBy is the user ID that recorded this settlement.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
