package models

// Household represents a group of people sharing expenses and tasks
// (e.g., "Maple St Flat", "Ski Trip").
type Household struct {
	// ID is the unique identifier for the household (UUID format).
	ID string

	// Name is the display name of the household.
	Name string

	// CreatedBy is the user ID that created the household.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the household was created.
	CreatedAt int64
}

// Member represents one ledger participant inside a household.
//
// A Member may be linked to a registered User, or it may be an unclaimed
// placeholder (UserID empty) for someone who has not signed up; the ledger
// treats both identically.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// HouseholdID is the household this member belongs to.
	HouseholdID string

	// DisplayName is the name shown in balances and splits.
	DisplayName string

	// UserID links this member to a registered user. Empty for
	// unclaimed placeholder members.
	UserID string

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}
