package models

// SplitMethod tags how an expense total is divided among members.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitExact      SplitMethod = "exact"
	SplitPercentage SplitMethod = "percentage"
	SplitShares     SplitMethod = "shares"
	SplitAdjustment SplitMethod = "adjustment"
)

// Expense represents a shared expense fronted by one member.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// HouseholdID is the household this expense belongs to.
	HouseholdID string

	// Description is the human-readable label (e.g., "Groceries").
	Description string

	// PayerID is the member who fronted the money.
	PayerID string

	// Amount is the total in cents.
	Amount int64

	// Method records which split policy produced the lines.
	Method SplitMethod

	// Lines are this expense's per-member obligations. They always sum
	// to Amount; on edit they are replaced wholesale, never patched.
	Lines []SplitLine

	// CreatedBy is the user ID that recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// SplitLine is one member's share of one expense, in cents.
type SplitLine struct {
	ExpenseID string
	MemberID  string
	Amount    int64
}

// SplitSpec is the wire/storage description of a split policy: a method
// tag plus the fields that method needs. It is converted into a
// ledger.Policy by a validating constructor before any amount is
// computed, so an inconsistent spec can never reach the ledger.
type SplitSpec struct {
	Method SplitMethod `json:"method"`

	// ParticipantIDs is used by the equal method.
	ParticipantIDs []string `json:"participant_ids,omitempty"`

	// Amounts is used by the exact method (cents per member).
	Amounts []MemberAmount `json:"amounts,omitempty"`

	// Percents is used by the percentage method.
	Percents []MemberPercent `json:"percents,omitempty"`

	// Shares is used by the shares method.
	Shares []MemberShares `json:"shares,omitempty"`

	// FromMemberID/ToMemberID are used by the adjustment method.
	FromMemberID string `json:"from_member_id,omitempty"`
	ToMemberID   string `json:"to_member_id,omitempty"`
}

// MemberAmount pairs a member with an exact amount in cents.
type MemberAmount struct {
	MemberID string `json:"member_id"`
	Amount   int64  `json:"amount"`
}

// MemberPercent pairs a member with a percentage of the total.
type MemberPercent struct {
	MemberID string  `json:"member_id"`
	Percent  float64 `json:"percent"`
}

// MemberShares pairs a member with a share weight.
type MemberShares struct {
	MemberID string `json:"member_id"`
	Shares   int64  `json:"shares"`
}
