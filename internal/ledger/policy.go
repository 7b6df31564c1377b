package ledger

// Policy is a split policy: one rule for dividing an expense total among
// members. The concrete types form a closed set, so a policy can only be
// constructed with the fields its method needs: an exact split cannot
// exist without its amounts, and an equal split cannot carry stray
// percentage data.
type Policy interface {
	// Split divides total (cents) into per-member shares that sum
	// exactly to total, or reports a ValidationError.
	Split(total int64) ([]Share, error)
}

// Equal splits the total evenly among the listed participants.
type Equal struct {
	ParticipantIDs []string
}

func (p Equal) Split(total int64) ([]Share, error) {
	if len(p.ParticipantIDs) == 0 {
		return nil, validationErr("no participants")
	}
	return SplitEqual(total, p.ParticipantIDs), nil
}

// Exact uses caller-supplied per-member amounts.
type Exact struct {
	Amounts []Share
}

func (p Exact) Split(total int64) ([]Share, error) {
	return BuildExactSplits(total, p.Amounts)
}

// Percentage splits the total by per-member percentages.
type Percentage struct {
	Percents []PercentShare
}

func (p Percentage) Split(total int64) ([]Share, error) {
	return SplitByPercentage(total, p.Percents)
}

// ByShares splits the total proportionally to share weights.
type ByShares struct {
	Counts []ShareCount
}

func (p ByShares) Split(total int64) ([]Share, error) {
	return SplitByShares(total, p.Counts)
}

// Adjustment is a direct reimbursement: From owes the full total.
type Adjustment struct {
	FromID string
	ToID   string
}

func (p Adjustment) Split(total int64) ([]Share, error) {
	if p.FromID == "" {
		return nil, validationErr("no participants")
	}
	return SplitAdjustment(total, p.FromID, p.ToID), nil
}
