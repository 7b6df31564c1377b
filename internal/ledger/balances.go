package ledger

import "sort"

// Person identifies a ledger participant for balance aggregation.
type Person struct {
	ID          string
	DisplayName string
}

// Obligation records who fronted an expense and how much, in cents.
type Obligation struct {
	ExpenseID string
	PayerID   string
	Amount    int64
}

// SplitLine is one member's owed share of one expense, in cents.
type SplitLine struct {
	ExpenseID string
	MemberID  string
	Amount    int64
}

// Settlement is a direct repayment: From paid To, reducing From's debt.
type Settlement struct {
	FromID string
	ToID   string
	Amount int64
}

// BalanceRow is one person's aggregate signed position in the group.
// Positive means the group owes this person; negative means this person
// owes the group.
type BalanceRow struct {
	MemberID    string
	DisplayName string
	Net         int64
}

// PairwiseRow is the signed position between the current person and one
// other person. Positive means that person owes the current person.
type PairwiseRow struct {
	MemberID    string
	DisplayName string
	Net         int64
}

// ComputeNetBalances aggregates split lines and settlements into one
// signed net amount per person, sorted most-owed-to first (ties by id so
// the order is reproducible).
//
// Self-splits (payer owing themselves) are no-ops. A row that references
// a person missing from people is dropped in full, both its credit and
// its debit side, so the invariant that all nets sum to exactly zero
// holds for any input.
func ComputeNetBalances(people []Person, obligations []Obligation, lines []SplitLine, settlements []Settlement) []BalanceRow {
	net := make(map[string]int64, len(people))
	names := make(map[string]string, len(people))
	for _, p := range people {
		net[p.ID] = 0
		names[p.ID] = p.DisplayName
	}

	payerOf := make(map[string]string, len(obligations))
	for _, o := range obligations {
		payerOf[o.ExpenseID] = o.PayerID
	}

	for _, line := range lines {
		payer, ok := payerOf[line.ExpenseID]
		if !ok || payer == line.MemberID {
			continue
		}
		if _, ok := net[payer]; !ok {
			continue
		}
		if _, ok := net[line.MemberID]; !ok {
			continue
		}
		net[payer] += line.Amount
		net[line.MemberID] -= line.Amount
	}

	for _, s := range settlements {
		if _, ok := net[s.FromID]; !ok {
			continue
		}
		if _, ok := net[s.ToID]; !ok {
			continue
		}
		net[s.FromID] += s.Amount
		net[s.ToID] -= s.Amount
	}

	rows := make([]BalanceRow, 0, len(people))
	for _, p := range people {
		rows = append(rows, BalanceRow{MemberID: p.ID, DisplayName: names[p.ID], Net: net[p.ID]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Net != rows[j].Net {
			return rows[i].Net > rows[j].Net
		}
		return rows[i].MemberID < rows[j].MemberID
	})
	return rows
}

// pairKey orders a directed debt: debtor owes creditor.
type pairKey struct {
	debtor   string
	creditor string
}

// ComputePairwiseBalances reports the current person's signed position
// against every other individual person. Split lines add to the
// (ower -> payer) direction; settlements subtract from the (from -> to)
// direction (a settlement reduces a debt, it never reverses one; the
// net of the two directions carries the sign). Fully settled pairs are
// filtered out; the rest sort by absolute amount descending, ties by id.
func ComputePairwiseBalances(currentID string, people []Person, obligations []Obligation, lines []SplitLine, settlements []Settlement) []PairwiseRow {
	known := make(map[string]string, len(people))
	for _, p := range people {
		known[p.ID] = p.DisplayName
	}

	payerOf := make(map[string]string, len(obligations))
	for _, o := range obligations {
		payerOf[o.ExpenseID] = o.PayerID
	}

	directed := make(map[pairKey]int64)
	for _, line := range lines {
		payer, ok := payerOf[line.ExpenseID]
		if !ok || payer == line.MemberID {
			continue
		}
		if _, ok := known[payer]; !ok {
			continue
		}
		if _, ok := known[line.MemberID]; !ok {
			continue
		}
		directed[pairKey{debtor: line.MemberID, creditor: payer}] += line.Amount
	}
	for _, s := range settlements {
		if _, ok := known[s.FromID]; !ok {
			continue
		}
		if _, ok := known[s.ToID]; !ok {
			continue
		}
		directed[pairKey{debtor: s.FromID, creditor: s.ToID}] -= s.Amount
	}

	var rows []PairwiseRow
	for _, p := range people {
		if p.ID == currentID {
			continue
		}
		net := directed[pairKey{debtor: p.ID, creditor: currentID}] -
			directed[pairKey{debtor: currentID, creditor: p.ID}]
		if net == 0 {
			continue
		}
		rows = append(rows, PairwiseRow{MemberID: p.ID, DisplayName: p.DisplayName, Net: net})
	}
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := abs64(rows[i].Net), abs64(rows[j].Net)
		if ai != aj {
			return ai > aj
		}
		return rows[i].MemberID < rows[j].MemberID
	})
	return rows
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
