// Package ledger implements the pure money math for HomeShare: turning an
// expense total and a split policy into per-member obligations, and
// aggregating obligations and repayments into net and pairwise balances.
//
// Everything here is integer arithmetic on cents. The package holds no
// state and does no I/O; every function is a pure function of its
// arguments and safe for concurrent use.
package ledger

import (
	"math"
	"sort"
)

// Share is one member's portion of an expense total, in cents.
type Share struct {
	MemberID string
	Amount   int64
}

// PercentShare is one member's percentage of an expense total.
type PercentShare struct {
	MemberID string
	Percent  float64
}

// ShareCount is one member's share weight for a shares split.
type ShareCount struct {
	MemberID string
	Shares   int64
}

// percentTolerance absorbs float representation error in UI-supplied
// percentages (e.g., 33.33+33.33+33.34).
const percentTolerance = 0.001

// SplitEqual divides total evenly among the participants. The remainder
// after floor division is handed out one cent at a time in input order,
// so the outputs always sum to total and no two shares differ by more
// than one cent. An empty participant list yields an empty result.
func SplitEqual(total int64, participantIDs []string) []Share {
	n := int64(len(participantIDs))
	if n == 0 {
		return nil
	}

	base := total / n
	remainder := total % n

	shares := make([]Share, 0, n)
	for i, id := range participantIDs {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares = append(shares, Share{MemberID: id, Amount: amount})
	}
	return shares
}

// BuildExactSplits validates caller-supplied per-member amounts against
// the expense total and returns them unchanged. There is no silent
// correction: a duplicate member, a negative amount, or a sum that misses
// the total by even one cent is rejected.
func BuildExactSplits(total int64, amounts []Share) ([]Share, error) {
	seen := make(map[string]bool, len(amounts))
	var sum int64
	for _, a := range amounts {
		if seen[a.MemberID] {
			return nil, validationErr("duplicate person")
		}
		seen[a.MemberID] = true
		if a.Amount < 0 {
			return nil, validationErr("negative amount")
		}
		sum += a.Amount
	}
	if sum != total {
		return nil, validationErr("total mismatch")
	}

	shares := make([]Share, len(amounts))
	copy(shares, amounts)
	return shares, nil
}

// SplitByPercentage divides total according to per-member percentages,
// which must sum to 100 within a small tolerance. Each ideal amount is
// floored and the leftover cents go to the members with the largest
// fractional remainder first (ties broken by member id), the classic
// largest-remainder apportionment: outputs reconcile to the cent.
func SplitByPercentage(total int64, percents []PercentShare) ([]Share, error) {
	seen := make(map[string]bool, len(percents))
	var percentSum float64
	for _, p := range percents {
		if seen[p.MemberID] {
			return nil, validationErr("duplicate person")
		}
		seen[p.MemberID] = true
		if p.Percent < 0 {
			return nil, validationErr("negative percentage")
		}
		percentSum += p.Percent
	}
	if math.Abs(percentSum-100) > percentTolerance {
		return nil, validationErr("percentages must sum to 100")
	}

	ideals := make([]float64, len(percents))
	for i, p := range percents {
		ideals[i] = float64(total) * p.Percent / 100
	}
	ids := make([]string, len(percents))
	for i, p := range percents {
		ids[i] = p.MemberID
	}
	return apportion(total, ids, ideals), nil
}

// SplitByShares divides total proportionally to per-member share weights
// using the same largest-remainder mechanics as SplitByPercentage.
func SplitByShares(total int64, counts []ShareCount) ([]Share, error) {
	seen := make(map[string]bool, len(counts))
	var totalShares int64
	for _, c := range counts {
		if seen[c.MemberID] {
			return nil, validationErr("duplicate person")
		}
		seen[c.MemberID] = true
		if c.Shares < 0 {
			return nil, validationErr("negative shares")
		}
		totalShares += c.Shares
	}
	if totalShares <= 0 {
		return nil, validationErr("total shares must be positive")
	}

	ideals := make([]float64, len(counts))
	ids := make([]string, len(counts))
	for i, c := range counts {
		ideals[i] = float64(total) * float64(c.Shares) / float64(totalShares)
		ids[i] = c.MemberID
	}
	return apportion(total, ids, ideals), nil
}

// SplitAdjustment builds the degenerate single-line split for a direct
// reimbursement: from owes the full total to the payer (to).
func SplitAdjustment(total int64, fromID, toID string) []Share {
	_ = toID // the payer is recorded on the expense, not on the line
	return []Share{{MemberID: fromID, Amount: total}}
}

// apportion floors each ideal amount and distributes the shortfall one
// cent at a time, largest fractional remainder first, ties by member id
// ascending. Output order matches input order. A negative shortfall
// (percent sums just over 100 on large totals) is taken back from the
// smallest remainders instead, so the sum invariant holds either way.
func apportion(total int64, ids []string, ideals []float64) []Share {
	n := len(ids)
	amounts := make([]int64, n)
	fracs := make([]float64, n)
	var sum int64
	for i, ideal := range ideals {
		base := math.Floor(ideal)
		amounts[i] = int64(base)
		fracs[i] = ideal - base
		sum += amounts[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if fracs[ia] != fracs[ib] {
			return fracs[ia] > fracs[ib]
		}
		return ids[ia] < ids[ib]
	})

	shortfall := total - sum
	for i := 0; shortfall > 0; i++ {
		amounts[order[i%n]]++
		shortfall--
	}
	for i := 0; shortfall < 0; i++ {
		amounts[order[n-1-i%n]]--
		shortfall++
	}

	shares := make([]Share, n)
	for i := range shares {
		shares[i] = Share{MemberID: ids[i], Amount: amounts[i]}
	}
	return shares
}
