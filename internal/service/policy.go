package service

import (
	"fmt"

	"github.com/mmynk/homeshare/internal/ledger"
	"github.com/mmynk/homeshare/internal/models"
)

// policyFromSpec turns a wire/storage split description into a concrete
// ledger policy. Unknown or missing methods are rejected here, before any
// amount is computed or persisted.
func policyFromSpec(spec *models.SplitSpec) (ledger.Policy, error) {
	if spec == nil {
		return nil, fmt.Errorf("missing split spec")
	}

	switch spec.Method {
	case models.SplitEqual:
		return ledger.Equal{ParticipantIDs: spec.ParticipantIDs}, nil
	case models.SplitExact:
		amounts := make([]ledger.Share, len(spec.Amounts))
		for i, a := range spec.Amounts {
			amounts[i] = ledger.Share{MemberID: a.MemberID, Amount: a.Amount}
		}
		return ledger.Exact{Amounts: amounts}, nil
	case models.SplitPercentage:
		percents := make([]ledger.PercentShare, len(spec.Percents))
		for i, p := range spec.Percents {
			percents[i] = ledger.PercentShare{MemberID: p.MemberID, Percent: p.Percent}
		}
		return ledger.Percentage{Percents: percents}, nil
	case models.SplitShares:
		counts := make([]ledger.ShareCount, len(spec.Shares))
		for i, c := range spec.Shares {
			counts[i] = ledger.ShareCount{MemberID: c.MemberID, Shares: c.Shares}
		}
		return ledger.ByShares{Counts: counts}, nil
	case models.SplitAdjustment:
		return ledger.Adjustment{FromID: spec.FromMemberID, ToID: spec.ToMemberID}, nil
	default:
		return nil, fmt.Errorf("unknown split method %q", spec.Method)
	}
}
