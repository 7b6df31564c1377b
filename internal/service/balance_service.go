package service

import (
	"context"
	"fmt"

	"github.com/mmynk/homeshare/internal/ledger"
	"github.com/mmynk/homeshare/internal/storage"
)

// BalanceService answers ledger views: who is owed what across a
// household, in aggregate and pairwise. It loads one snapshot of members,
// expenses and settlements per call and hands it to the pure aggregator,
// so concurrent writes can never tear a single computation.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage
// backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// NetBalances computes each member's signed net position.
func (s *BalanceService) NetBalances(ctx context.Context, householdID string) ([]ledger.BalanceRow, error) {
	people, obligations, lines, settlements, err := s.snapshot(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeNetBalances(people, obligations, lines, settlements), nil
}

// PairwiseBalances computes one member's position against every other
// member individually.
func (s *BalanceService) PairwiseBalances(ctx context.Context, householdID, memberID string) ([]ledger.PairwiseRow, error) {
	people, obligations, lines, settlements, err := s.snapshot(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return ledger.ComputePairwiseBalances(memberID, people, obligations, lines, settlements), nil
}

func (s *BalanceService) snapshot(ctx context.Context, householdID string) ([]ledger.Person, []ledger.Obligation, []ledger.SplitLine, []ledger.Settlement, error) {
	members, err := s.store.ListMembers(ctx, householdID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list members: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx, householdID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	stored, err := s.store.ListSettlements(ctx, householdID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	people := make([]ledger.Person, 0, len(members))
	for _, m := range members {
		people = append(people, ledger.Person{ID: m.ID, DisplayName: m.DisplayName})
	}

	var obligations []ledger.Obligation
	var lines []ledger.SplitLine
	for _, e := range expenses {
		obligations = append(obligations, ledger.Obligation{ExpenseID: e.ID, PayerID: e.PayerID, Amount: e.Amount})
		for _, l := range e.Lines {
			lines = append(lines, ledger.SplitLine{ExpenseID: e.ID, MemberID: l.MemberID, Amount: l.Amount})
		}
	}

	settlements := make([]ledger.Settlement, 0, len(stored))
	for _, st := range stored {
		settlements = append(settlements, ledger.Settlement{FromID: st.FromMemberID, ToID: st.ToMemberID, Amount: st.Amount})
	}

	return people, obligations, lines, settlements, nil
}
