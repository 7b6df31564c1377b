package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mmynk/homeshare/internal/middleware"
	"github.com/mmynk/homeshare/internal/models"
)

func (s *Server) createSettlement(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "id")

	var req settlementRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	if req.Amount <= 0 {
		badRequest(w, "amount must be positive")
		return
	}
	if req.FromMemberID == "" || req.ToMemberID == "" {
		badRequest(w, "from_member_id and to_member_id are required")
		return
	}
	if req.FromMemberID == req.ToMemberID {
		badRequest(w, "a member cannot settle with themselves")
		return
	}

	members, err := s.store.ListMembers(r.Context(), householdID)
	if err != nil {
		writeError(w, err)
		return
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}
	if !known[req.FromMemberID] || !known[req.ToMemberID] {
		badRequest(w, "both parties must be household members")
		return
	}

	settlement := &models.Settlement{
		ID:           uuid.New().String(),
		HouseholdID:  householdID,
		FromMemberID: req.FromMemberID,
		ToMemberID:   req.ToMemberID,
		Amount:       req.Amount,
		Note:         req.Note,
		CreatedBy:    middleware.GetUserID(r.Context()),
	}
	if err := s.store.CreateSettlement(r.Context(), settlement); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toSettlementDTO(settlement))
}

func (s *Server) listSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.store.ListSettlements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]settlementDTO, 0, len(settlements))
	for _, st := range settlements {
		out = append(out, toSettlementDTO(st))
	}
	toJSON(w, http.StatusOK, out)
}
