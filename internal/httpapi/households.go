package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mmynk/homeshare/internal/middleware"
	"github.com/mmynk/homeshare/internal/models"
)

func (s *Server) createHousehold(w http.ResponseWriter, r *http.Request) {
	var req householdRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	household := &models.Household{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedBy: middleware.GetUserID(r.Context()),
	}
	if err := s.store.CreateHousehold(r.Context(), household); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toHouseholdDTO(household))
}

func (s *Server) getHousehold(w http.ResponseWriter, r *http.Request) {
	household, err := s.store.GetHousehold(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toHouseholdDTO(household))
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	householdID := chi.URLParam(r, "id")

	var req memberRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	if req.DisplayName == "" {
		badRequest(w, "display_name is required")
		return
	}

	// Reject members for households that do not exist.
	if _, err := s.store.GetHousehold(r.Context(), householdID); err != nil {
		writeError(w, err)
		return
	}

	member := &models.Member{
		ID:          uuid.New().String(),
		HouseholdID: householdID,
		DisplayName: req.DisplayName,
		UserID:      req.UserID,
	}
	if err := s.store.AddMember(r.Context(), member); err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toMemberDTO(member))
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]memberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberDTO(m))
	}
	toJSON(w, http.StatusOK, out)
}
