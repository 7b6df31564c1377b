package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) netBalances(w http.ResponseWriter, r *http.Request) {
	rows, err := s.balanceSvc.NetBalances(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toBalanceRows(rows))
}

func (s *Server) pairwiseBalances(w http.ResponseWriter, r *http.Request) {
	rows, err := s.balanceSvc.PairwiseBalances(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "memberId"))
	if err != nil {
		writeError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toPairwiseRows(rows))
}
