package http

import (
	"net/http"
	"strconv"

	"github.com/courtreign/courtreign/internal/ranking"
)

func (s *Server) GetRankHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		sportID := r.URL.Query().Get("sportID")
		if playerID == "" || sportID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "playerID and sportID are required"})
			return
		}
		rank, err := s.Ranking.GetRank(playerID, sportID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"rank": rank})
	}
}

func (s *Server) GetCrownsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		sportID := r.URL.Query().Get("sportID")
		if playerID == "" || sportID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "playerID and sportID are required"})
			return
		}
		status, err := s.Ranking.GetCrownStatus(playerID, sportID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

func (s *Server) GetCompetitionCardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		sportSlug := r.URL.Query().Get("sport")
		if playerID == "" || sportSlug == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "playerID and sport are required"})
			return
		}
		card, err := s.Ranking.GetCompetitionCard(playerID, sportSlug)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, card)
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sportID := r.URL.Query().Get("sportID")
		if sportID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "sportID is required"})
			return
		}
		limit := 10
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		entries, err := s.Ranking.Leaderboard(sportID, limit)
		if err != nil {
			respondError(w, err)
			return
		}
		if entries == nil {
			entries = []ranking.LeaderboardEntry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}
