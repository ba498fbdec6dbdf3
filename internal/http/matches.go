package http

import "net/http"

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "matchID is required"})
			return
		}
		match, err := s.Matches.Get(matchID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, match)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "playerID is required"})
			return
		}
		result, err := s.Matches.ListByPlayer(playerID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) StartMatchHandler() http.HandlerFunc {
	type request struct {
		MatchID  string `json:"match_id"`
		PlayerID string `json:"player_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		match, err := s.Matches.Start(req.MatchID, req.PlayerID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, match)
	}
}

func (s *Server) SubmitResultHandler() http.HandlerFunc {
	type request struct {
		MatchID  string `json:"match_id"`
		PlayerID string `json:"player_id"`
		MediaRef string `json:"media_ref"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		if req.MediaRef == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "media_ref is required"})
			return
		}
		match, err := s.Matches.SubmitResult(req.MatchID, req.PlayerID, req.MediaRef)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusAccepted, match)
	}
}

func (s *Server) AgreeMatchHandler() http.HandlerFunc {
	type request struct {
		MatchID  string `json:"match_id"`
		PlayerID string `json:"player_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		match, err := s.Matches.Agree(req.MatchID, req.PlayerID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, match)
	}
}

func (s *Server) DisputeMatchHandler() http.HandlerFunc {
	type request struct {
		MatchID  string `json:"match_id"`
		PlayerID string `json:"player_id"`
		Reason   string `json:"reason"`
		Details  string `json:"details"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Reason == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "reason is required"})
			return
		}
		match, err := s.Matches.Dispute(req.MatchID, req.PlayerID, req.Reason, req.Details)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, match)
	}
}

func (s *Server) CancelMatchHandler() http.HandlerFunc {
	type request struct {
		MatchID  string `json:"match_id"`
		PlayerID string `json:"player_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		match, err := s.Matches.Cancel(req.MatchID, req.PlayerID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, match)
	}
}
