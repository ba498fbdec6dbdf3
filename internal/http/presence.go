package http

import (
	"net/http"

	"github.com/courtreign/courtreign/internal/presence"
)

func (s *Server) CheckInHandler() http.HandlerFunc {
	type request struct {
		PlayerID  string  `json:"player_id"`
		VenueID   string  `json:"venue_id"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		record, err := s.Presence.CheckIn(req.PlayerID, req.VenueID, req.Latitude, req.Longitude)
		if err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.IncPresenceCheckIns()
		respondJSON(w, http.StatusOK, record)
	}
}

func (s *Server) CheckOutHandler() http.HandlerFunc {
	type request struct {
		PlayerID string `json:"player_id"`
		VenueID  string `json:"venue_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Presence.CheckOut(req.PlayerID, req.VenueID); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"checked_in": false})
	}
}

func (s *Server) HeartbeatHandler() http.HandlerFunc {
	type request struct {
		PlayerID  string  `json:"player_id"`
		VenueID   string  `json:"venue_id"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		result, err := s.Presence.Heartbeat(req.PlayerID, req.VenueID, req.Latitude, req.Longitude)
		if err != nil {
			respondError(w, err)
			return
		}
		if result.Transitioned && result.CheckedIn {
			s.Metrics.IncPresenceCheckIns()
		}
		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) PresenceStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		venueID := r.URL.Query().Get("venueID")
		if playerID == "" || venueID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "playerID and venueID are required"})
			return
		}
		status, err := s.Presence.GetStatus(playerID, venueID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

func (s *Server) ListActiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venueID := r.URL.Query().Get("venueID")
		if venueID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "venueID is required"})
			return
		}
		records, err := s.Presence.ListActiveAtVenue(venueID)
		if err != nil {
			respondError(w, err)
			return
		}
		if records == nil {
			records = []presence.Record{}
		}
		respondJSON(w, http.StatusOK, records)
	}
}

// SweepPresenceHandler triggers the stale-presence cleanup on demand; the
// scheduled job calls the same code path.
func (s *Server) SweepPresenceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := s.Presence.DeleteStale()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
	}
}
