package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/courtreign/courtreign/internal/invitations"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) SendInvitationHandler() http.HandlerFunc {
	type request struct {
		SenderID    string    `json:"sender_id"`
		ReceiverID  string    `json:"receiver_id"`
		VenueID     string    `json:"venue_id"`
		SportID     string    `json:"sport_id"`
		ScheduledAt time.Time `json:"scheduled_at"`
		Message     string    `json:"message"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		inv, err := s.Invitations.Send(req.SenderID, req.ReceiverID, req.VenueID, req.SportID, req.ScheduledAt, req.Message)
		if err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.IncInvitationsSent()
		respondJSON(w, http.StatusCreated, inv)
	}
}

func (s *Server) RespondInvitationHandler() http.HandlerFunc {
	type request struct {
		InvitationID string `json:"invitation_id"`
		ResponderID  string `json:"responder_id"`
		Accept       bool   `json:"accept"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		result, err := s.Invitations.Respond(req.InvitationID, req.ResponderID, req.Accept)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) CancelInvitationHandler() http.HandlerFunc {
	type request struct {
		InvitationID string `json:"invitation_id"`
		RequesterID  string `json:"requester_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Invitations.Cancel(req.InvitationID, req.RequesterID); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": string(invitations.StatusCancelled)})
	}
}

func (s *Server) ListInvitationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "playerID is required"})
			return
		}
		direction := invitations.DirectionReceived
		if r.URL.Query().Get("direction") == string(invitations.DirectionSent) {
			direction = invitations.DirectionSent
		}
		views, err := s.Invitations.List(playerID, direction)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, views)
	}
}

func (s *Server) PendingCountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "playerID is required"})
			return
		}
		count, err := s.Invitations.CountPending(playerID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"pending": count})
	}
}
