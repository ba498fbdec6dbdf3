package http

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/courtreign/courtreign/internal/notifier"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack
// command. The command text selects the sport by slug.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		sportSlug := r.FormValue("text")
		if sportSlug == "" {
			http.Error(w, "Sport slug is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received leaderboard command", "sport", sportSlug)

		sport, err := s.Ref.GetSportBySlug(sportSlug)
		if err != nil {
			http.Error(w, "Failed to look up sport", http.StatusInternalServerError)
			log.Error("Failed to look up sport", "error", err)
			return
		}
		if sport == nil {
			http.Error(w, "Unknown sport.", http.StatusNotFound)
			return
		}

		entries, err := s.Ranking.Leaderboard(sport.ID, 10)
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard", "error", err)
			return
		}

		rows := make([]notifier.LeaderboardRow, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, notifier.LeaderboardRow{
				Rank:       entry.Rank,
				PlayerName: entry.PlayerName,
				TotalXP:    entry.TotalXP,
				WinRate:    entry.WinRate,
			})
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(sport.Name, rows)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
