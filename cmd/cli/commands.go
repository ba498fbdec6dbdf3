package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(invitationsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(activeCmd)
	rootCmd.AddCommand(sweepCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var invitationsCmd = &cobra.Command{
	Use:   "invitations [playerID]",
	Short: "List a player's received invitations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/invitations?playerID=" + url.QueryEscape(args[0]))
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches [playerID]",
	Short: "List a player's matches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches?playerID=" + url.QueryEscape(args[0]))
	},
}

var cardCmd = &cobra.Command{
	Use:   "card [playerID] [sportSlug]",
	Short: "Get a player's competition card for a sport",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rankings/card?playerID=" + url.QueryEscape(args[0]) + "&sport=" + url.QueryEscape(args[1]))
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [sportID]",
	Short: "Get the leaderboard for a sport",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rankings/leaderboard?sportID=" + url.QueryEscape(args[0]))
	},
}

var activeCmd = &cobra.Command{
	Use:   "active [venueID]",
	Short: "List the players currently present at a venue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/presence/active?venueID=" + url.QueryEscape(args[0]))
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Trigger the stale presence sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/presence/sweep")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
