package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtreign/courtreign/internal/metrics"
	"github.com/courtreign/courtreign/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// SendResultNotification announces a completed match's score and rewards.
func (s *Notifier) SendResultNotification(result *notifier.MatchResult, dryRun bool) error {
	return s.sendMessage(s.formatResultNotification(result), dryRun)
}

// SendDisputeNotification flags a disputed match for the channel.
func (s *Notifier) SendDisputeNotification(matchID, reason string, dryRun bool) error {
	return s.sendMessage(s.formatDisputeNotification(matchID, reason), dryRun)
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(sportName string, rows []notifier.LeaderboardRow) (any, error) {
	return s.formatLeaderboard(sportName, rows), nil
}

func (s *Notifier) formatResultNotification(result *notifier.MatchResult) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Match result is in! 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s at %s\n%s %d — %d %s",
		result.SportName, result.VenueName,
		result.Player1Name, result.Player1Score,
		result.Player2Score, result.Player2Name)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var outcomeText string
	if result.WinnerName == "" {
		outcomeText = "Dead even. The result is held for manual review."
	} else {
		outcomeText = fmt.Sprintf("%s takes it, earning %d XP and %d RP!", result.WinnerName, result.WinnerXP, result.WinnerRP)
	}
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", outcomeText, true, false)))

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = detailsText // fallback for notifications
	return msg
}

func (s *Notifier) formatDisputeNotification(matchID, reason string) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "⚠️ Match disputed", true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text",
			fmt.Sprintf("Match %s is under dispute: %s", matchID, reason), true, false), nil, nil),
	}
	msg := slack.NewBlockMessage(blocks...)
	msg.Text = "Match disputed"
	return msg
}

func (s *Notifier) formatLeaderboard(sportName string, rows []notifier.LeaderboardRow) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("👑 %s leaderboard", sportName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "No matches played yet. The throne is empty.", true, false), nil, nil))
	}

	for _, row := range rows {
		line := fmt.Sprintf("%d. %s — %d XP (%d%% win rate)", row.Rank, row.PlayerName, row.TotalXP, row.WinRate)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", line, true, false), nil, nil))
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = fmt.Sprintf("%s leaderboard", sportName)
	return msg
}
