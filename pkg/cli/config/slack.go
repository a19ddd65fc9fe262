package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	slackSvc "github.com/secmon-lab/salesday/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack configuration
type Slack struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token used to post the summary",
			Category:    "Slack",
			Sources:     cli.EnvVars("SALESDAY_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID receiving the summary",
			Category:    "Slack",
			Sources:     cli.EnvVars("SALESDAY_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// IsConfigured checks if Slack notification is enabled
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" || s.Channel != ""
}

// Validate validates the Slack configuration
func (s *Slack) Validate() error {
	if !s.IsConfigured() {
		return nil
	}
	if s.OAuthToken == "" || s.Channel == "" {
		return goerr.New("both slack-oauth-token and slack-channel are required",
			goerr.V("has_oauth_token", s.OAuthToken != ""),
			goerr.V("channel", s.Channel),
			goerr.T(model.ErrTagConfig))
	}
	return nil
}

// Configure returns the Slack publisher, nil if not configured
func (s *Slack) Configure() (*slackSvc.Service, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !s.IsConfigured() {
		return nil, nil
	}
	return slackSvc.New(s.OAuthToken, s.Channel), nil
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
	)
}
