package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/interfaces"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/slack-go/slack"
)

// MessagePoster is the part of the Slack API the notifier uses
type MessagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Service posts detection summaries to a Slack channel
type Service struct {
	client  MessagePoster
	channel string
}

var _ interfaces.Publisher = (*Service)(nil)

// New creates a new Slack service
func New(token, channel string) *Service {
	return NewWithClient(slack.New(token), channel)
}

// NewWithClient creates a Slack service on top of an existing client
func NewWithClient(client MessagePoster, channel string) *Service {
	return &Service{
		client:  client,
		channel: channel,
	}
}

// Name implements interfaces.Publisher
func (s *Service) Name() string {
	return "slack"
}

// Publish posts the report summary to the configured channel
func (s *Service) Publish(ctx context.Context, report *model.Report) error {
	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slack.MsgOptionText(SummaryText(report), false),
		slack.MsgOptionBlocks(BuildReportBlocks(report)...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post message to Slack", goerr.V("channel", s.channel))
	}
	return nil
}
