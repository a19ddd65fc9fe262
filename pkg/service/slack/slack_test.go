package slack_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/domain/types"
	slackSvc "github.com/secmon-lab/salesday/pkg/service/slack"
	"github.com/slack-go/slack"
)

type posterMock struct {
	channels []string
	options  [][]slack.MsgOption
	err      error
}

func (m *posterMock) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	m.channels = append(m.channels, channelID)
	m.options = append(m.options, options)
	return channelID, "1234567890.000001", m.err
}

func newReport(unusual int) *model.Report {
	start := model.NewDate(2011, time.May, 31)
	report := &model.Report{
		RunID:      types.RunID("run-1"),
		OutputPath: "dates_unusual_sales.csv",
		Stats:      model.Statistics{N: 3, Q1: 10, Q3: 12.25, Lower: 6.625, Upper: 15.625},
	}
	for i := 0; i < 3; i++ {
		report.Days = append(report.Days, model.OrderDayCount{Date: start.AddDays(i), Count: 10})
	}
	for i := 0; i < unusual; i++ {
		dir := types.DirectionHigh
		if i%2 == 1 {
			dir = types.DirectionLow
		}
		report.Unusual = append(report.Unusual, model.UnusualDay{
			OrderDayCount: model.OrderDayCount{Date: start.AddDays(i), Count: int64(100 + i)},
			Direction:     dir,
		})
	}
	return report
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("posts to the configured channel", func(t *testing.T) {
		mock := &posterMock{}
		svc := slackSvc.NewWithClient(mock, "C123456")

		gt.NoError(t, svc.Publish(ctx, newReport(2)))
		gt.Equal(t, mock.channels, []string{"C123456"})
		gt.Equal(t, len(mock.options[0]), 2)
		gt.Equal(t, svc.Name(), "slack")
	})

	t.Run("wraps API errors", func(t *testing.T) {
		mock := &posterMock{err: goerr.New("channel_not_found")}
		svc := slackSvc.NewWithClient(mock, "C999")

		err := svc.Publish(ctx, newReport(1))
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("failed to post message to Slack")
	})
}

func TestSummaryText(t *testing.T) {
	gt.Equal(t, slackSvc.SummaryText(newReport(3)), "3 unusual sales days out of 3 (2 high, 1 low)")
}

func TestBuildReportBlocks(t *testing.T) {
	t.Run("lists unusual days", func(t *testing.T) {
		blocks := slackSvc.BuildReportBlocks(newReport(2))
		gt.Equal(t, len(blocks), 4)

		list, ok := blocks[2].(*slack.SectionBlock)
		gt.True(t, ok)
		gt.S(t, list.Text.Text).Contains("📈 `2011-05-31` 100 orders")
		gt.S(t, list.Text.Text).Contains("📉 `2011-06-01` 101 orders")
	})

	t.Run("caps the list", func(t *testing.T) {
		blocks := slackSvc.BuildReportBlocks(newReport(slackSvc.MaxListedDays + 5))
		list, ok := blocks[2].(*slack.SectionBlock)
		gt.True(t, ok)
		gt.S(t, list.Text.Text).Contains("and 5 more")
	})

	t.Run("no unusual days", func(t *testing.T) {
		blocks := slackSvc.BuildReportBlocks(newReport(0))
		list, ok := blocks[2].(*slack.SectionBlock)
		gt.True(t, ok)
		gt.S(t, list.Text.Text).Contains("No unusual days found")
	})

	t.Run("summary fields", func(t *testing.T) {
		blocks := slackSvc.BuildReportBlocks(newReport(1))
		fields, ok := blocks[1].(*slack.SectionBlock)
		gt.True(t, ok)
		gt.A(t, fields.Fields).Length(4)
		gt.Equal(t, fields.Fields[0].Text, "*Period*\n2011-05-31 to 2011-06-02")
		gt.Equal(t, fields.Fields[3].Text, "*Normal range*\n6.625 to 15.625")
	})

	t.Run("empty report", func(t *testing.T) {
		blocks := slackSvc.BuildReportBlocks(&model.Report{})
		fields, ok := blocks[1].(*slack.SectionBlock)
		gt.True(t, ok)
		gt.S(t, fields.Fields[0].Text).Contains("no orders")
	})
}
