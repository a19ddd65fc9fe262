package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/domain/types"
	"github.com/slack-go/slack"
)

// MaxListedDays caps the unusual days listed in one message
const MaxListedDays = 10

// directionEmoji returns emoji for the side of the fences
func directionEmoji(d types.Direction) string {
	switch d {
	case types.DirectionHigh:
		return "📈"
	case types.DirectionLow:
		return "📉"
	default:
		return "❓"
	}
}

// SummaryText is the plain text fallback of the report message
func SummaryText(report *model.Report) string {
	return fmt.Sprintf("%d unusual sales days out of %d (%d high, %d low)",
		len(report.Unusual),
		len(report.Days),
		report.CountByDirection(types.DirectionHigh),
		report.CountByDirection(types.DirectionLow),
	)
}

// BuildReportBlocks renders the report as Slack blocks
func BuildReportBlocks(report *model.Report) []slack.Block {
	from, to := report.Period()
	period := "no orders"
	if !from.IsZero() {
		period = fmt.Sprintf("%s to %s", from, to)
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, "Unusual sales days", false, false),
		),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Period*\n%s", period), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Days analyzed*\n%d", len(report.Days)), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Q1 / Q3*\n%g / %g", report.Stats.Q1, report.Stats.Q3), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Normal range*\n%g to %g", report.Stats.Lower, report.Stats.Upper), false, false),
		}, nil),
	}

	if len(report.Unusual) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "No unusual days found ✅", false, false),
			nil, nil,
		))
	} else {
		var lines []string
		for i, day := range report.Unusual {
			if i == MaxListedDays {
				lines = append(lines, fmt.Sprintf("_…and %d more_", len(report.Unusual)-MaxListedDays))
				break
			}
			lines = append(lines, fmt.Sprintf("%s `%s` %d orders", directionEmoji(day.Direction), day.Date, day.Count))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, strings.Join(lines, "\n"), false, false),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("run `%s` · %s", report.RunID, report.OutputPath), false, false),
	))
	return blocks
}
