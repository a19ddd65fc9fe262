package interfaces

import (
	"context"

	"github.com/secmon-lab/salesday/pkg/domain/model"
)

// Publisher delivers a finished report somewhere besides the CSV file.
// Publishers run only after the CSV has been written.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, report *model.Report) error
}
