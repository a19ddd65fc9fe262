package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/model"
)

var kinds = []struct {
	has  func(error) bool
	name string
}{
	{func(err error) bool { return goerr.HasTag(err, model.ErrTagConfig) }, "config"},
	{func(err error) bool { return goerr.HasTag(err, model.ErrTagConnection) }, "connection"},
	{func(err error) bool { return goerr.HasTag(err, model.ErrTagQuery) }, "query"},
	{func(err error) bool { return goerr.HasTag(err, model.ErrTagWrite) }, "write"},
	{func(err error) bool { return goerr.HasTag(err, model.ErrTagPublish) }, "publish"},
}

// Kind names the failure class of err, "unknown" when it carries no known tag
func Kind(err error) string {
	for _, k := range kinds {
		if k.has(err) {
			return k.name
		}
	}
	return "unknown"
}

// Handle logs err with its failure class
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger := ctxlog.From(ctx)
	logger.Error("application error", "kind", Kind(err), "error", err)
}
