package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/salesday/pkg/cli/config"
	"github.com/secmon-lab/salesday/pkg/domain/model"
)

func TestLoggerValidate(t *testing.T) {
	gt.NoError(t, (&config.Logger{Level: "debug", Format: "json"}).Validate())
	gt.NoError(t, (&config.Logger{Level: "info", Format: ""}).Validate())
	gt.Error(t, (&config.Logger{Level: "trace", Format: "json"}).Validate())
	gt.Error(t, (&config.Logger{Level: "info", Format: "xml"}).Validate())

	logger, err := (&config.Logger{Level: "warn", Format: "json"}).Configure()
	gt.NoError(t, err)
	gt.V(t, logger).NotNil()
}

func TestOutputValidate(t *testing.T) {
	gt.NoError(t, (&config.Output{Path: "out.csv", Fence: 1.5}).Validate())
	gt.NoError(t, (&config.Output{Path: "out.csv", Fence: 0}).Validate())
	gt.Error(t, (&config.Output{Path: "", Fence: 1.5}).Validate())
	gt.Error(t, (&config.Output{Path: "out.csv", Fence: -1}).Validate())
	gt.Error(t, (&config.Output{Path: "out.csv", Fence: math.NaN()}).Validate())
	gt.Error(t, (&config.Output{Path: "out.csv", Fence: math.Inf(1)}).Validate())

	gt.V(t, (&config.Output{}).ConfigureMetrics()).Nil()
	gt.V(t, (&config.Output{MetricsFile: "x.prom"}).ConfigureMetrics()).NotNil()
}

func TestSlackConfigure(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc, err := (&config.Slack{}).Configure()
		gt.NoError(t, err)
		gt.V(t, svc).Nil()
	})

	t.Run("token without channel", func(t *testing.T) {
		_, err := (&config.Slack{OAuthToken: "xoxb-test"}).Configure()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
	})

	t.Run("fully configured", func(t *testing.T) {
		svc, err := (&config.Slack{OAuthToken: "xoxb-test", Channel: "C123"}).Configure()
		gt.NoError(t, err)
		gt.V(t, svc).NotNil()
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("exports variables without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		gt.NoError(t, os.WriteFile(path, []byte("SALESDAY_TEST_FROM_FILE=file\nSALESDAY_TEST_PRESET=file\n"), 0o600))
		t.Setenv("SALESDAY_TEST_PRESET", "env")
		t.Setenv("SALESDAY_TEST_FROM_FILE", "")
		os.Unsetenv("SALESDAY_TEST_FROM_FILE")

		gt.NoError(t, config.LoadEnvFile(path))
		gt.Equal(t, os.Getenv("SALESDAY_TEST_FROM_FILE"), "file")
		gt.Equal(t, os.Getenv("SALESDAY_TEST_PRESET"), "env")
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		err := config.LoadEnvFile(filepath.Join(t.TempDir(), "none.env"))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
	})

	t.Run("env var selects the file", func(t *testing.T) {
		t.Setenv("SALESDAY_ENV_FILE", "/etc/salesday.env")
		gt.Equal(t, config.EnvFilePath(), "/etc/salesday.env")
	})
}
