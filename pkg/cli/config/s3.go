package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/salesday/pkg/service/storage"
	"github.com/urfave/cli/v3"
)

// S3 holds report upload configuration
type S3 struct {
	Bucket          string
	Region          string
	Prefix          string
	EndpointURL     string
	AccessKeyID     string
	SecretAccessKey string
}

// Flags returns CLI flags for S3 configuration
func (s *S3) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "s3-bucket",
			Usage:       "Upload the CSV to this bucket",
			Category:    "S3",
			Sources:     cli.EnvVars("SALESDAY_S3_BUCKET"),
			Destination: &s.Bucket,
		},
		&cli.StringFlag{
			Name:        "s3-region",
			Usage:       "Bucket region",
			Category:    "S3",
			Value:       "us-east-1",
			Sources:     cli.EnvVars("SALESDAY_S3_REGION", "AWS_REGION"),
			Destination: &s.Region,
		},
		&cli.StringFlag{
			Name:        "s3-prefix",
			Usage:       "Key prefix of the uploaded CSV",
			Category:    "S3",
			Sources:     cli.EnvVars("SALESDAY_S3_PREFIX"),
			Destination: &s.Prefix,
		},
		&cli.StringFlag{
			Name:        "s3-endpoint",
			Usage:       "Endpoint URL of an S3-compatible service",
			Category:    "S3",
			Sources:     cli.EnvVars("SALESDAY_S3_ENDPOINT"),
			Destination: &s.EndpointURL,
		},
		&cli.StringFlag{
			Name:        "s3-access-key-id",
			Usage:       "Static access key ID, the default AWS credential chain is used when empty",
			Category:    "S3",
			Sources:     cli.EnvVars("SALESDAY_S3_ACCESS_KEY_ID"),
			Destination: &s.AccessKeyID,
		},
		&cli.StringFlag{
			Name:        "s3-secret-access-key",
			Usage:       "Static secret access key",
			Category:    "S3",
			Sources:     cli.EnvVars("SALESDAY_S3_SECRET_ACCESS_KEY"),
			Destination: &s.SecretAccessKey,
		},
	}
}

// IsConfigured checks if upload is enabled
func (s *S3) IsConfigured() bool {
	return s.Bucket != ""
}

// Configure returns the S3 publisher, nil if not configured
func (s *S3) Configure(ctx context.Context) (*storage.S3, error) {
	if !s.IsConfigured() {
		return nil, nil
	}
	return storage.NewS3(ctx, storage.S3Config{
		Bucket:          s.Bucket,
		Region:          s.Region,
		Prefix:          s.Prefix,
		EndpointURL:     s.EndpointURL,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
	})
}

// LogValue returns structured log value
func (s S3) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", s.Bucket),
		slog.String("region", s.Region),
		slog.String("prefix", s.Prefix),
		slog.String("endpoint", s.EndpointURL),
		slog.Bool("has_static_credentials", s.AccessKeyID != "" && s.SecretAccessKey != ""),
	)
}
