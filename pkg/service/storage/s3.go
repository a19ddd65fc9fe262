package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/interfaces"
	"github.com/secmon-lab/salesday/pkg/domain/model"
)

// PutObjectAPI is the part of the S3 API the uploader uses
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds the destination of uploaded reports
type S3Config struct {
	Bucket          string
	Region          string
	Prefix          string
	EndpointURL     string // S3-compatible services
	AccessKeyID     string
	SecretAccessKey string
}

// S3 uploads the CSV of a report to a bucket
type S3 struct {
	client PutObjectAPI
	bucket string
	prefix string
}

var _ interfaces.Publisher = (*S3)(nil)

// NewS3 creates an uploader. Static credentials are used when both keys are
// set, otherwise the default AWS credential chain applies.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, goerr.New("S3 bucket is required", goerr.T(model.ErrTagConfig))
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load AWS config", goerr.V("region", cfg.Region))
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	return NewS3WithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3WithClient creates an uploader on top of an existing client
func NewS3WithClient(client PutObjectAPI, bucket, prefix string) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Name implements interfaces.Publisher
func (s *S3) Name() string {
	return "s3"
}

// ObjectKey returns the key the file at localPath is stored under
func (s *S3) ObjectKey(localPath string) string {
	return path.Join(s.prefix, filepath.Base(localPath))
}

// Publish uploads the report's CSV file
func (s *S3) Publish(ctx context.Context, report *model.Report) error {
	f, err := os.Open(report.OutputPath)
	if err != nil {
		return goerr.Wrap(err, "failed to open report file", goerr.V("path", report.OutputPath))
	}
	defer f.Close()

	key := s.ObjectKey(report.OutputPath)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("text/csv; charset=utf-8"),
		Metadata: map[string]string{
			"run-id": report.RunID.String(),
		},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to upload report",
			goerr.V("bucket", s.bucket),
			goerr.V("key", key))
	}

	ctxlog.From(ctx).Debug("Uploaded report", "bucket", s.bucket, "key", key)
	return nil
}
