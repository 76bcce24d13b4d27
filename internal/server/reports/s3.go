// Package reports publishes reconciliation reports.
package reports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrijs2005/libris/internal/server/services"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Uploader is the part of *s3.Client the writer needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config points at an S3-compatible store. Static credentials are used when
// AccessKey is set, otherwise the default AWS credential chain.
type S3Config struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Bucket       string
	Prefix       string
	PathStyle    bool
}

type S3Writer struct {
	uploader Uploader
	bucket   string
	prefix   string
}

func NewS3Writer(ctx context.Context, cfg S3Config) (*S3Writer, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return NewWriter(client, cfg.Bucket, cfg.Prefix), nil
}

func NewWriter(u Uploader, bucket, prefix string) *S3Writer {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Writer{uploader: u, bucket: bucket, prefix: prefix}
}

// Key names the object for a report taken at t.
func (w *S3Writer) Key(t time.Time) string {
	return fmt.Sprintf("%sreconcile/%s.json", w.prefix, t.UTC().Format("20060102T150405.000000Z"))
}

// Write uploads report as JSON and returns its key.
func (w *S3Writer) Write(ctx context.Context, report *services.ReconcileReport) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, report); err != nil {
		return "", err
	}

	key := w.Key(report.CheckedAt)
	_, err := w.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}
	return key, nil
}

// Encode writes report as indented JSON.
func Encode(w io.Writer, report *services.ReconcileReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
