package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"chem-backend/internal/auth"
	"chem-backend/internal/config"
	"chem-backend/internal/metrics"
	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the part of *s3.Client the archive uses
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// ArchivedReport describes one stored report snapshot
type ArchivedReport struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ArchiveService stores report summaries as JSON objects in an
// S3-compatible bucket (AWS S3, R2 or MinIO).
type ArchiveService struct {
	Reports *ReportService
	Client  ObjectStore
	Bucket  string
	Prefix  string
}

// NewS3Client builds a client from the archive settings. Static keys are used
// when configured, otherwise the default AWS credential chain.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Archive.Region),
	}
	if cfg.Archive.AccessKey != "" && cfg.Archive.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewArchiveService(reports *ReportService, client ObjectStore, bucket, prefix string) *ArchiveService {
	return &ArchiveService{Reports: reports, Client: client, Bucket: bucket, Prefix: prefix}
}

// Archive builds the report summary for filter and uploads it. Admin only.
func (s *ArchiveService) Archive(ctx context.Context, session *auth.Session, filter models.ReportFilter) (*ArchivedReport, error) {
	if err := auth.Authorize(session, auth.ActionArchiveReport); err != nil {
		return nil, err
	}
	if s == nil || s.Client == nil {
		return nil, ErrArchiveDisabled
	}

	summary, err := s.Reports.BuildSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	key := s.Prefix + "detailed-" + summary.GeneratedAt.In(timeutil.IST).Format("20060102-150405") + ".json"
	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"archived-by": session.Username,
		},
	})
	if err != nil {
		metrics.ReportArchivesTotal.WithLabelValues("error").Inc()
		log.Printf("[Archive] Upload of %s failed: %v", key, err)
		return nil, fmt.Errorf("upload report: %w", err)
	}

	metrics.ReportArchivesTotal.WithLabelValues("ok").Inc()
	log.Printf("[Archive] Stored %s (%d bytes)", key, len(body))
	return &ArchivedReport{Key: key, Size: int64(len(body)), LastModified: summary.GeneratedAt}, nil
}

// List returns archived report objects under the configured prefix
func (s *ArchiveService) List(ctx context.Context, session *auth.Session) ([]ArchivedReport, error) {
	if err := auth.Authorize(session, auth.ActionArchiveReport); err != nil {
		return nil, err
	}
	if s == nil || s.Client == nil {
		return nil, ErrArchiveDisabled
	}

	result, err := s.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(s.Prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}

	archives := make([]ArchivedReport, 0, len(result.Contents))
	for _, obj := range result.Contents {
		a := ArchivedReport{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
		if obj.LastModified != nil {
			a.LastModified = *obj.LastModified
		}
		archives = append(archives, a)
	}
	return archives, nil
}
