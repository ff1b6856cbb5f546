package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"storage-probe/core/storage"
	"storage-probe/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service drives the provision, write, list and verify workflow.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new workflow service. db may be nil, in which case runs
// are not recorded.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
	}
}

// Bucket returns the bucket the service operates on.
func (s *Service) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the bucket. An already existing bucket is not an error;
// the returned flag reports whether it was there before.
func (s *Service) EnsureBucket(ctx context.Context) (*storage.BucketAttrs, bool, error) {
	attrs, err := s.client.CreateBucket(ctx, s.bucket, storage.BucketAttrs{})
	if errors.Is(err, storage.ErrBucketExists) {
		s.logger.Info("Bucket already exists", zap.String("bucket", s.bucket))
		return &storage.BucketAttrs{Name: s.bucket}, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Bucket created", zap.String("bucket", s.bucket))
	return attrs, false, nil
}

// Upload writes r to key and returns the committed metadata. Failures are
// returned unlogged; reporting them is up to the caller.
func (s *Service) Upload(ctx context.Context, key string, r io.Reader) (*storage.ObjectAttrs, error) {
	attrs, err := storage.WriteObject(ctx, s.client, s.bucket, key, r)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Upload succeeded",
		zap.String("bucket", attrs.Bucket),
		zap.String("key", attrs.Name),
		zap.Int64("size", attrs.Size),
		zap.String("generation", attrs.Generation),
	)
	return attrs, nil
}

// List enumerates the bucket. Failed entries are kept with their message and
// never expose object data.
func (s *Service) List(ctx context.Context, opts storage.ListOptions) ListResult {
	result := ListResult{Bucket: s.bucket, Prefix: opts.Prefix, Entries: []Entry{}}
	for obj, err := range s.client.ListObjects(ctx, s.bucket, opts) {
		if err != nil {
			s.logger.Warn("Listing entry failed", zap.String("bucket", s.bucket), zap.Error(err))
			result.Entries = append(result.Entries, Entry{Error: err.Error()})
			result.Failed++
			continue
		}
		result.Entries = append(result.Entries, Entry{Object: obj})
	}
	return result
}

// Verify lists the bucket and checks that exp.Key appears exactly once.
func (s *Service) Verify(ctx context.Context, exp Expectation) (*Verification, error) {
	v := &Verification{Key: exp.Key}

	listing := s.List(ctx, storage.ListOptions{})
	v.Failed = listing.Failed
	for _, obj := range listing.Objects() {
		v.Listed++
		if obj.Name == exp.Key {
			v.Matches++
		}
	}

	if v.Failed > 0 {
		v.Problems = append(v.Problems, fmt.Sprintf("%d listing entries failed", v.Failed))
	}
	if v.Matches != 1 {
		v.Problems = append(v.Problems, fmt.Sprintf("expected exactly one object named %q, found %d", exp.Key, v.Matches))
	}
	if exp.Sole && v.Listed != 1 {
		v.Problems = append(v.Problems, fmt.Sprintf("expected bucket to hold one object, found %d", v.Listed))
	}

	if exp.ReadBack && v.Matches > 0 {
		match, err := s.compareContent(ctx, exp.Key, exp.Payload)
		if err != nil {
			return nil, err
		}
		v.DigestMatch = &match
		if !match {
			v.Problems = append(v.Problems, "stored content does not match payload")
		}
	}

	v.Passed = len(v.Problems) == 0
	return v, nil
}

func (s *Service) compareContent(ctx context.Context, key string, payload []byte) (bool, error) {
	r, err := s.client.NewReader(ctx, s.bucket, key)
	if err != nil {
		return false, fmt.Errorf("failed to read back %s/%s: %w", s.bucket, key, err)
	}
	defer r.Close()

	stored, err := utils.Digest(r)
	if err != nil {
		return false, fmt.Errorf("failed to read back %s/%s: %w", s.bucket, key, err)
	}
	return stored == utils.DigestBytes(payload), nil
}

// Run executes the full workflow described by plan. The returned report is
// never nil; the error reports the first step that failed.
func (s *Service) Run(ctx context.Context, plan Plan) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Bucket:    s.bucket,
		Key:       plan.Key,
		Status:    StatusFail,
		StartedAt: time.Now().UTC(),
	}
	l := s.logger.With(zap.String("run_id", report.RunID))

	err := s.run(ctx, plan, report)
	report.Duration = time.Since(report.StartedAt)
	if err != nil {
		report.Error = err.Error()
		l.Error("Workflow failed", zap.Error(err), zap.Duration("duration", report.Duration))
	} else {
		report.Status = StatusPass
		l.Info("Workflow passed", zap.Duration("duration", report.Duration))
	}

	s.record(ctx, report)
	return report, err
}

func (s *Service) run(ctx context.Context, plan Plan, report *Report) error {
	_, existed, err := s.EnsureBucket(ctx)
	if err != nil {
		return err
	}
	report.BucketExisted = existed

	payload := []byte(plan.Payload)
	attrs, err := s.Upload(ctx, plan.Key, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	report.Object = attrs

	v, err := s.Verify(ctx, Expectation{
		Key:      plan.Key,
		Payload:  payload,
		ReadBack: plan.ReadBack,
		Sole:     plan.Sole,
	})
	if err != nil {
		return err
	}
	report.Verification = v

	if plan.Cleanup {
		if err := s.client.DeleteObject(ctx, s.bucket, plan.Key); err != nil {
			s.logger.Warn("Cleanup failed", zap.String("key", plan.Key), zap.Error(err))
		} else {
			report.CleanedUp = true
		}
	}

	if !v.Passed {
		return fmt.Errorf("verification failed: %v", v.Problems)
	}
	return nil
}
