package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoHistory is returned when run history is requested without a database.
var ErrNoHistory = errors.New("run history requires a database connection")

// RunRecord is a persisted workflow run.
type RunRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RunID      string    `gorm:"size:36;uniqueIndex" json:"run_id"`
	Bucket     string    `gorm:"size:255" json:"bucket"`
	ObjectKey  string    `gorm:"size:1024" json:"object_key"`
	Status     string    `gorm:"size:16" json:"status"`
	Message    string    `gorm:"type:text" json:"message"`
	Listed     int       `json:"listed"`
	Matches    int       `json:"matches"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the default table name.
func (RunRecord) TableName() string {
	return "workflow_runs"
}

// Migrate creates or updates the run history table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RunRecord{})
}

func newRunRecord(r *Report) RunRecord {
	rec := RunRecord{
		RunID:      r.RunID,
		Bucket:     r.Bucket,
		ObjectKey:  r.Key,
		Status:     r.Status,
		Message:    r.Error,
		DurationMs: r.Duration.Milliseconds(),
		CreatedAt:  r.StartedAt,
	}
	if v := r.Verification; v != nil {
		rec.Listed = v.Listed
		rec.Matches = v.Matches
		if rec.Message == "" && len(v.Problems) > 0 {
			rec.Message = strings.Join(v.Problems, "; ")
		}
	}
	return rec
}

// record stores the run when a database is configured. Failures are logged
// and never fail the run itself.
func (s *Service) record(ctx context.Context, r *Report) {
	if s.db == nil {
		return
	}
	rec := newRunRecord(r)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		s.logger.Warn("Failed to record run", zap.String("run_id", r.RunID), zap.Error(err))
	}
}

// RecentRuns returns the latest recorded runs, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if s.db == nil {
		return nil, ErrNoHistory
	}
	if limit <= 0 {
		limit = 20
	}
	var runs []RunRecord
	if err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
