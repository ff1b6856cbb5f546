package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"storage-probe/core/storage"
	"storage-probe/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestNewRunRecord(t *testing.T) {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := newRunRecord(&Report{
		RunID:     "run-1",
		Bucket:    "my-bucket",
		Key:       "my-key",
		Status:    StatusFail,
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
		Verification: &Verification{
			Listed:   2,
			Matches:  0,
			Problems: []string{"a", "b"},
		},
	})

	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, "my-key", rec.ObjectKey)
	assert.Equal(t, int64(1500), rec.DurationMs)
	assert.Equal(t, 2, rec.Listed)
	assert.Equal(t, "a; b", rec.Message)
	assert.Equal(t, started, rec.CreatedAt)
}

func TestRun_RecordsHistory(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	client := new(mocks.Client)
	w := &mocks.Writer{Bucket: "my-bucket", Key: "my-key"}
	client.On("CreateBucket", mock.Anything, "my-bucket", mock.Anything).Return(&storage.BucketAttrs{Name: "my-bucket"}, nil)
	client.On("NewWriter", mock.Anything, "my-bucket", "my-key").Return(w)
	client.On("ListObjects", mock.Anything, "my-bucket", mock.Anything).
		Return(mocks.Listing(mocks.Entry{Attrs: &storage.ObjectAttrs{Bucket: "my-bucket", Name: "my-key"}}))

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `workflow_runs`").WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	svc := NewService(client, "my-bucket", zap.NewNop(), db)
	report, err := svc.Run(context.Background(), Plan{Key: "my-key", Payload: "hello world"})
	require.NoError(t, err)
	assert.True(t, report.Passed())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRun_HistoryFailureIsNotFatal(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	client := new(mocks.Client)
	w := &mocks.Writer{Bucket: "my-bucket", Key: "my-key"}
	client.On("CreateBucket", mock.Anything, "my-bucket", mock.Anything).Return(&storage.BucketAttrs{Name: "my-bucket"}, nil)
	client.On("NewWriter", mock.Anything, "my-bucket", "my-key").Return(w)
	client.On("ListObjects", mock.Anything, "my-bucket", mock.Anything).
		Return(mocks.Listing(mocks.Entry{Attrs: &storage.ObjectAttrs{Bucket: "my-bucket", Name: "my-key"}}))

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `workflow_runs`").WillReturnError(errors.New("table is read only"))
	sqlMock.ExpectRollback()

	svc := NewService(client, "my-bucket", zap.NewNop(), db)
	report, err := svc.Run(context.Background(), Plan{Key: "my-key", Payload: "hello world"})
	require.NoError(t, err)
	assert.True(t, report.Passed())
}

func TestRecentRuns(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "my-bucket", zap.NewNop(), nil)
		_, err := svc.RecentRuns(context.Background(), 10)
		assert.ErrorIs(t, err, ErrNoHistory)
	})

	t.Run("Newest First", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		rows := sqlmock.NewRows([]string{"id", "run_id", "bucket", "object_key", "status", "message", "listed", "matches", "duration_ms", "created_at"}).
			AddRow(2, "run-2", "my-bucket", "my-key", StatusPass, "", 1, 1, 12, time.Now()).
			AddRow(1, "run-1", "my-bucket", "my-key", StatusFail, "verification failed", 0, 0, 9, time.Now())
		sqlMock.ExpectQuery("SELECT \\* FROM `workflow_runs` ORDER BY id desc LIMIT").WillReturnRows(rows)

		svc := NewService(new(mocks.Client), "my-bucket", zap.NewNop(), db)
		runs, err := svc.RecentRuns(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "run-2", runs[0].RunID)
		assert.Equal(t, StatusFail, runs[1].Status)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
