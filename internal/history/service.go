package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-postkit/internal/identity"
	"github.com/goliatone/go-postkit/internal/logging"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

// Service records publish attempts and answers "was this already published".
type Service struct {
	repo   *BunRecordRepository
	logger interfaces.Logger
}

// NewService constructs a ledger service over an open bun DB.
func NewService(repo *BunRecordRepository, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{repo: repo, logger: logger}
}

// OpenDB opens (and migrates) the SQLite ledger at path.
func OpenDB(ctx context.Context, path string) (*bun.DB, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RecordPublish stores the outcome of a publish attempt. Failures here are
// logged, not fatal: the ledger must never abort a publish that already
// happened.
func (s *Service) RecordPublish(ctx context.Context, post *interfaces.Post, report *interfaces.PublishReport, chunkCount int) {
	if s == nil || s.repo == nil || post == nil {
		return
	}

	platforms := make(map[string]string, len(report.Results))
	for _, res := range report.Results {
		platforms[res.Platform] = string(res.Status)
	}

	now := time.Now().UTC()
	record := &Record{
		ID:          identity.PostUUID(post.SourcePath),
		Slug:        slugify(post.Title),
		Title:       post.Title,
		SourcePath:  post.SourcePath,
		ChunkCount:  chunkCount,
		Platforms:   platforms,
		PublishedAt: now,
		UpdatedAt:   now,
	}

	if _, err := s.repo.Upsert(ctx, record); err != nil {
		s.logger.Warn("history.record.failed", "error", err, "source", post.SourcePath)
		return
	}
	s.logger.Debug("history.record.saved", "source", post.SourcePath, "slug", record.Slug)
}

// Lookup returns the previous publish record for a source path, or nil when
// the document was never published.
func (s *Service) Lookup(ctx context.Context, sourcePath string) *Record {
	if s == nil || s.repo == nil {
		return nil
	}
	record, err := s.repo.GetBySourcePath(ctx, sourcePath)
	if err != nil {
		return nil
	}
	return record
}

func slugify(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.Join(strings.Fields(title), "-"))
	}
	return normalized
}
