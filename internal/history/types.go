// Package history keeps a local SQLite ledger of publish attempts so the
// CLI can warn before republishing a document and report what happened on
// each platform last time.
package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record captures one publish attempt for a source document. The ID is
// deterministic per source path: a new attempt for the same file replaces
// the previous record.
type Record struct {
	bun.BaseModel `bun:"table:publish_records,alias:pr"`

	ID          uuid.UUID         `bun:",pk,type:uuid"            json:"id"`
	Slug        string            `bun:"slug,notnull"             json:"slug"`
	Title       string            `bun:"title,notnull"            json:"title"`
	SourcePath  string            `bun:"source_path,notnull,unique" json:"source_path"`
	ChunkCount  int               `bun:"chunk_count,notnull"      json:"chunk_count"`
	Platforms   map[string]string `bun:"platforms,type:jsonb"     json:"platforms"`
	PublishedAt time.Time         `bun:"published_at,nullzero"    json:"published_at"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Published reports whether every recorded platform outcome succeeded.
func (r *Record) Published() bool {
	if r == nil || len(r.Platforms) == 0 {
		return false
	}
	for _, status := range r.Platforms {
		if status != "published" {
			return false
		}
	}
	return true
}
