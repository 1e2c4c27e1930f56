package analyses

import (
	"context"
	"time"
)

// Repository port (interface for verdict persistence).
//
// Create assigns ID and CreatedAt and never overwrites: the store keeps the
// first record written for a URL, and GetByURL returns that first record.
// A racing duplicate URL is simply also stored (no uniqueness constraint);
// ids stay distinct and strictly increasing regardless.
type Repository interface {
	Create(ctx context.Context, a *VideoAnalysis) (*VideoAnalysis, error)
	GetByID(ctx context.Context, id int64) (*VideoAnalysis, error)
	GetByURL(ctx context.Context, url string) (*VideoAnalysis, error)
	Recent(ctx context.Context, limit int) ([]*VideoAnalysis, error)

	// DeleteOlderThan prunes verdicts created before cutoff and reports how
	// many were removed. Only invoked when a cache TTL is configured.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// MetadataClient port (interface for the platform metadata lookup).
// Best-effort: any error downgrades the pipeline to mock scoring.
type MetadataClient interface {
	FetchVideo(ctx context.Context, videoURL string) (*VideoMetadata, error)
}

// ClaimSearcher port (interface for the fact-check claim search).
// An empty result is normal, not an error.
type ClaimSearcher interface {
	Search(ctx context.Context, query string) ([]Claim, error)
}

// EvidenceStore port (interface for archiving verdict records to object
// storage). Best-effort: a failed archive never fails the request.
type EvidenceStore interface {
	Archive(ctx context.Context, key, contentType string, data []byte) (string, error)
}
