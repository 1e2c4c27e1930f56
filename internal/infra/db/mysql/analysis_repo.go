package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const columns = `id, video_url, platform, authenticity_level, authenticity_score,
       visual_analysis, audio_analysis, metadata_analysis, ai_analysis,
       confidence_score, created_at`

// Create inserts a verdict and returns it with the auto-increment id and
// the creation timestamp filled in. No uniqueness constraint on video_url:
// a racing duplicate becomes a second row and GetByURL keeps answering
// with the earliest one.
func (r *AnalysisRepository) Create(ctx context.Context, a *domain.VideoAnalysis) (*domain.VideoAnalysis, error) {
	const q = `
INSERT INTO video_analyses
(video_url, platform, authenticity_level, authenticity_score,
 visual_analysis, audio_analysis, metadata_analysis, ai_analysis,
 confidence_score, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?);
`
	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, q,
		a.VideoURL, a.Platform, a.AuthenticityLevel, a.AuthenticityScore,
		a.VisualAnalysis, a.AudioAnalysis, a.MetadataAnalysis, a.AIAnalysis,
		a.ConfidenceScore, createdAt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	stored := *a
	stored.ID = id
	stored.CreatedAt = createdAt
	return &stored, nil
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id int64) (*domain.VideoAnalysis, error) {
	const q = `
SELECT ` + columns + `
FROM video_analyses
WHERE id=? LIMIT 1;
`
	return scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *AnalysisRepository) GetByURL(ctx context.Context, url string) (*domain.VideoAnalysis, error) {
	const q = `
SELECT ` + columns + `
FROM video_analyses
WHERE video_url=? ORDER BY id ASC LIMIT 1;
`
	return scanOne(r.db.QueryRowContext(ctx, q, url))
}

func (r *AnalysisRepository) Recent(ctx context.Context, limit int) ([]*domain.VideoAnalysis, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT ` + columns + `
FROM video_analyses
ORDER BY created_at DESC, id DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.VideoAnalysis
	for rows.Next() {
		a, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnalysisRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM video_analyses WHERE created_at < ?;`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (*domain.VideoAnalysis, error) {
	a, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

func scanRow(row rowScanner) (*domain.VideoAnalysis, error) {
	var a domain.VideoAnalysis
	if err := row.Scan(
		&a.ID, &a.VideoURL, &a.Platform, &a.AuthenticityLevel, &a.AuthenticityScore,
		&a.VisualAnalysis, &a.AudioAnalysis, &a.MetadataAnalysis, &a.AIAnalysis,
		&a.ConfidenceScore, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
