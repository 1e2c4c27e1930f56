package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

const columns = `id, video_url, platform, authenticity_level, authenticity_score,
       visual_analysis, audio_analysis, metadata_analysis, ai_analysis,
       confidence_score, created_at`

// Create inserts a verdict, letting the bigserial sequence assign the id.
// Same dedup stance as the reference store: no uniqueness on video_url,
// GetByURL answers with the earliest row.
func (r *AnalysisRepository) Create(ctx context.Context, a *domain.VideoAnalysis) (*domain.VideoAnalysis, error) {
	const q = `
INSERT INTO video_analyses
(video_url, platform, authenticity_level, authenticity_score,
 visual_analysis, audio_analysis, metadata_analysis, ai_analysis,
 confidence_score, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id;`

	createdAt := time.Now().UTC()
	stored := *a
	stored.CreatedAt = createdAt

	if err := r.db.QueryRowContext(ctx, q,
		a.VideoURL, a.Platform, a.AuthenticityLevel, a.AuthenticityScore,
		a.VisualAnalysis, a.AudioAnalysis, a.MetadataAnalysis, a.AIAnalysis,
		a.ConfidenceScore, createdAt,
	).Scan(&stored.ID); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id int64) (*domain.VideoAnalysis, error) {
	const q = `
SELECT ` + columns + `
FROM video_analyses
WHERE id=$1
LIMIT 1;`
	return scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *AnalysisRepository) GetByURL(ctx context.Context, url string) (*domain.VideoAnalysis, error) {
	const q = `
SELECT ` + columns + `
FROM video_analyses
WHERE video_url=$1
ORDER BY id ASC
LIMIT 1;`
	return scanOne(r.db.QueryRowContext(ctx, q, url))
}

func (r *AnalysisRepository) Recent(ctx context.Context, limit int) ([]*domain.VideoAnalysis, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT ` + columns + `
FROM video_analyses
ORDER BY created_at DESC, id DESC
LIMIT $1;`
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
	const q = `DELETE FROM video_analyses WHERE created_at < $1;`
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
