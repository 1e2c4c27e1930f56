package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

// AnalysisRepository is the reference store: process-lifetime only, a
// mutex-guarded map with a monotonic id sequence. URL lookup is exact
// string match by design; no normalization of case, slashes or query
// order.
type AnalysisRepository struct {
	mu     sync.Mutex
	byID   map[int64]*domain.VideoAnalysis
	nextID int64
}

func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{byID: make(map[int64]*domain.VideoAnalysis)}
}

// Create assigns the next id and the creation timestamp, stores a copy and
// returns it. Ids stay distinct and strictly increasing under concurrent
// inserts; a duplicate URL is stored as-is (first record wins on lookup).
func (r *AnalysisRepository) Create(ctx context.Context, a *domain.VideoAnalysis) (*domain.VideoAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *a
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id int64) (*domain.VideoAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *a
	return &out, nil
}

// GetByURL returns the earliest record whose URL matches exactly.
func (r *AnalysisRepository) GetByURL(ctx context.Context, url string) (*domain.VideoAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var match *domain.VideoAnalysis
	for _, a := range r.byID {
		if a.VideoURL != url {
			continue
		}
		if match == nil || a.ID < match.ID {
			match = a
		}
	}
	if match == nil {
		return nil, domain.ErrNotFound
	}
	out := *match
	return &out, nil
}

// Recent returns up to limit records, newest first (createdAt descending,
// id descending as the tiebreak for same-instant inserts).
func (r *AnalysisRepository) Recent(ctx context.Context, limit int) ([]*domain.VideoAnalysis, error) {
	if limit <= 0 {
		limit = 10
	}

	r.mu.Lock()
	all := make([]*domain.VideoAnalysis, 0, len(r.byID))
	for _, a := range r.byID {
		out := *a
		all = append(all, &out)
	}
	r.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// DeleteOlderThan prunes records created before cutoff.
func (r *AnalysisRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, a := range r.byID {
		if a.CreatedAt.Before(cutoff) {
			delete(r.byID, id)
			removed++
		}
	}
	return removed, nil
}
