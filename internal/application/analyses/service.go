package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"time"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

// Clock abstraction so scoring and pruning are testable against a fixed time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service implements the analysis use-cases. Safe for concurrent use.
//
// Metadata, Claims and Evidence are optional collaborators: a nil port
// means the corresponding credential is not configured and that path is
// skipped without error.
type Service struct {
	Repo     domain.Repository
	Metadata domain.MetadataClient
	Claims   domain.ClaimSearcher
	Evidence domain.EvidenceStore
	Clock    Clock

	// PickIndex selects the mock archetype; nil means rand.Intn.
	// Injected so tests can pin the selection.
	PickIndex func(n int) int
}

//
// ==== USE CASES ====
//

// Analyze runs the full pipeline for one submitted URL:
// validate → cache check → classify → enrich (best-effort) → score → store.
// Repeat submissions of the identical URL string return the stored verdict
// without touching enrichment or scoring again.
func (s *Service) Analyze(ctx context.Context, videoURL string) (*domain.VideoAnalysis, error) {
	if !isAbsoluteURL(videoURL) {
		return nil, domain.ErrInvalidURL
	}

	existing, err := s.Repo.GetByURL(ctx, videoURL)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	platform, ok := domain.ClassifyPlatform(videoURL)
	if !ok {
		return nil, domain.ErrUnsupportedPlatform
	}

	verdict := s.score(ctx, videoURL, platform)

	stored, err := s.Repo.Create(ctx, verdict)
	if err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	s.archive(ctx, stored)
	return stored, nil
}

// Recent returns up to limit verdicts, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.VideoAnalysis, error) {
	return s.Repo.Recent(ctx, limit)
}

// Get returns one stored verdict by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.VideoAnalysis, error) {
	return s.Repo.GetByID(ctx, id)
}

// PruneExpired removes verdicts older than ttl. Wired to the cache TTL
// hook; never called when no TTL is configured.
func (s *Service) PruneExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	return s.Repo.DeleteOlderThan(ctx, s.now().Add(-ttl))
}

// score picks the scoring mode. YouTube with a configured metadata client
// goes through the real-data path; everything else, including a failed
// YouTube lookup, degrades to a mock verdict.
func (s *Service) score(ctx context.Context, videoURL string, platform domain.Platform) *domain.VideoAnalysis {
	if platform == domain.PlatformYouTube && s.Metadata != nil {
		meta, err := s.Metadata.FetchVideo(ctx, videoURL)
		if err == nil {
			fc := s.searchClaims(ctx, meta.Title, domain.MetadataClaimLimit)
			return domain.ScoreFromMetadata(videoURL, meta, fc, s.now())
		}
		log.Printf("youtube lookup failed for %s, falling back to mock: %v", videoURL, err)
	}

	verdict := domain.MockScore(videoURL, platform, s.pick())
	fc := s.searchClaims(ctx, videoURL, domain.MockClaimLimit)
	domain.ApplyFactCheck(verdict, fc)
	return verdict
}

// searchClaims queries the claim-search port when configured. A remote
// failure is logged and treated like an unconfigured search: the pipeline
// must keep going either way.
func (s *Service) searchClaims(ctx context.Context, query string, limit int) domain.FactCheckOutcome {
	if s.Claims == nil {
		return domain.EvaluateClaims(nil, false, limit)
	}
	claims, err := s.Claims.Search(ctx, query)
	if err != nil {
		log.Printf("claim search failed for %q: %v", query, err)
		return domain.EvaluateClaims(nil, false, limit)
	}
	return domain.EvaluateClaims(claims, true, limit)
}

// archive copies the stored verdict into the evidence bucket, best-effort.
func (s *Service) archive(ctx context.Context, a *domain.VideoAnalysis) {
	if s.Evidence == nil {
		return
	}
	data, err := json.Marshal(a)
	if err != nil {
		log.Printf("marshal evidence for analysis %d: %v", a.ID, err)
		return
	}
	key := fmt.Sprintf("analyses/%d.json", a.ID)
	if _, err := s.Evidence.Archive(ctx, key, "application/json", data); err != nil {
		log.Printf("archive evidence for analysis %d: %v", a.ID, err)
	}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

func (s *Service) pick() func(n int) int {
	if s.PickIndex != nil {
		return s.PickIndex
	}
	return rand.Intn
}

// isAbsoluteURL reports whether raw parses as a well-formed absolute URL.
func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
