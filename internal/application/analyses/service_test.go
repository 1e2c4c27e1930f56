package analyses

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// stubRepo is a minimal in-process Repository with call counting.
type stubRepo struct {
	records     []*domain.VideoAnalysis
	createCalls int
}

func (r *stubRepo) Create(ctx context.Context, a *domain.VideoAnalysis) (*domain.VideoAnalysis, error) {
	r.createCalls++
	stored := *a
	stored.ID = int64(len(r.records) + 1)
	stored.CreatedAt = time.Now()
	r.records = append(r.records, &stored)
	return &stored, nil
}

func (r *stubRepo) GetByID(ctx context.Context, id int64) (*domain.VideoAnalysis, error) {
	for _, a := range r.records {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRepo) GetByURL(ctx context.Context, url string) (*domain.VideoAnalysis, error) {
	for _, a := range r.records {
		if a.VideoURL == url {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRepo) Recent(ctx context.Context, limit int) ([]*domain.VideoAnalysis, error) {
	out := make([]*domain.VideoAnalysis, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

func (r *stubRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*domain.VideoAnalysis
	var removed int64
	for _, a := range r.records {
		if a.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.records = kept
	return removed, nil
}

type stubMetadata struct {
	meta  *domain.VideoMetadata
	err   error
	calls int
}

func (m *stubMetadata) FetchVideo(ctx context.Context, videoURL string) (*domain.VideoMetadata, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.meta, nil
}

type stubClaims struct {
	claims  []domain.Claim
	err     error
	queries []string
}

func (c *stubClaims) Search(ctx context.Context, query string) ([]domain.Claim, error) {
	c.queries = append(c.queries, query)
	if c.err != nil {
		return nil, c.err
	}
	return c.claims, nil
}

func pinned(i int) func(n int) int {
	return func(n int) int { return i }
}

func newService(repo *stubRepo) *Service {
	return &Service{
		Repo:      repo,
		Clock:     fixedClock{t: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)},
		PickIndex: pinned(2), // Not Sure archetype
	}
}

func TestAnalyzeRejectsInvalidURL(t *testing.T) {
	t.Parallel()

	svc := newService(&stubRepo{})
	for _, raw := range []string{"not-a-url", "", "/relative/path", "youtube.com/watch?v=dQw4w9WgXcQ"} {
		if _, err := svc.Analyze(context.Background(), raw); !errors.Is(err, domain.ErrInvalidURL) {
			t.Errorf("Analyze(%q) error = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestAnalyzeRejectsUnsupportedPlatform(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := newService(repo)
	if _, err := svc.Analyze(context.Background(), "https://example.com/video"); !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Fatalf("Analyze() error = %v, want ErrUnsupportedPlatform", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("rejected request must not be stored")
	}
}

func TestAnalyzeMockModeForNonYouTube(t *testing.T) {
	t.Parallel()

	svc := newService(&stubRepo{})
	got, err := svc.Analyze(context.Background(), "https://www.tiktok.com/@x/video/1")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Platform != domain.PlatformTikTok {
		t.Fatalf("platform = %q, want tiktok", got.Platform)
	}
	if got.AuthenticityScore != 50 || got.AuthenticityLevel != domain.LevelNotSure {
		t.Fatalf("pinned archetype mismatch: score=%d level=%q", got.AuthenticityScore, got.AuthenticityLevel)
	}
	if got.ID == 0 || got.CreatedAt.IsZero() {
		t.Fatalf("stored verdict missing id/createdAt: %+v", got)
	}
}

func TestAnalyzeIsIdempotentPerURL(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	meta := &stubMetadata{err: errors.New("quota exceeded")}
	svc := newService(repo)
	svc.Metadata = meta

	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	first, err := svc.Analyze(context.Background(), url)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := svc.Analyze(context.Background(), url)
	if err != nil {
		t.Fatalf("Analyze(repeat) error = %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("repeat analysis id = %d, want cached id %d", second.ID, first.ID)
	}
	if repo.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1", repo.createCalls)
	}
	if meta.calls != 1 {
		t.Fatalf("metadata lookups = %d, want 1 (cache hit must skip enrichment)", meta.calls)
	}
}

func TestAnalyzeYouTubeMetadataMode(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	meta := &stubMetadata{meta: &domain.VideoMetadata{
		Title:       "moon landing hoax compilation",
		PublishedAt: now.AddDate(0, 0, -10),
		Duration:    "PT2M",
	}}
	claims := &stubClaims{claims: []domain.Claim{{Text: "the moon landing was staged", Rating: "False"}}}

	svc := newService(repo)
	svc.Metadata = meta
	svc.Claims = claims

	got, err := svc.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// 50 -20 fact check -5 missing description = 25
	if got.AuthenticityScore != 25 {
		t.Fatalf("score = %d, want 25", got.AuthenticityScore)
	}
	if got.AuthenticityLevel != domain.LevelMostLikelyFake {
		t.Fatalf("level = %q, want %q", got.AuthenticityLevel, domain.LevelMostLikelyFake)
	}
	if got.ConfidenceScore != 35 {
		t.Fatalf("confidence = %d, want 35", got.ConfidenceScore)
	}
	if len(claims.queries) != 1 || claims.queries[0] != "moon landing hoax compilation" {
		t.Fatalf("claim search queries = %v, want the video title", claims.queries)
	}
	if !strings.Contains(got.AIAnalysis, "the moon landing was staged: false") {
		t.Fatalf("ai analysis missing fact-check finding: %q", got.AIAnalysis)
	}
}

func TestAnalyzeFallsBackToMockOnLookupFailure(t *testing.T) {
	t.Parallel()

	svc := newService(&stubRepo{})
	svc.Metadata = &stubMetadata{err: domain.ErrVideoNotFound}

	got, err := svc.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Analyze() error = %v, lookup failures must not surface", err)
	}
	if got.Platform != domain.PlatformYouTube {
		t.Fatalf("platform = %q, want youtube", got.Platform)
	}
	if got.AuthenticityScore != 50 {
		t.Fatalf("score = %d, want pinned mock archetype 50", got.AuthenticityScore)
	}
}

func TestAnalyzeMockModeWithFactCheck(t *testing.T) {
	t.Parallel()

	claims := &stubClaims{claims: []domain.Claim{
		{Text: "a", Rating: "True"},
		{Text: "b", Rating: "True"},
		{Text: "c", Rating: "True"}, // beyond the mock-mode limit of 2
	}}
	svc := newService(&stubRepo{})
	svc.Claims = claims

	got, err := svc.Analyze(context.Background(), "https://www.tiktok.com/@x/video/1")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	// archetype 50 +15 +15 = 80, confidence rebased to 85
	if got.AuthenticityScore != 80 {
		t.Fatalf("score = %d, want 80", got.AuthenticityScore)
	}
	if got.AuthenticityLevel != domain.LevelReal {
		t.Fatalf("level = %q, want %q", got.AuthenticityLevel, domain.LevelReal)
	}
	if got.ConfidenceScore != 85 {
		t.Fatalf("confidence = %d, want 85", got.ConfidenceScore)
	}
	if len(claims.queries) != 1 || claims.queries[0] != "https://www.tiktok.com/@x/video/1" {
		t.Fatalf("claim search queries = %v, want the raw url", claims.queries)
	}
}

func TestAnalyzeClaimSearchFailureIsSilent(t *testing.T) {
	t.Parallel()

	svc := newService(&stubRepo{})
	svc.Claims = &stubClaims{err: errors.New("upstream 500")}

	got, err := svc.Analyze(context.Background(), "https://www.tiktok.com/@x/video/1")
	if err != nil {
		t.Fatalf("Analyze() error = %v, claim-search failures must not surface", err)
	}
	if got.AuthenticityScore != 50 || got.ConfidenceScore != 50 {
		t.Fatalf("failed claim search must leave the archetype untouched: %+v", got)
	}
	if strings.Contains(got.AIAnalysis, "Fact-check results") {
		t.Fatalf("failed claim search must not leave a findings trace: %q", got.AIAnalysis)
	}
}

func TestPruneExpired(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := newService(repo)
	svc.Clock = fixedClock{t: time.Now().Add(48 * time.Hour)}

	if _, err := svc.Analyze(context.Background(), "https://www.tiktok.com/@x/video/1"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	removed, err := svc.PruneExpired(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("PruneExpired() error = %v", err)
	}
	if removed != 1 {
		t.Fatalf("PruneExpired() removed %d, want 1", removed)
	}
}
