package insight

import (
	"context"

	"github.com/veriview/veriview/internal/domain/analyses"
	"github.com/veriview/veriview/internal/domain/insight"
)

// Service produces plain-language explanations of stored verdicts.
type Service struct {
	client insight.Client
}

func NewService(client insight.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Explain(ctx context.Context, a *analyses.VideoAnalysis) (string, error) {
	return s.client.Explain(ctx, a)
}
