package insight

import (
	"context"

	"github.com/veriview/veriview/internal/domain/analyses"
)

// Client is the provider port for plain-language verdict explanations.
type Client interface {
	Explain(ctx context.Context, a *analyses.VideoAnalysis) (string, error)
}
