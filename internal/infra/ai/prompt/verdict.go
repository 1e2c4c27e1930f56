package prompt

import (
	"fmt"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

// GetSystemPrompt returns the system prompt for verdict explanations.
func GetSystemPrompt() string {
	return `You are an assistant for a video authenticity analysis service.
You will be given a completed analysis record for a social-media video:
its platform, authenticity level, a 0-100 authenticity score, a 0-100
confidence score, and four analysis summaries (visual, audio, metadata, AI).

Write a short explanation of the verdict for a non-technical reader:
- restate the verdict in plain language,
- summarize which signals drove it,
- mention the confidence and what would change the assessment.

Do not invent signals that are not in the record. Answer in plain text,
three paragraphs at most.`
}

// GetUserPrompt renders one stored verdict for the model.
func GetUserPrompt(a *domain.VideoAnalysis) string {
	return fmt.Sprintf(
		`Platform: %s
URL: %s
Verdict: %s (score %d/100, confidence %d/100)
Visual analysis: %s
Audio analysis: %s
Metadata analysis: %s
AI analysis: %s`,
		a.Platform.DisplayName(), a.VideoURL,
		a.AuthenticityLevel, a.AuthenticityScore, a.ConfidenceScore,
		a.VisualAnalysis, a.AudioAnalysis, a.MetadataAnalysis, a.AIAnalysis,
	)
}
