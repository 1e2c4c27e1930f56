package analyses

import (
	"fmt"
	"strings"
	"time"
)

// Fixed trace messages for the two no-claim outcomes. They must stay
// distinguishable from each other and from a real findings trace.
const (
	traceNoClaims = "No specific fact-check claims found for this content."
	traceNoData   = "No fact-check data available for this content."
)

// Claim limits per scoring mode: metadata-driven scoring weighs the top
// three claims, mock scoring only the top two.
const (
	MetadataClaimLimit = 3
	MockClaimLimit     = 2
)

// FactCheckOutcome carries the score delta and the human-readable trace
// produced from a claim search.
type FactCheckOutcome struct {
	Delta   int
	Trace   string
	Applied bool // at least one claim contributed to the trace
}

// EvaluateClaims folds up to limit claims into a score adjustment and a
// trace line. searched distinguishes "we asked and found nothing" from
// "no claim-search credential is configured".
func EvaluateClaims(claims []Claim, searched bool, limit int) FactCheckOutcome {
	if !searched {
		return FactCheckOutcome{Trace: traceNoData}
	}
	if len(claims) == 0 {
		return FactCheckOutcome{Trace: traceNoClaims}
	}
	if len(claims) > limit {
		claims = claims[:limit]
	}

	delta := 0
	findings := make([]string, 0, len(claims))
	for _, c := range claims {
		rating := strings.ToLower(c.Rating)
		findings = append(findings, fmt.Sprintf("%s: %s", c.Text, rating))

		switch {
		case strings.Contains(rating, "true") || strings.Contains(rating, "correct"):
			delta += 15
		case strings.Contains(rating, "false") || strings.Contains(rating, "misleading") || strings.Contains(rating, "disputed"):
			delta -= 20
		case strings.Contains(rating, "mixed") || strings.Contains(rating, "partly"):
			delta -= 5
		}
	}

	return FactCheckOutcome{
		Delta:   delta,
		Trace:   "Fact-check results: " + strings.Join(findings, "; "),
		Applied: true,
	}
}

// ScoreFromMetadata computes a verdict from real publish statistics.
// Baseline 50, fact-check delta first, then additive engagement and age
// adjustments; the final score is clamped and confidence sits 10 above it.
func ScoreFromMetadata(videoURL string, meta *VideoMetadata, fc FactCheckOutcome, now time.Time) *VideoAnalysis {
	daysOld := int(now.Sub(meta.PublishedAt).Hours() / 24)

	score := 50 + fc.Delta

	// Signals that raise authenticity.
	if meta.ViewCount > 1000 {
		score += 10
	}
	if meta.LikeCount > 100 {
		score += 5
	}
	if meta.CommentCount > 50 {
		score += 5
	}
	if daysOld > 30 {
		score += 10
	}
	if meta.ChannelID != "" && meta.ChannelTitle != "" {
		score += 10
	}
	if len(meta.Description) > 100 {
		score += 5
	}

	// Signals that lower it.
	if daysOld < 1 {
		score -= 15
	}
	if meta.DislikeCount > 0 && meta.DislikeCount > meta.LikeCount {
		score -= 10
	}
	if len(meta.Description) < 20 {
		score -= 5
	}

	score = ClampScore(score)
	level := LevelFromScore(score)

	return &VideoAnalysis{
		VideoURL:          videoURL,
		Platform:          PlatformYouTube,
		AuthenticityLevel: level,
		AuthenticityScore: score,
		VisualAnalysis: fmt.Sprintf(
			"Video uploaded %d days ago. Channel: %s. Standard video quality and formatting detected.",
			daysOld, meta.ChannelTitle),
		AudioAnalysis: fmt.Sprintf(
			"Audio metadata consistent with upload date. Duration: %s. No obvious manipulation detected.",
			meta.Duration),
		MetadataAnalysis: fmt.Sprintf(
			"Video has %dK views, %d likes, %d comments. Upload timestamp: %s.",
			meta.ViewCount/1000, meta.LikeCount, meta.CommentCount,
			meta.PublishedAt.UTC().Format(time.RFC3339)),
		AIAnalysis: fmt.Sprintf(
			"Real YouTube video data analyzed. Channel verification status and engagement patterns suggest %s content. %s",
			strings.ToLower(string(level)), fc.Trace),
		ConfidenceScore: ClampScore(score + 10),
	}
}

// archetype is one of the five canned mock verdicts. Confidence is fixed
// per archetype and is not always the score: extreme negative verdicts are
// reported with higher certainty than extreme positive ones.
type archetype struct {
	level      AuthenticityLevel
	score      int
	visual     string
	audio      string
	metadata   string
	ai         string
	confidence int
}

var mockArchetypes = [5]archetype{
	{
		level:      LevelReal,
		score:      90,
		visual:     "No visual inconsistencies detected. Natural facial expressions and movements throughout the video.",
		audio:      "Audio patterns are consistent with natural speech. No signs of artificial generation or manipulation.",
		metadata:   "Standard metadata structure with no anomalies or suspicious modifications detected.",
		ai:         "Very low probability of AI-generated content. All indicators point to authentic human-created content.",
		confidence: 90,
	},
	{
		level:      LevelMostLikelyReal,
		score:      70,
		visual:     "Minor inconsistencies detected but within normal variation range. Some compression artifacts present.",
		audio:      "Audio quality suggests some post-processing but appears consistent with natural speech patterns.",
		metadata:   "Standard metadata with some compression artifacts. No significant red flags detected.",
		ai:         "Low probability of AI-generated content. Some ambiguous signals but likely authentic.",
		confidence: 70,
	},
	{
		level:      LevelNotSure,
		score:      50,
		visual:     "Mixed signals in visual analysis. Some concerning patterns detected that require further investigation.",
		audio:      "Audio analysis shows moderate probability of manipulation. Inconsistent voice characteristics.",
		metadata:   "Some metadata inconsistencies found. Possible signs of re-encoding or editing.",
		ai:         "Medium probability of AI-generated or manipulated content. Inconclusive results.",
		confidence: 50,
	},
	{
		level:      LevelMostLikelyFake,
		score:      30,
		visual:     "Significant visual inconsistencies detected. Possible deepfake indicators in facial movements.",
		audio:      "Audio patterns suggest possible voice synthesis or manipulation. Unnatural speech rhythm.",
		metadata:   "Multiple metadata anomalies detected. Inconsistent with claimed source and timeline.",
		ai:         "High probability of AI-generated content. Multiple red flags detected in analysis.",
		confidence: 75,
	},
	{
		level:      LevelFake,
		score:      10,
		visual:     "Strong evidence of visual manipulation. Clear deepfake indicators and artifacts detected.",
		audio:      "Audio shows clear signs of artificial generation. Synthesized voice patterns identified.",
		metadata:   "Metadata structure completely inconsistent with claimed source. Multiple manipulation indicators.",
		ai:         "Very high probability of AI-generated content. Strong evidence of synthetic media.",
		confidence: 95,
	},
}

// MockScore selects one of the five archetypes using pick, which receives
// the archetype count and must return an index in [0,n).
func MockScore(videoURL string, platform Platform, pick func(n int) int) *VideoAnalysis {
	a := mockArchetypes[pick(len(mockArchetypes))]
	return &VideoAnalysis{
		VideoURL:          videoURL,
		Platform:          platform,
		AuthenticityLevel: a.level,
		AuthenticityScore: a.score,
		VisualAnalysis:    a.visual,
		AudioAnalysis:     a.audio,
		MetadataAnalysis:  a.metadata,
		AIAnalysis:        a.ai,
		ConfidenceScore:   a.confidence,
	}
}

// ApplyFactCheck folds a claim-search outcome into a mock verdict.
// With claims present the score is recomputed from the archetype base, the
// level re-derived from the band table, and confidence rebased to score+5
// (the archetype's fixed confidence no longer applies). A search that
// found nothing only annotates the trace; an unconfigured search leaves
// the verdict untouched.
func ApplyFactCheck(v *VideoAnalysis, fc FactCheckOutcome) {
	if fc.Trace == traceNoData {
		return
	}
	if !fc.Applied {
		v.AIAnalysis = v.AIAnalysis + " " + fc.Trace
		return
	}

	score := ClampScore(v.AuthenticityScore + fc.Delta)
	v.AuthenticityScore = score
	v.AuthenticityLevel = LevelFromScore(score)
	v.AIAnalysis = v.AIAnalysis + " " + fc.Trace
	v.ConfidenceScore = ClampScore(score + 5)
}
