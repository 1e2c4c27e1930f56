package analyses

import (
	"time"
)

// Platform enum: the social-media sites we accept video URLs from.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformFacebook  Platform = "facebook"
)

// DisplayName returns the human-facing platform name used in analysis text.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformInstagram:
		return "Instagram"
	case PlatformTwitter:
		return "Twitter/X"
	case PlatformTikTok:
		return "TikTok"
	case PlatformFacebook:
		return "Facebook"
	}
	return string(p)
}

// AuthenticityLevel enum, ordered from Fake to Real.
type AuthenticityLevel string

const (
	LevelFake           AuthenticityLevel = "Fake"
	LevelMostLikelyFake AuthenticityLevel = "Most Likely Fake"
	LevelNotSure        AuthenticityLevel = "Not Sure"
	LevelMostLikelyReal AuthenticityLevel = "Most Likely Real"
	LevelReal           AuthenticityLevel = "Real"
)

// LevelFromScore maps a 0-100 score onto its authenticity band.
func LevelFromScore(score int) AuthenticityLevel {
	switch {
	case score >= 80:
		return LevelReal
	case score >= 60:
		return LevelMostLikelyReal
	case score >= 40:
		return LevelNotSure
	case score >= 20:
		return LevelMostLikelyFake
	}
	return LevelFake
}

// ClampScore bounds a score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Aggregate Root: VideoAnalysis
//
// A completed verdict for one submitted URL. Immutable once stored; the
// repository assigns ID and CreatedAt on insert.
type VideoAnalysis struct {
	ID                int64             `json:"id"`
	VideoURL          string            `json:"videoUrl"`
	Platform          Platform          `json:"platform"`
	AuthenticityLevel AuthenticityLevel `json:"authenticityLevel"`
	AuthenticityScore int               `json:"authenticityScore"`
	VisualAnalysis    string            `json:"visualAnalysis"`
	AudioAnalysis     string            `json:"audioAnalysis"`
	MetadataAnalysis  string            `json:"metadataAnalysis"`
	AIAnalysis        string            `json:"aiAnalysis"`
	ConfidenceScore   int               `json:"confidenceScore"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// VideoMetadata is the enrichment result for a YouTube lookup.
// Counts arrive as strings from the Data API and are parsed leniently;
// an absent count is zero.
type VideoMetadata struct {
	VideoID      string
	Title        string
	ChannelID    string
	ChannelTitle string
	Description  string
	PublishedAt  time.Time
	Duration     string // ISO 8601 as returned, e.g. "PT4M13S"
	ViewCount    int64
	LikeCount    int64
	DislikeCount int64
	CommentCount int64
}

// Claim is a single fact-check assessment with a free-form textual rating.
// Transient: only its trace and score adjustment survive into the verdict.
type Claim struct {
	Text   string `json:"text"`
	Rating string `json:"rating"`
}
