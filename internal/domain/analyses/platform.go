package analyses

import "regexp"

// Platform patterns: scheme and www. are optional, youtu.be counts as
// YouTube and x.com counts as Twitter. First match wins; the domains are
// disjoint so order is not observable in practice.
var platformPatterns = []struct {
	platform Platform
	re       *regexp.Regexp
}{
	{PlatformYouTube, regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)},
	{PlatformInstagram, regexp.MustCompile(`^(https?://)?(www\.)?instagram\.com/.+`)},
	{PlatformTwitter, regexp.MustCompile(`^(https?://)?(www\.)?(twitter\.com|x\.com)/.+`)},
	{PlatformTikTok, regexp.MustCompile(`^(https?://)?(www\.)?tiktok\.com/.+`)},
	{PlatformFacebook, regexp.MustCompile(`^(https?://)?(www\.)?facebook\.com/.+`)},
}

// ClassifyPlatform maps a video URL onto a supported platform.
// The second return is false when no pattern matches.
func ClassifyPlatform(url string) (Platform, bool) {
	for _, p := range platformPatterns {
		if p.re.MatchString(url) {
			return p.platform, true
		}
	}
	return "", false
}
