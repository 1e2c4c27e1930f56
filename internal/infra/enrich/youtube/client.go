package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Video id forms: watch?v=, youtu.be/, embed/, plus v= anywhere in the
// watch query string. Ids are always 11 characters.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID pulls the platform-native video id out of a YouTube URL.
func ExtractVideoID(videoURL string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(videoURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Client fetches video metadata from the YouTube Data API v3.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// videoListResponse mirrors the subset of the videos.list payload we read.
type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			PublishedAt  time.Time `json:"publishedAt"`
			ChannelID    string    `json:"channelId"`
			ChannelTitle string    `json:"channelTitle"`
			Title        string    `json:"title"`
			Description  string    `json:"description"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			DislikeCount string `json:"dislikeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// FetchVideo implements the MetadataClient port. It fails when no id can
// be extracted, the API answers non-2xx, or the id matches no item; the
// caller treats all of these as "fall back to mock".
func (c *Client) FetchVideo(ctx context.Context, videoURL string) (*domain.VideoMetadata, error) {
	id, ok := ExtractVideoID(videoURL)
	if !ok {
		return nil, domain.ErrNoVideoID
	}

	q := url.Values{}
	q.Set("part", "snippet,statistics,contentDetails")
	q.Set("id", id)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube api returned status %d", resp.StatusCode)
	}

	var payload videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode youtube response: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, domain.ErrVideoNotFound
	}

	item := payload.Items[0]
	return &domain.VideoMetadata{
		VideoID:      id,
		Title:        item.Snippet.Title,
		ChannelID:    item.Snippet.ChannelID,
		ChannelTitle: item.Snippet.ChannelTitle,
		Description:  item.Snippet.Description,
		PublishedAt:  item.Snippet.PublishedAt,
		Duration:     item.ContentDetails.Duration,
		ViewCount:    parseCount(item.Statistics.ViewCount),
		LikeCount:    parseCount(item.Statistics.LikeCount),
		DislikeCount: parseCount(item.Statistics.DislikeCount),
		CommentCount: parseCount(item.Statistics.CommentCount),
	}, nil
}

// parseCount reads the Data API's string counters; absent or malformed
// counts are zero.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
