package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domain "github.com/veriview/veriview/internal/domain/analyses"
)

const defaultBaseURL = "https://factchecktools.googleapis.com/v1alpha1"

// Client searches the Google Fact Check Tools API for claims about a
// piece of text. Only constructed when an API key is configured.
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

// claimsSearchResponse mirrors the subset of claims:search we read.
// Each claim may carry several reviews; the first review's textual rating
// is the one folded into scoring.
type claimsSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Search implements the ClaimSearcher port. An empty result slice means
// the query matched no reviewed claims, which is a normal outcome.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Claim, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("query", query)
	q.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/claims:search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fact check api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact check api returned status %d", resp.StatusCode)
	}

	var payload claimsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode fact check response: %w", err)
	}

	claims := make([]domain.Claim, 0, len(payload.Claims))
	for _, cl := range payload.Claims {
		rating := ""
		if len(cl.ClaimReview) > 0 {
			rating = cl.ClaimReview[0].TextualRating
		}
		claims = append(claims, domain.Claim{Text: cl.Text, Rating: rating})
	}
	return claims, nil
}
