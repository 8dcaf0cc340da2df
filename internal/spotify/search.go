package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tunebridge/tunebridge/internal/matchengine"
)

// SearchTracks searches the catalog for tracks matching query and returns
// up to limit candidates in the provider's relevance order. The signature
// matches matchengine.SearchFunc.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]matchengine.Candidate, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.doJSON(ctx, http.MethodGet, "/search", params, nil, &resp); err != nil {
		return nil, err
	}

	candidates := make([]matchengine.Candidate, 0, len(resp.Tracks.Items))
	for _, t := range resp.Tracks.Items {
		artists := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			artists = append(artists, a.Name)
		}
		candidates = append(candidates, matchengine.Candidate{
			ID:      t.ID,
			Name:    t.Name,
			Artists: artists,
		})
	}
	return candidates, nil
}
