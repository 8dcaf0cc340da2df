package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// addTracksBatchSize is the API maximum per playlist-add request.
const addTracksBatchSize = 100

// CreatePlaylist creates a playlist for the authenticated user.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string, public bool) (*Playlist, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}

	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	var p Playlist
	endpoint := "/users/" + url.PathEscape(user.ID) + "/playlists"
	if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AddTracks appends tracks to a playlist in API-sized batches.
func (c *Client) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	for start := 0; start < len(trackIDs); start += addTracksBatchSize {
		end := start + addTracksBatchSize
		if end > len(trackIDs) {
			end = len(trackIDs)
		}

		uris := make([]string, 0, end-start)
		for _, id := range trackIDs[start:end] {
			uris = append(uris, "spotify:track:"+id)
		}

		body := map[string]any{"uris": uris}
		endpoint := "/playlists/" + url.PathEscape(playlistID) + "/tracks"
		if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, body, nil); err != nil {
			return fmt.Errorf("add tracks batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

// FindPlaylistByName returns the ID of the user's playlist with the given
// name (case-insensitive), or "" when none exists.
func (c *Client) FindPlaylistByName(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("limit", "50")

	offset := 0
	for {
		params.Set("offset", fmt.Sprintf("%d", offset))
		var page playlistPage
		if err := c.doJSON(ctx, http.MethodGet, "/me/playlists", params, nil, &page); err != nil {
			return "", err
		}

		for _, p := range page.Items {
			if strings.EqualFold(p.Name, name) {
				return p.ID, nil
			}
		}

		if page.Next == "" || len(page.Items) == 0 {
			return "", nil
		}
		offset += len(page.Items)
	}
}

// PlaylistURL returns the public web URL for a playlist.
func (c *Client) PlaylistURL(playlistID string) string {
	return "https://open.spotify.com/playlist/" + playlistID
}
