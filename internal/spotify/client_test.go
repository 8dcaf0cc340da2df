package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient(Credentials{ClientID: "id", ClientSecret: "secret", RefreshToken: "rt"})
	c.baseURL = srv.URL
	c.accountsURL = srv.URL
	c.token = &Token{AccessToken: "token"}
	return c
}

func TestSearchTracksDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "track", r.URL.Query().Get("type"))
		require.Equal(t, "hey jude", r.URL.Query().Get("q"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{
				"items": []map[string]any{
					{
						"id":   "t1",
						"name": "Hey Jude",
						"artists": []map[string]any{
							{"name": "The Beatles"},
						},
					},
				},
			},
		})
	}))
	defer srv.Close()

	got, err := testClient(srv).SearchTracks(context.Background(), "hey jude", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "Hey Jude", got[0].Name)
	assert.Equal(t, []string{"The Beatles"}, got[0].Artists)
}

func TestSearchTracksClampsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	_, err := testClient(srv).SearchTracks(context.Background(), "q", 500)
	require.NoError(t, err)
}

func TestAPIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"status": 429, "message": "rate limit exceeded"},
		})
	}))
	defer srv.Close()

	_, err := testClient(srv).SearchTracks(context.Background(), "q", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestAddTracksBatches(t *testing.T) {
	var batches [][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/playlists/pl1/tracks", r.URL.Path)
		var body struct {
			URIs []string `json:"uris"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		batches = append(batches, body.URIs)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ids := make([]string, 150)
	for i := range ids {
		ids[i] = "id"
	}

	require.NoError(t, testClient(srv).AddTracks(context.Background(), "pl1", ids))
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 50)
	assert.Equal(t, "spotify:track:id", batches[0][0])
}

func TestAuthenticateRefreshFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		require.Equal(t, "rt", r.Form.Get("refresh_token"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "id", user)
		require.Equal(t, "secret", pass)

		json.NewEncoder(w).Encode(Token{AccessToken: "fresh", ExpiresIn: 3600})
	}))
	defer srv.Close()

	c := testClient(srv)
	c.token = nil
	require.NoError(t, c.Authenticate(context.Background()))
	require.NotNil(t, c.token)
	assert.Equal(t, "fresh", c.token.AccessToken)
	// A refresh response without a rotated token keeps the stored one.
	assert.Equal(t, "rt", c.token.RefreshToken)
}

func TestAuthorizeURLCarriesState(t *testing.T) {
	c := NewClient(Credentials{ClientID: "id", RedirectURI: "http://localhost:8080/callback"})
	u, state := c.AuthorizeURL("playlist-modify-private")
	assert.NotEmpty(t, state)
	assert.Contains(t, u, "state="+state)
	assert.Contains(t, u, "client_id=id")
}

func TestCreatePlaylist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			json.NewEncoder(w).Encode(User{ID: "user1", DisplayName: "User"})
		case "/users/user1/playlists":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "My Mix", body["name"])
			json.NewEncoder(w).Encode(Playlist{ID: "pl9", Name: "My Mix"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	p, err := testClient(srv).CreatePlaylist(context.Background(), "My Mix", "desc", false)
	require.NoError(t, err)
	assert.Equal(t, "pl9", p.ID)
}

func TestFindPlaylistByNamePagesUntilHit(t *testing.T) {
	pages := []playlistPage{
		{Items: []Playlist{{ID: "a", Name: "Workout"}}, Next: "more"},
		{Items: []Playlist{{ID: "b", Name: "road trip"}}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/playlists", r.URL.Path)
		offset := r.URL.Query().Get("offset")
		if offset == "0" {
			json.NewEncoder(w).Encode(pages[0])
			return
		}
		require.Equal(t, "1", offset)
		json.NewEncoder(w).Encode(pages[1])
	}))
	defer srv.Close()

	// Match is case-insensitive.
	id, err := testClient(srv).FindPlaylistByName(context.Background(), "Road Trip")
	require.NoError(t, err)
	assert.Equal(t, "b", id)
}

func TestFindPlaylistByNameMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(playlistPage{})
	}))
	defer srv.Close()

	id, err := testClient(srv).FindPlaylistByName(context.Background(), "Nope")
	require.NoError(t, err)
	assert.Empty(t, id)
}
