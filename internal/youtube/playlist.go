package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// PlaylistInfo is the playlist's display metadata.
type PlaylistInfo struct {
	ID          string
	Title       string
	Description string
	Channel     string
}

// Video is one playable playlist entry.
type Video struct {
	Title    string
	VideoID  string
	Position int
	Channel  string
}

type snippet struct {
	Title                  string `json:"title"`
	Description            string `json:"description"`
	ChannelTitle           string `json:"channelTitle"`
	VideoOwnerChannelTitle string `json:"videoOwnerChannelTitle"`
	Position               int    `json:"position"`
	ResourceID             struct {
		VideoID string `json:"videoId"`
	} `json:"resourceId"`
}

type listResponse struct {
	Items []struct {
		Snippet snippet `json:"snippet"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// PlaylistInfo fetches a playlist's metadata.
func (c *Client) PlaylistInfo(ctx context.Context, playlistID string) (*PlaylistInfo, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", playlistID)
	params.Set("maxResults", "1")

	var resp listResponse
	if err := c.doJSON(ctx, "/playlists", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("playlist %s not found", playlistID)
	}

	s := resp.Items[0].Snippet
	return &PlaylistInfo{
		ID:          playlistID,
		Title:       s.Title,
		Description: s.Description,
		Channel:     s.ChannelTitle,
	}, nil
}

// PlaylistVideos fetches playlist entries page by page, up to max when
// max > 0. Deleted and private videos are skipped.
func (c *Client) PlaylistVideos(ctx context.Context, playlistID string, max int) ([]Video, error) {
	var videos []Video
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(pageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp listResponse
		if err := c.doJSON(ctx, "/playlistItems", params, &resp); err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			s := item.Snippet
			if s.Title == "Deleted video" || s.Title == "Private video" {
				continue
			}

			channel := s.VideoOwnerChannelTitle
			if channel == "" {
				channel = s.ChannelTitle
			}
			videos = append(videos, Video{
				Title:    s.Title,
				VideoID:  s.ResourceID.VideoID,
				Position: s.Position,
				Channel:  channel,
			})

			if max > 0 && len(videos) >= max {
				return videos, nil
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return videos, nil
		}
	}
}

var rePlaylistParam = regexp.MustCompile(`[?&]list=([^&]+)`)

// ExtractPlaylistID accepts either a bare playlist ID or a playlist URL and
// returns the ID.
func ExtractPlaylistID(urlOrID string) string {
	if strings.HasPrefix(urlOrID, "PL") && !strings.Contains(urlOrID, "youtube.com") {
		return urlOrID
	}
	if m := rePlaylistParam.FindStringSubmatch(urlOrID); m != nil {
		return m[1]
	}
	return urlOrID
}
