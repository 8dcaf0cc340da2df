// Package transfer orchestrates a playlist transfer: fetch the source
// playlist, match every video title against the track catalog, then create
// and fill the destination playlist.
package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tunebridge/tunebridge/internal/matchengine"
	"github.com/tunebridge/tunebridge/internal/spotify"
	"github.com/tunebridge/tunebridge/internal/youtube"
)

// VideoSource supplies the playlist being transferred.
type VideoSource interface {
	PlaylistInfo(ctx context.Context, playlistID string) (*youtube.PlaylistInfo, error)
	PlaylistVideos(ctx context.Context, playlistID string, max int) ([]youtube.Video, error)
}

// TrackCatalog is the destination: it searches for tracks and assembles
// the playlist. *spotify.Client satisfies it.
type TrackCatalog interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]matchengine.Candidate, error)
	CreatePlaylist(ctx context.Context, name, description string, public bool) (*spotify.Playlist, error)
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error
	PlaylistURL(playlistID string) string
}

// Options control one transfer run.
type Options struct {
	PlaylistName         string // destination name; source title when empty
	IncludeLowConfidence bool
	MaxVideos            int
	Public               bool
}

// Summary is the outcome of a transfer run.
type Summary struct {
	PlaylistID    string
	PlaylistURL   string
	Matched       int
	LowConfidence int
	NotFound      int
	Added         int
	Cancelled     bool
	Results       []matchengine.Result
}

type Transferrer struct {
	Source  VideoSource
	Catalog TrackCatalog
	Encoder matchengine.EncoderSource
	Match   matchengine.Config
	Log     *slog.Logger
}

// MatchPlaylist runs only the fetch and match stages, returning the match
// report without touching the destination catalog. Used for dry runs.
func (t *Transferrer) MatchPlaylist(ctx context.Context, urlOrID string, maxVideos int, progress matchengine.ProgressFunc, cancelled matchengine.CancelFunc) (*youtube.PlaylistInfo, matchengine.Report, error) {
	playlistID := youtube.ExtractPlaylistID(urlOrID)

	info, err := t.Source.PlaylistInfo(ctx, playlistID)
	if err != nil {
		return nil, matchengine.Report{}, fmt.Errorf("fetch playlist info: %w", err)
	}
	t.Log.Info("fetched playlist", "title", info.Title, "channel", info.Channel)

	videos, err := t.Source.PlaylistVideos(ctx, playlistID, maxVideos)
	if err != nil {
		return nil, matchengine.Report{}, fmt.Errorf("fetch playlist videos: %w", err)
	}
	if len(videos) == 0 {
		return nil, matchengine.Report{}, fmt.Errorf("playlist %s has no videos", playlistID)
	}
	t.Log.Info("fetched videos", "count", len(videos))

	titles := make([]string, len(videos))
	for i, v := range videos {
		titles[i] = v.Title
	}

	report := matchengine.MatchAll(ctx, titles, t.Catalog.SearchTracks, t.Match, t.Encoder, progress, cancelled, t.Log)
	return info, report, nil
}

// Run performs the full transfer and returns a summary. Cancellation during
// matching is not an error: the summary carries the partial counts with
// Cancelled set and no destination playlist is created.
func (t *Transferrer) Run(ctx context.Context, urlOrID string, opts Options, progress matchengine.ProgressFunc, cancelled matchengine.CancelFunc) (*Summary, error) {
	info, report, err := t.MatchPlaylist(ctx, urlOrID, opts.MaxVideos, progress, cancelled)
	if err != nil {
		return nil, err
	}

	summary := summarize(report)
	t.Log.Info("matching complete",
		"matched", summary.Matched,
		"low_confidence", summary.LowConfidence,
		"not_found", summary.NotFound,
	)

	if report.Cancelled {
		return summary, nil
	}

	trackIDs := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		if r.Candidate == nil {
			continue
		}
		if r.Tier == matchengine.TierLowConfidence && !opts.IncludeLowConfidence {
			continue
		}
		trackIDs = append(trackIDs, r.Candidate.ID)
	}

	name := opts.PlaylistName
	if name == "" {
		name = info.Title + " (from YouTube)"
	}
	description := "Transferred from YouTube playlist: " + info.Title

	playlist, err := t.Catalog.CreatePlaylist(ctx, name, description, opts.Public)
	if err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}

	if len(trackIDs) > 0 {
		if err := t.Catalog.AddTracks(ctx, playlist.ID, trackIDs); err != nil {
			return nil, fmt.Errorf("add tracks: %w", err)
		}
	}

	summary.PlaylistID = playlist.ID
	summary.PlaylistURL = t.Catalog.PlaylistURL(playlist.ID)
	summary.Added = len(trackIDs)
	t.Log.Info("transfer complete", "playlist", name, "url", summary.PlaylistURL, "tracks", summary.Added)
	return summary, nil
}

func summarize(report matchengine.Report) *Summary {
	s := &Summary{Cancelled: report.Cancelled, Results: report.Results}
	for _, r := range report.Results {
		switch r.Tier {
		case matchengine.TierMatched:
			s.Matched++
		case matchengine.TierLowConfidence:
			s.LowConfidence++
		case matchengine.TierNotFound:
			s.NotFound++
		}
	}
	return s
}
