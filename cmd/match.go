package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/matchengine"
)

var matchPlaylist string

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a YouTube playlist against Spotify without creating anything",
	Long: `match runs the fetch and matching stages only and prints the per-title
classification, so a transfer can be previewed before committing to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := app.spotify.Authenticate(ctx); err != nil {
			return fmt.Errorf("authenticate with spotify: %w", err)
		}

		info, report, err := app.transferrer().MatchPlaylist(ctx, matchPlaylist, app.cfg.Transfer.MaxVideos, nil, nil)
		if err != nil {
			return err
		}

		fmt.Printf("Playlist: %s (%s)\n\n", info.Title, info.Channel)
		for _, r := range report.Results {
			switch r.Tier {
			case matchengine.TierMatched:
				fmt.Printf("  ✓ %-50s -> %s (%.2f)\n", r.SourceTitle, r.Candidate.Label(), r.Score)
			case matchengine.TierLowConfidence:
				fmt.Printf("  ? %-50s -> %s (%.2f, low confidence)\n", r.SourceTitle, r.Candidate.Label(), r.Score)
			default:
				fmt.Printf("  ✗ %-50s -> not found\n", r.SourceTitle)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVarP(&matchPlaylist, "playlist", "p", "", "YouTube playlist URL or ID")
	matchCmd.MarkFlagRequired("playlist")
}
