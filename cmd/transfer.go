package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/transfer"
)

var (
	transferPlaylist    string
	transferName        string
	transferSkipLowConf bool
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer a YouTube playlist to Spotify",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := app.spotify.Authenticate(ctx); err != nil {
			return fmt.Errorf("authenticate with spotify: %w", err)
		}

		summary, err := app.transferrer().Run(ctx, transferPlaylist, transfer.Options{
			PlaylistName:         transferName,
			IncludeLowConfidence: app.cfg.Transfer.IncludeLowConfidence && !transferSkipLowConf,
			MaxVideos:            app.cfg.Transfer.MaxVideos,
			Public:               app.cfg.Transfer.PublicPlaylists,
		}, printProgress, nil)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Matched:        %d\n", summary.Matched)
		fmt.Printf("Low confidence: %d\n", summary.LowConfidence)
		fmt.Printf("Not found:      %d\n", summary.NotFound)
		if summary.Cancelled {
			fmt.Println("Transfer cancelled before playlist creation.")
			return nil
		}
		fmt.Printf("\nAdded %d tracks: %s\n", summary.Added, summary.PlaylistURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().StringVarP(&transferPlaylist, "playlist", "p", "", "YouTube playlist URL or ID")
	transferCmd.MarkFlagRequired("playlist")

	transferCmd.Flags().StringVarP(&transferName, "name", "n", "", "Spotify playlist name (defaults to the YouTube title)")
	transferCmd.Flags().BoolVar(&transferSkipLowConf, "skip-low-confidence", false, "leave low confidence matches out of the playlist")
}
