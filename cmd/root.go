package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/config"
	"github.com/tunebridge/tunebridge/internal/logging"
	"github.com/tunebridge/tunebridge/internal/matchengine"
	"github.com/tunebridge/tunebridge/internal/semantic"
	"github.com/tunebridge/tunebridge/internal/spotify"
	"github.com/tunebridge/tunebridge/internal/transfer"
	"github.com/tunebridge/tunebridge/internal/youtube"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tunebridge",
	Short: "Transfer YouTube playlists to Spotify",
	Long: `tunebridge fetches a YouTube playlist, matches each video title
against the Spotify catalog using lexical or embedding-based similarity,
and assembles the matches into a Spotify playlist.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgFile,
		"config",
		"c",
		"config.ini",
		"path to config file",
	)
}

// app bundles the wired dependencies commands run against.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	models  *semantic.Manager
	spotify *spotify.Client
	youtube *youtube.Client
}

func loadApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n  %s", strings.Join(errs, "\n  "))
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	models := semantic.NewManager(
		cfg.Matching.ModelCacheDir,
		semantic.ServerLoader(cfg.Matching.EmbeddingEndpoint),
		log,
	)
	models.Configure(cfg.Matching.EmbeddingModel)

	return &app{
		cfg:    cfg,
		log:    log,
		models: models,
		spotify: spotify.NewClient(spotify.Credentials{
			ClientID:     cfg.Spotify.ClientID,
			ClientSecret: cfg.Spotify.ClientSecret,
			RefreshToken: cfg.Spotify.RefreshToken,
			RedirectURI:  cfg.Spotify.RedirectURI,
		}),
		youtube: youtube.NewClient(cfg.YouTube.APIKey),
	}, nil
}

func (a *app) transferrer() *transfer.Transferrer {
	return &transfer.Transferrer{
		Source:  a.youtube,
		Catalog: a.spotify,
		Encoder: a.models,
		Match: matchengine.Config{
			Mode:          matchengine.Mode(a.cfg.Matching.Mode),
			Threshold:     a.cfg.Matching.Threshold,
			PerQueryLimit: a.cfg.Matching.PerQueryLimit,
			CandidateCap:  a.cfg.Matching.CandidateCap,
		},
		Log: a.log,
	}
}

func printProgress(index, total int, label string) {
	fmt.Printf("[%d/%d] %s\n", index, total, label)
}
