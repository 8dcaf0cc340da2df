// Package config loads and validates tunebridge settings from an ini file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// KnownModels lists the embedding models the settings file may select.
// "lexical-only" disables embeddings and matches on string similarity alone.
var KnownModels = []string{
	"lexical-only",
	"paraphrase-MiniLM-L3-v2",
	"all-MiniLM-L6-v2",
	"all-MiniLM-L12-v2",
	"all-mpnet-base-v2",
}

type YouTube struct {
	APIKey string
}

type Spotify struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	RedirectURI  string
}

type Matching struct {
	Mode              string // "lexical" or "semantic"
	EmbeddingModel    string
	EmbeddingEndpoint string
	ModelCacheDir     string
	Threshold         float64
	PerQueryLimit     int
	CandidateCap      int
}

type Transfer struct {
	MaxVideos            int
	PublicPlaylists      bool
	IncludeLowConfidence bool
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	YouTube  YouTube
	Spotify  Spotify
	Matching Matching
	Transfer Transfer
	Log      Log
}

// Default returns the configuration used when keys are absent.
func Default() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	return &Config{
		Matching: Matching{
			Mode:              "semantic",
			EmbeddingModel:    "all-mpnet-base-v2",
			EmbeddingEndpoint: "http://localhost:8090",
			ModelCacheDir:     filepath.Join(cacheDir, "tunebridge", "models"),
			Threshold:         0.6,
			PerQueryLimit:     10,
			CandidateCap:      50,
		},
		Transfer: Transfer{
			MaxVideos:            500,
			IncludeLowConfidence: true,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads settings from path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	c := Default()

	yt := cfg.Section("youtube")
	c.YouTube.APIKey = yt.Key("api_key").String()

	sp := cfg.Section("spotify")
	c.Spotify.ClientID = sp.Key("client_id").String()
	c.Spotify.ClientSecret = sp.Key("client_secret").String()
	c.Spotify.RefreshToken = sp.Key("refresh_token").String()
	c.Spotify.RedirectURI = sp.Key("redirect_uri").String()

	mt := cfg.Section("matching")
	c.Matching.Mode = mt.Key("mode").MustString(c.Matching.Mode)
	c.Matching.EmbeddingModel = mt.Key("embedding_model").MustString(c.Matching.EmbeddingModel)
	c.Matching.EmbeddingEndpoint = mt.Key("embedding_endpoint").MustString(c.Matching.EmbeddingEndpoint)
	c.Matching.ModelCacheDir = mt.Key("model_cache_dir").MustString(c.Matching.ModelCacheDir)
	c.Matching.Threshold = mt.Key("threshold").MustFloat64(c.Matching.Threshold)
	c.Matching.PerQueryLimit = mt.Key("per_query_limit").MustInt(c.Matching.PerQueryLimit)
	c.Matching.CandidateCap = mt.Key("candidate_cap").MustInt(c.Matching.CandidateCap)

	tr := cfg.Section("transfer")
	c.Transfer.MaxVideos = tr.Key("max_videos").MustInt(c.Transfer.MaxVideos)
	c.Transfer.PublicPlaylists = tr.Key("public_playlists").MustBool(c.Transfer.PublicPlaylists)
	c.Transfer.IncludeLowConfidence = tr.Key("include_low_confidence").MustBool(c.Transfer.IncludeLowConfidence)

	lg := cfg.Section("log")
	c.Log.Level = lg.Key("level").MustString(c.Log.Level)
	c.Log.Format = lg.Key("format").MustString(c.Log.Format)

	return c, nil
}

// Validate returns every problem found, not just the first, so a settings
// file can be fixed in one pass.
func (c *Config) Validate() []string {
	var errs []string

	if strings.TrimSpace(c.YouTube.APIKey) == "" {
		errs = append(errs, "youtube api_key is required")
	}
	if strings.TrimSpace(c.Spotify.ClientID) == "" {
		errs = append(errs, "spotify client_id is required")
	}
	if strings.TrimSpace(c.Spotify.ClientSecret) == "" {
		errs = append(errs, "spotify client_secret is required")
	}
	if uri := strings.TrimSpace(c.Spotify.RedirectURI); uri != "" &&
		!strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		errs = append(errs, "spotify redirect_uri must start with http:// or https://")
	}

	if c.Matching.Mode != "lexical" && c.Matching.Mode != "semantic" {
		errs = append(errs, fmt.Sprintf("matching mode must be lexical or semantic, got %q", c.Matching.Mode))
	}
	if !knownModel(c.Matching.EmbeddingModel) {
		errs = append(errs, fmt.Sprintf("embedding_model must be one of: %s", strings.Join(KnownModels, ", ")))
	}
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 1 {
		errs = append(errs, "matching threshold must be between 0.0 and 1.0")
	}

	if c.Transfer.MaxVideos < 1 {
		errs = append(errs, "max_videos must be a positive integer")
	}

	return errs
}

func knownModel(name string) bool {
	for _, m := range KnownModels {
		if m == name {
			return true
		}
	}
	return false
}
