package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunebridge/tunebridge/internal/semantic"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage the embedding model cache",
}

var modelStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured model and its cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}
		fmt.Println(app.models.Status())
		return nil
	},
}

var modelDownloadCmd = &cobra.Command{
	Use:   "download [model]",
	Short: "Pull a model into the local cache via the embedding server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}

		name := app.cfg.Matching.EmbeddingModel
		if len(args) == 1 {
			name = args[0]
		}
		if name == semantic.LexicalOnlyModel {
			return fmt.Errorf("lexical-only mode has nothing to download")
		}
		if app.models.IsDownloaded(name) {
			fmt.Printf("model %s is already downloaded\n", name)
			return nil
		}

		fmt.Printf("pulling %s from %s...\n", name, app.cfg.Matching.EmbeddingEndpoint)
		if err := semantic.Pull(cmd.Context(), app.cfg.Matching.EmbeddingEndpoint, name, app.models.ModelDir(name)); err != nil {
			return err
		}
		fmt.Printf("model %s downloaded\n", name)
		return nil
	},
}

var modelDeleteCmd = &cobra.Command{
	Use:   "delete [model]",
	Short: "Remove a model's cached artifacts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp()
		if err != nil {
			return err
		}

		name := app.cfg.Matching.EmbeddingModel
		if len(args) == 1 {
			name = args[0]
		}

		ok, message := app.models.Delete(name)
		fmt.Println(message)
		if !ok {
			return fmt.Errorf("delete failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.AddCommand(modelStatusCmd)
	modelCmd.AddCommand(modelDownloadCmd)
	modelCmd.AddCommand(modelDeleteCmd)
}
