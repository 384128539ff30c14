package main

import (
	"fmt"
	"os"

	"github.com/example/pockettts-kokoro/internal/model"
	"github.com/spf13/cobra"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Model acquisition commands",
	}

	cmd.AddCommand(newModelDownloadCmd())
	cmd.AddCommand(newModelVoicesCmd())

	return cmd
}

func newModelDownloadCmd() *cobra.Command {
	var hfRepo string
	var outDir string
	var hfToken string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a Kokoro ONNX model variant from Hugging Face",
		RunE: func(_ *cobra.Command, _ []string) error {
			if hfToken == "" {
				hfToken = os.Getenv("HF_TOKEN")
			}

			err := model.Download(model.DownloadOptions{
				Repo:    hfRepo,
				OutDir:  outDir,
				HFToken: hfToken,
				Stdout:  os.Stdout,
				Stderr:  os.Stderr,
			})
			if err != nil {
				return fmt.Errorf("model download failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&hfRepo, "hf-repo", "hexgrad/Kokoro-82M-ONNX", "Hugging Face model repository (multilingual or Mandarin ONNX variant)")
	cmd.Flags().StringVar(&outDir, "out-dir", "models/kokoro-multilingual", "Directory where model files are stored")
	cmd.Flags().StringVar(&hfToken, "hf-token", "", "Hugging Face token (falls back to HF_TOKEN env var)")

	return cmd
}

func newModelVoicesCmd() *cobra.Command {
	var outDir string
	var hfToken string

	cmd := &cobra.Command{
		Use:   "voices",
		Short: "Download the pinned voice style files from Hugging Face",
		RunE: func(_ *cobra.Command, _ []string) error {
			if hfToken == "" {
				hfToken = os.Getenv("HF_TOKEN")
			}

			manifest := model.VoiceManifest()

			err := model.DownloadManifest(model.DownloadOptions{
				Repo:    manifest.Repo,
				OutDir:  outDir,
				HFToken: hfToken,
				Stdout:  os.Stdout,
				Stderr:  os.Stderr,
			}, manifest)
			if err != nil {
				return fmt.Errorf("voice download failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "models/voices", "Directory where voice style files are stored")
	cmd.Flags().StringVar(&hfToken, "hf-token", "", "Hugging Face token (falls back to HF_TOKEN env var)")

	return cmd
}
