package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/style"
	"github.com/example/pockettts-kokoro/internal/tts"
	"github.com/spf13/cobra"
)

// newVoiceCatalog loads the voice style archive independently of the synth
// core's own internal store, so CLI subcommands that only need the voice
// listing (serve, voices) don't have to pull in a full Service.
func newVoiceCatalog(cfg config.Config) (*tts.VoiceCatalog, error) {
	store, err := style.Load(cfg.Paths.VoiceArchivePath)
	if err != nil {
		return nil, fmt.Errorf("load voice archive: %w", err)
	}

	return tts.NewVoiceCatalog(store), nil
}

func newVoicesCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "voices",
		Short: "List available voices",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			catalog, err := newVoiceCatalog(cfg)
			if err != nil {
				return err
			}

			if !detailed {
				for _, name := range catalog.ListVoices() {
					fmt.Fprintln(os.Stdout, name)
				}

				return nil
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(catalog.DetailedVoices())
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Print structured per-voice metadata as JSON")

	return cmd
}
