package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/example/pockettts-kokoro/internal/audio"
	"github.com/example/pockettts-kokoro/internal/tts"
	"github.com/spf13/cobra"
)

func newStreamCmd() *cobra.Command {
	var f synthFlags

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Read lines from stdin and synthesize a continuous WAV to stdout as sentences complete",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			svc, err := tts.NewService(cfg)
			if err != nil {
				return fmt.Errorf("initialize synth service: %w", err)
			}
			defer svc.Close()

			out, closeOut, err := openStreamOutput(f.out)
			if err != nil {
				return err
			}
			defer closeOut()

			if _, err := audio.WriteWAVHeaderStreaming(out, streamChannels(cfg.TTS.Mono)); err != nil {
				return fmt.Errorf("write wav header: %w", err)
			}

			ctx := cmd.Context()
			pipe := tts.NewStreamingPipe(svc, f.options(cfg.TTS), cfg.TTS.Mono, out, nil)

			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				if err := pipe.Feed(ctx, scanner.Text()+"\n"); err != nil {
					return fmt.Errorf("feed line: %w", err)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			return pipe.Flush(ctx)
		},
	}

	registerSynthFlags(cmd, &f)

	return cmd
}

func streamChannels(mono bool) int {
	if mono {
		return 1
	}

	return 2
}

func openStreamOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}
