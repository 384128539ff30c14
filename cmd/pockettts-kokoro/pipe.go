package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/example/pockettts-kokoro/internal/tts"
	"github.com/spf13/cobra"
)

// newPipeCmd streams raw little-endian float32 PCM samples to stdout as
// sentences complete, with no WAV container — meant to be piped directly
// into a player expecting a raw PCM stream (e.g. `aplay -f FLOAT_LE -r
// 24000 -c 1`), rather than saved as a file.
func newPipeCmd() *cobra.Command {
	var f synthFlags

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Read lines from stdin and write raw float32 PCM samples to stdout as sentences complete",
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

			ctx := cmd.Context()
			audioTx := make(chan []float32, 4)

			writeErrCh := make(chan error, 1)
			go func() {
				writeErrCh <- writeRawPCM(os.Stdout, audioTx)
			}()

			pipe := tts.NewStreamingPipe(svc, f.options(cfg.TTS), cfg.TTS.Mono, io.Discard, audioTx)

			feedErr := feedStdin(ctx, pipe)
			close(audioTx)

			if writeErr := <-writeErrCh; writeErr != nil {
				return fmt.Errorf("write raw pcm: %w", writeErr)
			}

			return feedErr
		},
	}

	registerSynthFlags(cmd, &f)

	return cmd
}

func feedStdin(ctx context.Context, pipe *tts.StreamingPipe) error {
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
}

func writeRawPCM(w io.Writer, samples <-chan []float32) error {
	buf := make([]byte, 4)
	for chunk := range samples {
		for _, s := range chunk {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(s))
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
	}

	return nil
}
