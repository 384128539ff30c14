package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/pockettts-kokoro/internal/audio"
	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/tts"
	"github.com/spf13/cobra"
)

// synthFlags are the options shared by the text, file, stream and pipe
// commands.
type synthFlags struct {
	out            string
	voice          string
	language       string
	speed          float64
	forceStyle     bool
	chunkBudget    int
	initialSilence int
	autoDetect     bool
	phonemesMode   bool
	normalize      bool
	dcBlock        bool
	fadeInMS       float64
	fadeOutMS      float64
}

func registerSynthFlags(cmd *cobra.Command, f *synthFlags) {
	cmd.Flags().StringVar(&f.out, "out", "-", "Output WAV path ('-' for stdout)")
	cmd.Flags().StringVar(&f.voice, "voice", "", "Voice ID or blend spec (overrides config)")
	cmd.Flags().StringVar(&f.language, "language", "", "Language tag (overrides config)")
	cmd.Flags().Float64Var(&f.speed, "speed", 0, "Playback speed multiplier (0 = use config default)")
	cmd.Flags().BoolVar(&f.forceStyle, "force-style", false, "Disable the non-English default-voice override")
	cmd.Flags().IntVar(&f.chunkBudget, "chunk-budget", 0, "Maximum tokens per synthesis chunk (0 = use config default)")
	cmd.Flags().IntVar(&f.initialSilence, "initial-silence", -1, "Silence-token copies prepended to each chunk (-1 = use config default)")
	cmd.Flags().BoolVar(&f.autoDetect, "auto-detect", false, "Auto-detect language from input text")
	cmd.Flags().BoolVar(&f.phonemesMode, "phonemes", false, "Treat input as already-phonemized IPA/Bopomofo text")
	cmd.Flags().BoolVar(&f.normalize, "normalize", false, "Peak-normalize output audio")
	cmd.Flags().BoolVar(&f.dcBlock, "dc-block", false, "Apply DC-block high-pass filter")
	cmd.Flags().Float64Var(&f.fadeInMS, "fade-in-ms", 0, "Apply linear fade-in duration in milliseconds")
	cmd.Flags().Float64Var(&f.fadeOutMS, "fade-out-ms", 0, "Apply linear fade-out duration in milliseconds")
}

func (f *synthFlags) options(cfg config.TTSConfig) tts.Options {
	opts := tts.DefaultOptions(cfg)

	if f.voice != "" {
		opts.Voice = f.voice
	}
	if f.language != "" {
		opts.Language = f.language
	}
	if f.speed > 0 {
		opts.Speed = f.speed
	}
	if f.forceStyle {
		opts.ForceStyle = true
	}
	if f.chunkBudget > 0 {
		opts.ChunkBudget = f.chunkBudget
	}
	if f.initialSilence >= 0 {
		opts.InitialSilence = f.initialSilence
	}
	opts.AutoDetect = f.autoDetect
	opts.PhonemesMode = f.phonemesMode

	return opts
}

func newTextCmd() *cobra.Command {
	var text string
	var f synthFlags

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Synthesize text given on --text or stdin to WAV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			input, err := readSynthText(text, os.Stdin)
			if err != nil {
				return err
			}

			return runSynth(cmd, cfg, input, &f)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to synthesize (if empty, read from stdin)")
	registerSynthFlags(cmd, &f)

	return cmd
}

func newFileCmd() *cobra.Command {
	var f synthFlags

	cmd := &cobra.Command{
		Use:   "file [path]",
		Short: "Synthesize the contents of a text file to WAV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input file: %w", err)
			}

			input := strings.TrimSpace(string(b))
			if input == "" {
				return fmt.Errorf("input file %q is empty", args[0])
			}

			return runSynth(cmd, cfg, input, &f)
		},
	}

	registerSynthFlags(cmd, &f)

	return cmd
}

func runSynth(cmd *cobra.Command, cfg config.Config, input string, f *synthFlags) error {
	svc, err := tts.NewService(cfg)
	if err != nil {
		return fmt.Errorf("initialize synth service: %w", err)
	}
	defer svc.Close()

	samples, err := svc.SynthesizeCtx(cmd.Context(), input, f.options(cfg.TTS))
	if err != nil {
		return err
	}

	if f.normalize {
		samples = audio.PeakNormalize(samples)
	}
	if f.dcBlock {
		samples = audio.DCBlock(samples, audio.ExpectedSampleRate)
	}
	if f.fadeInMS > 0 {
		samples = audio.FadeIn(samples, audio.ExpectedSampleRate, f.fadeInMS)
	}
	if f.fadeOutMS > 0 {
		samples = audio.FadeOut(samples, audio.ExpectedSampleRate, f.fadeOutMS)
	}

	wavData, err := audio.EncodeWAV(samples, cfg.TTS.Mono)
	if err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}

	return writeSynthOutput(f.out, wavData, os.Stdout)
}

func writeSynthOutput(outPath string, wavData []byte, stdout io.Writer) error {
	if outPath == "" || outPath == "-" {
		if stdout == nil {
			return fmt.Errorf("stdout writer is nil")
		}
		_, err := stdout.Write(wavData)
		return err
	}
	return os.WriteFile(outPath, wavData, 0o644)
}

func readSynthText(text string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	input := strings.TrimSpace(string(b))
	if input == "" {
		return "", fmt.Errorf("either provide --text or pipe text on stdin")
	}
	return input, nil
}
