package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/doctor"
	"github.com/example/pockettts-kokoro/internal/onnx"
	"github.com/example/pockettts-kokoro/internal/style"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local runtime and model-asset checks",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			dcfg := doctor.Config{
				PocketTTSVersion: func() (string, error) {
					return probeEspeakVersion(cfg.Paths.EspeakNGPath)
				},
				SkipPython: true,
				VoiceFiles: nil,
			}

			result := doctor.Run(dcfg, os.Stdout)

			if err := checkORTRuntime(os.Stdout, cfg.Runtime); err != nil {
				result.AddFailure(err.Error())
			}
			if err := checkManifest(os.Stdout, "multilingual manifest", cfg.Paths.ONNXManifestMultilingual); err != nil {
				result.AddFailure(err.Error())
			}
			if err := checkManifest(os.Stdout, "Mandarin manifest", cfg.Paths.ONNXManifestMandarin); err != nil {
				result.AddFailure(err.Error())
			}
			if err := checkVoiceArchive(os.Stdout, cfg.Paths.VoiceArchivePath); err != nil {
				result.AddFailure(err.Error())
			}

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "doctor checks passed")

			return nil
		},
	}

	return cmd
}

// probeEspeakVersion runs `espeak-ng --version` and returns its output; the
// doctor framework's "pocket-tts binary" slot is reused here for the
// generic phonemizer frontend's own version probe.
func probeEspeakVersion(exe string) (string, error) {
	if exe == "" {
		exe = "espeak-ng"
	}

	out, err := exec.CommandContext(context.Background(), exe, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version failed: %w", exe, err)
	}

	return strings.TrimSpace(string(out)), nil
}

func checkORTRuntime(w *os.File, rcfg config.RuntimeConfig) error {
	info, err := onnx.DetectRuntime(rcfg)
	if err != nil {
		fmt.Fprintf(w, "%s onnx runtime: %v\n", doctor.FailMark, err)
		return fmt.Errorf("onnx runtime: %w", err)
	}

	fmt.Fprintf(w, "%s onnx runtime: %s (version %s)\n", doctor.PassMark, info.LibraryPath, info.Version)

	return nil
}

func checkManifest(w *os.File, label, path string) error {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "%s %s: not found at %s\n", doctor.FailMark, label, path)
		return fmt.Errorf("%s: %w", label, err)
	}

	fmt.Fprintf(w, "%s %s: %s\n", doctor.PassMark, label, path)

	return nil
}

func checkVoiceArchive(w *os.File, path string) error {
	store, err := style.Load(path)
	if err != nil {
		fmt.Fprintf(w, "%s voice archive: %v\n", doctor.FailMark, err)
		return fmt.Errorf("voice archive: %w", err)
	}

	fmt.Fprintf(w, "%s voice archive: %d voices\n", doctor.PassMark, len(store.Names()))

	return nil
}
