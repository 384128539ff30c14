package phonemize

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// EspeakFrontend shells out to the espeak-ng binary to produce IPA
// transcriptions for every language path other than Chinese and Japanese.
// No pure-Go espeak binding exists in the reference corpus, so the
// third-party G2P engine itself is the external espeak-ng process, matching
// upstream Kokoro's own dependency on it.
type EspeakFrontend struct {
	// BinaryPath is the espeak-ng executable to invoke. Defaults to
	// "espeak-ng" on PATH when empty.
	BinaryPath string
}

// NewEspeakFrontend builds a frontend targeting the given binary path
// (empty selects "espeak-ng" from PATH).
func NewEspeakFrontend(binaryPath string) *EspeakFrontend {
	return &EspeakFrontend{BinaryPath: binaryPath}
}

// Phonemize runs espeak-ng in IPA mode against text for the given
// espeak-style language code and returns the raw IPA transcription.
func (e *EspeakFrontend) Phonemize(ctx context.Context, text, langCode string) (string, error) {
	exe := e.BinaryPath
	if exe == "" {
		exe = "espeak-ng"
	}
	args := []string{"--ipa", "-q", "-v", langCode, text}
	cmd := exec.CommandContext(ctx, exe, args...)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("espeak-ng: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(out.String()), nil
}
