// Package testutil provides shared skip helpers for integration tests.
//
// Each helper calls t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so integration tests remain runnable in partial
// environments without failing noisily.
//
// Typical usage:
//
//	func TestMyIntegration(t *testing.T) {
//	    testutil.RequireONNXRuntime(t)
//	    testutil.RequireVoiceArchive(t, "af_heart")
//	    ...
//	}
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/example/pockettts-kokoro/internal/style"
)

// RequireONNXRuntime skips the test if no ONNX Runtime shared library can be
// located. It checks (in order): the ORT_LIBRARY_PATH env var, then the
// POCKETTTS_ORT_LIB env var, then common system library paths.
func RequireONNXRuntime(t testing.TB) {
	t.Helper()
	for _, env := range []string{"ORT_LIBRARY_PATH", "POCKETTTS_ORT_LIB"} {
		if p := os.Getenv(env); p != "" {
			if _, err := os.Stat(p); err == nil {
				return // found
			}
			t.Skipf("ONNX Runtime library not found at %s=%q", env, p)
		}
	}
	// Fall back to common system locations.
	candidates := []string{
		"/usr/lib/libonnxruntime.so",
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/x86_64-linux-gnu/libonnxruntime.so",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return // found
		}
	}
	t.Skip("ONNX Runtime shared library not found; set ORT_LIBRARY_PATH or POCKETTTS_ORT_LIB")
}

// RequireEspeakNG skips the test if no espeak-ng binary can be located on
// PATH or at the path given by the POCKETTTS_ESPEAK_NG_PATH environment
// variable.
func RequireEspeakNG(t testing.TB) {
	t.Helper()
	exe := os.Getenv("POCKETTTS_ESPEAK_NG_PATH")
	if exe == "" {
		exe = "espeak-ng"
	}
	if _, err := exec.LookPath(exe); err != nil {
		t.Skipf("espeak-ng binary not available (%q not in PATH); set POCKETTTS_ESPEAK_NG_PATH to override", exe)
	}
}

// RequireVoiceArchive skips the test if the voice style archive cannot be
// opened from models/voices.zip relative to the current working directory,
// or if the named voice is not present in it.
func RequireVoiceArchive(t testing.TB, name string) {
	t.Helper()
	archivePath := filepath.Join("models", "voices.zip")
	store, err := style.Load(archivePath)
	if err != nil {
		t.Skipf("voice archive not available at %q: %v", archivePath, err)
	}
	if !store.Has(name) {
		t.Skipf("voice %q not present in archive %q", name, archivePath)
	}
}

// SilenceWAVPath returns the path to the committed 100 ms silence fixture WAV
// relative to the repository root.
func SilenceWAVPath() string {
	return filepath.Join("cmd", "pockettts-kokoro", "testdata", "silence_100ms.wav")
}
