package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/doctor"
)

// captureFile redirects a function writing to *os.File into a buffer by
// running it against an os.Pipe and reading back the written bytes.
func captureFile(t *testing.T, fn func(*os.File) error) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	fnErr := fn(w)
	w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read pipe: %v", err)
	}

	return buf.String(), fnErr
}

func TestCheckManifestFoundPasses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	out, err := captureFile(t, func(w *os.File) error {
		return checkManifest(w, "multilingual manifest", path)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, doctor.PassMark) {
		t.Errorf("output missing pass marker:\n%s", out)
	}
}

func TestCheckManifestMissingFails(t *testing.T) {
	out, err := captureFile(t, func(w *os.File) error {
		return checkManifest(w, "multilingual manifest", "/nonexistent/manifest.json")
	})
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !strings.Contains(out, doctor.FailMark) {
		t.Errorf("output missing fail marker:\n%s", out)
	}
}

func TestCheckVoiceArchiveMissingFails(t *testing.T) {
	out, err := captureFile(t, func(w *os.File) error {
		return checkVoiceArchive(w, "/nonexistent/voices.zip")
	})
	if err == nil {
		t.Fatal("expected error for missing voice archive")
	}
	if !strings.Contains(out, doctor.FailMark) {
		t.Errorf("output missing fail marker:\n%s", out)
	}
}

func TestCheckORTRuntimeMissingFails(t *testing.T) {
	out, err := captureFile(t, func(w *os.File) error {
		return checkORTRuntime(w, config.RuntimeConfig{ORTLibraryPath: "/nonexistent/libonnxruntime.so"})
	})
	if err == nil {
		t.Fatal("expected error when ORT runtime cannot be located")
	}
	if !strings.Contains(out, doctor.FailMark) {
		t.Errorf("output missing fail marker:\n%s", out)
	}
}
