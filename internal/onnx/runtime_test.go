package onnx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pockettts-kokoro/internal/config"
)

func TestInferVersionFromPath(t *testing.T) {
	cases := map[string]string{
		"libonnxruntime.so.1.17.3": "1.17.3",
		"libonnxruntime.so":        "",
		"onnxruntime-1.16.0.dll":   "1.16.0",
	}
	for path, want := range cases {
		if got := inferVersionFromPath(path); got != want {
			t.Errorf("inferVersionFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestDetectRuntimeUsesConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "libonnxruntime.so.1.18.0")
	if err := os.WriteFile(libPath, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write stub library: %v", err)
	}

	info, err := DetectRuntime(config.RuntimeConfig{ORTLibraryPath: libPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.LibraryPath != libPath {
		t.Fatalf("LibraryPath = %q, want %q", info.LibraryPath, libPath)
	}
	if info.Version != "1.18.0" {
		t.Fatalf("Version = %q, want 1.18.0", info.Version)
	}
}

func TestDetectRuntimeConfiguredVersionOverridesInference(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "libonnxruntime.so.1.18.0")
	if err := os.WriteFile(libPath, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write stub library: %v", err)
	}

	info, err := DetectRuntime(config.RuntimeConfig{ORTLibraryPath: libPath, ORTVersion: "2.0.0-custom"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Version != "2.0.0-custom" {
		t.Fatalf("Version = %q, want 2.0.0-custom", info.Version)
	}
}

func TestDetectRuntimeMissingFileErrors(t *testing.T) {
	_, err := DetectRuntime(config.RuntimeConfig{ORTLibraryPath: "/nonexistent/libonnxruntime.so"})
	if err == nil {
		t.Fatal("expected error for nonexistent library path")
	}
}

func TestDetectRuntimeNoPathFoundErrors(t *testing.T) {
	t.Setenv("POCKETTTS_ORT_LIB", "")
	t.Setenv("ORT_LIBRARY_PATH", "")

	// This may pass on a system that genuinely has one of the well-known
	// system library paths installed; in that case DetectRuntime legitimately
	// succeeds and there is nothing to assert against an error.
	if _, err := os.Stat("/usr/lib/libonnxruntime.so"); err == nil {
		t.Skip("system has a real ONNX runtime installed at the well-known path")
	}
	if _, err := os.Stat("/usr/local/lib/libonnxruntime.so"); err == nil {
		t.Skip("system has a real ONNX runtime installed at the well-known path")
	}
	if _, err := os.Stat("/usr/lib/x86_64-linux-gnu/libonnxruntime.so"); err == nil {
		t.Skip("system has a real ONNX runtime installed at the well-known path")
	}

	if _, err := DetectRuntime(config.RuntimeConfig{}); err == nil {
		t.Fatal("expected error when no library path can be resolved")
	}
}
