package tts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/testutil"
)

func TestNewModelManagerFailsWhenRuntimeUndetectable(t *testing.T) {
	cfg := config.Config{
		Runtime: config.RuntimeConfig{ORTLibraryPath: "/nonexistent/libonnxruntime.so"},
	}

	if _, err := NewModelManager(cfg); err == nil {
		t.Fatal("expected error when ONNX Runtime library cannot be located")
	}
}

func TestNewModelManagerSucceedsWithResolvableRuntime(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "libonnxruntime.so")
	if err := os.WriteFile(libPath, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write stub library: %v", err)
	}

	cfg := config.Config{
		Paths:   config.PathsConfig{ONNXManifestMultilingual: "models/kokoro-multilingual/manifest.json"},
		Runtime: config.RuntimeConfig{ORTLibraryPath: libPath},
	}

	mgr, err := NewModelManager(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr == nil {
		t.Fatal("expected non-nil manager")
	}

	// Close on a manager with no resident engine must be a safe no-op.
	mgr.Close()
}

func TestModelManagerGetLoadsAndSwapsVariants(t *testing.T) {
	testutil.RequireONNXRuntime(t)

	cfg := config.DefaultConfig()
	for _, path := range []string{cfg.Paths.ONNXManifestMultilingual, cfg.Paths.ONNXManifestMandarin} {
		if _, err := os.Stat(path); err != nil {
			t.Skipf("ONNX manifest not available at %q: %v", path, err)
		}
	}

	mgr, err := NewModelManager(cfg)
	if err != nil {
		t.Fatalf("NewModelManager: %v", err)
	}
	defer mgr.Close()

	multi, err := mgr.Get(config.VariantMultilingual)
	if err != nil {
		t.Fatalf("Get(multilingual): %v", err)
	}
	if multi == nil {
		t.Fatal("expected non-nil multilingual engine")
	}

	again, err := mgr.Get(config.VariantMultilingual)
	if err != nil {
		t.Fatalf("Get(multilingual) again: %v", err)
	}
	if again != multi {
		t.Fatal("expected cached engine to be returned for the same variant")
	}

	mandarin, err := mgr.Get(config.VariantMandarin)
	if err != nil {
		t.Fatalf("Get(mandarin): %v", err)
	}
	if mandarin == multi {
		t.Fatal("expected a distinct engine after switching variants")
	}
}
