package onnx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/testutil"
)

func TestNewEngineMissingManifestErrors(t *testing.T) {
	if _, err := NewEngine("/nonexistent/manifest.json", RunnerConfig{}); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestNewEngineManifestMissingKokoroGraphErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "other.onnx"), []byte("stub"), 0o644); err != nil {
		t.Fatalf("write stub graph: %v", err)
	}
	manifestPath := writeManifest(t, dir, "manifest.json", `{
		"graphs": [{"name": "not-kokoro", "filename": "other.onnx"}]
	}`)

	if _, err := NewEngine(manifestPath, RunnerConfig{}); err == nil {
		t.Fatal("expected error when manifest lacks a \"kokoro\" graph")
	}
}

// TestEngineSynthesizeEndToEnd exercises the full tokens/style/speed -> audio
// graph against a real ONNX Runtime install and a downloaded model manifest.
// It is skipped unless both are present.
func TestEngineSynthesizeEndToEnd(t *testing.T) {
	testutil.RequireONNXRuntime(t)

	cfg := config.DefaultConfig()
	manifestPath := cfg.Paths.ONNXManifestMultilingual
	if _, err := os.Stat(manifestPath); err != nil {
		t.Skipf("ONNX manifest not available at %q: %v", manifestPath, err)
	}

	runtime, err := DetectRuntime(cfg.Runtime)
	if err != nil {
		t.Skipf("could not resolve ONNX Runtime library: %v", err)
	}

	engine, err := NewEngine(manifestPath, RunnerConfig{LibraryPath: runtime.LibraryPath})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer engine.Close()

	tokens := []int64{0, 50, 51, 52, 0}
	var style [256]float32
	style[0] = 1.0

	samples, err := engine.Synthesize(context.Background(), tokens, style, 1.0)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(samples) == 0 {
		t.Fatal("expected non-empty audio samples")
	}
}
