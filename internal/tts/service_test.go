package tts

import (
	"context"
	"testing"

	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/testutil"
	"github.com/example/pockettts-kokoro/internal/vocab"
)

func TestVocabVariantForMandarin(t *testing.T) {
	if got := vocabVariantFor(config.VariantMandarin); got != vocab.Mandarin {
		t.Fatalf("vocabVariantFor(mandarin) = %v, want %v", got, vocab.Mandarin)
	}
}

func TestVocabVariantForMultilingual(t *testing.T) {
	if got := vocabVariantFor(config.VariantMultilingual); got != vocab.Multilingual {
		t.Fatalf("vocabVariantFor(multilingual) = %v, want %v", got, vocab.Multilingual)
	}
}

func TestDefaultOptionsCopiesTTSConfig(t *testing.T) {
	cfg := config.TTSConfig{
		Voice:          "af_heart",
		Language:       "en-us",
		Speed:          1.2,
		ForceStyle:     true,
		ChunkBudget:    300,
		InitialSilence: 5,
	}

	opts := DefaultOptions(cfg)

	if opts.Voice != cfg.Voice || opts.Language != cfg.Language || opts.Speed != cfg.Speed ||
		opts.ForceStyle != cfg.ForceStyle || opts.ChunkBudget != cfg.ChunkBudget ||
		opts.InitialSilence != cfg.InitialSilence {
		t.Fatalf("DefaultOptions(%+v) = %+v", cfg, opts)
	}
}

// TestServiceSynthesizeEndToEnd exercises the full chunk -> phonemize ->
// tokenize -> style -> engine pipeline against real assets. It is skipped
// unless an ONNX Runtime library, espeak-ng, and a voice archive containing
// "af_heart" are all available in the environment.
func TestServiceSynthesizeEndToEnd(t *testing.T) {
	testutil.RequireONNXRuntime(t)
	testutil.RequireEspeakNG(t)
	testutil.RequireVoiceArchive(t, "af_heart")

	cfg := config.DefaultConfig()

	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	defer svc.Close()

	samples, err := svc.SynthesizeCtx(context.Background(), "Hello from the test suite.", DefaultOptions(cfg.TTS))
	if err != nil {
		t.Fatalf("SynthesizeCtx: %v", err)
	}
	if len(samples) == 0 {
		t.Fatal("expected non-empty audio samples")
	}
}
