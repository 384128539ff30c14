package audio

import "testing"

func TestPeakNormalizeScalesToUnityPeak(t *testing.T) {
	got := PeakNormalize([]float32{0.5, -1.0, 0.25})
	want := []float32{0.5, -1.0, 0.25}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPeakNormalizeScalesNonUnityPeak(t *testing.T) {
	got := PeakNormalize([]float32{0.2, -0.4})
	if got[1] != -1.0 {
		t.Fatalf("got[1] = %v, want -1.0", got[1])
	}
	if got[0] != 0.5 {
		t.Fatalf("got[0] = %v, want 0.5", got[0])
	}
}

func TestPeakNormalizeSilentInputUnchanged(t *testing.T) {
	in := []float32{0, 0, 0}
	got := PeakNormalize(in)
	for _, v := range got {
		if v != 0 {
			t.Fatalf("expected silence to remain zero, got %v", v)
		}
	}
}

func TestDCBlockEmptyInput(t *testing.T) {
	got := DCBlock(nil, 24000)
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestDCBlockRemovesConstantOffset(t *testing.T) {
	samples := make([]float32, 2000)
	for i := range samples {
		samples[i] = 0.5
	}
	out := DCBlock(samples, 24000)
	// A constant input to a DC-blocking filter should decay toward zero.
	if out[len(out)-1] > 0.01 {
		t.Fatalf("tail of DC-blocked constant signal = %v, want near 0", out[len(out)-1])
	}
}

func TestFadeInRampsFromZero(t *testing.T) {
	samples := make([]float32, 100)
	for i := range samples {
		samples[i] = 1.0
	}
	out := FadeIn(samples, 1000, 10) // 10ms at 1000Hz = 10 samples
	if out[0] != 0 {
		t.Fatalf("out[0] = %v, want 0", out[0])
	}
	if out[99] != 1.0 {
		t.Fatalf("out[99] = %v, want 1.0 (outside fade window)", out[99])
	}
}

func TestFadeOutRampsToZero(t *testing.T) {
	samples := make([]float32, 100)
	for i := range samples {
		samples[i] = 1.0
	}
	out := FadeOut(samples, 1000, 10) // 10ms at 1000Hz = 10 samples
	if out[99] != 0 {
		t.Fatalf("out[99] = %v, want 0", out[99])
	}
	if out[0] != 1.0 {
		t.Fatalf("out[0] = %v, want 1.0 (outside fade window)", out[0])
	}
}

func TestFadeInZeroDurationNoop(t *testing.T) {
	samples := []float32{1, 1, 1}
	out := FadeIn(samples, 24000, 0)
	for i, v := range out {
		if v != 1 {
			t.Fatalf("out[%d] = %v, want unchanged 1", i, v)
		}
	}
}
