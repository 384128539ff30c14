package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestWriteRawPCMEncodesLittleEndianFloat32(t *testing.T) {
	samples := make(chan []float32, 2)
	samples <- []float32{1, -1}
	samples <- []float32{0.5}
	close(samples)

	var buf bytes.Buffer
	if err := writeRawPCM(&buf, samples); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float32{1, -1, 0.5}
	data := buf.Bytes()
	if len(data) != len(want)*4 {
		t.Fatalf("len(data) = %d, want %d", len(data), len(want)*4)
	}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		if got != w {
			t.Fatalf("sample[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestWriteRawPCMEmptyChannelWritesNothing(t *testing.T) {
	samples := make(chan []float32)
	close(samples)

	var buf bytes.Buffer
	if err := writeRawPCM(&buf, samples); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no bytes written, got %d", buf.Len())
	}
}
