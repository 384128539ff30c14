package onnx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// graphName is the single ONNX graph each Kokoro model variant manifest
// names: 3 inputs (tokens, style, speed), 1 output (audio).
const graphName = "kokoro"

// Engine owns the loaded ORT session for one model variant (multilingual or
// Mandarin) and exposes Kokoro's fixed tokens/style/speed -> audio graph.
type Engine struct {
	runner *Runner
	sm     *SessionManager
}

// NewEngine loads the variant's manifest (naming exactly one graph, "kokoro")
// and creates its ORT runner.
func NewEngine(manifestPath string, cfg RunnerConfig) (*Engine, error) {
	sm, err := NewSessionManager(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	sess, ok := sm.Session(graphName)
	if !ok {
		return nil, fmt.Errorf("manifest %q: missing %q graph", manifestPath, graphName)
	}

	runner, err := NewRunner(sess, cfg)
	if err != nil {
		return nil, fmt.Errorf("create runner %q: %w", sess.Name, err)
	}

	slog.Info("created ONNX runner", "graph", sess.Name, "path", sess.Path)

	return &Engine{runner: runner, sm: sm}, nil
}

// Close releases all ORT resources.
func (e *Engine) Close() {
	if e.runner != nil {
		e.runner.Close()
	}
}

// Synthesize runs the kokoro graph for one phoneme-token chunk: tokens
// (already bracketed with boundary zeros and silence ids) shaped [1, T], a
// 256-wide style row shaped [1, 256], and a scalar speed multiplier. It
// returns the flattened float32 PCM samples from the "audio" output.
func (e *Engine) Synthesize(ctx context.Context, tokens []int64, style [256]float32, speed float32) ([]float32, error) {
	if len(tokens) == 0 {
		return nil, errors.New("synthesize: token slice must not be empty")
	}

	T := int64(len(tokens))

	tokenTensor, err := NewTensor(tokens, []int64{1, T})
	if err != nil {
		return nil, fmt.Errorf("synthesize: build token tensor: %w", err)
	}

	styleTensor, err := NewTensor(style[:], []int64{1, int64(len(style))})
	if err != nil {
		return nil, fmt.Errorf("synthesize: build style tensor: %w", err)
	}

	speedTensor, err := NewTensor([]float32{speed}, []int64{1})
	if err != nil {
		return nil, fmt.Errorf("synthesize: build speed tensor: %w", err)
	}

	outputs, err := e.runner.Run(ctx, map[string]*Tensor{
		"tokens": tokenTensor,
		"style":  styleTensor,
		"speed":  speedTensor,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize: run: %w", err)
	}

	audio, ok := outputs["audio"]
	if !ok {
		return nil, errors.New("synthesize: missing 'audio' in output")
	}

	return ExtractFloat32(audio)
}
