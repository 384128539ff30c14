package tts

import (
	"fmt"
	"sync"

	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/onnx"
)

// ModelManager lazily loads at most one ONNX engine per model variant and
// keeps only the most recently used variant resident under a single
// readers-writer lock, mirroring the "current_variant, current_model" cache:
// a request for the already-resident variant is served immediately, a
// request for the other variant drops the resident engine and loads anew.
type ModelManager struct {
	mu      sync.RWMutex
	variant string
	engine  *onnx.Engine

	paths config.PathsConfig
	rcfg  onnx.RunnerConfig
}

// NewModelManager detects the ONNX Runtime shared library once and prepares
// a manager that loads model variants on demand.
func NewModelManager(cfg config.Config) (*ModelManager, error) {
	info, err := onnx.DetectRuntime(cfg.Runtime)
	if err != nil {
		return nil, fmt.Errorf("detect ORT runtime: %w", err)
	}

	return &ModelManager{
		paths: cfg.Paths,
		rcfg: onnx.RunnerConfig{
			LibraryPath: info.LibraryPath,
			APIVersion:  23,
		},
	}, nil
}

// Get returns the engine for variant, loading it (and releasing whatever
// other variant was previously resident) if needed.
func (m *ModelManager) Get(variant string) (*onnx.Engine, error) {
	m.mu.RLock()
	if m.variant == variant && m.engine != nil {
		e := m.engine
		m.mu.RUnlock()

		return e, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.variant == variant && m.engine != nil {
		return m.engine, nil
	}

	if m.engine != nil {
		m.engine.Close()
		m.engine = nil
	}

	manifest := m.paths.ONNXManifestMultilingual
	if variant == config.VariantMandarin {
		manifest = m.paths.ONNXManifestMandarin
	}

	engine, err := onnx.NewEngine(manifest, m.rcfg)
	if err != nil {
		return nil, fmt.Errorf("load %s model: %w", variant, err)
	}

	m.variant = variant
	m.engine = engine

	return engine, nil
}

// Close releases whatever engine is currently resident.
func (m *ModelManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.engine != nil {
		m.engine.Close()
		m.engine = nil
	}
}
