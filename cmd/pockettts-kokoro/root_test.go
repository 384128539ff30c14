package main

import (
	"testing"

	"github.com/example/pockettts-kokoro/internal/config"
)

func TestNewRootCmdRegistersAllSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"text", "file", "stream", "pipe", "websocket", "openai", "serve", "voices", "config", "model", "doctor"}
	got := make(map[string]bool)
	for _, c := range root.Commands() {
		got[c.Name()] = true
	}

	for _, name := range want {
		if !got[name] {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestRequireConfigErrorsBeforeLoad(t *testing.T) {
	prev := activeCfg
	defer func() { activeCfg = prev }()

	activeCfg = config.Config{}

	if _, err := requireConfig(); err == nil {
		t.Fatal("expected error when configuration has not been loaded")
	}
}

func TestRequireConfigSucceedsAfterLoad(t *testing.T) {
	prev := activeCfg
	defer func() { activeCfg = prev }()

	activeCfg = config.DefaultConfig()

	cfg, err := requireConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Paths.ONNXManifestMultilingual == "" {
		t.Fatal("expected loaded config to carry its default manifest path")
	}
}

func TestSetupLoggerFallsBackOnInvalidLevel(t *testing.T) {
	// Must not panic for an unrecognized level string.
	setupLogger("not-a-real-level")
}
