package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

// scriptedWSServer serves one WebSocket connection, writing the given raw
// text frames in order before closing, mirroring the event sequence a real
// synthesize command produces.
func scriptedWSServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "done")

		ctx := context.Background()
		for _, f := range frames {
			if err := conn.Write(ctx, websocket.MessageText, []byte(f)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func dialWSTest(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws://" + strings.TrimPrefix(srv.URL, "http://")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "test done") })

	return conn
}

func TestWsDrainSynthesisWritesAudioChunksThenCompletes(t *testing.T) {
	wavB64 := base64.StdEncoding.EncodeToString([]byte("RIFF....WAVEfmt "))

	srv := scriptedWSServer(t, []string{
		`{"event":"synthesis_started"}`,
		`{"event":"audio_chunk","index":0,"total":2,"audio":"` + wavB64 + `"}`,
		`{"event":"synthesis_completed"}`,
	})
	conn := dialWSTest(t, srv)

	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.bin")
	f, err := os.Create(outPath)
	if err != nil {
		t.Fatalf("create output file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := wsDrainSynthesis(ctx, conn, f); err != nil {
		t.Fatalf("wsDrainSynthesis: %v", err)
	}
	f.Close()

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "RIFF....WAVEfmt " {
		t.Fatalf("output = %q, want decoded WAV bytes", got)
	}
}

func TestWsDrainSynthesisPropagatesServerError(t *testing.T) {
	srv := scriptedWSServer(t, []string{
		`{"event":"error","error":"synthesis failed"}`,
	})
	conn := dialWSTest(t, srv)

	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "out.bin"))
	if err != nil {
		t.Fatalf("create output file: %v", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = wsDrainSynthesis(ctx, conn, f)
	if err == nil || !strings.Contains(err.Error(), "synthesis failed") {
		t.Fatalf("expected error mentioning server failure, got: %v", err)
	}
}
