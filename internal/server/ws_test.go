package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/example/pockettts-kokoro/internal/config"
)

func newTestWSServer(t *testing.T, synth *fakeSynth, voices *fakeVoices) (wsURL string, cleanup func()) {
	t.Helper()

	h := NewHandler(synth, voices, config.TTSConfig{Mono: true, Voice: "af_heart", Language: "en-us"})
	srv := httptest.NewServer(h)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/audio/stream"

	return url, srv.Close
}

func dialWS(t *testing.T, url string) (*websocket.Conn, func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	return conn, func() { conn.Close(websocket.StatusNormalClosure, "") }
}

func TestWebSocketListVoices(t *testing.T) {
	url, closeSrv := newTestWSServer(t, &fakeSynth{}, &fakeVoices{names: []string{"af_heart", "af_sky"}})
	defer closeSrv()

	conn, closeConn := dialWS(t, url)
	defer closeConn()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd, _ := json.Marshal(map[string]string{"cmd": "list_voices"})
	if err := conn.Write(ctx, websocket.MessageText, cmd); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev wsEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Event != "voices" {
		t.Fatalf("event = %q, want voices", ev.Event)
	}
	if len(ev.Voices) != 2 {
		t.Fatalf("voices = %v", ev.Voices)
	}
}

func TestWebSocketSetVoiceEchoesChange(t *testing.T) {
	url, closeSrv := newTestWSServer(t, &fakeSynth{}, &fakeVoices{})
	defer closeSrv()

	conn, closeConn := dialWS(t, url)
	defer closeConn()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd, _ := json.Marshal(map[string]string{"cmd": "set_voice", "voice": "am_adam"})
	if err := conn.Write(ctx, websocket.MessageText, cmd); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev wsEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Event != "voice_changed" || ev.Voice != "am_adam" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestWebSocketSynthesizeStreamsChunksThenCompletes(t *testing.T) {
	url, closeSrv := newTestWSServer(t, &fakeSynth{samples: []float32{0, 0.1, -0.1}}, &fakeVoices{})
	defer closeSrv()

	conn, closeConn := dialWS(t, url)
	defer closeConn()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd, _ := json.Marshal(map[string]string{"cmd": "synthesize", "text": "Hello there. How are you?"})
	if err := conn.Write(ctx, websocket.MessageText, cmd); err != nil {
		t.Fatalf("write: %v", err)
	}

	var events []wsEvent
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var ev wsEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		events = append(events, ev)
		if ev.Event == "synthesis_completed" || ev.Event == "error" {
			break
		}
	}

	if events[0].Event != "synthesis_started" {
		t.Fatalf("first event = %q, want synthesis_started", events[0].Event)
	}
	last := events[len(events)-1]
	if last.Event != "synthesis_completed" {
		t.Fatalf("last event = %q, want synthesis_completed", last.Event)
	}

	var audioChunks int
	for _, ev := range events {
		if ev.Event == "audio_chunk" {
			audioChunks++
			if ev.Audio == "" {
				t.Fatal("audio_chunk event missing audio payload")
			}
		}
	}
	if audioChunks == 0 {
		t.Fatal("expected at least one audio_chunk event")
	}
}

func TestWebSocketUnknownCommandReturnsError(t *testing.T) {
	url, closeSrv := newTestWSServer(t, &fakeSynth{}, &fakeVoices{})
	defer closeSrv()

	conn, closeConn := dialWS(t, url)
	defer closeConn()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd, _ := json.Marshal(map[string]string{"cmd": "bogus"})
	if err := conn.Write(ctx, websocket.MessageText, cmd); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev wsEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Event != "error" {
		t.Fatalf("event = %q, want error", ev.Event)
	}
}
