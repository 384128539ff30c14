package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/example/pockettts-kokoro/internal/audio"
	"github.com/example/pockettts-kokoro/internal/text"
	"github.com/example/pockettts-kokoro/internal/tts"
)

// wsCommand is the envelope every inbound WebSocket text frame is decoded
// into; the command-specific fields are optional depending on cmd.
type wsCommand struct {
	Cmd        string  `json:"cmd"`
	Voice      string  `json:"voice"`
	Language   string  `json:"language"`
	AutoDetect *bool   `json:"auto_detect"`
	Speed      float64 `json:"speed"`
	Text       string  `json:"text"`
}

// wsEvent is the envelope every outbound WebSocket text frame is encoded
// from.
type wsEvent struct {
	Event      string `json:"event"`
	Voices     []string `json:"voices,omitempty"`
	Voice      string   `json:"voice,omitempty"`
	Language   string   `json:"language,omitempty"`
	Speed      float64  `json:"speed,omitempty"`
	Index      int      `json:"index,omitempty"`
	Total      int      `json:"total,omitempty"`
	SampleRate int      `json:"sample_rate,omitempty"`
	Audio      string   `json:"audio,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// wsSession holds the per-connection state a WebSocket client can mutate
// with set_voice/set_language/set_auto_detect/set_speed before issuing
// synthesize commands.
type wsSession struct {
	voice      string
	language   string
	autoDetect bool
	speed      float64
}

func (h *handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	sess := wsSession{
		voice:      h.ttsCfg.Voice,
		language:   h.ttsCfg.Language,
		autoDetect: false,
		speed:      h.ttsCfg.Speed,
	}

	for {
		var cmd wsCommand
		if err := readWSJSON(ctx, conn, &cmd); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return
			}
			h.log.Debug("websocket read ended", "error", err)

			return
		}

		if err := h.handleWSCommand(ctx, conn, &sess, cmd); err != nil {
			h.log.Warn("websocket command failed", "cmd", cmd.Cmd, "error", err)
			return
		}
	}
}

func (h *handler) handleWSCommand(ctx context.Context, conn *websocket.Conn, sess *wsSession, cmd wsCommand) error {
	switch cmd.Cmd {
	case "list_voices":
		return writeWSJSON(ctx, conn, wsEvent{Event: "voices", Voices: h.voices.ListVoices()})

	case "set_voice":
		sess.voice = cmd.Voice
		return writeWSJSON(ctx, conn, wsEvent{Event: "voice_changed", Voice: sess.voice})

	case "set_language":
		sess.language = cmd.Language
		return writeWSJSON(ctx, conn, wsEvent{Event: "language_changed", Language: sess.language})

	case "set_auto_detect":
		if cmd.AutoDetect != nil {
			sess.autoDetect = *cmd.AutoDetect
		}
		return writeWSJSON(ctx, conn, wsEvent{Event: "language_changed", Language: sess.language})

	case "set_speed":
		sess.speed = cmd.Speed
		return writeWSJSON(ctx, conn, wsEvent{Event: "speed_changed", Speed: sess.speed})

	case "synthesize":
		return h.wsSynthesize(ctx, conn, sess, cmd.Text)

	default:
		return writeWSJSON(ctx, conn, wsEvent{Event: "error", Error: "unknown command: " + cmd.Cmd})
	}
}

// wsSynthesize splits text into sentences, synthesizes each independently
// (so audio_chunk events arrive per-sentence rather than after the whole
// input finishes), and streams each as a base64-encoded WAV frame.
func (h *handler) wsSynthesize(ctx context.Context, conn *websocket.Conn, sess *wsSession, input string) error {
	if err := writeWSJSON(ctx, conn, wsEvent{Event: "synthesis_started"}); err != nil {
		return err
	}

	language := sess.language
	if sess.autoDetect {
		language = text.DetectLanguage(input)
	}

	cjk := language == "zh" || len(language) >= 2 && language[:2] == "zh"
	sentences := text.SplitSentences(input, cjk)
	if len(sentences) == 0 {
		sentences = []string{input}
	}

	opts := tts.DefaultOptions(h.ttsCfg)
	opts.Voice = sess.voice
	opts.Language = language
	opts.Speed = sess.speed
	opts.AutoDetect = false
	opts.ForceStyle = true

	for i, sentence := range sentences {
		samples, err := h.synth.SynthesizeCtx(ctx, sentence, opts)
		if err != nil {
			return writeWSJSON(ctx, conn, wsEvent{Event: "error", Error: err.Error()})
		}

		wav, err := audio.EncodeWAV(samples, h.ttsCfg.Mono)
		if err != nil {
			return writeWSJSON(ctx, conn, wsEvent{Event: "error", Error: err.Error()})
		}

		event := wsEvent{
			Event:      "audio_chunk",
			Index:      i,
			Total:      len(sentences),
			SampleRate: audio.ExpectedSampleRate,
			Audio:      base64.StdEncoding.EncodeToString(wav),
		}
		if err := writeWSJSON(ctx, conn, event); err != nil {
			return err
		}
	}

	return writeWSJSON(ctx, conn, wsEvent{Event: "synthesis_completed"})
}

func readWSJSON(ctx context.Context, conn *websocket.Conn, v any) error {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}

func writeWSJSON(ctx context.Context, conn *websocket.Conn, v wsEvent) error {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("marshal websocket event", "error", err)
		return err
	}

	return conn.Write(ctx, websocket.MessageText, data)
}
