package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/spf13/cobra"
)

type wsClientEvent struct {
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

// newWebsocketCmd is a thin client for the server's WebSocket streaming
// surface: it connects, optionally sets voice/language/speed, submits one
// synthesize command, and writes every audio_chunk's decoded WAV bytes to
// --out in sequence (each chunk already a complete WAV file; concatenated
// bytes are separated by nothing, as a human consumer pipes this through a
// player per chunk rather than treating it as one container).
func newWebsocketCmd() *cobra.Command {
	var addr string
	var text string
	var voice string
	var language string
	var speed float64
	var out string

	cmd := &cobra.Command{
		Use:   "websocket",
		Short: "Synthesize text over the WebSocket streaming endpoint of a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := readSynthText(text, os.Stdin)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			url := "ws://" + addr + "/v1/audio/stream"
			conn, _, err := websocket.Dial(ctx, url, nil)
			if err != nil {
				return fmt.Errorf("dial %s: %w", url, err)
			}
			defer conn.Close(websocket.StatusNormalClosure, "client done")

			if voice != "" {
				if err := wsSend(ctx, conn, map[string]any{"cmd": "set_voice", "voice": voice}); err != nil {
					return err
				}
			}
			if language != "" {
				if err := wsSend(ctx, conn, map[string]any{"cmd": "set_language", "language": language}); err != nil {
					return err
				}
			}
			if speed > 0 {
				if err := wsSend(ctx, conn, map[string]any{"cmd": "set_speed", "speed": speed}); err != nil {
					return err
				}
			}

			if err := wsSend(ctx, conn, map[string]any{"cmd": "synthesize", "text": input}); err != nil {
				return err
			}

			outFile, closeOut, err := openStreamOutput(out)
			if err != nil {
				return err
			}
			defer closeOut()

			return wsDrainSynthesis(ctx, conn, outFile)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Server address (host:port, no scheme)")
	cmd.Flags().StringVar(&text, "text", "", "Text to synthesize (if empty, read from stdin)")
	cmd.Flags().StringVar(&voice, "voice", "", "Voice ID to select before synthesizing")
	cmd.Flags().StringVar(&language, "language", "", "Language tag to select before synthesizing")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Playback speed to select before synthesizing")
	cmd.Flags().StringVar(&out, "out", "-", "Output path for the concatenated chunk bytes ('-' for stdout)")

	return cmd
}

func wsSend(ctx context.Context, conn *websocket.Conn, v map[string]any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal websocket command: %w", err)
	}

	return conn.Write(ctx, websocket.MessageText, data)
}

func wsDrainSynthesis(ctx context.Context, conn *websocket.Conn, out *os.File) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read websocket event: %w", err)
		}

		var ev wsClientEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("decode websocket event: %w", err)
		}

		switch ev.Event {
		case "audio_chunk":
			wav, err := base64.StdEncoding.DecodeString(ev.Audio)
			if err != nil {
				return fmt.Errorf("decode audio_chunk base64: %w", err)
			}
			if _, err := out.Write(wav); err != nil {
				return fmt.Errorf("write audio_chunk: %w", err)
			}
		case "error":
			return fmt.Errorf("server reported error: %s", ev.Error)
		case "synthesis_completed":
			return nil
		}
	}
}
