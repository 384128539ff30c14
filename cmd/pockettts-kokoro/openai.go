package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type openAISpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice,omitempty"`
	ResponseFormat string  `json:"response_format,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
	Language       string  `json:"language,omitempty"`
	AutoDetect     bool    `json:"auto_detect,omitempty"`
}

// newOpenAICmd is a thin client for the server's OpenAI-compatible
// "/v1/audio/speech" endpoint, useful for smoke-testing a running server
// without reaching for curl.
func newOpenAICmd() *cobra.Command {
	var addr string
	var text string
	var voice string
	var language string
	var speed float64
	var autoDetect bool
	var out string

	cmd := &cobra.Command{
		Use:   "openai",
		Short: "Synthesize text over the OpenAI-compatible HTTP endpoint of a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := readSynthText(text, os.Stdin)
			if err != nil {
				return err
			}

			reqBody := openAISpeechRequest{
				Model:      "kokoro",
				Input:      input,
				Voice:      voice,
				Language:   language,
				Speed:      speed,
				AutoDetect: autoDetect,
			}

			data, err := json.Marshal(reqBody)
			if err != nil {
				return fmt.Errorf("marshal request: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			url := "http://" + addr + "/v1/audio/speech"
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("build request: %w", err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return fmt.Errorf("request %s: %w", url, err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read response body: %w", err)
			}

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned %s: %s", resp.Status, string(body))
			}

			return writeSynthOutput(out, body, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Server address (host:port, no scheme)")
	cmd.Flags().StringVar(&text, "text", "", "Text to synthesize (if empty, read from stdin)")
	cmd.Flags().StringVar(&voice, "voice", "", "Voice ID to request")
	cmd.Flags().StringVar(&language, "language", "", "Language tag to request")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Playback speed to request")
	cmd.Flags().BoolVar(&autoDetect, "auto-detect", false, "Request server-side language auto-detection")
	cmd.Flags().StringVar(&out, "out", "-", "Output WAV path ('-' for stdout)")

	return cmd
}
