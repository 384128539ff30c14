// Package server exposes the synth core over an OpenAI-compatible HTTP
// surface and a WebSocket streaming surface.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/pockettts-kokoro/internal/audio"
	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/tts"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Synthesizer is the dependency the HTTP and WebSocket handlers need from
// the synth core.
type Synthesizer interface {
	SynthesizeCtx(ctx context.Context, input string, opts tts.Options) ([]float32, error)
	SynthesizeStream(ctx context.Context, input string, opts tts.Options, out chan<- tts.PCMChunk) error
}

// VoiceLister returns the voice catalog surfaced by the voices endpoints.
type VoiceLister interface {
	ListVoices() []string
	DetailedVoices() []tts.VoiceInfo
}

type options struct {
	maxTextBytes   int
	workers        int
	requestTimeout time.Duration
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:   8192,
		workers:        2,
		requestTimeout: 60 * time.Second,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

func WithMaxTextBytes(n int) Option        { return func(o *options) { o.maxTextBytes = n } }
func WithWorkers(n int) Option             { return func(o *options) { o.workers = n } }
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	synth  Synthesizer
	voices VoiceLister
	ttsCfg config.TTSConfig
	opts   options
	sem    chan struct{}
	log    *slog.Logger
}

// NewHandler returns an http.Handler serving the OpenAI-compatible surface
// plus a WebSocket upgrade endpoint at "/v1/audio/stream".
func NewHandler(synth Synthesizer, voices VoiceLister, ttsCfg config.TTSConfig, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		synth:  synth,
		voices: voices,
		ttsCfg: ttsCfg,
		opts:   opts,
		log:    opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /v1/audio/voices", h.handleVoices)
	mux.HandleFunc("GET /v1/audio/voices/detailed", h.handleVoicesDetailed)
	mux.HandleFunc("POST /v1/audio/speech", h.handleSpeech)
	mux.HandleFunc("GET /v1/audio/stream", h.handleWebSocket)

	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handleVoices(w http.ResponseWriter, _ *http.Request) {
	voices := h.voices.ListVoices()
	if voices == nil {
		voices = []string{}
	}

	writeJSON(w, http.StatusOK, voices)
}

func (h *handler) handleVoicesDetailed(w http.ResponseWriter, _ *http.Request) {
	voices := h.voices.DetailedVoices()
	if voices == nil {
		voices = []tts.VoiceInfo{}
	}

	writeJSON(w, http.StatusOK, voices)
}

// speechRequest mirrors the OpenAI "create speech" request body, with the
// engine's own optional fields (initial_silence, language, auto_detect)
// layered on top.
type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
	InitialSilence *int    `json:"initial_silence"`
	Language       string  `json:"language"`
	AutoDetect     *bool   `json:"auto_detect"`
}

func (h *handler) optionsFromRequest(req speechRequest) tts.Options {
	opts := tts.DefaultOptions(h.ttsCfg)

	if req.Voice != "" {
		opts.Voice = req.Voice
	}
	if req.Language != "" {
		opts.Language = req.Language
	}
	if req.Speed > 0 {
		opts.Speed = req.Speed
	}
	if req.InitialSilence != nil {
		opts.InitialSilence = *req.InitialSilence
	}
	if req.AutoDetect != nil {
		opts.AutoDetect = *req.AutoDetect
	}

	return opts
}

func (h *handler) handleSpeech(w http.ResponseWriter, r *http.Request) {
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.Input == "" {
		writeError(w, http.StatusBadRequest, "input field is required")
		return
	}

	if len(req.Input) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("input exceeds maximum size of %d bytes", h.opts.maxTextBytes))

		return
	}

	format := req.ResponseFormat
	if format == "" {
		format = "wav"
	}
	if format != "wav" {
		writeError(w, http.StatusNotImplemented, fmt.Sprintf("response_format %q not supported (only wav)", format))
		return
	}

	if !h.acquireWorker(r.Context(), w) {
		return
	}
	if h.sem != nil {
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	opts := h.optionsFromRequest(req)

	start := time.Now()
	samples, err := h.synth.SynthesizeCtx(ctx, req.Input, opts)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			h.log.WarnContext(r.Context(), "synthesis timed out",
				slog.String("voice", opts.Voice), slog.Int("text_len", len(req.Input)),
				slog.Int64("duration_ms", durationMS), slog.String("error", err.Error()))
			writeError(w, http.StatusGatewayTimeout, "synthesis timed out")

			return
		}

		h.log.ErrorContext(r.Context(), "synthesis failed",
			slog.String("voice", opts.Voice), slog.Int("text_len", len(req.Input)),
			slog.Int64("duration_ms", durationMS), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	wav, err := audio.EncodeWAV(samples, h.ttsCfg.Mono)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode wav: "+err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "synthesis complete",
		slog.String("voice", opts.Voice), slog.Int("text_len", len(req.Input)),
		slog.Int64("duration_ms", durationMS), slog.Int("wav_bytes", len(wav)))

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(wav)
}

// acquireWorker tries to acquire a worker slot from the semaphore. Returns
// true on success; on context cancellation it writes an HTTP error and
// returns false. With no throttling configured it returns true immediately.
func (h *handler) acquireWorker(ctx context.Context, w http.ResponseWriter) bool {
	if h.sem == nil {
		return true
	}

	select {
	case h.sem <- struct{}{}:
		return true
	default:
		h.log.Info("request queued for worker slot")

		select {
		case h.sem <- struct{}{}:
			return true
		case <-ctx.Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return false
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful
// shutdown.
type Server struct {
	cfg             config.Config
	synth           Synthesizer
	voices          VoiceLister
	shutdownTimeout time.Duration
}

func New(cfg config.Config, synth Synthesizer, voices VoiceLister) *Server {
	return &Server{
		cfg:             cfg,
		synth:           synth,
		voices:          voices,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) Start(ctx context.Context) error {
	workers := s.cfg.Server.Workers
	if workers <= 0 {
		workers = 2
	}

	h := NewHandler(s.synth, s.voices, s.cfg.TTS,
		WithWorkers(workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}

		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}

	return nil
}
