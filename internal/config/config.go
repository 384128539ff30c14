package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig   `mapstructure:"paths"`
	Runtime  RuntimeConfig `mapstructure:"runtime"`
	Server   ServerConfig  `mapstructure:"server"`
	TTS      TTSConfig     `mapstructure:"tts"`
	LogLevel string        `mapstructure:"log_level"`
}

// PathsConfig locates the on-disk assets the engine needs: one ONNX
// manifest per model variant, the voice style archive, and the espeak-ng
// binary used by the generic phonemizer frontend.
type PathsConfig struct {
	ONNXManifestMultilingual string `mapstructure:"onnx_manifest_multilingual"`
	ONNXManifestMandarin     string `mapstructure:"onnx_manifest_mandarin"`
	VoiceArchivePath         string `mapstructure:"voice_archive_path"`
	EspeakNGPath             string `mapstructure:"espeak_ng_path"`
}

type RuntimeConfig struct {
	Threads        int    `mapstructure:"threads"`
	InterOpThreads int    `mapstructure:"inter_op_threads"`
	ORTLibraryPath string `mapstructure:"ort_library_path"`
	ORTVersion     string `mapstructure:"ort_version"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_secs"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout_secs"`
}

// TTSConfig holds the default synthesis options applied when a caller does
// not override them per request.
type TTSConfig struct {
	Voice          string  `mapstructure:"voice"`
	Language       string  `mapstructure:"language"`
	Speed          float64 `mapstructure:"speed"`
	ForceStyle     bool    `mapstructure:"force_style"`
	ChunkBudget    int     `mapstructure:"chunk_budget"`
	InitialSilence int     `mapstructure:"initial_silence"`
	Mono           bool    `mapstructure:"mono"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			ONNXManifestMultilingual: "models/kokoro-multilingual/manifest.json",
			ONNXManifestMandarin:     "models/kokoro-mandarin/manifest.json",
			VoiceArchivePath:         "models/voices.zip",
			EspeakNGPath:             "espeak-ng",
		},
		Runtime: RuntimeConfig{
			Threads:        4,
			InterOpThreads: 1,
			ORTLibraryPath: "",
			ORTVersion:     "",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         2,
			ShutdownTimeout: 30,
			MaxTextBytes:    8192,
			RequestTimeout:  60,
		},
		TTS: TTSConfig{
			Voice:          "af_heart",
			Language:       "en-us",
			Speed:          1.0,
			ForceStyle:     false,
			ChunkBudget:    500,
			InitialSilence: 5,
			Mono:           true,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-onnx-manifest-multilingual", defaults.Paths.ONNXManifestMultilingual, "Path to the multilingual ONNX model manifest JSON")
	fs.String("paths-onnx-manifest-mandarin", defaults.Paths.ONNXManifestMandarin, "Path to the Mandarin ONNX model manifest JSON")
	fs.String("paths-voice-archive", defaults.Paths.VoiceArchivePath, "Path to the voice style archive (ZIP of .npy style arrays)")
	fs.String("paths-espeak-ng", defaults.Paths.EspeakNGPath, "Path to the espeak-ng executable")
	fs.Int("runtime-threads", defaults.Runtime.Threads, "ONNX Runtime intra-op thread count")
	fs.Int("runtime-inter-op-threads", defaults.Runtime.InterOpThreads, "ONNX Runtime inter-op thread count")
	fs.String("runtime-ort-library-path", defaults.Runtime.ORTLibraryPath, "Path to ONNX Runtime shared library")
	fs.String("ort-lib", defaults.Runtime.ORTLibraryPath, "Path to ONNX Runtime shared library (alias for --runtime-ort-library-path)")
	fs.String("runtime-ort-version", defaults.Runtime.ORTVersion, "Expected ONNX Runtime version")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent synthesis requests served at once")
	fs.Int("shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain timeout in seconds")
	fs.Int("max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Per-request synthesis timeout in seconds")
	fs.String("tts-voice", defaults.TTS.Voice, "Default voice name or blend spec")
	fs.String("tts-language", defaults.TTS.Language, "Default language tag")
	fs.Float64("tts-speed", defaults.TTS.Speed, "Default playback speed multiplier")
	fs.Bool("tts-force-style", defaults.TTS.ForceStyle, "Disable the non-English default-voice override")
	fs.Int("tts-chunk-budget", defaults.TTS.ChunkBudget, "Maximum tokens per synthesis chunk")
	fs.Int("tts-initial-silence", defaults.TTS.InitialSilence, "Silence-token copies prepended to each chunk")
	fs.Bool("tts-mono", defaults.TTS.Mono, "Emit mono WAV output")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("POCKETTTS")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("runtime.ort_library_path", "POCKETTTS_ORT_LIB", "ORT_LIBRARY_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind ort env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("pockettts")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.onnx_manifest_multilingual", c.Paths.ONNXManifestMultilingual)
	v.SetDefault("paths.onnx_manifest_mandarin", c.Paths.ONNXManifestMandarin)
	v.SetDefault("paths.voice_archive_path", c.Paths.VoiceArchivePath)
	v.SetDefault("paths.espeak_ng_path", c.Paths.EspeakNGPath)
	v.SetDefault("runtime.threads", c.Runtime.Threads)
	v.SetDefault("runtime.inter_op_threads", c.Runtime.InterOpThreads)
	v.SetDefault("runtime.ort_library_path", c.Runtime.ORTLibraryPath)
	v.SetDefault("runtime.ort_version", c.Runtime.ORTVersion)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.shutdown_timeout_secs", c.Server.ShutdownTimeout)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout_secs", c.Server.RequestTimeout)
	v.SetDefault("tts.voice", c.TTS.Voice)
	v.SetDefault("tts.language", c.TTS.Language)
	v.SetDefault("tts.speed", c.TTS.Speed)
	v.SetDefault("tts.force_style", c.TTS.ForceStyle)
	v.SetDefault("tts.chunk_budget", c.TTS.ChunkBudget)
	v.SetDefault("tts.initial_silence", c.TTS.InitialSilence)
	v.SetDefault("tts.mono", c.TTS.Mono)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.onnx_manifest_multilingual", "paths-onnx-manifest-multilingual")
	v.RegisterAlias("paths.onnx_manifest_mandarin", "paths-onnx-manifest-mandarin")
	v.RegisterAlias("paths.voice_archive_path", "paths-voice-archive")
	v.RegisterAlias("paths.espeak_ng_path", "paths-espeak-ng")
	v.RegisterAlias("runtime.threads", "runtime-threads")
	v.RegisterAlias("runtime.inter_op_threads", "runtime-inter-op-threads")
	v.RegisterAlias("runtime.ort_library_path", "runtime-ort-library-path")
	v.RegisterAlias("runtime.ort_library_path", "ort-lib")
	v.RegisterAlias("runtime.ort_version", "runtime-ort-version")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.workers", "workers")
	v.RegisterAlias("server.shutdown_timeout_secs", "shutdown-timeout")
	v.RegisterAlias("server.max_text_bytes", "max-text-bytes")
	v.RegisterAlias("server.request_timeout_secs", "request-timeout")
	v.RegisterAlias("tts.voice", "tts-voice")
	v.RegisterAlias("tts.language", "tts-language")
	v.RegisterAlias("tts.speed", "tts-speed")
	v.RegisterAlias("tts.force_style", "tts-force-style")
	v.RegisterAlias("tts.chunk_budget", "tts-chunk-budget")
	v.RegisterAlias("tts.initial_silence", "tts-initial-silence")
	v.RegisterAlias("tts.mono", "tts-mono")
	v.RegisterAlias("log_level", "log-level")
}
