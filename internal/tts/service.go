package tts

import (
	"context"
	"fmt"

	"github.com/example/pockettts-kokoro/internal/config"
	"github.com/example/pockettts-kokoro/internal/phonemize"
	"github.com/example/pockettts-kokoro/internal/style"
	"github.com/example/pockettts-kokoro/internal/text"
	"github.com/example/pockettts-kokoro/internal/vocab"
)

// silenceTokenID is the fixed token id prepended initial-silence times ahead
// of every chunk's phoneme tokens. The same id is used for both vocabulary
// variants; neither vocabulary reserves it (it is a letter in both).
const silenceTokenID int64 = 30

// padTokenID brackets every chunk's token sequence at both ends.
const padTokenID int64 = 0

// PCMChunk is one incremental slab of synthesized audio, used by
// SynthesizeStream and the streaming pipe.
type PCMChunk struct {
	Samples    []float32
	ChunkIndex int
	Final      bool
}

// Options controls a single synthesis call. Use DefaultOptions to seed one
// from the service's configured defaults, then override individual fields
// per request.
type Options struct {
	Voice          string
	Language       string
	Speed          float64
	ForceStyle     bool
	ChunkBudget    int
	InitialSilence int
	AutoDetect     bool
	// PhonemesMode, when true, treats input as already-phonemized IPA/
	// Bopomofo text: normalization and G2P are bypassed entirely and the
	// text is split with the whitespace-only phoneme chunker.
	PhonemesMode bool
}

// DefaultOptions seeds an Options value from the service's configured TTS
// defaults.
func DefaultOptions(cfg config.TTSConfig) Options {
	return Options{
		Voice:          cfg.Voice,
		Language:       cfg.Language,
		Speed:          cfg.Speed,
		ForceStyle:     cfg.ForceStyle,
		ChunkBudget:    cfg.ChunkBudget,
		InitialSilence: cfg.InitialSilence,
	}
}

// Service is the Kokoro synth core: resolve language -> chunk -> phonemize
// -> tokenize -> pad -> select style row -> run inference -> concatenate.
type Service struct {
	models *ModelManager
	styles *style.Store
	phon   *phonemize.Phonemizer
	ttsCfg config.TTSConfig
}

// NewService loads the voice style archive and prepares the model manager
// and phonemizer. ONNX model variants are loaded lazily on first use.
func NewService(cfg config.Config) (*Service, error) {
	styles, err := style.Load(cfg.Paths.VoiceArchivePath)
	if err != nil {
		return nil, fmt.Errorf("load voice archive: %w", err)
	}

	models, err := NewModelManager(cfg)
	if err != nil {
		return nil, err
	}

	return &Service{
		models: models,
		styles: styles,
		phon:   phonemize.NewPhonemizer(cfg.Paths.EspeakNGPath),
		ttsCfg: cfg.TTS,
	}, nil
}

// Close releases the resident model engine.
func (s *Service) Close() {
	s.models.Close()
}

// Synthesize converts input to audio samples using the service's configured
// defaults.
func (s *Service) Synthesize(input string) ([]float32, error) {
	return s.SynthesizeCtx(context.Background(), input, DefaultOptions(s.ttsCfg))
}

// SynthesizeCtx converts input to a single concatenated sequence of 24 kHz
// mono float32 samples per opts.
func (s *Service) SynthesizeCtx(ctx context.Context, input string, opts Options) ([]float32, error) {
	plan, err := s.preparePlan(ctx, input, opts)
	if err != nil {
		return nil, err
	}

	var all []float32
	for i, chunk := range plan.chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pcm, err := s.synthesizeChunk(ctx, plan, chunk)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}

		all = append(all, pcm...)
	}

	return all, nil
}

// SynthesizeStream produces audio incrementally, sending one PCMChunk per
// text chunk to out. The channel is closed before the method returns; the
// caller should range over out from a separate goroutine.
func (s *Service) SynthesizeStream(ctx context.Context, input string, opts Options, out chan<- PCMChunk) error {
	defer close(out)

	plan, err := s.preparePlan(ctx, input, opts)
	if err != nil {
		return err
	}

	for i, chunk := range plan.chunks {
		if err := ctx.Err(); err != nil {
			return err
		}

		pcm, err := s.synthesizeChunk(ctx, plan, chunk)
		if err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}

		select {
		case out <- PCMChunk{Samples: pcm, ChunkIndex: i, Final: i == len(plan.chunks)-1}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// synthPlan holds everything resolved once per Synthesize* call: the
// language/variant/voice to use for every chunk, and the chunk list itself.
type synthPlan struct {
	chunks       []string
	code         string
	variant      vocab.Variant
	variantName  string
	voice        string
	speed        float32
	silence      int
	phonemesMode bool
}

func (s *Service) preparePlan(ctx context.Context, input string, opts Options) (*synthPlan, error) {
	language := opts.Language
	if opts.AutoDetect {
		language = text.DetectLanguage(input)
	}

	code := phonemize.NormalizeLanguage(language)
	variantName := config.VariantForLanguage(code)
	variant := vocabVariantFor(variantName)
	voice := style.ResolveDefaultVoice(opts.Voice, code, opts.ForceStyle)

	budget := opts.ChunkBudget
	if budget <= 0 {
		budget = s.ttsCfg.ChunkBudget
	}

	counter := s.tokenCounter(ctx, code, variant, opts.PhonemesMode)

	var chunks []string
	var err error
	if opts.PhonemesMode {
		chunks, err = text.ChunkPhonemes(input, budget, counter)
	} else {
		chunks, err = text.ChunkText(input, phonemize.IsChinese(code), budget, counter)
	}
	if err != nil {
		return nil, fmt.Errorf("chunk input: %w", err)
	}

	return &synthPlan{
		chunks:       chunks,
		code:         code,
		variant:      variant,
		variantName:  variantName,
		voice:        voice,
		speed:        float32(opts.Speed),
		silence:      opts.InitialSilence,
		phonemesMode: opts.PhonemesMode,
	}, nil
}

// tokenCounter measures how many model tokens a candidate chunk would
// consume, used by the chunker to decide where to split.
func (s *Service) tokenCounter(ctx context.Context, code string, variant vocab.Variant, phonemesMode bool) text.TokenCounter {
	return func(snippet string) (int, error) {
		if phonemesMode {
			return len(vocab.Tokenize(snippet, variant)), nil
		}

		phonemes, err := s.phon.Phonemize(ctx, snippet, phonemize.Options{
			Language:                code,
			Normalize:               true,
			RestoreAccents:          true,
			StripJapaneseDiacritics: true,
			Variant:                 variant,
		})
		if err != nil {
			return 0, err
		}

		return len(vocab.Tokenize(phonemes, variant)), nil
	}
}

func (s *Service) synthesizeChunk(ctx context.Context, plan *synthPlan, chunkText string) ([]float32, error) {
	var phonemes string
	if plan.phonemesMode {
		phonemes = chunkText
	} else {
		var err error
		phonemes, err = s.phon.Phonemize(ctx, chunkText, phonemize.Options{
			Language:                plan.code,
			Normalize:               true,
			RestoreAccents:          true,
			StripJapaneseDiacritics: true,
			Variant:                 plan.variant,
		})
		if err != nil {
			return nil, fmt.Errorf("phonemize: %w", err)
		}
	}

	rawTokens := vocab.Tokenize(phonemes, plan.variant)
	l := len(rawTokens)

	tokens := make([]int64, 0, l+plan.silence+2)
	tokens = append(tokens, padTokenID)
	for i := 0; i < plan.silence; i++ {
		tokens = append(tokens, silenceTokenID)
	}
	tokens = append(tokens, rawTokens...)
	tokens = append(tokens, padTokenID)

	if len(rawTokens) == 0 && plan.silence == 0 {
		// Phonemization dropped every rune in this chunk (e.g. punctuation-only
		// input); skip the chunk rather than aborting the whole call.
		return nil, nil
	}

	styleRow, err := s.styles.Select(plan.voice, l)
	if err != nil {
		return nil, fmt.Errorf("select style: %w", err)
	}

	engine, err := s.models.Get(plan.variantName)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	return engine.Synthesize(ctx, tokens, styleRow, plan.speed)
}

func vocabVariantFor(modelVariant string) vocab.Variant {
	if modelVariant == config.VariantMandarin {
		return vocab.Mandarin
	}

	return vocab.Multilingual
}
