package phonemize

import (
	"context"
	"strings"

	"github.com/example/pockettts-kokoro/internal/chinese"
	"github.com/example/pockettts-kokoro/internal/text"
	"github.com/example/pockettts-kokoro/internal/vocab"
)

// ipaPostRewrites fixes up generic-frontend IPA output against the engine's
// own phoneme conventions: espeak's rhotic/lateral/velar symbols are
// remapped to the symbols the model's vocabulary and training data use.
var ipaPostRewrites = strings.NewReplacer(
	"kəkˈoːɹoʊ", "kˈoʊkəɹoʊ",
	"r", "ɹ",
	"x", "k",
	"ɬ", "l",
)

// japaneseDiacritics strips pitch-accent diacritics that the generic
// frontend cannot place correctly, used only when Japanese falls back to
// the IPA path and diacritic stripping is requested.
var japaneseDiacritics = strings.NewReplacer(
	"˥", "", "˦", "", "˧", "", "˨", "", "˩", "",
)

// Options controls a single Phonemize call.
type Options struct {
	// Language is a raw (possibly unnormalized) language tag.
	Language string
	// Normalize enables the text.NormalizeText pass before phonemization.
	Normalize bool
	// RestoreAccents enables the Spanish accent restorer when the
	// normalized language is Spanish.
	RestoreAccents bool
	// StripJapaneseDiacritics drops pitch-accent marks from Japanese
	// fallback output.
	StripJapaneseDiacritics bool
	// Variant selects which vocabulary the output is filtered against.
	Variant vocab.Variant
}

// Frontend is the generic (non-Chinese, non-Japanese) IPA phoneme source.
type Frontend interface {
	Phonemize(ctx context.Context, text, langCode string) (string, error)
}

// Phonemizer orchestrates language-code normalization, dispatch to the
// Chinese/Japanese/generic G2P paths, IPA post-rewrites, and vocabulary
// filtering.
type Phonemizer struct {
	Frontend         Frontend
	Japanese         JapaneseExtractor
	UseIPAForChinese bool
}

// NewPhonemizer builds a Phonemizer wired to the espeak-ng generic frontend
// and the unavailable Japanese extractor stub.
func NewPhonemizer(espeakPath string) *Phonemizer {
	return &Phonemizer{
		Frontend: NewEspeakFrontend(espeakPath),
		Japanese: UnavailableExtractor{},
	}
}

// Phonemize converts text to a phoneme string ready for tokenization,
// dispatching by normalized language: Chinese text is routed to the
// Mandarin G2P pipeline, Japanese to the pluggable extractor (falling back
// to the generic frontend on failure), and everything else through
// normalization, optional accent restoration, the generic IPA frontend, and
// fixed post-rewrites. Output is always filtered to characters present in
// the target vocabulary.
func (p *Phonemizer) Phonemize(ctx context.Context, input string, opts Options) (string, error) {
	code := NormalizeLanguage(opts.Language)

	var phonemes string
	switch {
	case IsChinese(code):
		phonemes = chinese.ToPhonemes(input, p.UseIPAForChinese)

	case IsJapanese(code):
		out, err := p.Japanese.Extract(ctx, input)
		if err != nil {
			phonemes, err = p.genericPhonemize(ctx, input, code, opts)
			if err != nil {
				return "", err
			}
			if opts.StripJapaneseDiacritics {
				phonemes = japaneseDiacritics.Replace(phonemes)
			}
		} else {
			phonemes = out
		}

	default:
		var err error
		phonemes, err = p.genericPhonemize(ctx, input, code, opts)
		if err != nil {
			return "", err
		}
	}

	return filterToVocab(phonemes, opts.Variant), nil
}

func (p *Phonemizer) genericPhonemize(ctx context.Context, input, code string, opts Options) (string, error) {
	prepared := input
	if opts.Normalize {
		prepared = text.NormalizeText(prepared, text.Lang(langBase(code)))
	}
	if opts.RestoreAccents && strings.HasPrefix(code, "es") {
		prepared = text.RestoreSpanishAccents(prepared)
	}

	raw, err := p.Frontend.Phonemize(ctx, prepared, code)
	if err != nil {
		return "", err
	}
	return ipaPostRewrites.Replace(raw), nil
}

func langBase(code string) string {
	if i := strings.IndexAny(code, "-_"); i > 0 {
		return code[:i]
	}
	return code
}

// filterToVocab drops every rune not present in variant's vocabulary,
// matching the "filter output to only characters present in the variant's
// vocabulary" step.
func filterToVocab(phonemes string, variant vocab.Variant) string {
	v := vocab.For(variant)
	var sb strings.Builder
	for _, r := range phonemes {
		if _, ok := v.Lookup(r); ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
