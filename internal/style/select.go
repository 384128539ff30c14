package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVoiceSpec is returned when a blend spec cannot be parsed.
var ErrInvalidVoiceSpec = errors.New("style: invalid voice spec")

// ErrUnknownVoice is returned when a referenced voice name is not present
// in the store.
var ErrUnknownVoice = errors.New("style: unknown voice")

// EnglishDefault is the default voice used when no language-specific
// default applies.
const EnglishDefault = "af_heart"

// defaultByLanguage maps an espeak-style language code prefix to the
// engine's default voice for that language.
var defaultByLanguage = map[string]string{
	"es": "ef_dora",
	"fr": "ff_siwis",
	"zh": "zf_xiaoxiao",
	"ja": "jf_alpha",
}

// BlendComponent is one named-voice+weight term of a parsed blend spec.
type BlendComponent struct {
	Name   string
	Weight float64
}

// ParseBlendSpec parses a "name.digit+name.digit+…" blend spec into its
// components. A bare name with no "+" and no ".digit" suffix is returned as
// a single full-weight component, so ParseBlendSpec also accepts plain
// single-voice specs.
func ParseBlendSpec(spec string) ([]BlendComponent, error) {
	terms := strings.Split(spec, "+")
	components := make([]BlendComponent, 0, len(terms))

	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			return nil, fmt.Errorf("%w: %q has an empty term", ErrInvalidVoiceSpec, spec)
		}

		name := term
		weight := 1.0

		if i := strings.LastIndex(term, "."); i > 0 {
			digits := term[i+1:]
			if n, err := strconv.Atoi(digits); err == nil && len(digits) > 0 {
				name = term[:i]
				weight = float64(n)
			}
		}

		if name == "" {
			return nil, fmt.Errorf("%w: %q has an empty voice name", ErrInvalidVoiceSpec, spec)
		}

		components = append(components, BlendComponent{Name: name, Weight: weight})
	}

	return components, nil
}

// ResolveDefaultVoice applies the "force_style=false AND non-English
// language" default-voice override: when forceStyle is false and the
// requested voice is either empty or equals EnglishDefault while the
// language is non-English, the language's default voice is substituted.
func ResolveDefaultVoice(requested, languageCode string, forceStyle bool) string {
	if forceStyle {
		return requested
	}
	lang := strings.ToLower(languageCode)
	for prefix, def := range defaultByLanguage {
		if strings.HasPrefix(lang, prefix) {
			if requested == "" || requested == EnglishDefault {
				return def
			}
			return requested
		}
	}
	if requested == "" {
		return EnglishDefault
	}
	return requested
}

// Select resolves a voice spec (a single name or a blend spec) against the
// store at pre-pad token length l, returning the weighted style row. A
// blend spec computes the weighted sum of each component's row at l; a
// single name looks up its row directly.
func (s *Store) Select(spec string, l int) ([RowWidth]float32, error) {
	components, err := ParseBlendSpec(spec)
	if err != nil {
		return [RowWidth]float32{}, err
	}

	if len(components) == 1 && components[0].Weight == 1.0 && !strings.Contains(spec, ".") {
		row, ok := s.Row(components[0].Name, l)
		if !ok {
			return [RowWidth]float32{}, fmt.Errorf("%w: %q", ErrUnknownVoice, components[0].Name)
		}
		return row, nil
	}

	var sum [RowWidth]float32
	for _, c := range components {
		row, ok := s.Row(c.Name, l)
		if !ok {
			return [RowWidth]float32{}, fmt.Errorf("%w: %q", ErrUnknownVoice, c.Name)
		}
		portion := float32(c.Weight) * 0.1
		for i := range sum {
			sum[i] += portion * row[i]
		}
	}
	return sum, nil
}
