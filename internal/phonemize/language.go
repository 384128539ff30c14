// Package phonemize orchestrates the text-to-phoneme front end: language
// code normalization, dispatch to the Chinese/Japanese/generic G2P paths,
// fixed IPA post-rewrites, and vocabulary filtering. Grounded on the
// upstream project's tts/phonemizer.rs.
package phonemize

import (
	"log/slog"
	"strings"
)

// DefaultEspeakCode is the fallback espeak-style language code used when a
// requested language tag cannot be normalized.
const DefaultEspeakCode = "en-us"

// languageMap normalizes ISO-639-1/2/3 and common regional tags to a
// canonical espeak-style code. Absent entries fall back to DefaultEspeakCode.
var languageMap = map[string]string{
	"en": "en-us", "en-us": "en-us", "en-gb": "en-gb", "eng": "en-us",
	"es": "es", "spa": "es", "es-es": "es", "es-419": "es-419",
	"fr": "fr-fr", "fra": "fr-fr", "fre": "fr-fr", "fr-fr": "fr-fr",
	"de": "de", "deu": "de", "ger": "de",
	"pt": "pt", "por": "pt", "pt-br": "pt-br", "pt-pt": "pt",
	"it": "it", "ita": "it",
	"hi": "hi", "hin": "hi",
	"ja": "ja", "jpn": "ja",
	"zh": "zh", "zho": "zh", "chi": "zh", "zh-cn": "zh", "zh-hans": "zh",
	"zh-tw": "zh-tw", "zh-hant": "zh-tw",
}

// DefaultVoiceStyles maps an espeak-style language code prefix to the
// engine's default voice name for that language; English defaults are
// handled separately by the style-selection layer.
var DefaultVoiceStyles = map[string]string{
	"es": "ef_dora",
	"fr": "ff_siwis",
	"zh": "zf_xiaoxiao",
	"ja": "jf_alpha",
}

// NormalizeLanguage maps an ISO-639-1/2/3 or regional language tag to a
// canonical espeak-style code, logging a warning and falling back to
// DefaultEspeakCode when the tag is unrecognized.
func NormalizeLanguage(tag string) string {
	key := strings.ToLower(strings.TrimSpace(tag))
	if key == "" {
		return DefaultEspeakCode
	}
	if code, ok := languageMap[key]; ok {
		return code
	}
	// Try a bare two-letter prefix before giving up (e.g. "es-mx" -> "es").
	if i := strings.IndexAny(key, "-_"); i > 0 {
		if code, ok := languageMap[key[:i]]; ok {
			return code
		}
	}
	slog.Warn("phonemize: unknown language tag, falling back", slog.String("tag", tag), slog.String("fallback", DefaultEspeakCode))
	return DefaultEspeakCode
}

// IsChinese reports whether a normalized or raw language tag selects the
// Mandarin G2P path.
func IsChinese(tag string) bool {
	return strings.HasPrefix(strings.ToLower(tag), "zh")
}

// IsJapanese reports whether a language tag selects the Japanese G2P path.
func IsJapanese(tag string) bool {
	t := strings.ToLower(tag)
	return t == "ja" || t == "jpn"
}
