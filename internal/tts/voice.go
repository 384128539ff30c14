package tts

import (
	"strings"

	"github.com/example/pockettts-kokoro/internal/style"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// VoiceInfo is the structured per-voice description surfaced by the
// OpenAI-compatible "/v1/audio/voices/detailed" endpoint: id, display name,
// description, language, and gender, the latter two parsed from the voice
// id's two-letter prefix (e.g. "af_heart" -> American English, Female).
type VoiceInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Gender      string `json:"gender"`
}

// languagePrefixes maps a voice id's language-code letter (the first
// character of its two-letter prefix) to a human-readable language name and
// espeak-style code.
var languagePrefixes = map[byte]struct {
	name string
	code string
}{
	'a': {"American English", "en-us"},
	'b': {"British English", "en-gb"},
	'e': {"Spanish", "es"},
	'f': {"French", "fr-fr"},
	'h': {"Hindi", "hi"},
	'i': {"Italian", "it"},
	'j': {"Japanese", "ja"},
	'p': {"Brazilian Portuguese", "pt-br"},
	'z': {"Mandarin Chinese", "zh"},
}

// genderPrefixes maps a voice id's gender-code letter (the second character
// of its two-letter prefix) to a human-readable gender label.
var genderPrefixes = map[byte]string{
	'f': "female",
	'm': "male",
}

// VoiceCatalog builds structured voice listings on top of a style.Store,
// the archive holding the actual style vectors.
type VoiceCatalog struct {
	store *style.Store
}

// NewVoiceCatalog wraps store for voice listing and detailed-info queries.
func NewVoiceCatalog(store *style.Store) *VoiceCatalog {
	return &VoiceCatalog{store: store}
}

// ListVoices returns every voice name in the archive, sorted.
func (c *VoiceCatalog) ListVoices() []string {
	return c.store.Names()
}

// DetailedVoices returns structured info for every voice name in the
// archive, parsing language and gender from each id's prefix.
func (c *VoiceCatalog) DetailedVoices() []VoiceInfo {
	names := c.store.Names()
	out := make([]VoiceInfo, 0, len(names))
	for _, name := range names {
		out = append(out, describeVoice(name))
	}
	return out
}

// describeVoice parses a voice id of the form "<lang><gender>_<name>" (e.g.
// "af_heart") into structured info. Ids that do not match the convention
// still get a best-effort entry with empty language/gender.
func describeVoice(id string) VoiceInfo {
	info := VoiceInfo{ID: id, DisplayName: id}

	prefix, name, ok := strings.Cut(id, "_")
	if !ok || len(prefix) != 2 {
		return info
	}

	info.DisplayName = titleCaser.String(strings.ReplaceAll(name, "_", " "))

	if lang, ok := languagePrefixes[prefix[0]]; ok {
		info.Language = lang.code
		if gender, ok := genderPrefixes[prefix[1]]; ok {
			info.Gender = gender
			info.Description = gender + " voice, " + lang.name
		} else {
			info.Description = lang.name + " voice"
		}
	}

	return info
}
