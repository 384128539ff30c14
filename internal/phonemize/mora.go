package phonemize

import "strings"

// romanToIPA maps common romanized mora phonemes (as emitted by a
// full-context label extractor) to IPA. Kept small and exercised only when
// a real JapaneseExtractor is plugged in; the shipped UnavailableExtractor
// never reaches this path.
var romanToIPA = strings.NewReplacer(
	"u", "ɯ",
	"sh", "ʃ",
	"ch", "tʃ",
	"r", "ɹ",
	"ts", "ts",
	"j", "dʒ",
	"f", "ɸ",
)

// ConvertMoraLabels converts a sequence of full-context phoneme labels
// (one per mora, in accent-phrase order) into an IPA phoneme string: "pau"
// becomes a literal space, "sil" is dropped, and the first mora of each new
// accent phrase (signaled by phraseBreaks containing its index) is preceded
// by a space.
func ConvertMoraLabels(labels []string, phraseBreaks map[int]bool) string {
	var sb strings.Builder
	for i, label := range labels {
		switch label {
		case "pau":
			sb.WriteString(" ")
			continue
		case "sil":
			continue
		}
		if phraseBreaks[i] && sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(romanToIPA.Replace(label))
	}
	return sb.String()
}
