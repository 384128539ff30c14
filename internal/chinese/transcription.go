// Package chinese implements the Mandarin text-to-phoneme pipeline: a
// dictionary-based word segmenter, pinyin lookup, tone sandhi, and
// pinyin-to-Bopomofo / pinyin-to-IPA transcription. Grounded on the
// upstream project's chinese/mod.rs, tone_sandhi.rs and transcription.rs.
package chinese

import "strings"

// initialToIPA maps pinyin initials to their IPA equivalents.
var initialToIPA = map[string]string{
	"b": "p", "p": "pʰ", "m": "m", "f": "f",
	"d": "t", "t": "tʰ", "n": "n", "l": "l",
	"g": "k", "k": "kʰ", "h": "x",
	"j": "tɕ", "q": "tɕʰ", "x": "ɕ",
	"zh": "ʈʂ", "ch": "ʈʂʰ", "sh": "ʂ", "r": "ɻ",
	"z": "ts", "c": "tsʰ", "s": "s",
	"y": "j", "w": "w",
}

// finalToIPA maps pinyin finals (post-rewrite) to their IPA equivalents.
var finalToIPA = map[string]string{
	"a": "a", "o": "o", "e": "ɤ", "ê": "ɛ", "ii": "ɹ̩", "iii": "ɻ̩",
	"ai": "ai", "ei": "ei", "ao": "au", "ou": "ou",
	"an": "an", "en": "ən", "ang": "aŋ", "eng": "ɤŋ", "er": "ɚ",
	"i": "i", "ia": "ja", "ie": "jɛ", "iao": "jau", "iou": "jou",
	"ian": "jɛn", "in": "in", "iang": "jaŋ", "ing": "iŋ", "iong": "jʊŋ",
	"u": "u", "ua": "wa", "uo": "wo", "uai": "wai", "uei": "wei",
	"uan": "wan", "uen": "wən", "uang": "waŋ", "ueng": "wəŋ",
	"v": "y", "ve": "ɥɛ", "van": "ɥɛn", "vn": "yn",
}

// toneToIPA maps tone digits 1-5 to IPA suprasegmental tone marks.
var toneToIPA = map[byte]string{
	'1': "˥", '2': "˧˥", '3': "˧˩˧", '4': "˥˩", '5': "",
}

// zhInitialBopomofo maps pinyin initials to Bopomofo.
var zhInitialBopomofo = map[string]string{
	"b": "ㄅ", "p": "ㄆ", "m": "ㄇ", "f": "ㄈ",
	"d": "ㄉ", "t": "ㄊ", "n": "ㄋ", "l": "ㄌ",
	"g": "ㄍ", "k": "ㄎ", "h": "ㄏ",
	"j": "ㄐ", "q": "ㄑ", "x": "ㄒ",
	"zh": "ㄓ", "ch": "ㄔ", "sh": "ㄕ", "r": "ㄖ",
	"z": "ㄗ", "c": "ㄘ", "s": "ㄙ",
}

var zhFinalBopomofo = map[string]string{
	"a": "ㄚ", "o": "ㄛ", "e": "ㄜ", "ai": "ㄞ", "ei": "ㄟ", "ao": "ㄠ", "ou": "ㄡ",
	"an": "ㄢ", "en": "ㄣ", "ang": "ㄤ", "eng": "ㄥ", "er": "ㄦ",
	"i": "ㄧ", "ia": "ㄧㄚ", "ie": "ㄧㄝ", "iao": "ㄧㄠ", "iou": "ㄧㄡ",
	"ian": "ㄧㄢ", "in": "ㄧㄣ", "iang": "ㄧㄤ", "ing": "ㄧㄥ", "iong": "ㄩㄥ",
	"u": "ㄨ", "ua": "ㄨㄚ", "uo": "ㄨㄛ", "uai": "ㄨㄞ", "uei": "ㄨㄟ",
	"uan": "ㄨㄢ", "uen": "ㄨㄣ", "uang": "ㄨㄤ", "ueng": "ㄨㄥ",
	"v": "ㄩ", "ve": "ㄩㄝ", "van": "ㄩㄢ", "vn": "ㄩㄣ", "ii": "", "iii": "",
}

var toneBopomofo = map[byte]string{
	'1': "", '2': "ˊ", '3': "ˇ", '4': "ˋ", '5': "˙",
}

// initials lists pinyin initials in longest-match-first order.
var initials = []string{"zh", "ch", "sh", "b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h", "j", "q", "x", "r", "z", "c", "s", "y", "w"}

// ParsedPinyin is a decomposed pinyin syllable.
type ParsedPinyin struct {
	Initial string
	Final   string
	Tone    byte // '1'..'5'
}

// ParsePinyin splits a toneless-or-toned pinyin syllable (e.g. "zhong1")
// into its initial, rewritten final, and tone digit (defaulting to '5',
// neutral tone, when no digit is present).
func ParsePinyin(pinyin string) ParsedPinyin {
	tone := byte('5')
	body := pinyin
	if n := len(pinyin); n > 0 {
		last := pinyin[n-1]
		if last >= '1' && last <= '5' {
			tone = last
			body = pinyin[:n-1]
		}
	}

	initial := ""
	for _, cand := range initials {
		if strings.HasPrefix(body, cand) {
			initial = cand
			break
		}
	}
	final := strings.TrimPrefix(body, initial)
	final = rewriteFinal(initial, final)

	return ParsedPinyin{Initial: initial, Final: final, Tone: tone}
}

// rewriteFinal applies the upstream final-substitution rules: zi/ci/si take
// the apical "ii" final, zhi/chi/shi/ri take "iii", iu/ui/un are historical
// abbreviations expanded to iou/uei/uen, and a bare "u" after j/q/x/y reads
// as the front rounded vowel "v" (unless it spells "ua"/"uo").
func rewriteFinal(initial, final string) string {
	switch {
	case final == "i" && (initial == "z" || initial == "c" || initial == "s"):
		return "ii"
	case final == "i" && (initial == "zh" || initial == "ch" || initial == "sh" || initial == "r"):
		return "iii"
	case final == "iu":
		return "iou"
	case final == "ui":
		return "uei"
	case final == "un":
		return "uen"
	case final == "u" && (initial == "j" || initial == "q" || initial == "x" || initial == "y") && final != "ua" && final != "uo":
		return "v"
	default:
		return final
	}
}

// PinyinToIPA converts a toned pinyin syllable to an IPA string.
func PinyinToIPA(pinyin string) string {
	p := ParsePinyin(pinyin)
	var sb strings.Builder
	if init, ok := initialToIPA[p.Initial]; ok {
		sb.WriteString(init)
	}
	if fin, ok := finalToIPA[p.Final]; ok {
		sb.WriteString(fin)
	} else {
		sb.WriteString(p.Final)
	}
	sb.WriteString(toneToIPA[p.Tone])
	return sb.String()
}

// PinyinToBopomofo converts a toned pinyin syllable to Bopomofo + tone mark.
func PinyinToBopomofo(pinyin string) string {
	p := ParsePinyin(pinyin)
	var sb strings.Builder
	sb.WriteString(zhInitialBopomofo[p.Initial])
	sb.WriteString(zhFinalBopomofo[p.Final])
	sb.WriteString(toneBopomofo[p.Tone])
	return sb.String()
}

// RetoneIPA rewrites IPA tone contour marks to arrow-style sandhi markers.
// The phonemizer's post-rewrite pass does not call it.
func RetoneIPA(s string) string {
	replacer := strings.NewReplacer(
		"˧˩˧", "↓",
		"˧˥", "↗",
		"˥˩", "↘",
		"˥", "→",
	)
	return replacer.Replace(s)
}
