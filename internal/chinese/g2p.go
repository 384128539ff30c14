package chinese

import (
	"strings"
	"unicode"
)

// zhPunctuation maps fullwidth/CJK punctuation to ASCII equivalents applied
// before numeral/segmentation passes.
var zhPunctuation = strings.NewReplacer(
	"，", ",", "。", ".", "！", "!", "？", "?", "：", ":", "；", ";",
	"（", "(", "）", ")", "、", ",",
)

// ToPhonemes runs the seven-step Mandarin G2P pipeline: punctuation
// normalization, arabic-to-Chinese numeral conversion, word segmentation,
// word pre-merge (currently a no-op pass reserved for future merge rules),
// per-character pinyin lookup, tone sandhi, and Bopomofo/IPA transcription.
// Non-Han runes (already-ASCII punctuation/digits/latin) pass through
// untouched between Han runs.
func ToPhonemes(text string, useIPA bool) string {
	text = zhPunctuation.Replace(text)
	text = ArabicToChineseNumerals(text)

	var sb strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if !isHan(runes[i]) {
			sb.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isHan(runes[j]) {
			j++
		}
		hanRun := string(runes[i:j])
		sb.WriteString(transcribeRun(hanRun, useIPA))
		i = j
	}
	return sb.String()
}

func transcribeRun(hanRun string, useIPA bool) string {
	words := Segment(hanRun) // segmentation + pre-merge (lexicon already biases toward merged multi-char units)

	var chars []string
	var pinyins []string
	for _, w := range words {
		for _, r := range w {
			c := string(r)
			chars = append(chars, c)
			pinyins = append(pinyins, LookupPinyin(c))
		}
	}

	sandhi := ApplyToneSandhi(chars, pinyins)

	var sb strings.Builder
	for _, p := range sandhi {
		if useIPA {
			sb.WriteString(PinyinToIPA(p))
		} else {
			sb.WriteString(PinyinToBopomofo(p))
			sb.WriteByte(toneOf(p))
		}
	}
	return sb.String()
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}
