package chinese

import "strings"

// neutralToneWords is a small set of function words/suffixes that always
// surface with neutral tone regardless of their dictionary tone.
var neutralToneWords = map[string]bool{
	"的": true, "了": true, "吗": true, "呢": true, "吧": true, "着": true,
	"们": true, "子": true, "头": true, "么": true,
}

// ApplyToneSandhi rewrites pinyin syllables (one per character, aligned with
// chars) according to four rules applied in this fixed order:
// 不-sandhi (bu4 -> bu2 before another 4th-tone syllable), 一-sandhi (yi1
// takes 2nd tone before 4th, 4th tone before 1st/2nd/3rd), neutral-tone
// words, and third-tone sandhi (3rd tone -> 2nd tone before another 3rd
// tone). Returns a new slice; the input is not modified.
func ApplyToneSandhi(chars []string, pinyins []string) []string {
	out := append([]string(nil), pinyins...)

	applyBuSandhi(chars, out)
	applyYiSandhi(chars, out)
	applyNeutralTone(chars, out)
	applyThirdToneSandhi(out)

	return out
}

func toneOf(p string) byte {
	if p == "" {
		return '5'
	}
	last := p[len(p)-1]
	if last >= '1' && last <= '5' {
		return last
	}
	return '5'
}

func withTone(p string, tone byte) string {
	if p == "" {
		return p
	}
	last := p[len(p)-1]
	if last >= '1' && last <= '5' {
		return p[:len(p)-1] + string(tone)
	}
	return p + string(tone)
}

func applyBuSandhi(chars []string, pinyins []string) {
	for i, c := range chars {
		if c != "不" {
			continue
		}
		if i+1 < len(pinyins) && toneOf(pinyins[i+1]) == '4' {
			pinyins[i] = withTone(pinyins[i], '2')
		}
	}
}

func applyYiSandhi(chars []string, pinyins []string) {
	for i, c := range chars {
		if c != "一" {
			continue
		}
		// Reduplication pattern (e.g. 看一看) keeps neutral tone.
		if i > 0 && i+1 < len(chars) && chars[i-1] == chars[i+1] {
			pinyins[i] = withTone(pinyins[i], '5')
			continue
		}
		if i+1 < len(pinyins) {
			if toneOf(pinyins[i+1]) == '4' {
				pinyins[i] = withTone(pinyins[i], '2')
			} else {
				pinyins[i] = withTone(pinyins[i], '4')
			}
		}
	}
}

func applyNeutralTone(chars []string, pinyins []string) {
	for i, c := range chars {
		if neutralToneWords[c] {
			pinyins[i] = withTone(pinyins[i], '5')
		}
	}
}

// applyThirdToneSandhi rewrites a run of consecutive 3rd-tone syllables so
// that every syllable except the last in the run becomes 2nd tone.
func applyThirdToneSandhi(pinyins []string) {
	n := len(pinyins)
	i := 0
	for i < n {
		if toneOf(pinyins[i]) != '3' {
			i++
			continue
		}
		j := i
		for j < n && toneOf(pinyins[j]) == '3' {
			j++
		}
		for k := i; k < j-1; k++ {
			pinyins[k] = withTone(pinyins[k], '2')
		}
		i = j
	}
}

// JoinTonedPinyin joins pinyin syllables with commas, for debug output.
func JoinTonedPinyin(pinyins []string) string {
	return strings.Join(pinyins, ",")
}
