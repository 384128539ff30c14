// Package vocab holds the two character vocabularies the engine tokenizes
// phoneme strings against: a multilingual IPA vocabulary shared by the
// non-Chinese language paths, and a Mandarin vocabulary keyed on Bopomofo
// plus tone digits and a handful of IPA escapes. Both tables are immutable
// once built and are safe for concurrent use from any number of goroutines.
package vocab

import "sync"

// Variant selects which vocabulary a tokenize/detokenize call targets.
type Variant int

const (
	// Multilingual is the default IPA-based vocabulary.
	Multilingual Variant = iota
	// Mandarin is the Bopomofo/tone-digit vocabulary used for zh* text.
	Mandarin
)

// Pad is the padding/sentinel character used at the start and end of every
// token sequence fed to the model.
const Pad = "$"

// Vocab is a bijective rune<->index table.
type Vocab struct {
	forward map[rune]int
	reverse map[int]rune
}

// Size returns the number of distinct symbols in the vocabulary.
func (v *Vocab) Size() int { return len(v.forward) }

// Lookup returns the token id for r and whether it was found.
func (v *Vocab) Lookup(r rune) (int, bool) {
	id, ok := v.forward[r]
	return id, ok
}

// Rune returns the character for token id, and whether it was found.
func (v *Vocab) Rune(id int) (rune, bool) {
	r, ok := v.reverse[id]
	return r, ok
}

var (
	once       sync.Once
	multiVocab *Vocab
	zhVocab    *Vocab
)

// For gets the process-wide vocabulary for the given variant, building both
// tables lazily (and only once) the first time either is requested.
func For(variant Variant) *Vocab {
	once.Do(func() {
		multiVocab = buildMultilingualVocab()
		zhVocab = buildMandarinVocab()
	})
	if variant == Mandarin {
		return zhVocab
	}
	return multiVocab
}

// buildMultilingualVocab reproduces the upstream layout: pad, a punctuation
// block, uppercase+lowercase ASCII letters, then the IPA letter inventory,
// each enumerated in source order starting at index 0.
func buildMultilingualVocab() *Vocab {
	const punctuation = ";:,.!?¡¿—…\"«»“”"
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	const ipaLetters = "ɑɐɒæɓʙβɔɕçɗɖðʤəɘɚɛɜɝɞɟʄɡɠɢʛɦɧħɥʜɨɪʝɭɬɫɮʟɱɯɰŋɳɲɴøɵɸθœɶʘɹɺɾɻʀʁɽʂʃʈʧʉʊʋⱱʌɣɤʍχʎʏʑʐʒʔʡʕʢǀǁǂǃˈˌːˑʼʴʰʱʲʷˠˤ˞↓↗↘→1234567890"

	v := &Vocab{forward: make(map[rune]int), reverse: make(map[int]rune)}
	idx := 0
	insert := func(s string) {
		for _, r := range s {
			if _, exists := v.forward[r]; exists {
				continue
			}
			v.forward[r] = idx
			v.reverse[idx] = r
			idx++
		}
	}
	insert(Pad)
	insert(punctuation)
	insert(" ")
	insert(letters)
	insert(ipaLetters)
	return v
}

// mandarinMappings is the explicit index table (172 entries over ids 0-177)
// for the Mandarin vocabulary: Bopomofo finals/initials, tone digits, a
// handful of IPA escapes and punctuation. Indices with no assigned character
// (intentional gaps at 8 and 26-29 and 174, matching upstream) are simply
// never inserted; Size() reports the count of keyed runes, not the maximum
// index+1.
var mandarinMappings = []struct {
	char string
	idx  int
}{
	{"$", 0}, {";", 1}, {":", 2}, {",", 3}, {".", 4}, {"!", 5}, {"?", 6}, {"—", 7},
	{"…", 9}, {"\"", 10}, {"«", 11}, {"»", 12}, {"“", 13}, {"”", 14}, {" ", 15},
	{"A", 16}, {"B", 17}, {"C", 18}, {"D", 19}, {"E", 20}, {"F", 21}, {"G", 22}, {"H", 23},
	{"I", 24}, {"J", 25},
	{"Q", 30}, {"R", 31}, {"S", 32}, {"T", 33}, {"U", 34}, {"V", 35}, {"W", 36}, {"X", 37},
	{"Y", 38}, {"Z", 39},
	{"a", 40}, {"b", 41}, {"c", 42}, {"d", 43}, {"e", 44}, {"f", 45}, {"g", 46}, {"h", 47},
	{"i", 48}, {"j", 49}, {"k", 50}, {"l", 51}, {"m", 52}, {"n", 53}, {"o", 54}, {"p", 55},
	{"q", 56}, {"r", 57}, {"s", 58}, {"t", 59}, {"u", 60}, {"v", 61}, {"w", 62}, {"x", 63},
	{"y", 64}, {"z", 65},
	{"ㄅ", 66}, {"ㄆ", 67}, {"ㄇ", 68}, {"ㄈ", 69}, {"ㄉ", 70}, {"ㄊ", 71}, {"ㄋ", 72}, {"ㄌ", 73},
	{"ㄍ", 74}, {"ㄎ", 75}, {"ㄏ", 76}, {"ㄐ", 77}, {"ㄑ", 78}, {"ㄒ", 79}, {"ㄓ", 80}, {"ㄔ", 81},
	{"ㄕ", 82}, {"ㄖ", 83}, {"ㄗ", 84}, {"ㄘ", 85}, {"ㄙ", 86}, {"ㄚ", 87}, {"ㄛ", 88}, {"ㄜ", 89},
	{"ㄝ", 90}, {"ㄞ", 91}, {"ㄟ", 92}, {"ㄠ", 93}, {"ㄡ", 94}, {"ㄢ", 95}, {"ㄣ", 96}, {"ㄤ", 97},
	{"ㄥ", 98}, {"ㄦ", 99}, {"ㄧ", 100}, {"ㄨ", 101}, {"ㄩ", 102}, {"ˉ", 103}, {"ˊ", 104}, {"ˇ", 105},
	{"ˋ", 106}, {"˙", 107},
	{"1", 108}, {"2", 109}, {"3", 110}, {"4", 111}, {"5", 112}, {"6", 113}, {"7", 114}, {"8", 115},
	{"9", 116}, {"0", 117},
	{"ə", 118}, {"ɚ", 119}, {"ɛ", 120}, {"ɪ", 121}, {"ʊ", 122}, {"ʌ", 123}, {"æ", 124}, {"ɑ", 125},
	{"ɔ", 126}, {"ɹ", 127}, {"ɾ", 128}, {"ʃ", 129}, {"ʒ", 130}, {"ʔ", 131}, {"ð", 132}, {"θ", 133},
	{"ŋ", 134}, {"ɡ", 135}, {"ˈ", 136}, {"ˌ", 137}, {"ː", 138}, {"˞", 139}, {"ʲ", 140}, {"ʷ", 141},
	{"ɐ", 142}, {"ɜ", 143}, {"ɒ", 144}, {"ʉ", 145}, {"ɵ", 146}, {"ɘ", 147}, {"ɤ", 148}, {"ʰ", 149},
	{"↓", 150}, {"↗", 151}, {"↘", 152}, {"→", 153}, {"oʊ", 154}, {"əl", 155}, {"ɜː", 156},
	{"aɪ", 157}, {"aʊ", 158}, {"eɪ", 159}, {"ɔɪ", 160}, {"ɪə", 161}, {"eə", 162}, {"ʊə", 163},
	{"tʃ", 164}, {"dʒ", 165}, {"ts", 166}, {"dz", 167}, {"ɻ", 168}, {"ɕ", 169}, {"ʐ", 170},
	{"ɖʐ", 171}, {"ʈʂ", 172}, {"ɚ̃", 173},
	{"ɤʊ", 175}, {"ã", 176}, {"ẽ", 177},
}

func buildMandarinVocab() *Vocab {
	v := &Vocab{forward: make(map[rune]int), reverse: make(map[int]rune)}
	for _, m := range mandarinMappings {
		for _, r := range m.char {
			if _, exists := v.forward[r]; !exists {
				v.forward[r] = m.idx
				v.reverse[m.idx] = r
			}
			break // one rune per entry; a multi-rune entry keys its first rune only if no earlier entry did
		}
	}
	return v
}
