package chinese

// lexicon is a small maximum-matching word list used for segmentation. The
// G2P path flattens the segmented words back into characters before tone
// sandhi, pinyin lookup and Bopomofo/IPA transcription, so word boundaries
// do not change the transcription, and a
// compact curated lexicon is sufficient here rather than a full Jieba-style
// frequency dictionary (none is available in the reference corpus — see
// design notes).
var lexicon = map[string]bool{
	"不是": true, "你好": true, "我们": true, "他们": true, "她们": true,
	"中国": true, "学生": true, "高兴": true, "自己": true, "时候": true,
	"什么": true, "怎么": true, "因为": true, "所以": true, "可以": true,
	"一个": true, "看看": true, "走走": true,
}

const maxWordRunes = 4

// Segment splits Han text into words using forward maximum matching against
// the curated lexicon, falling back to single characters when no multi-char
// entry matches at the current position.
func Segment(text string) []string {
	runes := []rune(text)
	n := len(runes)

	var words []string
	i := 0
	for i < n {
		matched := false
		maxLen := maxWordRunes
		if n-i < maxLen {
			maxLen = n - i
		}
		for l := maxLen; l >= 2; l-- {
			candidate := string(runes[i : i+l])
			if lexicon[candidate] {
				words = append(words, candidate)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			words = append(words, string(runes[i]))
			i++
		}
	}
	return words
}
