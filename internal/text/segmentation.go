package text

import "unicode"

// SplitSentences splits text into sentences using a single left-to-right
// scan that tracks quote nesting depth and guards sentence-ending
// punctuation against ordinal list markers ("1. First item"), decimals ("3.14"), and
// common abbreviations ("Dr. Smith"). When cjk is true, the terminator set
// is extended with the CJK full-width stops （。！？) and quote-depth tracking
// additionally recognizes the CJK corner/double-angle bracket pairs.
//
// Ported from the quote_depth scanning algorithm used by the upstream
// sentence segmenter; see split_into_sentences in the original project.
func SplitSentences(text string, cjk bool) []string {
	runes := []rune(text)
	n := len(runes)

	var sentences []string
	var buf []rune
	quoteDepth := 0

	isOpenQuote := func(r rune) bool {
		switch r {
		case '"', '“', '«':
			return true
		case '「', '『': // CJK corner/white corner bracket
			return cjk
		}
		return false
	}
	isCloseQuote := func(r rune) bool {
		switch r {
		case '"', '”', '»':
			return true
		case '」', '』':
			return cjk
		}
		return false
	}
	isTerminator := func(r rune) bool {
		switch r {
		case '.', '!', '?':
			return true
		case '。', '！', '？':
			return cjk
		}
		return false
	}

	flush := func() {
		s := trimRunes(buf)
		if len(s) > 0 {
			sentences = append(sentences, string(s))
		}
		buf = buf[:0]
	}

	i := 0
	for i < n {
		r := runes[i]
		buf = append(buf, r)

		switch {
		case r == '"':
			// Ambiguous open/close quote: toggle based on current depth
			// rather than classifying by rune alone.
			if quoteDepth > 0 {
				quoteDepth--
			} else {
				quoteDepth++
			}
		case isOpenQuote(r) && !isCloseQuote(r):
			quoteDepth++
		case isCloseQuote(r) && quoteDepth > 0:
			quoteDepth--
		}

		if isTerminator(r) {
			// Ordinal/decimal guard: a digit immediately before '.' followed by
			// another digit (no whitespace) is a decimal, not a sentence end.
			if r == '.' && i > 0 && unicode.IsDigit(runes[i-1]) && i+1 < n && unicode.IsDigit(runes[i+1]) {
				i++
				continue
			}
			// Ordinal guard: digit before '.' followed by whitespace then more
			// text reads as an ordinal/list marker, not a boundary.
			if r == '.' && i > 0 && unicode.IsDigit(runes[i-1]) {
				j := i + 1
				for j < n && runes[j] == ' ' {
					j++
				}
				if j < n && j > i+1 {
					i++
					continue
				}
			}
			// Abbreviation guard: whitespace then a lowercase letter immediately
			// after '.' means the token before it was likely an abbreviation.
			if r == '.' {
				j := i + 1
				for j < n && runes[j] == ' ' {
					j++
				}
				if j < n && j > i+1 && unicode.IsLower(runes[j]) {
					i++
					continue
				}
			}
			if quoteDepth > 0 {
				// A terminator immediately closing the current quote ends the
				// quoted sentence; anything else mid-quote stays suppressed
				// until the quote actually closes.
				if i+1 < n && isCloseQuote(runes[i+1]) {
					quoteDepth--
					buf = append(buf, runes[i+1])

					if quoteDepth > 0 {
						// Still nested inside an outer quote.
						i += 2
						continue
					}

					j := i + 2
					for j < n && runes[j] == ' ' {
						j++
					}
					if j >= n || !unicode.IsLower(runes[j]) {
						flush()
						i = j
						continue
					}
					i = j
					continue
				}

				i++
				continue
			}

			// Look ahead across a closing quote, if any.
			j := i + 1
			if j < n && isCloseQuote(runes[j]) {
				buf = append(buf, runes[j])
				j++
			}
			// Consume trailing whitespace.
			for j < n && runes[j] == ' ' {
				j++
			}
			// Decide whether this is truly a sentence boundary: end of text,
			// or the next significant rune starts a new sentence (uppercase,
			// digit, quote, or CJK ideograph) rather than continuing lowercase.
			if j >= n || !unicode.IsLower(runes[j]) {
				flush()
				i = j
				continue
			}
		}
		i++
	}
	flush()

	return sentences
}

func trimRunes(rs []rune) []rune {
	start := 0
	for start < len(rs) && unicode.IsSpace(rs[start]) {
		start++
	}
	end := len(rs)
	for end > start && unicode.IsSpace(rs[end-1]) {
		end--
	}
	out := make([]rune, end-start)
	copy(out, rs[start:end])
	return out
}
