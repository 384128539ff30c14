package text

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

var (
	whitespaceRE  = regexp.MustCompile(`\s+`)
	pointNumRE    = regexp.MustCompile(`\b\d+\.\d+\b`)
	yearRE        = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)
	rangeRE       = regexp.MustCompile(`\b(\d+)\s*-\s*(\d+)\b`)
	moneyDollarRE = regexp.MustCompile(`\$(\d+(?:\.\d+)?)`)
	moneyPoundRE  = regexp.MustCompile(`£(\d+(?:\.\d+)?)`)
	sAfterNumRE   = regexp.MustCompile(`\b(\d+)s\b`)
	thousandsSep  = regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})+)\b`)
	standaloneNum = regexp.MustCompile(`\b\d+\b`)
)

// Normalize prepares raw input text for synthesis: it normalizes line
// endings, trims surrounding whitespace, and rejects empty input. This is
// the first pass applied before language-specific NormalizeText.
func Normalize(s string) (string, error) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyText
	}
	return s, nil
}

// NormalizeText applies the full language-aware normalization pipeline:
// smart-quote/guillemet folding, CJK punctuation folding, whitespace
// collapse, honorific-period stripping, year/decimal/range/money/thousands
// expansion, and a final standalone-number expansion pass. The steps run in
// a fixed order matching the reference normalizer so that repeated
// application is idempotent.
func NormalizeText(s string, lang Lang) string {
	s = replaceQuotesSafely(s)
	s = foldCJKPunctuation(s)
	s = whitespaceRE.ReplaceAllString(s, " ")
	s = stripHonorifics(s)

	s = yearRE.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return m
		}
		return ExpandYear(n, lang)
	})

	s = pointNumRE.ReplaceAllStringFunc(s, func(m string) string {
		return ExpandDecimal(m, lang)
	})

	s = thousandsSep.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, ",", "")
	})

	s = rangeRE.ReplaceAllStringFunc(s, func(m string) string {
		sub := rangeRE.FindStringSubmatch(m)
		if sub == nil {
			return m
		}
		return sub[1] + " " + toWord(lang) + " " + sub[2]
	})

	s = sAfterNumRE.ReplaceAllString(s, "$1 S")

	s = moneyDollarRE.ReplaceAllStringFunc(s, func(m string) string {
		sub := moneyDollarRE.FindStringSubmatch(m)
		return expandMoney(sub[1], lang, "dollar", "dollars")
	})
	s = moneyPoundRE.ReplaceAllStringFunc(s, func(m string) string {
		sub := moneyPoundRE.FindStringSubmatch(m)
		return expandMoney(sub[1], lang, "pound", "pounds")
	})

	s = standaloneNum.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return m
		}
		return ExpandNumber(n, lang)
	})

	return strings.TrimSpace(s)
}

func toWord(lang Lang) string {
	switch lang {
	case LangFR:
		return "à"
	case LangES:
		return "a"
	case LangDE:
		return "bis"
	default:
		return "to"
	}
}

func expandMoney(amount string, lang Lang, singular, plural string) string {
	if strings.Contains(amount, ".") {
		return ExpandDecimal(amount, lang) + " " + plural
	}
	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		return amount
	}
	unit := plural
	if n == 1 {
		unit = singular
	}
	return ExpandNumber(n, lang) + " " + unit
}

// replaceQuotesSafely folds curly/guillemet quotes to ASCII while being
// careful not to mangle apostrophes used in contractions ('m, 're, 've,
// 'll, 'd) or letter-surrounded apostrophes (e.g. "don't").
func replaceQuotesSafely(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i, r := range runes {
		switch r {
		case '‘', '’': // ‘ ’
			if isContractionApostrophe(runes, i) {
				out = append(out, '\'')
				continue
			}
			out = append(out, '\'')
		case '“', '”': // “ ”
			out = append(out, '"')
		case '«', '»':
			out = append(out, '"')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func isContractionApostrophe(runes []rune, i int) bool {
	isLetter := func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	if i > 0 && i+1 < len(runes) && isLetter(runes[i-1]) && isLetter(runes[i+1]) {
		return true
	}
	suffixes := []string{"m", "re", "ve", "ll", "d", "s", "t"}
	for _, suf := range suffixes {
		if i+1+len(suf) <= len(runes) && string(runes[i+1:i+1+len(suf)]) == suf {
			return true
		}
	}
	return false
}

var cjkPunctMap = map[rune]string{
	'、': ", ",
	'。': ". ",
	'！': "! ",
	'，': ", ",
	'：': ": ",
	'；': "; ",
	'？': "? ",
}

func foldCJKPunctuation(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if rep, ok := cjkPunctMap[r]; ok {
			sb.WriteString(rep)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

var honorificRE = regexp.MustCompile(`\b(Dr|Mr|Mrs|Ms|Prof|St|Jr|Sr)\.`)

func stripHonorifics(s string) string {
	return honorificRE.ReplaceAllString(s, "$1")
}
