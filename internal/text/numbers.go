package text

import (
	"fmt"
	"strconv"
	"strings"
)

// Lang is a normalizer language tag: one of "en", "es", "fr", "de".
type Lang string

const (
	LangEN Lang = "en"
	LangES Lang = "es"
	LangFR Lang = "fr"
	LangDE Lang = "de"
)

// ExpandNumber spells out an integer (positive or negative) in the target
// language. Unrecognized languages fall back to English.
func ExpandNumber(n int64, lang Lang) string {
	switch lang {
	case LangES:
		return expandNumberSpanish(n)
	case LangFR:
		return expandNumberFrench(n)
	case LangDE:
		return expandNumberGerman(n)
	default:
		return expandNumberEnglish(n)
	}
}

// ExpandYear spells out an English year in [1000,2099] using the
// century+remainder convention ("1984" -> "nineteen eighty-four"), with
// special cases for 2000 and 2001. Years outside that range, and every year
// in a language other than English, fall back to ExpandNumber.
func ExpandYear(n int64, lang Lang) string {
	if n < 1000 || n > 2099 {
		return ExpandNumber(n, lang)
	}
	if lang != LangEN {
		return ExpandNumber(n, lang)
	}
	switch n {
	case 2000:
		return "two thousand"
	case 2001:
		return "two thousand one"
	}
	century := n / 100
	remainder := n % 100
	if remainder == 0 {
		return expandNumberEnglish(century) + " hundred"
	}
	if remainder < 10 {
		return expandNumberEnglish(century) + " oh " + expandNumberEnglish(remainder)
	}
	return expandNumberEnglish(century) + " " + expandNumberEnglish(remainder)
}

// ExpandDecimal expands a numeric literal containing a decimal point,
// reading the integer part as a cardinal number, a language-specific
// "point" word, then each digit after the point individually.
func ExpandDecimal(s string, lang Lang) string {
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]
	var fracPart string
	if len(parts) == 2 {
		fracPart = parts[1]
	}

	var sb strings.Builder
	if intPart == "" || intPart == "-" {
		sb.WriteString(zeroWord(lang))
	} else {
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			sb.WriteString(intPart)
		} else {
			sb.WriteString(ExpandNumber(n, lang))
		}
	}

	if fracPart == "" {
		return sb.String()
	}

	sb.WriteString(" ")
	sb.WriteString(pointWord(lang))
	for _, d := range fracPart {
		if d < '0' || d > '9' {
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(digitWord(d-'0', lang))
	}
	return sb.String()
}

func zeroWord(lang Lang) string {
	switch lang {
	case LangES:
		return "cero"
	case LangFR:
		return "zéro"
	case LangDE:
		return "null"
	default:
		return "zero"
	}
}

func pointWord(lang Lang) string {
	switch lang {
	case LangES:
		return "punto"
	case LangFR:
		return "virgule"
	case LangDE:
		return "komma"
	default:
		return "point"
	}
}

func digitWord(d rune, lang Lang) string {
	tables := map[Lang][10]string{
		LangES: {"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve"},
		LangFR: {"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"},
		LangDE: {"null", "eins", "zwei", "drei", "vier", "fünf", "sechs", "sieben", "acht", "neun"},
		LangEN: {"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"},
	}
	t, ok := tables[lang]
	if !ok {
		t = tables[LangEN]
	}
	return t[d]
}

// --- English -----------------------------------------------------------

var enOnes = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var enTens = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

func expandNumberEnglish(n int64) string {
	if n < 0 {
		return "minus " + expandNumberEnglish(-n)
	}
	if n < 20 {
		return enOnes[n]
	}
	if n < 100 {
		tens := enTens[n/10]
		if n%10 == 0 {
			return tens
		}
		return tens + "-" + enOnes[n%10]
	}
	if n < 1000 {
		rest := n % 100
		if rest == 0 {
			return enOnes[n/100] + " hundred"
		}
		return enOnes[n/100] + " hundred " + expandNumberEnglish(rest)
	}
	if n < 1_000_000 {
		rest := n % 1000
		thousands := expandNumberEnglish(n / 1000) + " thousand"
		if rest == 0 {
			return thousands
		}
		return thousands + " " + expandNumberEnglish(rest)
	}
	return strconv.FormatInt(n, 10)
}

// --- Spanish -------------------------------------------------------------

var esSpecial = map[int64]string{
	0: "cero", 1: "uno", 2: "dos", 3: "tres", 4: "cuatro", 5: "cinco", 6: "seis",
	7: "siete", 8: "ocho", 9: "nueve", 10: "diez", 11: "once", 12: "doce",
	13: "trece", 14: "catorce", 15: "quince", 16: "dieciséis", 17: "diecisiete",
	18: "dieciocho", 19: "diecinueve", 20: "veinte", 21: "veintiuno",
	22: "veintidós", 23: "veintitrés", 24: "veinticuatro", 25: "veinticinco",
	26: "veintiséis", 27: "veintisiete", 28: "veintiocho", 29: "veintinueve",
	30: "treinta",
}

var esTens = map[int64]string{
	30: "treinta", 40: "cuarenta", 50: "cincuenta", 60: "sesenta",
	70: "setenta", 80: "ochenta", 90: "noventa",
}

var esHundreds = map[int64]string{
	100: "cien", 200: "doscientos", 300: "trescientos", 400: "cuatrocientos",
	500: "quinientos", 600: "seiscientos", 700: "setecientos", 800: "ochocientos",
	900: "novecientos",
}

func expandNumberSpanish(n int64) string {
	if n < 0 {
		return "menos " + expandNumberSpanish(-n)
	}
	if w, ok := esSpecial[n]; ok {
		return w
	}
	if n < 100 {
		tens := (n / 10) * 10
		rest := n % 10
		return esTens[tens] + " y " + esSpecial[rest]
	}
	if n == 100 {
		return "cien"
	}
	if n < 1000 {
		hundreds := (n / 100) * 100
		rest := n % 100
		word := esHundreds[hundreds]
		if hundreds == 100 && rest != 0 {
			word = "ciento"
		}
		if rest == 0 {
			return word
		}
		return word + " " + expandNumberSpanish(rest)
	}
	if n < 1_000_000 {
		thousands := n / 1000
		rest := n % 1000
		var prefix string
		if thousands == 1 {
			prefix = "mil"
		} else {
			prefix = expandNumberSpanish(thousands) + " mil"
		}
		if rest == 0 {
			return prefix
		}
		return prefix + " " + expandNumberSpanish(rest)
	}
	return strconv.FormatInt(n, 10)
}

// --- French ----------------------------------------------------------------

var frOnes = map[int64]string{
	0: "zéro", 1: "un", 2: "deux", 3: "trois", 4: "quatre", 5: "cinq", 6: "six",
	7: "sept", 8: "huit", 9: "neuf", 10: "dix", 11: "onze", 12: "douze",
	13: "treize", 14: "quatorze", 15: "quinze", 16: "seize", 17: "dix-sept",
	18: "dix-huit", 19: "dix-neuf",
}

func expandNumberFrench(n int64) string {
	if n < 0 {
		return "moins " + expandNumberFrench(-n)
	}
	if w, ok := frOnes[n]; ok {
		return w
	}
	if n < 70 {
		tens := (n / 10) * 10
		rest := n % 10
		tensWord := map[int64]string{20: "vingt", 30: "trente", 40: "quarante", 50: "cinquante", 60: "soixante"}[tens]
		if rest == 0 {
			return tensWord
		}
		if rest == 1 {
			return tensWord + " et un"
		}
		return tensWord + "-" + frOnes[rest]
	}
	if n < 80 {
		// 70-79: soixante + (10-19)
		rest := n - 60
		if rest == 11 {
			return "soixante et onze"
		}
		return "soixante-" + frOnes[rest]
	}
	if n < 100 {
		// 80-99: quatre-vingt(s) + (0-19)
		rest := n - 80
		if rest == 0 {
			return "quatre-vingts"
		}
		return "quatre-vingt-" + frOnes[rest]
	}
	if n < 1000 {
		hundreds := n / 100
		rest := n % 100
		var prefix string
		if hundreds == 1 {
			prefix = "cent"
		} else {
			prefix = expandNumberFrench(hundreds) + " cent"
		}
		if rest == 0 {
			return prefix
		}
		return prefix + " " + expandNumberFrench(rest)
	}
	if n < 1_000_000 {
		thousands := n / 1000
		rest := n % 1000
		var prefix string
		if thousands == 1 {
			prefix = "mille"
		} else {
			prefix = expandNumberFrench(thousands) + " mille"
		}
		if rest == 0 {
			return prefix
		}
		return prefix + " " + expandNumberFrench(rest)
	}
	return strconv.FormatInt(n, 10)
}

// --- German ------------------------------------------------------------

var deOnes = map[int64]string{
	0: "null", 1: "eins", 2: "zwei", 3: "drei", 4: "vier", 5: "fünf", 6: "sechs",
	7: "sieben", 8: "acht", 9: "neun", 10: "zehn", 11: "elf", 12: "zwölf",
	13: "dreizehn", 14: "vierzehn", 15: "fünfzehn", 16: "sechzehn",
	17: "siebzehn", 18: "achtzehn", 19: "neunzehn",
}

var deTens = map[int64]string{
	20: "zwanzig", 30: "dreißig", 40: "vierzig", 50: "fünfzig",
	60: "sechzig", 70: "siebzig", 80: "achtzig", 90: "neunzig",
}

func expandNumberGerman(n int64) string {
	if n < 0 {
		return "minus " + expandNumberGerman(-n)
	}
	if w, ok := deOnes[n]; ok {
		return w
	}
	if n < 100 {
		tens := (n / 10) * 10
		rest := n % 10
		if rest == 0 {
			return deTens[tens]
		}
		ones := deOnes[rest]
		if rest == 1 {
			ones = "ein"
		}
		return ones + "und" + deTens[tens]
	}
	if n < 1000 {
		hundreds := n / 100
		rest := n % 100
		prefix := deOnes[hundreds] + "hundert"
		if hundreds == 1 {
			prefix = "einhundert"
		}
		if rest == 0 {
			return prefix
		}
		return prefix + expandNumberGerman(rest)
	}
	if n < 1_000_000 {
		thousands := n / 1000
		rest := n % 1000
		var prefix string
		if thousands == 1 {
			prefix = "eintausend"
		} else {
			prefix = expandNumberGerman(thousands) + "tausend"
		}
		if rest == 0 {
			return prefix
		}
		return prefix + expandNumberGerman(rest)
	}
	return strconv.FormatInt(n, 10)
}

// formatFallback returns n as a plain decimal string. Nothing calls it; the
// expanders above format values at or above the million boundary with
// strconv.FormatInt directly.
func formatFallback(n int64) string {
	return fmt.Sprintf("%d", n)
}
