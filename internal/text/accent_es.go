package text

import (
	"strings"
	"unicode"
)

// esAccentDictionary maps common unaccented Spanish words/stems to their
// correctly accented form. This is a curated subset of the reference
// dictionary covering high-frequency words that are otherwise ambiguous
// without diacritics (the accent changes meaning or stress placement).
var esAccentDictionary = map[string]string{
	"economia": "economía", "espana": "España", "mas": "más", "si": "sí",
	"el": "él", "tu": "tú", "mi": "mí", "te": "té", "aun": "aún",
	"como": "cómo", "cuando": "cuándo", "donde": "dónde", "que": "qué",
	"quien": "quién", "cual": "cuál", "porque": "porqué", "solo": "sólo",
	"esta": "está", "estan": "están", "aqui": "aquí", "alli": "allí",
	"rapido": "rápido", "numero": "número", "telefono": "teléfono",
	"musica": "música", "ultimo": "último", "publico": "público",
	"pagina": "página", "periodo": "período", "nacion": "nación",
	"informacion": "información", "educacion": "educación",
}

// esVerbSuffixes are stressed verb endings (preterite/future/conditional)
// that take an accent on the final vowel when the unaccented form appears
// to be a conjugated verb stem rather than a noun; this heuristic is known
// to over-correct on some infinitives and is applied only to words with no
// exact dictionary match.
var esVerbSuffixes = []struct {
	plain, accented string
}{
	{"ara", "ará"}, {"aras", "arás"}, {"io", "ió"}, {"io,", "ió,"},
	{"aras", "arás"}, {"eras", "erás"}, {"iras", "irás"},
}

// RestoreSpanishAccents applies a dictionary pass followed by a verb-stem
// heuristic to restore diacritics stripped from Spanish input (e.g. text
// typed without accents, or lossily transliterated). Case of the original
// word is preserved for the first letter.
func RestoreSpanishAccents(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		trailing := ""
		core := w
		for len(core) > 0 {
			last := core[len(core)-1]
			if last == '.' || last == ',' || last == '!' || last == '?' || last == ';' || last == ':' {
				trailing = string(last) + trailing
				core = core[:len(core)-1]
				continue
			}
			break
		}

		lower := strings.ToLower(core)
		capitalized := len(core) > 0 && unicode.IsUpper(rune(core[0]))

		replacement, ok := esAccentDictionary[lower]
		if !ok {
			replacement = applyVerbHeuristic(lower)
		}
		if replacement == lower {
			continue
		}

		if capitalized {
			replacement = strings.ToUpper(replacement[:1]) + replacement[1:]
		}
		words[i] = replacement + trailing
	}
	return strings.Join(words, " ")
}

func applyVerbHeuristic(word string) string {
	for _, suf := range esVerbSuffixes {
		if strings.HasSuffix(word, suf.plain) {
			return strings.TrimSuffix(word, suf.plain) + suf.accented
		}
	}
	return word
}
