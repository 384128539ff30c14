package vocab

import "log/slog"

// Tokenize converts a phoneme string into model token ids using the given
// vocabulary variant. Characters absent from the vocabulary are dropped; the
// caller is warned once per call with the count and the distinct characters
// that were skipped.
func Tokenize(phonemes string, variant Variant) []int64 {
	v := For(variant)

	ids := make([]int64, 0, len(phonemes))
	var dropped []rune

	for _, r := range phonemes {
		id, ok := v.Lookup(r)
		if !ok {
			dropped = append(dropped, r)
			continue
		}
		ids = append(ids, int64(id))
	}

	if len(dropped) > 0 {
		slog.Warn("tokenize: dropped unknown characters",
			slog.Int("count", len(dropped)),
			slog.String("chars", string(dropped)),
		)
	}

	return ids
}

// Detokenize converts model token ids back into their phoneme characters,
// skipping any id not present in the vocabulary's reverse map.
func Detokenize(ids []int64, variant Variant) string {
	v := For(variant)

	out := make([]rune, 0, len(ids))
	for _, id := range ids {
		r, ok := v.Rune(int(id))
		if !ok {
			continue
		}
		out = append(out, r)
	}

	return string(out)
}
