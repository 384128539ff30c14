package config

import (
	"fmt"
	"strings"
)

// Model variant identifiers: which ONNX graph and vocabulary a synthesis
// request targets. Replaces the native-vs-CLI backend distinction of a
// from-scratch-inference engine with Kokoro's two fixed model variants.
const (
	VariantMultilingual = "multilingual"
	VariantMandarin     = "mandarin"
)

// NormalizeVariant validates and canonicalizes a requested model variant
// name, defaulting an empty value to VariantMultilingual.
func NormalizeVariant(raw string) (string, error) {
	variant := strings.ToLower(strings.TrimSpace(raw))
	if variant == "" {
		variant = VariantMultilingual
	}
	switch variant {
	case VariantMultilingual, VariantMandarin:
		return variant, nil
	default:
		return "", fmt.Errorf("invalid model variant %q (expected %s|%s)", raw, VariantMultilingual, VariantMandarin)
	}
}

// VariantForLanguage picks the model variant that should handle a given
// (already-normalized) espeak-style language code: Mandarin text routes to
// the Mandarin variant, everything else to Multilingual.
func VariantForLanguage(languageCode string) string {
	if strings.HasPrefix(strings.ToLower(languageCode), "zh") {
		return VariantMandarin
	}
	return VariantMultilingual
}
