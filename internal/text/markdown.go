package text

import "regexp"

var (
	mdHeaderRE     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBoldRE       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	mdItalicRE     = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	mdImageRE      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLinkRE       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdCodeFenceRE  = regexp.MustCompile("(?s)```.*?```")
	mdInlineCodeRE = regexp.MustCompile("`([^`]*)`")
	mdHTMLTagRE    = regexp.MustCompile(`(?s)<[^>]+>`)
	mdAutolinkRE   = regexp.MustCompile(`<(https?://[^>]+)>`)
	mdBlockquoteRE = regexp.MustCompile(`(?m)^>\s?`)
	mdListRE       = regexp.MustCompile(`(?m)^(\s*)([-*+]|\d+\.)\s+`)
)

// StripMarkup removes common Markdown formatting (headers, bold/italic
// emphasis, links, images, code fences/inline code, HTML tags/autolinks,
// blockquote markers, and list bullets), leaving plain prose suitable for
// synthesis. It is a separate function, not part of the NormalizeText
// pipeline, so plain text remains unaffected; no CLI command calls it.
func StripMarkup(s string) string {
	s = mdCodeFenceRE.ReplaceAllString(s, "")
	s = mdAutolinkRE.ReplaceAllString(s, "$1")
	s = mdHTMLTagRE.ReplaceAllString(s, "")
	s = mdImageRE.ReplaceAllString(s, "$1")
	s = mdLinkRE.ReplaceAllString(s, "$1")
	s = mdInlineCodeRE.ReplaceAllString(s, "$1")
	s = mdBoldRE.ReplaceAllString(s, "$1$2")
	s = mdItalicRE.ReplaceAllString(s, "$1$2")
	s = mdHeaderRE.ReplaceAllString(s, "")
	s = mdBlockquoteRE.ReplaceAllString(s, "")
	s = mdListRE.ReplaceAllString(s, "$1")
	return s
}
