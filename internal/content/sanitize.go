package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSanitizePasses = 8

var preambleRules = []Rule{
	ReplacerRule("line-endings", "\r\n", "\n", "\r", "\n"),
	DropLinesRule("preamble-lines", isDroppable),
	ReplaceRule("field-labels", `(?im)^[ \t]*(?:(?:title|headline|meta description|summary|body|article|content|excerpt)[ \t]*:[ \t]*)+`, ""),
}

var markdownRules = []Rule{
	ReplaceRule("code-fences", "(?m)^[ \\t]*```.*$", ""),
	ReplaceRule("headings", `(?m)^[ \t]*(?:#{1,6}[ \t]*)+`, ""),
	ReplaceRule("horizontal-rules", `(?m)^[ \t]*([-*_=][ \t]*){3,}$`, ""),
	ReplaceRule("blockquotes", `(?m)^[ \t]*(>[ \t]?)+`, ""),
	ReplaceRule("bullets", `(?m)^[ \t]*(?:[-*+][ \t]+)+`, ""),
	ReplaceRule("ordered-items", `(?m)^[ \t]*(?:\d{1,2}[.)][ \t]+)+`, ""),
	ReplaceRule("images", `!\[([^\]\n]*)\]\([^)\n]*\)`, "$1"),
	ReplaceRule("links", `\[([^\]\n]*)\]\([^)\n]*\)`, "$1"),
	ReplaceRule("bold-italic", `\*{1,3}([^*\n]+)\*{1,3}`, "$1"),
	ReplaceRule("underline-bold", `__([^_\n]+)__`, "$1"),
	ReplaceRule("stray-emphasis", `[*`+"`"+`]+`, ""),
	ReplaceRule("wrapped-lines", `(?m)^[ \t]*[\[({].*[\])}][ \t]*$`, ""),
	ReplaceRule("wrapping-quotes", `(?m)^[ \t]*"([^"\n]*)"[ \t]*$`, "$1"),
}

var symbolRules = []Rule{
	ReplacerRule("typography",
		"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u2032", "'",
		"\u201c", "\"", "\u201d", "\"", "\u201e", "\"", "\u2033", "\"",
		"\u2014", " - ", "\u2013", "-", "\u2212", "-",
		"\u2026", "...", "\u00a0", " ", "\u2022", "",
		"\t", " ",
	),
	TransformRule("fold-accents", func() transform.Transformer {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}),
	ReplaceRule("emoji", `[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}\x{2190}-\x{21FF}\x{FE00}-\x{FE0F}\x{200B}-\x{200D}\x{2122}\x{00A9}\x{00AE}]`, ""),
	ReplaceRule("non-ascii", `[^\x00-\x7F]+`, ""),
	ReplaceRule("control", `[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`, ""),
}

var whitespaceRules = []Rule{
	ReplaceRule("inline-spaces", ` {2,}`, " "),
	ReplaceRule("trim-lines", `(?m)^ +| +$`, ""),
	ReplaceRule("punctuation-lines", `(?m)^[^A-Za-z0-9\n]+$`, ""),
	ReplaceRule("blank-runs", `\n{3,}`, "\n\n"),
	{Name: "trim", Apply: strings.TrimSpace},
}

var sanitizePasses = [][]Rule{preambleRules, markdownRules, symbolRules, whitespaceRules}

// Sanitize removes model chatter, markdown and non-ASCII symbols from raw
// generated text. The passes are repeated until the text stops changing, so
// Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	text := raw
	for i := 0; i < maxSanitizePasses; i++ {
		next := text
		for _, pass := range sanitizePasses {
			next = ApplyRules(next, pass)
		}
		if next == text {
			return next
		}
		text = next
	}
	return text
}
