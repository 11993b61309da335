package content

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	titleScanLines  = 15
	titleMinLen     = 20
	titleMaxLen     = 100
	summaryMinLen   = 30
	summaryMaxLen   = 200
	summaryMaxItems = 3
	bodyPreambleWin = 3
	bodyStartMinLen = 20
	bodyLineMinLen  = 10
	metaMaxLen      = 140
	metaCutLen      = 137

	// SummaryFiller is used when no sentence qualifies for the summary.
	SummaryFiller = "A comprehensive analysis of the latest developments in this field."
)

var sentenceExpr = regexp.MustCompile(`[^.!?]+[.!?]+["')]*`)

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ExtractTitle returns the first line among the leading lines whose length
// is within [20,100] and which is not model chatter. The fallback headline
// is returned unchanged when nothing qualifies.
func ExtractTitle(text, fallbackHeadline string) string {
	lines := nonEmptyLines(text)
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		if IsPreamble(line) {
			continue
		}
		if n := len(line); n >= titleMinLen && n <= titleMaxLen {
			return line
		}
	}
	return fallbackHeadline
}

// ExtractSummary picks up to three sentences of moderate length in their
// original order.
func ExtractSummary(text string) []string {
	var summary []string
	for _, line := range nonEmptyLines(text) {
		if IsPreamble(line) {
			continue
		}
		for _, sentence := range sentenceExpr.FindAllString(line, -1) {
			sentence = strings.TrimSpace(sentence)
			if n := len(sentence); n <= summaryMinLen || n >= summaryMaxLen {
				continue
			}
			if IsPreamble(sentence) {
				continue
			}
			summary = append(summary, sentence)
			if len(summary) == summaryMaxItems {
				return summary
			}
		}
	}
	if len(summary) == 0 {
		return []string{SummaryFiller}
	}
	return summary
}

// ExtractBody returns the article body. It never returns an empty string:
// when nothing in text is usable a templated article about headline in the
// given category is produced.
func ExtractBody(text, category, headline string) string {
	body, _ := FirstMatch[string](
		func() (string, bool) { return primaryBody(text) },
		func() (string, bool) { return lenientBody(text) },
		func() (string, bool) {
			s := strings.TrimSpace(text)
			return s, s != ""
		},
		func() (string, bool) { return FallbackBody(category, headline), true },
	)
	return body
}

func primaryBody(text string) (string, bool) {
	lines := nonEmptyLines(text)

	skip := 0
	for skip < len(lines) && skip < bodyPreambleWin && IsPreamble(lines[skip]) {
		skip++
	}

	var (
		paragraphs []string
		started    bool
	)
	for _, line := range lines[skip:] {
		if !started {
			if len(line) <= bodyStartMinLen || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") || IsPreamble(line) {
				continue
			}
			started = true
		}
		if len(line) > bodyLineMinLen && !IsPreamble(line) {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, "\n\n"), len(paragraphs) > 0
}

func lenientBody(text string) (string, bool) {
	var paragraphs []string
	for _, line := range nonEmptyLines(text) {
		if !IsPreamble(line) {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, "\n\n"), len(paragraphs) > 0
}

// FallbackBody renders the templated article used when generation produced
// nothing usable.
func FallbackBody(category, headline string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "news"
	}
	headline = strings.TrimSpace(headline)
	if headline == "" {
		headline = "the latest developments"
	}

	paragraphs := []string{
		fmt.Sprintf("Recent developments surrounding %s have drawn significant attention across the %s sector. Observers say the story reflects broader shifts that have been building for some time.", headline, category),
		fmt.Sprintf("Analysts following %s point to several factors behind the change, including evolving market conditions, new policy decisions and the growing influence of public opinion.", category),
		fmt.Sprintf("People directly affected by %s are weighing what it means for them in the months ahead. Some see clear opportunities while others remain cautious about the risks involved.", headline),
		fmt.Sprintf("Experts in %s note that similar situations in the past have taken time to settle. They expect more information to emerge as those involved respond and official figures are released.", category),
		"For now, attention is focused on how decision makers will respond and whether the initial reaction holds. Further updates are expected as the situation develops.",
		fmt.Sprintf("We will continue to follow %s and report on new details as they become available.", headline),
	}
	return strings.Join(paragraphs, "\n\n")
}

// GenerateMetaDescription derives a meta description of at most 140
// characters from the first summary sentence.
func GenerateMetaDescription(summary []string, title string) string {
	lead := ""
	if len(summary) > 0 {
		lead = strings.TrimSpace(summary[0])
	}
	if lead == "" {
		lead = fmt.Sprintf("Discover the latest insights and developments in %s. Stay informed with our comprehensive coverage and expert analysis.",
			strings.ToLower(strings.TrimSpace(title)))
	}
	return truncateWords(lead, metaMaxLen, metaCutLen)
}

func truncateWords(s string, limit, cut int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	head := string(r[:cut])
	if idx := strings.LastIndex(head, " "); idx > 0 {
		head = head[:idx]
	}
	head = strings.TrimRight(head, " ,;:-")
	return head + "…"
}

// WithoutLine removes the first line equal to target, used to keep the title
// out of the body.
func WithoutLine(text, target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == target {
			return strings.Join(append(lines[:i:i], lines[i+1:]...), "\n")
		}
	}
	return text
}
