package content

import (
	"regexp"
	"strings"
)

// Conversational openers emitted by chat models ahead of the real content.
var preambleLine = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(certainly|sure|absolutely|of course|okay|ok)\s*[!.,:]`),
	regexp.MustCompile(`(?i)^here('s|s| is| are)\b`),
	regexp.MustCompile(`(?i)^(let me|allow me|below is|below you will find|as requested|feel free|i hope this)\b`),
	regexp.MustCompile(`(?i)^i('ll|'d|'ve| will| would| have| am going to)\s+(create|write|craft|draft|provide|prepare|produce|generate)\b`),
	regexp.MustCompile(`(?i)^this (article|piece) (is|was|has been) (written|crafted|created)\b`),
}

// Prompt instructions the model sometimes echoes back.
var instructionLine = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(write exactly|write in active|write in a|avoid any|avoid repetitive|avoid using|use natural|use varied|use a mix|include real-world|include relevant|include proper|include specific|make it sound|start directly|do not include)\b`),
	regexp.MustCompile(`(?i)^(requirements|important|note|instructions|word count|format|forbidden phrases|seo keywords?)\s*:`),
	regexp.MustCompile(`^(DO NOT|FORBIDDEN|NEVER)\b`),
	regexp.MustCompile(`(?i)^\(?\s*(approximately|about|around)?\s*\d+\s+words\s*\)?$`),
}

// Field labels whose value is kept once the label is removed.
var fieldLabel = regexp.MustCompile(`(?i)^\s*(title|headline|meta description|summary|body|article|content|excerpt)\s*:\s*`)

// IsPreamble reports whether a line is a conversational opener, an echoed
// instruction or a bare field label rather than article content.
func IsPreamble(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, re := range preambleLine {
		if re.MatchString(line) {
			return true
		}
	}
	for _, re := range instructionLine {
		if re.MatchString(line) {
			return true
		}
	}
	return fieldLabel.MatchString(line)
}

func isDroppable(line string) bool {
	line = strings.TrimSpace(line)
	for _, re := range preambleLine {
		if re.MatchString(line) {
			return true
		}
	}
	for _, re := range instructionLine {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
