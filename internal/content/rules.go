// Package content turns raw generative-model output into clean article fields.
package content

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
)

// Rule is a single named rewrite step.
type Rule struct {
	Name  string
	Apply func(string) string
}

// ReplaceRule rewrites every match of expr with repl ($1 style expansion).
func ReplaceRule(name, expr, repl string) Rule {
	re := regexp.MustCompile(expr)
	return Rule{
		Name:  name,
		Apply: func(s string) string { return re.ReplaceAllString(s, repl) },
	}
}

// DropLinesRule removes every line for which match reports true.
func DropLinesRule(name string, match func(string) bool) Rule {
	return Rule{
		Name: name,
		Apply: func(s string) string {
			lines := strings.Split(s, "\n")
			kept := lines[:0]
			for _, line := range lines {
				if match(line) {
					continue
				}
				kept = append(kept, line)
			}
			return strings.Join(kept, "\n")
		},
	}
}

// ReplacerRule applies a fixed set of literal substitutions.
func ReplacerRule(name string, oldnew ...string) Rule {
	r := strings.NewReplacer(oldnew...)
	return Rule{Name: name, Apply: r.Replace}
}

// TransformRule runs a golang.org/x/text transformer over the text.
// A transformer error leaves the input untouched.
func TransformRule(name string, t func() transform.Transformer) Rule {
	return Rule{
		Name: name,
		Apply: func(s string) string {
			out, _, err := transform.String(t(), s)
			if err != nil {
				return s
			}
			return out
		},
	}
}

// ApplyRules runs rules in order and returns the rewritten text.
func ApplyRules(text string, rules []Rule) string {
	for _, rule := range rules {
		text = rule.Apply(text)
	}
	return text
}

// Strategy yields a candidate value and whether it is usable.
type Strategy[T any] func() (T, bool)

// FirstMatch returns the result of the first strategy that succeeds.
func FirstMatch[T any](strategies ...Strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
