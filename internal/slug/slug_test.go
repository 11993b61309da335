package slug

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var slugFormat = regexp.MustCompile(`^[a-z0-9-]{1,80}$`)

func fixedClock() func() time.Time {
	at := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	m := NewManager(fixedClock(), nil)
	cases := map[string]string{
		"Café Société & Co. — 2024!!!":             "cafe-societe-co-2024",
		"Quantum Computing Breakthroughs Transform": "quantum-computing-breakthroughs-transform",
		"  --Leading and trailing--  ":              "leading-and-trailing",
		"snake_case words here":                     "snake-case-words-here",
		"Multiple   spaces\tand\nlines":             "multiple-spaces-and-lines",
	}
	for title, want := range cases {
		if got := m.Generate(title); got != want {
			t.Fatalf("Generate(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestGenerateShortFallsBackToTimestamp(t *testing.T) {
	t.Parallel()

	clock := fixedClock()
	m := NewManager(clock, nil)
	want := "news-article-" + "1741944600000"
	for _, title := range []string{"", "!!!", "AI", "日本語"} {
		if got := m.Generate(title); got != want {
			t.Fatalf("Generate(%q) = %q, want %q", title, got, want)
		}
	}
	if clock().UnixMilli() != 1741944600000 {
		t.Fatalf("unexpected clock value %d", clock().UnixMilli())
	}
}

func TestGenerateFormatInvariant(t *testing.T) {
	t.Parallel()

	m := NewManager(nil, nil)
	titles := []string{
		"",
		"a",
		strings.Repeat("Very Long Headline ", 20),
		"Ünïcödé Ŧëxt wïth ñ",
		"--- ___ ---",
		"Emoji \U0001F680 rocket launch succeeds",
		strings.Repeat("x", 79) + " y",
	}
	for _, title := range titles {
		got := m.Generate(title)
		if !slugFormat.MatchString(got) {
			t.Fatalf("Generate(%q) = %q does not match slug format", title, got)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Fatalf("Generate(%q) = %q has edge hyphen", title, got)
		}
	}
}

func TestEnsureUniqueFreeCandidate(t *testing.T) {
	t.Parallel()

	m := NewManager(fixedClock(), nil)
	got := m.EnsureUnique("market-rally", func(string) bool { return false })
	if got != "market-rally" {
		t.Fatalf("unexpected slug %q", got)
	}
}

func TestEnsureUniqueAppendsSuffix(t *testing.T) {
	t.Parallel()

	m := NewManager(fixedClock(), nil)
	taken := map[string]bool{"market-rally": true}
	exists := func(s string) bool { return taken[s] }

	first := m.EnsureUnique("market-rally", exists)
	if first == "market-rally" {
		t.Fatalf("expected disambiguated slug, got %q", first)
	}
	if first != "market-rally-ku7k0" {
		t.Fatalf("unexpected slug %q", first)
	}
	if !slugFormat.MatchString(first) {
		t.Fatalf("slug %q does not match format", first)
	}
}

func TestEnsureUniqueChecksOnce(t *testing.T) {
	t.Parallel()

	m := NewManager(fixedClock(), nil)
	calls := 0
	got := m.EnsureUnique("always-taken", func(string) bool {
		calls++
		return true
	})
	if calls != 2 {
		t.Fatalf("expected two existence checks, got %d", calls)
	}
	if got == "always-taken" {
		t.Fatalf("expected suffixed slug even on repeated collision")
	}
}

func TestEnsureUniqueKeepsLengthBound(t *testing.T) {
	t.Parallel()

	m := NewManager(fixedClock(), nil)
	candidate := strings.Repeat("a", MaxLength)
	got := m.EnsureUnique(candidate, func(s string) bool { return s == candidate })
	if len(got) > MaxLength || !slugFormat.MatchString(got) {
		t.Fatalf("unexpected slug %q (len %d)", got, len(got))
	}
}
