// Package slug derives URL-safe identifiers from article titles.
package slug

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxLength      = 80
	minLength      = 5
	fallbackPrefix = "news-article-"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaces       = regexp.MustCompile(`\s+`)
	hyphens      = regexp.MustCompile(`-{2,}`)
)

// Manager generates slugs and disambiguates collisions.
type Manager struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewManager returns a Manager; nil arguments take defaults.
func NewManager(now func() time.Time, logger *slog.Logger) *Manager {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{now: now, logger: logger}
}

// Generate lower-cases title, strips diacritics and punctuation and joins
// words with single hyphens. Titles that reduce to fewer than five
// characters get a timestamped slug instead.
func (m *Manager) Generate(title string) string {
	s := strings.ToLower(title)
	if folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s); err == nil {
		s = folded
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = invalidChars.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	s = truncate(strings.Trim(s, "-"), MaxLength)

	if len(s) < minLength {
		return fallbackPrefix + strconv.FormatInt(m.now().UnixMilli(), 10)
	}
	return s
}

// EnsureUnique returns candidate when exists reports it free. Otherwise a
// base-36 timestamp suffix is appended and checked once; a second collision
// is logged and accepted.
func (m *Manager) EnsureUnique(candidate string, exists func(string) bool) string {
	if exists == nil || !exists(candidate) {
		return candidate
	}

	suffix := strconv.FormatInt(m.now().UnixMilli(), 36)
	if len(suffix) > 3 {
		suffix = suffix[3:]
	}
	base := truncate(candidate, MaxLength-len(suffix)-1)
	unique := base + "-" + suffix
	if base == "" {
		unique = suffix
	}

	if exists(unique) {
		m.logger.Warn("slug still collides after disambiguation", "slug", unique)
	}
	return unique
}

func truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		s = s[:n]
	}
	return strings.Trim(s, "-")
}
