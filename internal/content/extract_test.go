package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		fallback string
		want     string
	}{
		{
			name:     "first qualifying line",
			text:     "Quantum Computing Breakthroughs Transform Research\nScientists announced...",
			fallback: "quantum",
			want:     "Quantum Computing Breakthroughs Transform Research",
		},
		{
			name:     "skips preamble",
			text:     "Here is a title that is long enough to count\nActual Headline About Space Travel Today",
			fallback: "space",
			want:     "Actual Headline About Space Travel Today",
		},
		{
			name:     "skips short and long lines",
			text:     "Too short\n" + strings.Repeat("x", 101) + "\nThis line has exactly the right size",
			fallback: "fallback",
			want:     "This line has exactly the right size",
		},
		{
			name:     "fallback verbatim",
			text:     "tiny\nsmall",
			fallback: "5G rollout",
			want:     "5G rollout",
		},
		{
			name:     "empty text",
			text:     "",
			fallback: "World Headline",
			want:     "World Headline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.text, tt.fallback))
		})
	}
}

func TestExtractTitleScansLeadingLinesOnly(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 20)
	for i := 0; i < 15; i++ {
		lines = append(lines, "short")
	}
	lines = append(lines, "A perfectly sized headline far down the text")
	assert.Equal(t, "fallback", ExtractTitle(strings.Join(lines, "\n"), "fallback"))
}

func TestExtractTitleLengthInvariant(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"a\nb\nc",
		strings.Repeat("word ", 40),
		"Certainly! Here you go\nTitle: A Good Title For The Test Case",
		"Short\nMedium sized line of text\n" + strings.Repeat("z", 300),
	}
	const fallback = "fallback headline"
	for _, in := range inputs {
		got := ExtractTitle(Sanitize(in), fallback)
		if got == fallback {
			continue
		}
		assert.GreaterOrEqual(t, len(got), 20, "input %q", in)
		assert.LessOrEqual(t, len(got), 100, "input %q", in)
	}
}

func TestExtractSummary(t *testing.T) {
	t.Parallel()

	text := "Short one. This sentence is long enough to be counted as summary. " +
		"Another sentence that easily clears the thirty character bar! " +
		"A third qualifying sentence is right here for you? " +
		"A fourth sentence that should never be included at all."

	got := ExtractSummary(text)
	require.Len(t, got, 3)
	assert.Equal(t, "This sentence is long enough to be counted as summary.", got[0])
	assert.Equal(t, "Another sentence that easily clears the thirty character bar!", got[1])
	assert.Equal(t, "A third qualifying sentence is right here for you?", got[2])
}

func TestExtractSummaryFiller(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{SummaryFiller}, ExtractSummary(""))
	assert.Equal(t, []string{SummaryFiller}, ExtractSummary("Tiny. Also tiny.\nHeadline Without Punctuation At All"))
}

func TestExtractBodyPrimary(t *testing.T) {
	t.Parallel()

	text := "Here's the article:\nThe opening paragraph has plenty of words in it.\nok\nSecond paragraph also carries enough text."
	got := ExtractBody(text, "science", "headline")
	assert.Equal(t, "The opening paragraph has plenty of words in it.\n\nSecond paragraph also carries enough text.", got)
}

func TestExtractBodyLenient(t *testing.T) {
	t.Parallel()

	got := ExtractBody("Tiny line one\nTiny line two", "science", "headline")
	assert.Equal(t, "Tiny line one\n\nTiny line two", got)
}

func TestExtractBodyVerbatim(t *testing.T) {
	t.Parallel()

	got := ExtractBody("Here is everything", "science", "headline")
	assert.Equal(t, "Here is everything", got)
}

func TestExtractBodyNeverEmpty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "\n\n"} {
		got := ExtractBody(in, "technology", "5G rollout")
		require.NotEmpty(t, got)
		assert.Contains(t, got, "technology")
		assert.Contains(t, got, "5G rollout")
		assert.GreaterOrEqual(t, strings.Count(got, "\n\n"), 3)
	}
}

func TestFallbackBodyDefaults(t *testing.T) {
	t.Parallel()

	got := FallbackBody("", "")
	assert.Contains(t, got, "news")
	assert.Contains(t, got, "the latest developments")
}

func TestGenerateMetaDescription(t *testing.T) {
	t.Parallel()

	short := "Markets steadied on Tuesday after a volatile week."
	assert.Equal(t, short, GenerateMetaDescription([]string{short, "ignored"}, "Title"))

	long := strings.TrimSpace(strings.Repeat("word ", 100))
	require.Len(t, long, 499)
	got := GenerateMetaDescription([]string{long}, "Title")
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 140)
	assert.True(t, strings.HasSuffix(got, "word…"), "got %q", got)

	templated := GenerateMetaDescription(nil, "Global Markets")
	assert.Contains(t, templated, "global markets")
	assert.LessOrEqual(t, utf8.RuneCountInString(templated), 140)

	longTitle := GenerateMetaDescription([]string{"  "}, strings.Repeat("Long Title ", 20))
	assert.LessOrEqual(t, utf8.RuneCountInString(longTitle), 140)
}

func TestGenerateMetaDescriptionUnbrokenText(t *testing.T) {
	t.Parallel()

	got := GenerateMetaDescription([]string{strings.Repeat("a", 500)}, "t")
	assert.Equal(t, 138, utf8.RuneCountInString(got))
}

func TestWithoutLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "body one\nbody two", WithoutLine("Headline\nbody one\nbody two", "Headline"))
	assert.Equal(t, "a\nb", WithoutLine("a\nb", "missing"))
	assert.Equal(t, "a\nb", WithoutLine("a\nb", ""))
}
