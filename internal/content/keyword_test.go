package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordExtractorDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		title string
		want  string
	}{
		{"most frequent", "Solar panels power homes. Solar farms expand. Solar energy grows.", "Solar Power Gains", "solar"},
		{"tie keeps first seen", "orange grape orange grape", "", "orange"},
		{"stopwords only", "this that with from", "", DefaultKeyword},
		{"length bounds", "cat dog sun extraordinarily extraordinarily", "", DefaultKeyword},
		{"empty", "", "", DefaultKeyword},
		{"url fragments", "visit https www example example", "", "example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewKeywordExtractor(KeywordConfig{}).Extract(tt.text, tt.title))
		})
	}
}

func TestKeywordExtractorCustomStopwords(t *testing.T) {
	t.Parallel()

	k := NewKeywordExtractor(KeywordConfig{Stopwords: []string{"solar"}, Default: "misc"})
	assert.Equal(t, "power", k.Extract("Solar panels power homes.", "Solar Power Gains"))
	assert.Equal(t, "misc", k.Extract("solar", ""))
}
