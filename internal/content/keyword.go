package content

import (
	"regexp"
	"strings"
)

// DefaultKeyword is returned when no token qualifies.
const DefaultKeyword = "news"

var tokenExpr = regexp.MustCompile(`[a-z][a-z0-9]*`)

// DefaultStopwords covers common English function words plus words that
// leak from generation prompts.
var DefaultStopwords = []string{
	"about", "above", "after", "again", "against", "also", "although", "among", "another", "around",
	"because", "been", "before", "being", "below", "between", "both", "came", "come", "could",
	"does", "doing", "down", "during", "each", "even", "every", "first", "from", "further",
	"have", "having", "here", "hers", "herself", "himself", "into", "itself", "just", "like",
	"made", "make", "many", "more", "most", "much", "must", "myself", "need", "never",
	"next", "only", "other", "ours", "ourselves", "over", "same", "says", "said", "should",
	"since", "some", "such", "than", "that", "their", "theirs", "them", "themselves", "then",
	"there", "these", "they", "this", "those", "through", "under", "until", "upon", "very",
	"want", "well", "were", "what", "when", "where", "which", "while", "will", "with",
	"within", "without", "would", "your", "yours", "yourself", "yourselves", "already", "still", "however",
	"year", "years", "today", "time", "times", "week", "according", "including", "recent", "recently",
	"latest", "developments", "development", "update", "updates", "people", "experts", "expert", "analysts", "several",
	"article", "articles", "write", "writing", "written", "words", "word", "human", "natural", "content",
	"paragraph", "paragraphs", "sentence", "sentences", "headline", "title", "summary", "professional", "journalist", "readers",
	"engaging", "informative", "comprehensive", "analysis", "insights", "important", "requirements", "include", "avoid", "style",
	"tone", "voice", "phrases", "forbidden", "news", "story", "stories", "report", "reports", "coverage",
}

// DefaultFragments excludes tokens containing any of these substrings.
var DefaultFragments = []string{"http", "www", "html", "href"}

// KeywordConfig tunes SEO keyword extraction.
type KeywordConfig struct {
	Stopwords []string
	Fragments []string
	Default   string
	MinLen    int
	MaxLen    int
}

// KeywordExtractor picks the most frequent qualifying token.
type KeywordExtractor struct {
	stopwords map[string]struct{}
	fragments []string
	fallback  string
	minLen    int
	maxLen    int
}

// NewKeywordExtractor builds an extractor; zero fields take defaults.
func NewKeywordExtractor(cfg KeywordConfig) *KeywordExtractor {
	if cfg.Stopwords == nil {
		cfg.Stopwords = DefaultStopwords
	}
	if cfg.Fragments == nil {
		cfg.Fragments = DefaultFragments
	}
	if cfg.Default == "" {
		cfg.Default = DefaultKeyword
	}
	if cfg.MinLen <= 0 {
		cfg.MinLen = 4
	}
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = 14
	}

	stop := make(map[string]struct{}, len(cfg.Stopwords))
	for _, w := range cfg.Stopwords {
		stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &KeywordExtractor{
		stopwords: stop,
		fragments: cfg.Fragments,
		fallback:  strings.ToLower(cfg.Default),
		minLen:    cfg.MinLen,
		maxLen:    cfg.MaxLen,
	}
}

// Extract counts tokens across title and text. Ties go to the token seen
// first.
func (k *KeywordExtractor) Extract(text, title string) string {
	counts := map[string]int{}
	var order []string
	for _, tok := range tokenExpr.FindAllString(strings.ToLower(title+" "+text), -1) {
		if !k.qualifies(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	best, bestCount := k.fallback, 0
	for _, tok := range order {
		if counts[tok] > bestCount {
			best, bestCount = tok, counts[tok]
		}
	}
	return best
}

func (k *KeywordExtractor) qualifies(tok string) bool {
	if n := len(tok); n < k.minLen || n > k.maxLen {
		return false
	}
	if _, stop := k.stopwords[tok]; stop {
		return false
	}
	for _, f := range k.fragments {
		if f != "" && strings.Contains(tok, f) {
			return false
		}
	}
	return true
}
