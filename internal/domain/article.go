package domain

import "time"

// Image references a stock photo attached to an article.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Prompt string `json:"prompt"`
}

// IsPlaceholder reports whether no real photo was resolved.
func (i Image) IsPlaceholder() bool {
	return i.URL == ""
}

// Article is the fully assembled draft handed to persistence.
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Summary         []string  `json:"summary"`
	Body            string    `json:"body"`
	MetaDescription string    `json:"metaDescription"`
	SEOKeyword      string    `json:"seoKeyword"`
	Category        Category  `json:"category"`
	PublishDate     time.Time `json:"publishDate"`
	Image           *Image    `json:"image,omitempty"`
}

// IndexEntry is an article without its body, as stored in per-category indexes.
type IndexEntry struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Summary         []string  `json:"summary"`
	MetaDescription string    `json:"metaDescription"`
	SEOKeyword      string    `json:"seoKeyword"`
	Category        Category  `json:"category"`
	PublishDate     time.Time `json:"publishDate"`
	Image           *Image    `json:"image,omitempty"`
}

// Entry strips the body for index listings.
func (a Article) Entry() IndexEntry {
	return IndexEntry{
		ID:              a.ID,
		Title:           a.Title,
		Slug:            a.Slug,
		Summary:         a.Summary,
		MetaDescription: a.MetaDescription,
		SEOKeyword:      a.SEOKeyword,
		Category:        a.Category,
		PublishDate:     a.PublishDate,
		Image:           a.Image,
	}
}

// WordCount counts whitespace separated words of the body.
func (a Article) WordCount() int {
	count := 0
	inWord := false
	for _, r := range a.Body {
		switch r {
		case ' ', '\n', '\t', '\r':
			inWord = false
		default:
			if !inWord {
				count++
			}
			inWord = true
		}
	}
	return count
}

// ReadingTime estimates minutes at 200 words per minute, rounded up.
func (a Article) ReadingTime() int {
	words := a.WordCount()
	if words == 0 {
		return 1
	}
	return (words + 199) / 200
}
