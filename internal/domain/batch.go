package domain

import "time"

// BatchResult is the outcome of one category within a batch.
type BatchResult struct {
	Category Category `json:"category"`
	OK       bool     `json:"ok"`
	Slug     string   `json:"slug,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// BatchSummary is printed once a batch completes.
type BatchSummary struct {
	RunAt   time.Time     `json:"runAt"`
	Results []BatchResult `json:"results"`
}

// Succeeded counts successful categories.
func (s BatchSummary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.OK {
			n++
		}
	}
	return n
}

// Photo is a single image-search hit.
type Photo struct {
	URL         string
	Width       int
	Height      int
	Attribution string
}
