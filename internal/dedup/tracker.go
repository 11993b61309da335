// Package dedup remembers topics and images already used during a batch.
package dedup

import (
	"strings"
	"sync"
)

// Tracker holds the used-topic and used-image sets for one batch run.
// Entries are never evicted.
type Tracker struct {
	mu     sync.Mutex
	topics map[string]struct{}
	images map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		topics: map[string]struct{}{},
		images: map[string]struct{}{},
	}
}

func topicKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// WasTopicUsed matches titles case-insensitively.
func (t *Tracker) WasTopicUsed(title string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.topics[topicKey(title)]
	return ok
}

// MarkTopicUsed records title; repeated calls are no-ops.
func (t *Tracker) MarkTopicUsed(title string) {
	key := topicKey(title)
	if key == "" {
		return
	}
	t.mu.Lock()
	t.topics[key] = struct{}{}
	t.mu.Unlock()
}

// WasImageUsed reports whether url was already selected.
func (t *Tracker) WasImageUsed(url string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.images[url]
	return ok
}

// MarkImageUsed records url; repeated calls are no-ops.
func (t *Tracker) MarkImageUsed(url string) {
	if url == "" {
		return
	}
	t.mu.Lock()
	t.images[url] = struct{}{}
	t.mu.Unlock()
}

// Counts returns the number of tracked topics and images.
func (t *Tracker) Counts() (topics, images int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.topics), len(t.images)
}
