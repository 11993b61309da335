package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/ports"
)

const (
	indexFile        = "index.json"
	recentTopicsFile = "_recent-topics.json"
	maxRecentTopics  = 50
)

// Index aggregates the articles of one category, newest first.
type Index struct {
	Articles     []domain.IndexEntry `json:"articles"`
	LastUpdated  time.Time           `json:"lastUpdated"`
	ArticleCount int                 `json:"articleCount"`
}

// JSONStore keeps a pretty-printed JSON copy of every article under
// <root>/<category>/<slug>.json plus a per-category index.
type JSONStore struct {
	root string
	now  func() time.Time
	mu   sync.Mutex
}

var _ ports.BackupStore = (*JSONStore)(nil)

// NewJSONStore roots the store at dir.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{root: dir, now: time.Now}
}

func (s *JSONStore) categoryDir(category domain.Category) string {
	return filepath.Join(s.root, string(category))
}

// Exists reports whether a backup file for slug is present.
func (s *JSONStore) Exists(category domain.Category, slug string) bool {
	_, err := os.Stat(filepath.Join(s.categoryDir(category), slug+".json"))
	return err == nil
}

// SaveArticle writes the article file and refreshes the category index.
func (s *JSONStore) SaveArticle(article domain.Article) error {
	if article.Slug == "" {
		return fmt.Errorf("save article: empty slug")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.categoryDir(article.Category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create category dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, article.Slug+".json"), article); err != nil {
		return fmt.Errorf("write article: %w", err)
	}

	index, err := s.readIndex(article.Category)
	if err != nil {
		return err
	}
	index.Articles = upsertEntry(index.Articles, article.Entry())
	index.ArticleCount = len(index.Articles)
	index.LastUpdated = s.now().UTC()

	if err := writeJSON(filepath.Join(dir, indexFile), index); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// ReadIndex loads the category index; a missing file yields an empty index.
func (s *JSONStore) ReadIndex(category domain.Category) (Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIndex(category)
}

func (s *JSONStore) readIndex(category domain.Category) (Index, error) {
	var index Index
	err := readJSON(filepath.Join(s.categoryDir(category), indexFile), &index)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Index{}, fmt.Errorf("read index: %w", err)
	}
	return index, nil
}

func upsertEntry(entries []domain.IndexEntry, entry domain.IndexEntry) []domain.IndexEntry {
	out := make([]domain.IndexEntry, 0, len(entries)+1)
	out = append(out, entry)
	for _, e := range entries {
		if e.ID != entry.ID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishDate.After(out[j].PublishDate)
	})
	return out
}

// RecentTopics returns the category's recently written topics, newest first.
func (s *JSONStore) RecentTopics(category domain.Category) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readRecent(category)
}

func (s *JSONStore) readRecent(category domain.Category) ([]string, error) {
	var recent []string
	err := readJSON(filepath.Join(s.categoryDir(category), recentTopicsFile), &recent)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read recent topics: %w", err)
	}
	return recent, nil
}

// AddRecentTopic pushes topic to the front, dropping duplicates and keeping
// at most 50 entries.
func (s *JSONStore) AddRecentTopic(category domain.Category, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recent, err := s.readRecent(category)
	if err != nil {
		return err
	}

	next := make([]string, 0, len(recent)+1)
	next = append(next, topic)
	for _, r := range recent {
		if !strings.EqualFold(r, topic) {
			next = append(next, r)
		}
	}
	if len(next) > maxRecentTopics {
		next = next[:maxRecentTopics]
	}

	dir := s.categoryDir(category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create category dir: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, recentTopicsFile), next); err != nil {
		return fmt.Errorf("write recent topics: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// writeJSON replaces path atomically with the indented encoding of v.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
