package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/ports"
)

type fakeTopics struct {
	topics []string
	err    error
}

func (f fakeTopics) Topics(context.Context, domain.Category) ([]string, error) {
	return f.topics, f.err
}

type fakeGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []ports.GenerationRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req ports.GenerationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.text, f.err
}

type fakeRepo struct {
	mu        sync.Mutex
	inserted  []domain.Article
	ids       [][2]string
	taken     map[string]bool
	insertErr error
	failFor   domain.Category
}

func (f *fakeRepo) CategoryID(context.Context, domain.Category) (string, error) {
	return "cat-1", nil
}

func (f *fakeRepo) AuthorID(context.Context, domain.Category) (string, error) {
	return "author-1", nil
}

func (f *fakeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	return f.taken[slug], nil
}

func (f *fakeRepo) InsertArticle(_ context.Context, article domain.Article, categoryID, authorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil && (f.failFor == "" || f.failFor == article.Category) {
		return f.insertErr
	}
	f.inserted = append(f.inserted, article)
	f.ids = append(f.ids, [2]string{categoryID, authorID})
	return nil
}

type fakeBackup struct {
	mu       sync.Mutex
	existing map[string]bool
	saved    []domain.Article
	recent   map[domain.Category][]string
}

func newFakeBackup() *fakeBackup {
	return &fakeBackup{existing: map[string]bool{}, recent: map[domain.Category][]string{}}
}

func (f *fakeBackup) Exists(_ domain.Category, slug string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing[slug]
}

func (f *fakeBackup) SaveArticle(article domain.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, article)
	f.existing[article.Slug] = true
	return nil
}

func (f *fakeBackup) RecentTopics(category domain.Category) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recent[category], nil
}

func (f *fakeBackup) AddRecentTopic(category domain.Category, topic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recent[category] = append([]string{topic}, f.recent[category]...)
	return nil
}

type fakeProvider struct {
	name   string
	photos []domain.Photo
}

func (f fakeProvider) Name() string { return f.name }

func (f fakeProvider) Search(context.Context, ports.ImageSearch) ([]domain.Photo, error) {
	return f.photos, nil
}

type fakeNotifier struct {
	summaries []domain.BatchSummary
}

func (f *fakeNotifier) PublishSummary(_ context.Context, s domain.BatchSummary) error {
	f.summaries = append(f.summaries, s)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return "article-" + strings.Repeat("x", n)
	}
}
