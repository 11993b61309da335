package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsWriter/internal/domain"
)

func testArticle(id, slug string, at time.Time) domain.Article {
	return domain.Article{
		ID:              id,
		Title:           "Title for " + slug,
		Slug:            slug,
		Summary:         []string{"A summary sentence that is long enough."},
		Body:            "Body paragraph one.\n\nBody paragraph two.",
		MetaDescription: "A summary sentence that is long enough.",
		SEOKeyword:      "summary",
		Category:        domain.CategoryTechnology,
		PublishDate:     at,
		Image:           &domain.Image{URL: "https://img/" + slug, Alt: "alt", Prompt: "prompt"},
	}
}

func TestJSONStoreSaveAndExists(t *testing.T) {
	t.Parallel()

	store := NewJSONStore(t.TempDir())
	at := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	article := testArticle("id-1", "first-story", at)

	assert.False(t, store.Exists(domain.CategoryTechnology, "first-story"))
	require.NoError(t, store.SaveArticle(article))
	assert.True(t, store.Exists(domain.CategoryTechnology, "first-story"))
	assert.False(t, store.Exists(domain.CategoryWorld, "first-story"))

	raw, err := os.ReadFile(filepath.Join(store.root, "technology", "first-story.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"id\": \"id-1\""), "file must be pretty printed: %s", raw)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"id", "title", "slug", "summary", "body", "metaDescription", "seoKeyword", "category", "publishDate", "image"} {
		assert.Contains(t, decoded, key)
	}
}

func TestJSONStoreIndexNewestFirstAndUpsert(t *testing.T) {
	t.Parallel()

	store := NewJSONStore(t.TempDir())
	base := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveArticle(testArticle("id-1", "older", base)))
	require.NoError(t, store.SaveArticle(testArticle("id-2", "newer", base.Add(time.Hour))))
	require.NoError(t, store.SaveArticle(testArticle("id-0", "oldest", base.Add(-time.Hour))))

	updated := testArticle("id-1", "older", base)
	updated.Title = "Rewritten title for older"
	require.NoError(t, store.SaveArticle(updated))

	index, err := store.ReadIndex(domain.CategoryTechnology)
	require.NoError(t, err)
	require.Equal(t, 3, index.ArticleCount)
	require.Len(t, index.Articles, 3)
	assert.Equal(t, "id-2", index.Articles[0].ID)
	assert.Equal(t, "id-1", index.Articles[1].ID)
	assert.Equal(t, "Rewritten title for older", index.Articles[1].Title)
	assert.Equal(t, "id-0", index.Articles[2].ID)
	assert.False(t, index.LastUpdated.IsZero())

	raw, err := os.ReadFile(filepath.Join(store.root, "technology", indexFile))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "\"body\"")
}

func TestJSONStoreRecentTopics(t *testing.T) {
	t.Parallel()

	store := NewJSONStore(t.TempDir())

	recent, err := store.RecentTopics(domain.CategoryHealth)
	require.NoError(t, err)
	assert.Empty(t, recent)

	require.NoError(t, store.AddRecentTopic(domain.CategoryHealth, "Sleep research"))
	require.NoError(t, store.AddRecentTopic(domain.CategoryHealth, "Flu season"))
	require.NoError(t, store.AddRecentTopic(domain.CategoryHealth, "sleep research"))
	require.NoError(t, store.AddRecentTopic(domain.CategoryHealth, "  "))

	recent, err = store.RecentTopics(domain.CategoryHealth)
	require.NoError(t, err)
	assert.Equal(t, []string{"sleep research", "Flu season"}, recent)
}

func TestJSONStoreRecentTopicsCapped(t *testing.T) {
	t.Parallel()

	store := NewJSONStore(t.TempDir())
	for i := 0; i < 60; i++ {
		require.NoError(t, store.AddRecentTopic(domain.CategoryWorld, fmt.Sprintf("topic %d", i)))
	}

	recent, err := store.RecentTopics(domain.CategoryWorld)
	require.NoError(t, err)
	require.Len(t, recent, 50)
	assert.Equal(t, "topic 59", recent[0])
	assert.Equal(t, "topic 10", recent[49])
}

func TestJSONStoreRejectsEmptySlug(t *testing.T) {
	t.Parallel()

	store := NewJSONStore(t.TempDir())
	assert.Error(t, store.SaveArticle(domain.Article{Category: domain.CategoryWorld}))
}

func TestJSONStoreCorruptIndex(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "world"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "world", indexFile), []byte("{broken"), 0o644))

	store := NewJSONStore(root)
	article := testArticle("id-9", "story", time.Now())
	article.Category = domain.CategoryWorld
	assert.Error(t, store.SaveArticle(article))
}
