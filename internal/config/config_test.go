package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsWriter/internal/domain"
)

func TestParseAndMerge(t *testing.T) {
	t.Parallel()

	raw := []byte(`
generator:
  provider: openai
  model: gpt-4o-mini
  timeout: 45s
images:
  perPage: 20
batch:
  categories: [technology, science]
  interCategoryDelay: 1s
topics:
  sources: [rss, predefined]
  feeds:
    technology:
      - https://example.com/tech.xml
`)
	fileCfg, err := Parse(raw)
	require.NoError(t, err)

	cfg := mergeConfig(defaultConfig(), fileCfg)
	assert.Equal(t, "openai", cfg.Generator.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Generator.Model)
	assert.Equal(t, 45*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, 1200, cfg.Generator.MaxTokens)
	assert.Equal(t, 20, cfg.Images.PerPage)
	assert.Equal(t, 1920, cfg.Images.MinWidth)
	assert.Equal(t, time.Second, cfg.Batch.InterCategoryDelay)
	assert.Equal(t, 3*time.Second, cfg.Batch.InterArticleDelay)
	assert.Equal(t, []string{"rss", "predefined"}, cfg.Topics.Sources)
	assert.Equal(t, []string{"https://example.com/tech.xml"}, cfg.Topics.Feeds["technology"])
	assert.Equal(t, []domain.Category{domain.CategoryTechnology, domain.CategoryScience}, cfg.Categories())
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("generator: [unterminated"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	assert.Equal(t, "0 * * * *", cfg.Scheduler.CronExpression)
	assert.Equal(t, "qwen2.5:0.5b", cfg.Generator.Model)
	assert.Equal(t, 120*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, "src/data", cfg.Storage.DataRoot)
	assert.Equal(t, domain.AllCategories(), cfg.Categories())
}

func TestCategoriesSkipsUnknown(t *testing.T) {
	t.Parallel()

	cfg := Config{Batch: BatchConfig{Categories: []string{"World", "sports"}}}
	assert.Equal(t, []domain.Category{domain.CategoryWorld}, cfg.Categories())
}

func TestLoadAppliesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheduler:\n  timezone: Mars/Olympus\nstorage:\n  dataRoot: /from/file\n"), 0o600))

	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PEXELS_API_KEY=from-env-file\n"), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(envFileEnv, envFile)
	t.Setenv(dataRootEnv, "/from/env")
	t.Setenv(pexelsKeyEnv, "")
	t.Setenv(ollamaURLEnv, "http://ollama:11434")

	cfg := Load()
	assert.Equal(t, "/from/env", cfg.Storage.DataRoot)
	assert.Equal(t, "http://ollama:11434", cfg.Generator.Endpoint)
	assert.Equal(t, "UTC", cfg.Scheduler.Location().String())
}
