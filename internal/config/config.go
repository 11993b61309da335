package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"NewsWriter/internal/domain"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "NEWSWRITER_CONFIG"
	envFileEnv      = "ENV_FILE"

	databaseURLEnv     = "DATABASE_URL"
	ollamaURLEnv       = "OLLAMA_URL"
	providerEnv        = "GENERATOR_PROVIDER"
	modelEnv           = "GENERATOR_MODEL"
	openAIKeyEnv       = "OPENAI_API_KEY"
	geminiKeyEnv       = "GEMINI_API_KEY"
	pexelsKeyEnv       = "PEXELS_API_KEY"
	unsplashKeyEnv     = "UNSPLASH_ACCESS_KEY"
	newsAPIKeyEnv      = "NEWS_API_KEY"
	telegramTokenEnv   = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv  = "TELEGRAM_CHAT_ID"
	dataRootEnv        = "DATA_ROOT"
	metricsAddrEnv     = "METRICS_ADDR"
	logLevelEnv        = "LOG_LEVEL"
	modeEnv            = "AI_WRITER_MODE"
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "qwen2.5:0.5b"
)

// Config holds high-level settings required across the application.
type Config struct {
	Mode          string             `yaml:"mode"`
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Generator     GeneratorConfig    `yaml:"generator"`
	Images        ImagesConfig       `yaml:"images"`
	Topics        TopicsConfig       `yaml:"topics"`
	Storage       StorageConfig      `yaml:"storage"`
	Batch         BatchConfig        `yaml:"batch"`
	Keywords      KeywordsConfig     `yaml:"keywords"`
	Notifications NotificationConfig `yaml:"notifications"`
	Metrics       MetricsConfig      `yaml:"metrics"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details. An empty DSN keeps
// the writer on the JSON backup store only.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines when batches run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// GeneratorConfig selects and tunes the text-generation backend.
type GeneratorConfig struct {
	Provider      string        `yaml:"provider"`
	Endpoint      string        `yaml:"endpoint"`
	Model         string        `yaml:"model"`
	APIKey        string        `yaml:"apiKey"`
	SystemPrompt  string        `yaml:"systemPrompt"`
	MaxTokens     int           `yaml:"maxTokens"`
	Temperature   float64       `yaml:"temperature"`
	TopP          float64       `yaml:"topP"`
	RepeatPenalty float64       `yaml:"repeatPenalty"`
	Timeout       time.Duration `yaml:"timeout"`
}

// ImagesConfig configures stock-photo providers and selection thresholds.
type ImagesConfig struct {
	PexelsAPIKey      string        `yaml:"pexelsApiKey"`
	UnsplashAccessKey string        `yaml:"unsplashAccessKey"`
	PexelsURL         string        `yaml:"pexelsUrl"`
	UnsplashURL       string        `yaml:"unsplashUrl"`
	PerPage           int           `yaml:"perPage"`
	MinWidth          int           `yaml:"minWidth"`
	MinHeight         int           `yaml:"minHeight"`
	Timeout           time.Duration `yaml:"timeout"`
}

// TopicsConfig lists topic sources in the order they are tried.
type TopicsConfig struct {
	Sources      []string            `yaml:"sources"`
	NewsAPIKey   string              `yaml:"newsApiKey"`
	NewsAPIURL   string              `yaml:"newsApiUrl"`
	TrendsURL    string              `yaml:"trendsUrl"`
	TrendsGeo    string              `yaml:"trendsGeo"`
	Feeds        map[string][]string `yaml:"feeds"`
	Pages        []PageConfig        `yaml:"pages"`
	Timeout      time.Duration       `yaml:"timeout"`
	MaxPerSource int                 `yaml:"maxPerSource"`
}

// PageConfig describes an HTML page whose headlines seed a category.
type PageConfig struct {
	Category string `yaml:"category"`
	URL      string `yaml:"url"`
	Selector string `yaml:"selector"`
}

// StorageConfig points at the JSON backup tree.
type StorageConfig struct {
	DataRoot string `yaml:"dataRoot"`
}

// BatchConfig controls a single batch run.
type BatchConfig struct {
	Categories          []string      `yaml:"categories"`
	ArticlesPerCategory int           `yaml:"articlesPerCategory"`
	InterCategoryDelay  time.Duration `yaml:"interCategoryDelay"`
	InterArticleDelay   time.Duration `yaml:"interArticleDelay"`
}

// KeywordsConfig overrides the SEO keyword blocklist.
type KeywordsConfig struct {
	Stopwords []string `yaml:"stopwords"`
	Fragments []string `yaml:"fragments"`
	Default   string   `yaml:"default"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads .env files, the YAML configuration (if present) and applies
// environment overrides.
func Load() Config {
	loadEnvFiles()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if fileCfg, err := Parse(raw); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles() {
	files := []string{".env.local", ".env"}
	if f := os.Getenv(envFileEnv); f != "" {
		files = []string{f}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("config: cannot load %s: %v", f, err)
		}
	}
}

// Categories returns the configured batch categories, skipping unknown names.
func (c Config) Categories() []domain.Category {
	if len(c.Batch.Categories) == 0 {
		return domain.AllCategories()
	}
	out := make([]domain.Category, 0, len(c.Batch.Categories))
	for _, name := range c.Batch.Categories {
		cat, err := domain.ParseCategory(name)
		if err != nil {
			log.Printf("config: %v (skipped)", err)
			continue
		}
		out = append(out, cat)
	}
	return out
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Database.DSN, databaseURLEnv)
	setString(&c.Generator.Provider, providerEnv)
	setString(&c.Generator.Model, modelEnv)
	setString(&c.Images.PexelsAPIKey, pexelsKeyEnv)
	setString(&c.Images.UnsplashAccessKey, unsplashKeyEnv)
	setString(&c.Topics.NewsAPIKey, newsAPIKeyEnv)
	setString(&c.Notifications.Telegram.BotToken, telegramTokenEnv)
	setString(&c.Notifications.Telegram.ChatID, telegramChatIDEnv)
	setString(&c.Storage.DataRoot, dataRootEnv)
	setString(&c.Metrics.Addr, metricsAddrEnv)
	setString(&c.Logging.Level, logLevelEnv)
	setString(&c.Mode, modeEnv)

	switch strings.ToLower(c.Generator.Provider) {
	case "openai":
		setString(&c.Generator.APIKey, openAIKeyEnv)
	case "gemini":
		setString(&c.Generator.APIKey, geminiKeyEnv)
	default:
		setString(&c.Generator.Endpoint, ollamaURLEnv)
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	mergeString(&base.Mode, override.Mode)
	mergeString(&base.Logging.Level, override.Logging.Level)
	mergeString(&base.Database.DSN, override.Database.DSN)

	mergeString(&base.Scheduler.CronExpression, override.Scheduler.CronExpression)
	mergeString(&base.Scheduler.Timezone, override.Scheduler.Timezone)

	g, o := &base.Generator, override.Generator
	mergeString(&g.Provider, o.Provider)
	mergeString(&g.Endpoint, o.Endpoint)
	mergeString(&g.Model, o.Model)
	mergeString(&g.APIKey, o.APIKey)
	mergeString(&g.SystemPrompt, o.SystemPrompt)
	mergeInt(&g.MaxTokens, o.MaxTokens)
	mergeFloat(&g.Temperature, o.Temperature)
	mergeFloat(&g.TopP, o.TopP)
	mergeFloat(&g.RepeatPenalty, o.RepeatPenalty)
	mergeDuration(&g.Timeout, o.Timeout)

	i, oi := &base.Images, override.Images
	mergeString(&i.PexelsAPIKey, oi.PexelsAPIKey)
	mergeString(&i.UnsplashAccessKey, oi.UnsplashAccessKey)
	mergeString(&i.PexelsURL, oi.PexelsURL)
	mergeString(&i.UnsplashURL, oi.UnsplashURL)
	mergeInt(&i.PerPage, oi.PerPage)
	mergeInt(&i.MinWidth, oi.MinWidth)
	mergeInt(&i.MinHeight, oi.MinHeight)
	mergeDuration(&i.Timeout, oi.Timeout)

	tp, ot := &base.Topics, override.Topics
	if len(ot.Sources) > 0 {
		tp.Sources = ot.Sources
	}
	mergeString(&tp.NewsAPIKey, ot.NewsAPIKey)
	mergeString(&tp.NewsAPIURL, ot.NewsAPIURL)
	mergeString(&tp.TrendsURL, ot.TrendsURL)
	mergeString(&tp.TrendsGeo, ot.TrendsGeo)
	if len(ot.Feeds) > 0 {
		tp.Feeds = ot.Feeds
	}
	if len(ot.Pages) > 0 {
		tp.Pages = ot.Pages
	}
	mergeDuration(&tp.Timeout, ot.Timeout)
	mergeInt(&tp.MaxPerSource, ot.MaxPerSource)

	mergeString(&base.Storage.DataRoot, override.Storage.DataRoot)

	b, ob := &base.Batch, override.Batch
	if len(ob.Categories) > 0 {
		b.Categories = ob.Categories
	}
	mergeInt(&b.ArticlesPerCategory, ob.ArticlesPerCategory)
	mergeDuration(&b.InterCategoryDelay, ob.InterCategoryDelay)
	mergeDuration(&b.InterArticleDelay, ob.InterArticleDelay)

	if len(override.Keywords.Stopwords) > 0 {
		base.Keywords.Stopwords = override.Keywords.Stopwords
	}
	if len(override.Keywords.Fragments) > 0 {
		base.Keywords.Fragments = override.Keywords.Fragments
	}
	mergeString(&base.Keywords.Default, override.Keywords.Default)

	mergeString(&base.Notifications.Telegram.BotToken, override.Notifications.Telegram.BotToken)
	mergeString(&base.Notifications.Telegram.ChatID, override.Notifications.Telegram.ChatID)
	mergeString(&base.Metrics.Addr, override.Metrics.Addr)

	return base
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func mergeFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func mergeDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Mode:      "cron",
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{CronExpression: "0 * * * *", Timezone: defaultTimezone, location: tz},
		Generator: GeneratorConfig{
			Provider:      "ollama",
			Endpoint:      defaultOllamaURL,
			Model:         defaultOllamaModel,
			MaxTokens:     1200,
			Temperature:   0.7,
			TopP:          0.9,
			RepeatPenalty: 1.1,
			Timeout:       120 * time.Second,
		},
		Images: ImagesConfig{
			PexelsURL:   "https://api.pexels.com/v1/search",
			UnsplashURL: "https://api.unsplash.com/search/photos",
			PerPage:     15,
			MinWidth:    1920,
			MinHeight:   1080,
			Timeout:     10 * time.Second,
		},
		Topics: TopicsConfig{
			Sources:      []string{"googletrends", "newsapi", "rss", "headlines", "predefined"},
			NewsAPIURL:   "https://newsapi.org/v2/top-headlines",
			TrendsURL:    "https://trends.google.com/trends/api/dailytrends",
			TrendsGeo:    "US",
			Timeout:      10 * time.Second,
			MaxPerSource: 10,
		},
		Storage: StorageConfig{DataRoot: "src/data"},
		Batch: BatchConfig{
			ArticlesPerCategory: 1,
			InterCategoryDelay:  5 * time.Second,
			InterArticleDelay:   3 * time.Second,
		},
	}
}
