package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"NewsWriter/internal/config"
	"NewsWriter/internal/domain"
)

func testConfig(t *testing.T, endpoint string) config.Config {
	t.Helper()
	return config.Config{
		Mode:      ModeRun,
		Scheduler: config.SchedulerConfig{CronExpression: "0 * * * *"},
		Generator: config.GeneratorConfig{Provider: "ollama", Endpoint: endpoint, Model: "qwen2.5:0.5b", Timeout: 2 * time.Second},
		Topics:    config.TopicsConfig{Sources: []string{"predefined"}},
		Storage:   config.StorageConfig{DataRoot: t.TempDir()},
		Batch:     config.BatchConfig{Categories: []string{"world", "science"}},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnceWritesBackupWhenGeneratorFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"model 'qwen2.5:0.5b' not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	application, err := New(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer application.Close()

	var out bytes.Buffer
	application.SetOutput(&out)

	summary, err := application.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce error: %v", err)
	}
	if len(summary.Results) != 2 || summary.Succeeded() != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Results[0].Category != domain.CategoryWorld || summary.Results[1].Category != domain.CategoryScience {
		t.Fatalf("categories out of order: %+v", summary.Results)
	}

	for _, r := range summary.Results {
		path := filepath.Join(cfg.Storage.DataRoot, string(r.Category), r.Slug+".json")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("backup file missing for %s: %v", r.Category, err)
		}
		if _, err := os.Stat(filepath.Join(cfg.Storage.DataRoot, string(r.Category), "index.json")); err != nil {
			t.Fatalf("index missing for %s: %v", r.Category, err)
		}
	}
	if !bytes.Contains(out.Bytes(), []byte(`"runAt"`)) {
		t.Fatalf("summary not printed: %s", out.String())
	}
}

func TestGenerateCategory(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), testConfig(t, "http://127.0.0.1:1"), quietLogger())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer application.Close()
	application.SetOutput(io.Discard)

	summary := application.GenerateCategory(context.Background(), domain.CategoryHealth)
	if len(summary.Results) != 1 || !summary.Results[0].OK {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestNewRejectsBadCron(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Scheduler.CronExpression = "whenever"
	if _, err := New(context.Background(), cfg, quietLogger()); err == nil {
		t.Fatal("expected scheduler configuration error")
	}
}

func TestNewUnknownProviderDisablesGenerator(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "")
	cfg.Generator.Provider = "mystery"
	application, err := New(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer application.Close()
	application.SetOutput(io.Discard)

	summary := application.GenerateCategory(context.Background(), domain.CategoryBusiness)
	if !summary.Results[0].OK {
		t.Fatalf("expected templated article, got %+v", summary.Results[0])
	}
}

func TestRunUnknownMode(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), testConfig(t, "http://127.0.0.1:1"), quietLogger())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer application.Close()

	if err := application.Run(context.Background(), "sometimes"); err == nil {
		t.Fatal("expected unknown mode error")
	}
}
