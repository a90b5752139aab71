package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
engine:
  weights:
    collaborative: 0.3
    content_based: 0.3
    knowledge_graph: 0.2
    semantic: 0.2
  cache_ttl_seconds: 600
  request_timeout: 5s
  candidate_target: 30
  score_concurrency: 4
  source_timeout: 2s
  filters:
    - product.price < 10000.0
redis:
  addr: localhost:6379
  db: 1
llm:
  base_url: http://localhost:8000/v1
  model: qwen2.5
graph:
  endpoint: http://localhost:9000/recommend
  timeout: 3s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.Weights.Collaborative != 0.3 || cfg.Engine.Weights.Semantic != 0.2 {
		t.Errorf("weights = %+v", cfg.Engine.Weights)
	}
	if cfg.Engine.CacheTTLSeconds != 600 {
		t.Errorf("CacheTTLSeconds = %d, want 600", cfg.Engine.CacheTTLSeconds)
	}
	if cfg.Engine.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.Engine.RequestTimeout)
	}
	if len(cfg.Engine.Filters) != 1 {
		t.Errorf("Filters = %v", cfg.Engine.Filters)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 1 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Graph.Endpoint == "" {
		t.Errorf("graph endpoint missing")
	}
}

func TestLoad_RejectsBadWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights string
	}{
		{"missing weights", ""},
		{"sum too low", `
    collaborative: 0.3
    content_based: 0.3
    knowledge_graph: 0.2
    semantic: 0.1`},
		{"sum too high", `
    collaborative: 0.5
    content_based: 0.3
    knowledge_graph: 0.2
    semantic: 0.2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "engine:\n  weights:"+tt.weights+"\n")
			if _, err := Load(path); err == nil {
				t.Fatal("Load() expected weight validation error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "engine: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected parse error")
	}
}
