// Package config 提供引擎配置的加载与校验（YAML）。
//
// 权重没有默认值：悄悄猜一组权重会让准确率回归无从察觉，缺失或
// 不合法的权重配置在加载期直接报错。
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/prorec/core"
)

// Config 是引擎的完整配置。
type Config struct {
	Engine    EngineConfig   `yaml:"engine"`
	Redis     RedisConfig    `yaml:"redis"`
	LLM       EndpointConfig `yaml:"llm"`
	Embedding EndpointConfig `yaml:"embedding"`
	Graph     GraphConfig    `yaml:"graph"`
}

// EngineConfig 是引擎行为参数。
type EngineConfig struct {
	// Weights 四个策略的融合权重，必须配置且和为 1.0（±0.01）
	Weights core.Weights `yaml:"weights"`

	// CacheTTLSeconds 推荐结果缓存生存期（秒），默认 3600
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`

	// RequestTimeout 单次推荐请求的总体超时，默认 8s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// CandidateTarget 候选生成的目标数量，默认 40
	CandidateTarget int `yaml:"candidate_target"`

	// ScoreConcurrency 同时打分的候选数上限，默认 8
	ScoreConcurrency int `yaml:"score_concurrency"`

	// SourceTimeout 单个召回源的超时时间，默认 3s
	SourceTimeout time.Duration `yaml:"source_timeout"`

	// Filters 候选过滤的 CEL 保留条件表达式（可选）
	Filters []string `yaml:"filters"`
}

// RedisConfig 是缓存后端连接参数。
type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// EndpointConfig 是 OpenAI 兼容服务的端点参数。
type EndpointConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Model   string `yaml:"model"`
}

// GraphConfig 是图推荐服务参数。
type GraphConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Load 从 YAML 文件加载并校验配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置合法性（目前只有权重不变式；连接可达性由引擎构造时探测）。
func (c *Config) Validate() error {
	if err := c.Engine.Weights.Validate(); err != nil {
		return fmt.Errorf("engine.weights: %w", err)
	}
	return nil
}
