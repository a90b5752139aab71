// Package service 包含外部模型服务的客户端实现（接口定义在 core 包）。
//
// 当前提供 OpenAI 兼容端点的两类客户端：
//   - OpenAIChat     实现 core.LLMService（需求抽取、语义打分）
//   - OpenAIEmbedder 实现 core.EmbeddingService（语义相似度）
//
// 本地部署的兼容服务（vLLM、Ollama、LocalAI 等）同样适用。
package service

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rushteam/prorec/core"
)

// OpenAIChat 是基于 langchaingo 的 LLM 客户端，走 OpenAI 兼容的 chat 接口。
type OpenAIChat struct {
	client      llms.Model
	temperature float64
	timeout     time.Duration
}

// ChatOption 配置 OpenAIChat。
type ChatOption func(*OpenAIChat)

// WithTemperature 设置采样温度；打分/抽取场景建议 0（确定性输出）。
func WithTemperature(t float64) ChatOption {
	return func(c *OpenAIChat) { c.temperature = t }
}

// WithChatTimeout 设置单次调用超时。
func WithChatTimeout(d time.Duration) ChatOption {
	return func(c *OpenAIChat) { c.timeout = d }
}

// NewOpenAIChat 创建 LLM 客户端。baseURL 为 OpenAI 兼容端点根地址，
// token 对无鉴权的本地服务可传 "none"。
func NewOpenAIChat(baseURL, token, model string, opts ...ChatOption) (*OpenAIChat, error) {
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	c := &OpenAIChat{
		client:  client,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete 发送 prompt 并返回模型回复的原始文本。
func (c *OpenAIChat) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt,
		llms.WithTemperature(c.temperature))
	if err != nil {
		return "", err
	}
	return out, nil
}

var _ core.LLMService = (*OpenAIChat)(nil)
