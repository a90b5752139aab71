package service

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rushteam/prorec/core"
)

// OpenAIEmbedder 是基于 langchaingo 的向量化客户端，走 OpenAI 兼容的
// embeddings 接口。
type OpenAIEmbedder struct {
	embedder embeddings.Embedder
}

// NewOpenAIEmbedder 创建向量化客户端。baseURL 为 OpenAI 兼容端点根地址，
// token 对无鉴权的本地服务可传 "none"。
func NewOpenAIEmbedder(baseURL, token, model string) (*OpenAIEmbedder, error) {
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}
	return &OpenAIEmbedder{embedder: embedder}, nil
}

// Encode 批量向量化文本，返回与输入等长的向量列表。
func (e *OpenAIEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	return e.embedder.EmbedDocuments(ctx, texts)
}

var _ core.EmbeddingService = (*OpenAIEmbedder)(nil)
