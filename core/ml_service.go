package core

import "context"

// LLMService 是大语言模型服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（service）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - 需求抽取：从自由文本枚举离散需求条目
//   - 语义打分：对「候选商品 × 需求集合」做 0~1 契合度评分
//
// 实现：
//   - service.OpenAIChat 实现此接口（OpenAI 兼容端点）
type LLMService interface {
	// Complete 发送 prompt 并返回模型的自由文本回复。
	Complete(ctx context.Context, prompt string) (string, error)
}

// EmbeddingService 是文本向量化服务的领域接口。
//
// 使用场景：
//   - 基于内容打分中的语义相似度（请求文本 vs 商品文本）
//
// 实现：
//   - service.OpenAIEmbedder 实现此接口
type EmbeddingService interface {
	// Encode 批量向量化文本，返回与输入等长的向量列表。
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}
