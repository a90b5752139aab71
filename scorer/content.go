package scorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/prorec/core"
	"github.com/rushteam/prorec/pkg/textsim"
)

// 内容匹配分数构成：40% 词法（TF-IDF 余弦）+ 30% 关键词包含率 + 30% 语义向量余弦。
const (
	lexicalWeight     = 0.4
	containmentWeight = 0.3
	embeddingWeight   = 0.3
)

// ContentBased 是基于内容的打分策略。
//
// 候选没有可比文本、请求文本为空、embedding 后端不可用都属于
// 配置/数据缺陷：直接对该候选报错中止打分，而不是悄悄给中性分。
type ContentBased struct {
	Embedder core.EmbeddingService
}

func (s *ContentBased) Name() string { return core.StrategyContentBased }

func (s *ContentBased) Score(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (core.ScoreOutcome, error) {
	candText := c.Product.Text()
	if strings.TrimSpace(candText) == "" {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeInvalidInput,
			fmt.Sprintf("scorer: content: product %q has no text to compare (check catalog data)", c.Product.ID))
	}
	if strings.TrimSpace(rctx.RequestText) == "" {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeInvalidInput,
			"scorer: content: request text is empty")
	}
	if s.Embedder == nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeUnavailable,
			"scorer: content: embedding backend not configured, set the embedding endpoint")
	}

	lexical := textsim.TFIDFCosine(rctx.RequestText, candText)
	containment := containmentRatio(rctx.Requirements, candText)

	vecs, err := s.Embedder.Encode(ctx, []string{rctx.RequestText, candText})
	if err != nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
			fmt.Sprintf("scorer: content: embedding call failed: %v (check embedding endpoint health)", err))
	}
	if len(vecs) != 2 {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
			fmt.Sprintf("scorer: content: embedding backend returned %d vectors, want 2", len(vecs)))
	}
	semantic := textsim.CosineVec(vecs[0], vecs[1])
	if semantic < 0 {
		semantic = 0
	}

	return core.ScoreOf(lexicalWeight*lexical + containmentWeight*containment + embeddingWeight*semantic), nil
}

// containmentRatio 计算需求关键词在候选文本中的精确包含率：
// 需求条目分词后的全部 token 中，出现在候选文本里的比例。
func containmentRatio(requirements []string, candText string) float64 {
	seen := make(map[string]bool)
	var terms []string
	for _, req := range requirements {
		for _, tok := range textsim.Tokenize(req) {
			if !seen[tok] {
				seen[tok] = true
				terms = append(terms, tok)
			}
		}
	}
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(candText)
	hit := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			hit++
		}
	}
	return float64(hit) / float64(len(terms))
}

var _ Strategy = (*ContentBased)(nil)
