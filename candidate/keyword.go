package candidate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/prorec/core"
)

// KeywordSource 基于商品目录的关键词检索召回候选。
// 查询串由前几条需求拼接而成，结果数量约束为 target/2。
type KeywordSource struct {
	Catalog core.CatalogStore

	// QueryRequirements 拼入查询串的需求条数，默认 3。
	QueryRequirements int
}

func (s *KeywordSource) Name() string { return "candidate.keyword" }

func (s *KeywordSource) Generate(ctx context.Context, rctx *core.RecommendContext, target int) ([]*core.Candidate, error) {
	if s.Catalog == nil {
		return nil, fmt.Errorf("keyword source: catalog store is required")
	}

	n := s.QueryRequirements
	if n <= 0 {
		n = 3
	}
	reqs := rctx.Requirements
	if len(reqs) > n {
		reqs = reqs[:n]
	}
	query := strings.TrimSpace(strings.Join(reqs, " "))
	if query == "" {
		// 没有需求条目时退回原始请求文本
		query = rctx.RequestText
	}

	limit := target / 2
	if limit <= 0 {
		limit = 1
	}
	products, err := s.Catalog.SearchProducts(ctx, query, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword source: search products: %w", err)
	}

	out := make([]*core.Candidate, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		out = append(out, &core.Candidate{Product: p, Source: s.Name()})
	}
	return out, nil
}

var _ Source = (*KeywordSource)(nil)
