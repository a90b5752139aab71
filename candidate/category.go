package candidate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rushteam/prorec/core"
)

// CategorySource 通过类目推断召回候选：需求条目经 关键词->类目 映射表
// 推断出目录类目，再按类目检索，每个类目约束 target/4 条。
//
// 映射表在构造期注入（引擎启动时一次性加载，空表 fail fast），
// 没有硬编码的兜底类目表，参考数据缺失必须在启动时暴露而非请求中。
type CategorySource struct {
	catalog core.CatalogStore
	// keywordToCategory 由 类目->关键词列表 倒排而来
	keywordToCategory map[string]string
}

// NewCategorySource 创建类目召回源。categoryKeywords 为 类目->关键词列表
// 映射（来自 core.ReferenceTables）；空表返回错误。
func NewCategorySource(catalog core.CatalogStore, categoryKeywords map[string][]string) (*CategorySource, error) {
	if catalog == nil {
		return nil, fmt.Errorf("category source: catalog store is required")
	}
	if len(categoryKeywords) == 0 {
		return nil, core.NewDomainError(core.ModuleCandidate, core.ErrorCodeReferenceDataEmpty,
			"candidate: category_keyword_mappings reference table is empty, populate it before starting the engine")
	}

	inverted := make(map[string]string)
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			inverted[strings.ToLower(kw)] = category
		}
	}
	return &CategorySource{catalog: catalog, keywordToCategory: inverted}, nil
}

func (s *CategorySource) Name() string { return "candidate.category" }

func (s *CategorySource) Generate(ctx context.Context, rctx *core.RecommendContext, target int) ([]*core.Candidate, error) {
	categories := s.inferCategories(rctx.Requirements)
	if len(categories) == 0 {
		return nil, nil
	}

	perCategory := target / 4
	if perCategory <= 0 {
		perCategory = 1
	}

	var out []*core.Candidate
	for _, cat := range categories {
		products, err := s.catalog.SearchProducts(ctx, "", map[string]string{"category": cat}, perCategory)
		if err != nil {
			return nil, fmt.Errorf("category source: search category %q: %w", cat, err)
		}
		for _, p := range products {
			if p == nil {
				continue
			}
			out = append(out, &core.Candidate{Product: p, Source: s.Name()})
		}
	}
	return out, nil
}

// inferCategories 对需求条目做关键词包含匹配，返回去重后的类目列表（字典序，保证确定性）。
func (s *CategorySource) inferCategories(requirements []string) []string {
	seen := make(map[string]bool)
	for _, req := range requirements {
		lower := strings.ToLower(req)
		for kw, cat := range s.keywordToCategory {
			if strings.Contains(lower, kw) {
				seen[cat] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

var _ Source = (*CategorySource)(nil)
