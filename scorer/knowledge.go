package scorer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rushteam/prorec/core"
	"github.com/rushteam/prorec/pkg/textsim"
)

// 任务图谱打分常量：按必要程度给分，外加兼容商品数量的小额加成。
const (
	taskRequiredScore    = 0.9
	taskRecommendedScore = 0.7
	taskDefaultScore     = 0.4

	compatBonusPerItem = 0.05
	compatBonusCap     = 0.2
)

// KnowledgeGraph 是任务图谱打分策略：把需求映射到任务，按候选在
// 各任务中的必要程度取平均，再加兼容性加成。
//
// 需求推不出任何任务是合法的空状态（任务未收录），返回「无信号」；
// 图谱存储查询失败才返回 error。
type KnowledgeGraph struct {
	catalog core.CatalogStore
	// taskKeywords 是 关键词 -> 任务 ID 倒排表，构造期一次性加载
	taskKeywords map[string]string

	// TaskProductLimit 单任务查询的商品数上限，默认 50
	TaskProductLimit int
	// CompatLimit 兼容商品查询上限，默认 10
	CompatLimit int
}

// NewKnowledgeGraph 创建任务图谱策略。taskKeywords 为 关键词->任务 映射
// （来自 core.ReferenceTables）；空表是配置缺陷，fail fast。
func NewKnowledgeGraph(catalog core.CatalogStore, taskKeywords map[string]string) (*KnowledgeGraph, error) {
	if catalog == nil {
		return nil, fmt.Errorf("knowledge graph scorer: catalog store is required")
	}
	if len(taskKeywords) == 0 {
		return nil, core.NewDomainError(core.ModuleScorer, core.ErrorCodeReferenceDataEmpty,
			"scorer: task_keyword_mappings reference table is empty, populate it before starting the engine")
	}
	lowered := make(map[string]string, len(taskKeywords))
	for kw, task := range taskKeywords {
		lowered[strings.ToLower(kw)] = task
	}
	return &KnowledgeGraph{catalog: catalog, taskKeywords: lowered}, nil
}

func (s *KnowledgeGraph) Name() string { return core.StrategyKnowledgeGraph }

func (s *KnowledgeGraph) Score(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (core.ScoreOutcome, error) {
	tasks := s.inferTasks(rctx.Requirements)
	if len(tasks) == 0 {
		return core.NoSignal(), nil
	}

	taskLimit := s.TaskProductLimit
	if taskLimit <= 0 {
		taskLimit = 50
	}

	total := 0.0
	for _, task := range tasks {
		tps, err := s.catalog.GetProductsForTask(ctx, task, taskLimit)
		if err != nil {
			return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
				fmt.Sprintf("scorer: knowledge: query products for task %q: %v (check graph store)", task, err))
		}
		total += taskScore(tps, c.Product.ID)
	}
	avg := total / float64(len(tasks))

	compatLimit := s.CompatLimit
	if compatLimit <= 0 {
		compatLimit = 10
	}
	compat, err := s.catalog.GetCompatibleProducts(ctx, c.Product.ID, compatLimit)
	if err != nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
			fmt.Sprintf("scorer: knowledge: query compatible products for %q: %v (check graph store)", c.Product.ID, err))
	}
	bonus := float64(len(compat)) * compatBonusPerItem
	if bonus > compatBonusCap {
		bonus = compatBonusCap
	}

	return core.ScoreOf(avg + bonus), nil
}

// taskScore 返回候选在单个任务中的分值：required 0.9 / recommended 0.7 / 其余 0.4。
func taskScore(tps []core.TaskProduct, productID string) float64 {
	for _, tp := range tps {
		if tp.ProductID != productID {
			continue
		}
		switch tp.Necessity {
		case core.NecessityRequired:
			return taskRequiredScore
		case core.NecessityRecommended:
			return taskRecommendedScore
		}
		return taskDefaultScore
	}
	return taskDefaultScore
}

// inferTasks 对需求条目做关键词匹配，返回去重后的任务列表（字典序，保证确定性）。
func (s *KnowledgeGraph) inferTasks(requirements []string) []string {
	seen := make(map[string]bool)
	for _, req := range requirements {
		lower := strings.ToLower(req)
		for _, tok := range textsim.Tokenize(lower) {
			if task, ok := s.taskKeywords[tok]; ok {
				seen[task] = true
			}
		}
		// 多词关键词走包含匹配（分词后命不中）
		for kw, task := range s.taskKeywords {
			if strings.Contains(kw, " ") && strings.Contains(lower, kw) {
				seen[task] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for task := range seen {
		out = append(out, task)
	}
	sort.Strings(out)
	return out
}

var _ Strategy = (*KnowledgeGraph)(nil)
