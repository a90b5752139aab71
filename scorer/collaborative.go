package scorer

import (
	"context"
	"fmt"

	"github.com/rushteam/prorec/core"
)

// 协同过滤分数构成：60% 共购频次 + 40% 相似用户重合。
const (
	coPurchaseWeight  = 0.6
	similarUserWeight = 0.4

	// coPurchaseSaturation 共购次数达到该值即记满分（归一化上界）。
	coPurchaseSaturation = 10
)

// Collaborative 是协同过滤打分策略。
//
// 没有用户 ID 或没有购买历史时返回「无信号」：个性化数据缺失是
// 预期中的合法状态（新用户），不是错误；底层存储查询失败才是
// 基础设施故障，返回 error。
type Collaborative struct {
	History core.PurchaseHistoryStore

	// MaxSimilarUsers 参与重合度计算的相似用户上限，默认 10（约束查询成本）。
	MaxSimilarUsers int
}

func (s *Collaborative) Name() string { return core.StrategyCollaborative }

func (s *Collaborative) Score(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (core.ScoreOutcome, error) {
	if s.History == nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeUnavailable,
			"scorer: collaborative strategy requires a purchase history store")
	}
	if rctx.UserID == "" {
		return core.NoSignal(), nil
	}

	history, err := s.History.GetPurchaseHistory(ctx, rctx.UserID)
	if err != nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
			fmt.Sprintf("scorer: collaborative: query purchase history for user %q: %v (check history store)", rctx.UserID, err))
	}
	if len(history) == 0 {
		return core.NoSignal(), nil
	}

	// 60%：候选商品在用户历史中的共购频次，10 次及以上记满分
	co := 0
	categories := make(map[string]bool)
	for _, rec := range history {
		if rec.ProductID == c.Product.ID {
			q := rec.Quantity
			if q <= 0 {
				q = 1
			}
			co += q
		}
		if rec.Category != "" {
			categories[rec.Category] = true
		}
	}
	freq := float64(co) / coPurchaseSaturation
	if freq > 1 {
		freq = 1
	}

	// 40%：类目重合度 >= 1/3 的相似用户中，购买过候选商品的比例
	cats := make([]string, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	similar, err := s.History.FindSimilarUsers(ctx, rctx.UserID, cats)
	if err != nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
			fmt.Sprintf("scorer: collaborative: find similar users for %q: %v (check history store)", rctx.UserID, err))
	}

	maxSim := s.MaxSimilarUsers
	if maxSim <= 0 {
		maxSim = 10
	}
	if len(similar) > maxSim {
		similar = similar[:maxSim]
	}

	overlap := 0.0
	if len(similar) > 0 {
		buyers := 0
		for _, uid := range similar {
			simHistory, err := s.History.GetPurchaseHistory(ctx, uid)
			if err != nil {
				return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
					fmt.Sprintf("scorer: collaborative: query purchase history for similar user %q: %v", uid, err))
			}
			for _, rec := range simHistory {
				if rec.ProductID == c.Product.ID {
					buyers++
					break
				}
			}
		}
		overlap = float64(buyers) / float64(len(similar))
	}

	return core.ScoreOf(coPurchaseWeight*freq + similarUserWeight*overlap), nil
}

var _ Strategy = (*Collaborative)(nil)
