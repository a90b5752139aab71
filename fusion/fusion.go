// Package fusion 实现加权融合排序与解释生成。
// 两者都是纯函数：不做 I/O，不重新计算分数。
package fusion

import (
	"sort"

	"github.com/rushteam/prorec/core"
)

// Fuse 对每个候选计算加权融合分，按分数降序稳定排序后截断到 limit。
//
// 权重合法性在引擎构造期校验（缺权重是致命配置缺陷），融合阶段
// 本身不会失败。稳定排序保证同分候选维持原始顺序。
func Fuse(cands []*core.Candidate, vectors []core.ScoreVector, weights core.Weights, limit int) []*core.Recommendation {
	recs := make([]*core.Recommendation, 0, len(cands))
	for i, c := range cands {
		if c == nil || c.Product == nil {
			continue
		}
		vec := vectors[i]
		recs = append(recs, &core.Recommendation{
			Product:     c.Product,
			HybridScore: weights.Hybrid(vec),
			Scores:      vec,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].HybridScore > recs[j].HybridScore
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
