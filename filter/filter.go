package filter

import (
	"context"

	"github.com/rushteam/prorec/core"
)

// Filter 是候选过滤器的抽象接口，用于判断一个候选是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断候选是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (bool, error)
}

// Apply 依次应用过滤器，任何一个返回 true 即移除该候选。
// 过滤器自身出错时记为不过滤（保留候选），不中断流程。
func Apply(ctx context.Context, rctx *core.RecommendContext, filters []Filter, cands []*core.Candidate) []*core.Candidate {
	if len(filters) == 0 || len(cands) == 0 {
		return cands
	}

	out := make([]*core.Candidate, 0, len(cands))
	for _, c := range cands {
		if c == nil || c.Product == nil {
			continue
		}
		drop := false
		for _, f := range filters {
			ok, err := f.ShouldFilter(ctx, rctx, c)
			if err != nil {
				continue
			}
			if ok {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, c)
		}
	}
	return out
}
