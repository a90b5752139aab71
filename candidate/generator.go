package candidate

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/prorec/core"
)

// Generator 并发执行全部召回源并合并结果。
// 支持单源超时与并发上限；单源失败按 best-effort 跳过。
type Generator struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回源的超时时间（0 表示不限制）
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	Logger        zerolog.Logger
}

// Generate 召回并去重候选。
//
// 去重以 Product.ID 为唯一键，先到先得；合并按 Sources 的声明顺序进行
// （各源结果先独立收集再顺序合并），并发执行不影响合并结果的确定性。
// 全部源为空时返回空切片：空候选集不是错误，由调用方决定如何反应。
func (g *Generator) Generate(ctx context.Context, rctx *core.RecommendContext, target int) ([]*core.Candidate, error) {
	if len(g.Sources) == 0 {
		return nil, nil
	}

	logger := g.Logger.With().Str("component", "candidate").Logger()

	results := make([][]*core.Candidate, len(g.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	if g.MaxConcurrent > 0 {
		eg.SetLimit(g.MaxConcurrent)
	}

	for i, src := range g.Sources {
		i, src := i, src
		eg.Go(func() error {
			srcCtx := egCtx
			if g.Timeout > 0 {
				var cancel context.CancelFunc
				srcCtx, cancel = context.WithTimeout(egCtx, g.Timeout)
				defer cancel()
			}

			cands, err := src.Generate(srcCtx, rctx, target)
			if err != nil {
				// 单源失败不致命：记日志后跳过，其余源继续
				logger.Warn().Err(err).Str("source", src.Name()).Msg("candidate source failed, skipping")
				return nil
			}
			results[i] = cands
			return nil
		})
	}
	// Go 闭包从不返回 error，Wait 仅用于汇合
	_ = eg.Wait()

	return dedup(results), nil
}

// dedup 按源声明顺序合并，Product.ID 首次出现者保留。
func dedup(results [][]*core.Candidate) []*core.Candidate {
	seen := make(map[string]bool)
	var out []*core.Candidate
	for _, cands := range results {
		for _, c := range cands {
			if c == nil || c.Product == nil {
				continue
			}
			if seen[c.Product.ID] {
				continue
			}
			seen[c.Product.ID] = true
			out = append(out, c)
		}
	}
	return out
}
