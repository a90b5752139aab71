package scorer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/prorec/core"
)

// Parallel 是打分执行器：候选间按并发上限调度，单个候选的四个策略
// 并行求值，全部汇合后才产出该候选的完整 ScoreVector，不存在部分
// 向量进入融合的路径。
//
// 任一策略返回 error 即取消在途调用并向上抛出（引擎门面是唯一的
// 兜底边界）；「无信号」结果折算为 0.0，不影响其余策略。
type Parallel struct {
	Collaborative  Strategy
	ContentBased   Strategy
	KnowledgeGraph Strategy
	Semantic       Strategy

	// MaxConcurrent 同时打分的候选数上限，默认 8
	//（约束对 LLM/图谱后端的瞬时压力）。
	MaxConcurrent int
}

// ScoreAll 对全部候选打分，返回与 cands 下标对齐的向量切片。
// 确定性：结果按下标写入，并发调度不影响输出顺序。
func (p *Parallel) ScoreAll(ctx context.Context, rctx *core.RecommendContext, cands []*core.Candidate) ([]core.ScoreVector, error) {
	vectors := make([]core.ScoreVector, len(cands))
	if len(cands) == 0 {
		return vectors, nil
	}

	limit := p.MaxConcurrent
	if limit <= 0 {
		limit = 8
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, c := range cands {
		i, c := i, c
		eg.Go(func() error {
			vec, err := p.scoreOne(egCtx, rctx, c)
			if err != nil {
				return err
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// scoreOne 并行执行四个策略，汇合成完整向量。
func (p *Parallel) scoreOne(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (core.ScoreVector, error) {
	var vec core.ScoreVector
	eg, egCtx := errgroup.WithContext(ctx)

	run := func(s Strategy, field *float64) {
		eg.Go(func() error {
			out, err := s.Score(egCtx, rctx, c)
			if err != nil {
				return err
			}
			if out.NoSignal {
				*field = 0
				return nil
			}
			*field = out.Value
			return nil
		})
	}

	run(p.Collaborative, &vec.Collaborative)
	run(p.ContentBased, &vec.ContentBased)
	run(p.KnowledgeGraph, &vec.KnowledgeGraph)
	run(p.Semantic, &vec.Semantic)

	if err := eg.Wait(); err != nil {
		return core.ScoreVector{}, err
	}
	return vec, nil
}
