// Package candidate 实现候选生成：并发执行多个召回源并合并去重。
//
// 每个召回源都是 best-effort：单源失败记日志后跳过，不中断其余源；
// 三个源全部为空时返回空候选集（由引擎门面决定如何反应，这不是错误）。
package candidate

import (
	"context"

	"github.com/rushteam/prorec/core"
)

// Source 是候选召回源的最小抽象。
// target 为调用方期望的总候选数，各源按自身约定取其份额
// （关键词/图召回取 target/2，类目召回每类目取 target/4）。
type Source interface {
	Name() string

	Generate(ctx context.Context, rctx *core.RecommendContext, target int) ([]*core.Candidate, error)
}
