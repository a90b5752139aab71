// Package scorer 实现四个对等的打分策略与并行执行器。
//
// 四个策略共享同一签名，对每个候选各产出一个 [0,1] 分数。失败策略是
// 非对称的，必须区分两类状态：
//
//   - 无信号（新用户没有购买历史、需求推不出任务）是合法稳态，
//     返回 core.NoSignal()，融合时按 0.0 处理，不是错误；
//   - 后端故障（存储查询失败、embedding/LLM 不可用、输出不可解析）
//     必须大声失败（返回 error），由引擎门面统一兜底；
//     伪造一个中性分会在不发出任何信号的情况下扭曲排序。
package scorer

import (
	"context"

	"github.com/rushteam/prorec/core"
)

// Strategy 是打分策略的统一接口，按候选逐个调用。
type Strategy interface {
	// Name 返回策略名（core.Strategy* 常量之一）
	Name() string

	// Score 对单个候选打分；结果语义见包注释
	Score(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (core.ScoreOutcome, error)
}
