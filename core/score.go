package core

import "math"

// 四个打分策略的固定名称，同时作为权重配置与解释模板的 key。
const (
	StrategyCollaborative  = "collaborative"
	StrategyContentBased   = "content_based"
	StrategyKnowledgeGraph = "knowledge_graph"
	StrategySemantic       = "semantic"
)

// StrategyNames 返回固定顺序的策略名列表（排序/解释的确定性依赖此顺序）。
func StrategyNames() []string {
	return []string{
		StrategyCollaborative,
		StrategyContentBased,
		StrategyKnowledgeGraph,
		StrategySemantic,
	}
}

// ScoreVector 是一个候选的完整打分向量。
//
// 刻意使用定形结构体而非 map[string]float64：融合与解释阶段对字段的
// 引用可以被编译器检查，不存在「部分向量」进入融合的可能。
// 所有字段取值范围 [0.0, 1.0]。
type ScoreVector struct {
	Collaborative  float64 `json:"collaborative"`
	ContentBased   float64 `json:"content_based"`
	KnowledgeGraph float64 `json:"knowledge_graph"`
	Semantic       float64 `json:"semantic"`
}

// Get 按策略名取分数；未知策略名返回 0（调用方应使用 Strategy* 常量）。
func (v ScoreVector) Get(strategy string) float64 {
	switch strategy {
	case StrategyCollaborative:
		return v.Collaborative
	case StrategyContentBased:
		return v.ContentBased
	case StrategyKnowledgeGraph:
		return v.KnowledgeGraph
	case StrategySemantic:
		return v.Semantic
	}
	return 0
}

// Weights 是四个策略的融合权重，引擎构造时加载一次，进程内只读。
// 不提供默认权重：缺失或不合法的权重配置是构造期致命错误。
type Weights struct {
	Collaborative  float64 `json:"collaborative" yaml:"collaborative"`
	ContentBased   float64 `json:"content_based" yaml:"content_based"`
	KnowledgeGraph float64 `json:"knowledge_graph" yaml:"knowledge_graph"`
	Semantic       float64 `json:"semantic" yaml:"semantic"`
}

// WeightSumTolerance 权重和允许的浮点误差。
const WeightSumTolerance = 0.01

// Validate 校验四个权重之和为 1.0（±0.01）。
func (w Weights) Validate() error {
	sum := w.Collaborative + w.ContentBased + w.KnowledgeGraph + w.Semantic
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput,
			"engine: strategy weights must sum to 1.0 (±0.01)")
	}
	return nil
}

// Hybrid 计算加权融合分：Σ weight[s] * score[s]。
// 权重与分数均在 [0,1] 且权重和为 1，结果必然落在 [0,1]。
func (w Weights) Hybrid(v ScoreVector) float64 {
	return w.Collaborative*v.Collaborative +
		w.ContentBased*v.ContentBased +
		w.KnowledgeGraph*v.KnowledgeGraph +
		w.Semantic*v.Semantic
}

// Recommendation 是返回给调用方的最小单元。
type Recommendation struct {
	Product     *Product    `json:"product"`
	HybridScore float64     `json:"hybrid_score"`
	Scores      ScoreVector `json:"score_vector"`
	Explanation []string    `json:"explanation,omitempty"`
}

// ScoreOutcome 是一次策略打分的带标签结果。
//
// 三态语义（配合 error 返回值）：
//   - Ok:       Value 有效，NoSignal=false
//   - NoSignal: 合法的「无个性化/图谱信号」状态（新用户、无任务匹配），
//     融合时按 0.0 处理，不是错误
//   - 后端故障: 通过 error 返回，由引擎边界统一兜底
//
// 用显式标签区分「零分」与「无信号」，避免重构时混淆两者。
type ScoreOutcome struct {
	Value    float64
	NoSignal bool
}

// ScoreOf 构造一个有效分数结果，并截断到 [0,1]。
func ScoreOf(v float64) ScoreOutcome {
	return ScoreOutcome{Value: Clamp01(v)}
}

// NoSignal 构造「无信号」结果。
func NoSignal() ScoreOutcome {
	return ScoreOutcome{NoSignal: true}
}

// Clamp01 把分数截断到 [0.0, 1.0]。
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
