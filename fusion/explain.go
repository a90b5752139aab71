package fusion

import "github.com/rushteam/prorec/core"

// ExplainThreshold 策略分超过该阈值才产出对应的理由。
const ExplainThreshold = 0.7

// FallbackReason 没有任何策略过阈值时的通用兜底理由。
const FallbackReason = "matches some requirements"

// reasonTemplates 每个策略的固定理由话术。
var reasonTemplates = map[string]string{
	core.StrategyCollaborative:  "frequently purchased for similar projects",
	core.StrategyContentBased:   "strong text match",
	core.StrategyKnowledgeGraph: "recommended by graph task relationships",
	core.StrategySemantic:       "AI analysis shows excellent match",
}

// Explain 从已算好的分数向量派生可读理由。
//
// 只叙述、不计算：本函数绝不重算或调整任何分数，这是数值与解释
// 不漂移的保证。理由按固定策略顺序产出，结果确定。
func Explain(vec core.ScoreVector, hybrid float64) []string {
	var reasons []string
	for _, name := range core.StrategyNames() {
		if vec.Get(name) > ExplainThreshold {
			reasons = append(reasons, reasonTemplates[name])
		}
	}
	if len(reasons) == 0 {
		reasons = []string{FallbackReason}
	}
	return reasons
}
