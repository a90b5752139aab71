package scorer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rushteam/prorec/core"
)

// semanticPrompt 要求模型只回一个 0.0~1.0 的数字。
const semanticPrompt = `Rate how well the following product fits the listed requirements on a scale from 0.0 (no fit) to 1.0 (perfect fit). Respond with a single number only.

Product:
%s

Requirements:
%s

Rating:`

// numberRe 提取回复中的第一个十进制/整数字面量。
var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Semantic 是 LLM 语义契合度打分策略：单次调用让模型按 0~1 评分，
// 从回复中解析第一个数字字面量并截断到 [0,1]。
//
// 刻意不设中性兜底分：后端未配置、调用失败、回复解析不出数字都
// 返回 error，伪造的中性分会在不产生任何告警的情况下偏置排序。
type Semantic struct {
	LLM core.LLMService
}

func (s *Semantic) Name() string { return core.StrategySemantic }

func (s *Semantic) Score(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (core.ScoreOutcome, error) {
	if s.LLM == nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeUnavailable,
			"scorer: semantic: llm backend not configured, set the llm endpoint (no neutral fallback score)")
	}

	prompt := fmt.Sprintf(semanticPrompt, c.Product.Text(), strings.Join(rctx.Requirements, "\n"))
	reply, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
			fmt.Sprintf("scorer: semantic: llm call failed: %v (check llm endpoint health)", err))
	}

	match := numberRe.FindString(reply)
	if match == "" {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
			fmt.Sprintf("scorer: semantic: no numeric literal in llm reply %q (check model/prompt)", truncate(reply, 120)))
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return core.ScoreOutcome{}, core.NewDomainError(core.ModuleScorer, core.ErrorCodeBackendError,
			fmt.Sprintf("scorer: semantic: parse %q: %v", match, err))
	}

	return core.ScoreOf(v), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Strategy = (*Semantic)(nil)
