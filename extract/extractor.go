// Package extract 把自由文本的需求文档转化为离散的需求条目列表。
//
// 抽取依赖外部 LLM 服务，是硬依赖：没有正则/启发式兜底，因为兜底会
// 无声地拉低质量而不暴露问题。后端未配置或返回空结果都是错误。
package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rushteam/prorec/core"
)

// MaxRequirements 单次请求最多保留的需求条数（保序取前 20），
// 用于约束下游打分成本。
const MaxRequirements = 20

// prompt 固定的枚举指令。要求每行一条、原子化、不编号以便解析。
const prompt = `You are a procurement assistant. Read the following request document and enumerate the discrete, atomic product requirements it contains.

Rules:
- One requirement per line.
- Each requirement must be a short, self-contained statement.
- Do not number the lines, do not add commentary.

Request document:
%s`

// bulletRe 剥离模型偶尔仍会输出的行首编号/项目符号。
var bulletRe = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)])\s*`)

// Extractor 是需求抽取器。
type Extractor struct {
	LLM core.LLMService

	// Max 保留的需求条数上限；<= 0 时取 MaxRequirements。
	Max int
}

// Extract 抽取需求条目，保序截断到上限。
//
// 错误语义：
//   - SERVICE_UNAVAILABLE：LLM 后端未配置（硬依赖，fail fast）
//   - INVALID_INPUT：请求文本为空
//   - BACKEND_ERROR：LLM 调用失败
//   - EMPTY_RESULT：非平凡输入抽出 0 条需求（后端或 prompt 出了问题）
func (e *Extractor) Extract(ctx context.Context, requestText string) ([]string, error) {
	if e.LLM == nil {
		return nil, core.NewDomainError(core.ModuleExtract, core.ErrorCodeUnavailable,
			"extract: llm backend not configured, set the llm endpoint (requirement extraction has no heuristic fallback)")
	}
	if strings.TrimSpace(requestText) == "" {
		return nil, core.NewDomainError(core.ModuleExtract, core.ErrorCodeInvalidInput,
			"extract: request text is empty")
	}

	reply, err := e.LLM.Complete(ctx, fmt.Sprintf(prompt, requestText))
	if err != nil {
		return nil, core.NewDomainError(core.ModuleExtract, core.ErrorCodeBackendError,
			fmt.Sprintf("extract: llm call failed: %v (check llm endpoint health)", err))
	}

	reqs := parseLines(reply)
	if len(reqs) == 0 {
		return nil, core.NewDomainError(core.ModuleExtract, core.ErrorCodeEmptyResult,
			"extract: llm returned zero requirements for non-trivial input (check prompt/model output)")
	}

	max := e.Max
	if max <= 0 {
		max = MaxRequirements
	}
	if len(reqs) > max {
		reqs = reqs[:max]
	}
	return reqs, nil
}

// parseLines 按行解析模型输出：剥离项目符号、去空行，保留原始顺序。
func parseLines(reply string) []string {
	lines := strings.Split(reply, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = bulletRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
