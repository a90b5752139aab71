package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/prorec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("product", cel.DynType),
			cel.Variable("source", cel.StringType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// CELFilter 用 CEL (Common Expression Language) 表达式约束候选。
// 表达式表达「保留条件」：求值为 false 的候选被过滤。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：product.price < 3000.0
//   - 字符串：product.brand != "acme" / product.category == "safety"
//   - 逻辑：product.price < 500.0 || product.category == "tools"
//   - 来源：source != "candidate.graph"
//
// 表达式在构造期编译一次（编译失败是配置缺陷，fail fast），
// 编译产物线程安全，可被并发求值。
type CELFilter struct {
	expr string
	prg  cel.Program
}

// NewCELFilter 编译保留条件表达式。
func NewCELFilter(expr string) (*CELFilter, error) {
	if expr == "" {
		return nil, fmt.Errorf("cel filter: expression is empty")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel filter: init env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("cel filter: compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel filter: program %q: %w", expr, err)
	}
	return &CELFilter{expr: expr, prg: prg}, nil
}

func (f *CELFilter) Name() string {
	return "filter.cel"
}

// ShouldFilter 求值保留条件；false 或求值出错均视为过滤。
func (f *CELFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if c == nil || c.Product == nil {
		return true, nil
	}

	input := map[string]interface{}{
		"product": map[string]interface{}{
			"id":          c.Product.ID,
			"name":        c.Product.Name,
			"description": c.Product.Description,
			"category":    c.Product.Category,
			"brand":       c.Product.Brand,
			"price":       c.Product.Price,
		},
		"source": c.Source,
		"rctx": map[string]interface{}{
			"user_id": rctx.UserID,
			"limit":   rctx.Limit,
		},
	}

	out, _, err := f.prg.Eval(input)
	if err != nil {
		return true, fmt.Errorf("cel filter: eval %q: %w", f.expr, err)
	}
	keep, ok := out.Value().(bool)
	if !ok {
		return true, fmt.Errorf("cel filter: expression %q must return boolean, got %T", f.expr, out.Value())
	}
	return !keep, nil
}

var _ Filter = (*CELFilter)(nil)
