// Package rules 提供基于 CEL (Common Expression Language) 的建议规则。
// 规则在引擎启动时编译（表达式有误立即报错），预测完成后对结果求值，
// 命中的规则会把备注追加到结果的 notes 中。规则只补充建议，
// 不改变预测结论本身。
//
// 表达式语法（CEL 标准语法）：
//   - result.status == "success"
//   - result.confidence < 50.0
//   - "fever" in ctx.symptoms
//   - ctx.age > 0 && ctx.age < 12
package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/diagkit/core"
)

// Rule 是一条建议规则：expr 为真时追加 note。
type Rule struct {
	Name string `yaml:"name" json:"name"`
	Expr string `yaml:"expr" json:"expr"`
	Note string `yaml:"note" json:"note"`
}

type compiled struct {
	rule Rule
	prg  cel.Program
}

// Evaluator 持有编译好的规则集，编译后只读，可并发求值。
type Evaluator struct {
	rules []compiled
}

// NewEvaluator 编译规则集。任何一条表达式编译失败都立即返回错误，
// 保证运行期不会遇到坏规则。
func NewEvaluator(rules []Rule) (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("result", cel.DynType),
		cel.Variable("ctx", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ev := &Evaluator{rules: make([]compiled, 0, len(rules))}
	for _, r := range rules {
		if r.Expr == "" {
			return nil, core.NewDomainError(core.ModuleRules, core.ErrorCodeInvalidInput,
				fmt.Sprintf("rule %q has empty expression", r.Name))
		}
		ast, issues := env.Compile(r.Expr)
		if issues != nil && issues.Err() != nil {
			return nil, core.NewDomainError(core.ModuleRules, core.ErrorCodeInvalidInput,
				fmt.Sprintf("rule %q compile error: %v", r.Name, issues.Err()))
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleRules, core.ErrorCodeInvalidInput,
				fmt.Sprintf("rule %q program error: %v", r.Name, err))
		}
		ev.rules = append(ev.rules, compiled{rule: r, prg: prg})
	}
	return ev, nil
}

// Len 返回规则条数。
func (e *Evaluator) Len() int { return len(e.rules) }

// Apply 对结果求值所有规则，命中的规则把 note 追加到 result.Notes。
// 单条规则求值出错时跳过该条（例如表达式访问了缺失字段），不影响其余规则。
func (e *Evaluator) Apply(result *core.PredictionResult, pctx *core.PredictContext) {
	if result == nil || len(e.rules) == 0 {
		return
	}
	input := buildInput(result, pctx)
	for _, c := range e.rules {
		out, _, err := c.prg.Eval(input)
		if err != nil {
			continue
		}
		hit, ok := out.Value().(bool)
		if !ok || !hit {
			continue
		}
		result.Notes = append(result.Notes, c.rule.Note)
	}
}

func buildInput(result *core.PredictionResult, pctx *core.PredictContext) map[string]any {
	res := map[string]any{
		"status":            string(result.Status),
		"predicted_disease": result.PredictedDisease,
		"confidence":        result.Confidence,
		"score":             result.Score,
	}
	ctx := map[string]any{
		"symptoms": []string{},
		"age":      0,
		"gender":   "",
	}
	if pctx != nil {
		ctx["symptoms"] = pctx.Symptoms
		ctx["age"] = pctx.Age
		ctx["gender"] = pctx.Gender
	}
	return map[string]any{"result": res, "ctx": ctx}
}
