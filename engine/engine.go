// Package engine 组装并持有完整的预测引擎。
//
// 引擎在 New 中完成全部初始化：加载数据集、编译推荐行、构建词表、
// 按需训练分类模型、根据配置构建预测策略、编译建议规则。
// 初始化成功后引擎内部状态全部只读，Predict 可被任意多个 goroutine
// 并发调用，无需加锁。
package engine

import (
	"context"
	"fmt"

	"github.com/rushteam/diagkit/config"
	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/dataset"
	"github.com/rushteam/diagkit/model"
	"github.com/rushteam/diagkit/pkg/conv"
	"github.com/rushteam/diagkit/predict"
	"github.com/rushteam/diagkit/recommend"
	"github.com/rushteam/diagkit/rules"
	"github.com/rushteam/diagkit/symptom"
)

// Engine 是只读的预测引擎。
type Engine struct {
	cfg *config.Config

	norm     *symptom.Normalizer
	vocab    *symptom.Vocabulary
	rows     []recommend.Row
	resolver *recommend.Resolver

	predictor predict.Predictor
	ruleEval  *rules.Evaluator

	forest     *model.Forest
	holdoutAcc float64
}

// New 按配置构建引擎。任何一步失败都返回错误，不产出半初始化的引擎。
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeInvalidInput, "nil config")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ds, err := dataset.Load(cfg.Engine.Dataset)
	if err != nil {
		return nil, err
	}

	norm := symptom.NewNormalizer()
	rows := recommend.Compile(ds, norm)
	rowSets := recommend.RowSets(rows)

	vocab, err := symptom.BuildVocabulary(rowSets)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		norm:     norm,
		vocab:    vocab,
		rows:     rows,
		resolver: recommend.NewResolver(rows, norm),
	}

	if strategyNeedsForest(cfg.Engine.Strategy, cfg.Engine.Params) {
		if err := e.trainForest(); err != nil {
			return nil, err
		}
	}

	e.predictor, err = config.Build(cfg.Engine.Strategy, &config.BuildDeps{
		Norm:  norm,
		Vocab: vocab,
		Rows:  rows,
		Model: e.forest,
	}, cfg.Engine.Params)
	if err != nil {
		return nil, err
	}

	e.ruleEval, err = rules.NewEvaluator(cfg.Rules)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// strategyNeedsForest 判断策略（含降级链 / ensemble 的成员）是否用到分类模型。
func strategyNeedsForest(strategy string, params map[string]any) bool {
	switch strategy {
	case "forest":
		return true
	case "fallback":
		primary := conv.ConfigGet[string](params, "primary", "forest")
		secondary := conv.ConfigGet[string](params, "secondary", "overlap")
		return primary == "forest" || secondary == "forest"
	case "ensemble":
		members := conv.SliceAnyToString(params["members"])
		if len(members) == 0 {
			return true // 默认成员是 forest + overlap
		}
		for _, m := range members {
			if m == "forest" {
				return true
			}
		}
	}
	return false
}

func (e *Engine) trainForest() error {
	x := make([][]uint8, len(e.rows))
	y := make([]string, len(e.rows))
	for i, row := range e.rows {
		x[i] = e.vocab.VectorizeSet(row.Symptoms)
		y[i] = row.Disease
	}

	params := e.cfg.Engine.Params
	forest, acc, err := model.Train(x, y, model.ForestConfig{
		Trees:        int(conv.ConfigGetInt64(params, "trees", core.DefaultTrees)),
		Seed:         conv.ConfigGetInt64(params, "seed", core.DefaultSeed),
		HoldoutRatio: conv.ConfigGetFloat64(params, "holdout_ratio", core.DefaultHoldoutRatio),
		MaxDepth:     int(conv.ConfigGetInt64(params, "max_depth", 0)),
	})
	if err != nil {
		return err
	}
	e.forest = forest
	e.holdoutAcc = acc
	return nil
}

// Predict 执行一次预测。预测永远给出一个结论（最差情况是 error 状态的
// 结论），不向调用方抛 panic。
func (e *Engine) Predict(ctx context.Context, pctx *core.PredictContext) (result *core.PredictionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = core.NewErrorResult(fmt.Sprintf("prediction panic: %v", r))
		}
	}()

	if pctx == nil {
		pctx = &core.PredictContext{}
	}

	res, err := e.predictor.Predict(ctx, pctx)
	if err != nil {
		return core.NewErrorResult(err.Error())
	}
	if res == nil {
		return core.NewErrorResult("predictor returned no result")
	}

	if res.Status == core.StatusSuccess || res.Status == core.StatusFallback {
		res.Medicine, res.Diet, res.FoodsToAvoid = e.resolver.Resolve(res.PredictedDisease, pctx.Symptoms)
	}

	e.ruleEval.Apply(res, pctx)
	return res
}

// AvailableSymptoms 返回词表中的症状（人类可读形式，有序）。
func (e *Engine) AvailableSymptoms() []string {
	return e.vocab.Display()
}

// VocabularySize 返回症状词表大小。
func (e *Engine) VocabularySize() int { return e.vocab.Size() }

// RowCount 返回数据集可用行数。
func (e *Engine) RowCount() int { return len(e.rows) }

// HoldoutAccuracy 返回分类模型在保留集上的准确率；未训练模型时为 0。
func (e *Engine) HoldoutAccuracy() float64 { return e.holdoutAcc }

// Strategy 返回当前策略名。
func (e *Engine) Strategy() string { return e.predictor.Name() }
