package predict

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/pkg/utils"
)

// Ensemble 并发执行多个预测策略并合并结果。
// 合并规则：优先取置信度最高的 success 结论；没有 success 时
// 按策略顺序取第一个非 error 结论。单个策略出错不中断其他策略。
type Ensemble struct {
	Predictors []Predictor
	Timeout    time.Duration // 每个策略的超时时间，0 表示不限制
}

func (p *Ensemble) Name() string { return "predict.ensemble" }

func (p *Ensemble) Predict(ctx context.Context, pctx *core.PredictContext) (*core.PredictionResult, error) {
	if len(p.Predictors) == 0 {
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeInvalidInput, "ensemble has no predictors")
	}

	results := make([]*core.PredictionResult, len(p.Predictors))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, pr := range p.Predictors {
		i, pr := i, pr
		eg.Go(func() error {
			runCtx := egCtx
			if p.Timeout > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(egCtx, p.Timeout)
				defer cancel()
			}

			res, err := pr.Predict(runCtx, pctx)
			if err != nil {
				// 出错的策略只缺席，不拖垮整个 ensemble
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var best *core.PredictionResult
	for i, res := range results {
		if res == nil || res.Status == core.StatusError {
			continue
		}
		res.PutLabel("ensemble_member", utils.Label{Value: p.Predictors[i].Name(), Source: "predict"})
		if res.Status == core.StatusSuccess {
			if best == nil || best.Status != core.StatusSuccess || res.Confidence > best.Confidence {
				best = res
			}
			continue
		}
		if best == nil {
			best = res
		}
	}
	if best == nil {
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeUnavailable, "all ensemble predictors failed")
	}
	return best, nil
}
