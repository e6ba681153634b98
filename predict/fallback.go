package predict

import (
	"context"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/pkg/utils"
)

// Fallback 是降级链：主策略失败（error 或 error 结论）时改用次级策略。
// 次级策略的 success 结论会被改写为 fallback 状态并打上来源标签，
// 降级给出的答案永远不会冒充 success。
type Fallback struct {
	Primary   Predictor
	Secondary Predictor
}

func (p *Fallback) Name() string { return "predict.fallback" }

func (p *Fallback) Predict(ctx context.Context, pctx *core.PredictContext) (*core.PredictionResult, error) {
	res, err := p.Primary.Predict(ctx, pctx)
	if err == nil && res != nil && res.Status != core.StatusError {
		return res, nil
	}

	if p.Secondary == nil {
		return res, err
	}

	res2, err2 := p.Secondary.Predict(ctx, pctx)
	if err2 != nil {
		// 两级都失败：返回主策略的原始错误，更接近根因
		if err != nil {
			return nil, err
		}
		return nil, err2
	}
	if res2.Status == core.StatusSuccess {
		res2.Status = core.StatusFallback
	}
	res2.PutLabel("degraded_from", utils.Label{Value: p.Primary.Name(), Source: "fallback"})
	return res2, nil
}
