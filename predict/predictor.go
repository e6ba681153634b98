// Package predict 提供可插拔的预测策略（Overlap / Forest / Fallback / Ensemble）。
package predict

import (
	"context"
	"math"

	"github.com/rushteam/diagkit/core"
)

// Predictor 表示一个可复用的预测策略。
// 约定（所有实现必须遵守）：
//   - 空症状列表 → no_symptoms 结论，不触碰任何模型
//   - 规范化后全部不在词表 → unrecognized 结论（与 low_match 有区别：
//     前者根本没命中词表，后者命中了词表但没有疾病行匹配得足够好）
//   - 失败返回 error，由上层（Fallback / Engine 边界）兜底
type Predictor interface {
	Name() string
	Predict(ctx context.Context, pctx *core.PredictContext) (*core.PredictionResult, error)
}

// percent 把 [0,1] 的原始分转为保留一位小数的百分比。
func percent(score float64) float64 {
	return math.Round(score*1000) / 10
}
