package predict

import (
	"context"
	"sort"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/model"
	"github.com/rushteam/diagkit/pkg/utils"
	"github.com/rushteam/diagkit/symptom"
)

// Forest 是监督分类策略：随机森林把二值症状向量映射到疾病标签，
// 输出概率分布，argmax 为主结论，Top-K 候选按概率降序透出
// （概率相同按类别原始顺序，即字典序，保证稳定）。
type Forest struct {
	Norm  *symptom.Normalizer
	Vocab *symptom.Vocabulary
	Model *model.Forest

	TopK int // 默认 3
}

func (p *Forest) Name() string { return "predict.forest" }

func (p *Forest) Predict(_ context.Context, pctx *core.PredictContext) (*core.PredictionResult, error) {
	if len(pctx.Symptoms) == 0 {
		return core.NewNoSymptomsResult(), nil
	}
	if p.Model == nil {
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeUnavailable, "forest model not ready")
	}

	vec := p.Vocab.Vectorize(p.Norm, pctx.Symptoms)
	if vec.Sum() == 0 {
		return core.NewUnrecognizedResult(), nil
	}

	proba := p.Model.PredictProba(vec)

	order := make([]int, len(proba))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return proba[order[i]] > proba[order[j]]
	})

	topK := p.TopK
	if topK <= 0 {
		topK = 3
	}
	if topK > len(order) {
		topK = len(order)
	}
	candidates := make([]core.Candidate, 0, topK)
	for _, c := range order[:topK] {
		candidates = append(candidates, core.Candidate{
			Disease:    p.Model.Classes[c],
			Confidence: percent(proba[c]),
		})
	}

	best := order[0]
	res := &core.PredictionResult{
		PredictedDisease: p.Model.Classes[best],
		Confidence:       percent(proba[best]),
		Status:           core.StatusSuccess,
		Score:            proba[best],
		Candidates:       candidates,
	}
	res.PutLabel("predictor", utils.Label{Value: p.Name(), Source: "predict"})
	return res, nil
}
