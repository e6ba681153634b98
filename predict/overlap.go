package predict

import (
	"context"
	"math"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/pkg/utils"
	"github.com/rushteam/diagkit/recommend"
	"github.com/rushteam/diagkit/symptom"
)

// Overlap 是确定性的数据集重叠打分策略：对每一行计算输入症状集合与该行
// 症状集合的 Jaccard 相似度（|交|/|并|），取最佳行。无训练、完全可解释，
// 适合审计优先于泛化的场景。
//
// tie-break 规则：
//   - 严格更高的分数获胜
//   - 分差在 TieEpsilon 内视为平局，优先取交集更大的行
//   - 仍平局时取先出现的行（与加载顺序绑定的确定性契约）
//
// 最佳分低于 MinThreshold 时报告 low_match，而不是给出虚高的结论。
type Overlap struct {
	Norm  *symptom.Normalizer
	Vocab *symptom.Vocabulary
	Rows  []recommend.Row

	MinThreshold float64 // 默认 0.12
	TieEpsilon   float64 // 默认 1e-9
}

func (p *Overlap) Name() string { return "predict.overlap" }

func (p *Overlap) Predict(_ context.Context, pctx *core.PredictContext) (*core.PredictionResult, error) {
	if len(pctx.Symptoms) == 0 {
		return core.NewNoSymptomsResult(), nil
	}

	input := p.Norm.NormalizeSet(pctx.Symptoms)
	if !p.anyInVocab(input) {
		return core.NewUnrecognizedResult(), nil
	}

	var best *recommend.Row
	bestScore := 0.0
	bestInter := 0
	for i := range p.Rows {
		r := &p.Rows[i]
		inter := input.IntersectLen(r.Symptoms)
		if inter == 0 {
			continue
		}
		score := float64(inter) / float64(input.UnionLen(r.Symptoms))
		switch {
		case score > bestScore+p.TieEpsilon:
			best, bestScore, bestInter = r, score, inter
		case best != nil && math.Abs(score-bestScore) <= p.TieEpsilon && inter > bestInter:
			best, bestScore, bestInter = r, score, inter
		}
	}

	if best == nil || bestScore < p.MinThreshold {
		return core.NewLowMatchResult(bestScore, percent(bestScore)), nil
	}

	res := &core.PredictionResult{
		PredictedDisease: best.Disease,
		Confidence:       percent(bestScore),
		Status:           core.StatusSuccess,
		Score:            bestScore,
		MatchedSymptoms:  input.Intersect(best.Symptoms),
	}
	res.PutLabel("predictor", utils.Label{Value: p.Name(), Source: "predict"})
	return res, nil
}

// anyInVocab 判断输入是否至少命中一个词表 token。
// 空集（全部规范化为空）与全部未知都算未命中。
func (p *Overlap) anyInVocab(input symptom.Set) bool {
	for tok := range input {
		if p.Vocab.Has(tok) {
			return true
		}
	}
	return false
}
