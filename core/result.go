package core

import "github.com/rushteam/diagkit/pkg/utils"

// Status 标记一次预测的结论类别。低置信与未识别是两种不同的非错误结论：
// unrecognized 表示输入完全没有命中词表；low_match 表示命中了词表但没有疾病行匹配得足够好。
type Status string

const (
	StatusSuccess      Status = "success"      // 正常预测
	StatusNoSymptoms   Status = "no_symptoms"  // 未提交任何症状
	StatusUnrecognized Status = "unrecognized" // 症状全部不在词表中
	StatusLowMatch     Status = "low_match"    // 最佳匹配低于阈值
	StatusError        Status = "error"        // 内部错误，已在边界兜底
	StatusFallback     Status = "fallback"     // 主策略失败后由降级策略给出，不冒充 success
)

// Candidate 是候选疾病及其置信度（百分比），用于 UI 透出 Top-N。
type Candidate struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence"`
}

// PredictionResult 是预测链路的统一输出结构：结论、置信度、推荐文本、标签。
// Confidence 统一使用百分比（0-100）；Score 是策略原始分（Jaccard 或概率），用于透明度。
type PredictionResult struct {
	PredictedDisease string      `json:"predicted_disease"`
	Confidence       float64     `json:"confidence"`
	Medicine         string      `json:"medicine_recommendation"`
	Diet             string      `json:"diet_recommendation"`
	FoodsToAvoid     string      `json:"foods_to_avoid"`
	Status           Status      `json:"status"`
	Candidates       []Candidate `json:"candidates,omitempty"`

	Score           float64                `json:"score,omitempty"`
	MatchedSymptoms []string               `json:"matched_symptoms,omitempty"`
	Notes           []string               `json:"notes,omitempty"`
	Labels          map[string]utils.Label `json:"labels,omitempty"`
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (r *PredictionResult) PutLabel(key string, lbl utils.Label) {
	if r.Labels == nil {
		r.Labels = make(map[string]utils.Label)
	}
	if old, ok := r.Labels[key]; ok {
		r.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	r.Labels[key] = lbl
}

// 非 success 结论携带的引导文案，与推荐解析器的安全兜底文案一致维护在此处。
const (
	AdviceNoSymptoms   = "Provide at least one symptom"
	AdviceUnrecognized = "Symptoms not found in dataset vocabulary"
	AdviceLowMatch     = "Insufficient dataset match. Refine symptoms."
	AdviceError        = "Prediction temporarily unavailable"

	FallbackMedicine = "Consult a healthcare provider"
	FallbackDiet     = "Maintain a balanced diet"
	FallbackAvoid    = "No specific foods to avoid mentioned"

	placeholder = "—"
)

// NewNoSymptomsResult 构造空输入结论：不触碰任何模型。
func NewNoSymptomsResult() *PredictionResult {
	return &PredictionResult{
		PredictedDisease: "Unknown",
		Confidence:       0,
		Medicine:         AdviceNoSymptoms,
		Diet:             placeholder,
		FoodsToAvoid:     placeholder,
		Status:           StatusNoSymptoms,
	}
}

// NewUnrecognizedResult 构造词表完全未命中的结论。
func NewUnrecognizedResult() *PredictionResult {
	return &PredictionResult{
		PredictedDisease: "Unknown",
		Confidence:       0,
		Medicine:         AdviceUnrecognized,
		Diet:             placeholder,
		FoodsToAvoid:     placeholder,
		Status:           StatusUnrecognized,
	}
}

// NewLowMatchResult 构造低置信结论，保留原始分以便透明展示，绝不升级为 success。
func NewLowMatchResult(score float64, confidence float64) *PredictionResult {
	return &PredictionResult{
		PredictedDisease: "Unknown",
		Confidence:       confidence,
		Medicine:         AdviceLowMatch,
		Diet:             "General balanced diet, hydration, rest.",
		FoodsToAvoid:     placeholder,
		Status:           StatusLowMatch,
		Score:            score,
	}
}

// NewErrorResult 构造内部错误结论：调用边界兜底用，永不让请求崩溃。
func NewErrorResult(msg string) *PredictionResult {
	if msg == "" {
		msg = AdviceError
	}
	return &PredictionResult{
		PredictedDisease: "Unknown",
		Confidence:       0,
		Medicine:         msg,
		Diet:             placeholder,
		FoodsToAvoid:     placeholder,
		Status:           StatusError,
	}
}
