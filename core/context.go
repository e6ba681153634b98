package core

import "github.com/rushteam/diagkit/pkg/utils"

// PredictContext 承载一次预测请求的输入，贯穿策略层与规则层透传。
type PredictContext struct {
	// Symptoms 是用户提交的原始症状字符串（顺序无关，向量化保证置换不变）。
	Symptoms []string

	// PatientID 非空时，预测结果会写入历史记录。
	PatientID string

	// Age/Gender 当前不参与打分，仅供规则层做分层提示（预留给后续分层策略）。
	Age    int
	Gender string

	// Labels 是请求级标签，可驱动策略行为（如强制降级、实验分组）。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（device_type、locale 等），规则表达式可见。
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (pctx *PredictContext) PutLabel(key string, lbl utils.Label) {
	if pctx.Labels == nil {
		pctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := pctx.Labels[key]; ok {
		pctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	pctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (pctx *PredictContext) GetLabel(key string) (utils.Label, bool) {
	if pctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := pctx.Labels[key]
	return lbl, ok
}
