// Package diagkit 是一个症状到疾病的预测工具包（Diagnosis Kit）。
//
// 设计要点：
// - Dataset-first: 词表、行症状集合、模型全部在初始化时由数据集一次构建，之后只读，可被并发请求共享
// - Strategy 可插拔: Overlap（确定性 Jaccard 匹配，可解释）与 Forest（随机森林）经配置切换，支持降级链与并发 ensemble
// - Labels-first: 预测结果携带 labels（策略来源 / 命中症状 / 降级标记），支持 explain 与观测
package diagkit

import "github.com/rushteam/diagkit/predict"

// 轻量 facade：便于用户直接 import "diagkit" 使用核心抽象。
type Predictor = predict.Predictor
