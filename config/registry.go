package config

import (
	"sort"
	"sync"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/model"
	"github.com/rushteam/diagkit/predict"
	"github.com/rushteam/diagkit/recommend"
	"github.com/rushteam/diagkit/symptom"
)

// BuildDeps 是构建策略所需的引擎资产：启动时由引擎准备好，
// 构建后所有策略共享同一份只读数据。
type BuildDeps struct {
	Norm  *symptom.Normalizer
	Vocab *symptom.Vocabulary
	Rows  []recommend.Row
	Model *model.Forest // 仅 forest 策略需要，可为 nil
}

// Builder 根据参数构建一个 Predictor。
// 各策略在 init 中调用 Register(typeName, builder) 即可被配置驱动。
type Builder func(deps *BuildDeps, params map[string]any) (predict.Predictor, error)

var (
	defaultBuilders   = make(map[string]Builder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种策略的构建逻辑。
func Register(typeName string, builder Builder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// IsRegistered 判断策略类型是否已注册。
func IsRegistered(typeName string) bool {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	_, ok := defaultBuilders[typeName]
	return ok
}

// SupportedTypes 返回已注册的策略类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Build 按类型名构建策略。
func Build(typeName string, deps *BuildDeps, params map[string]any) (predict.Predictor, error) {
	defaultBuildersMu.RLock()
	builder, ok := defaultBuilders[typeName]
	defaultBuildersMu.RUnlock()
	if !ok {
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeInvalidInput,
			"unsupported strategy "+typeName)
	}
	return builder(deps, params)
}
