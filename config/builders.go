package config

import (
	"time"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/pkg/conv"
	"github.com/rushteam/diagkit/predict"
)

func init() {
	Register("overlap", buildOverlap)
	Register("forest", buildForest)
	Register("fallback", buildFallback)
	Register("ensemble", buildEnsemble)
}

func buildOverlap(deps *BuildDeps, params map[string]any) (predict.Predictor, error) {
	return &predict.Overlap{
		Norm:         deps.Norm,
		Vocab:        deps.Vocab,
		Rows:         deps.Rows,
		MinThreshold: conv.ConfigGetFloat64(params, "min_threshold", core.DefaultMinThreshold),
		TieEpsilon:   conv.ConfigGetFloat64(params, "tie_epsilon", core.DefaultTieEpsilon),
	}, nil
}

func buildForest(deps *BuildDeps, params map[string]any) (predict.Predictor, error) {
	if deps.Model == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeUnavailable,
			"forest strategy requires a trained model")
	}
	return &predict.Forest{
		Norm:  deps.Norm,
		Vocab: deps.Vocab,
		Model: deps.Model,
		TopK:  int(conv.ConfigGetInt64(params, "top_k", core.DefaultTopK)),
	}, nil
}

// buildFallback 组装降级链：primary 默认 forest，secondary 默认 overlap。
func buildFallback(deps *BuildDeps, params map[string]any) (predict.Predictor, error) {
	primaryType := conv.ConfigGet[string](params, "primary", "forest")
	secondaryType := conv.ConfigGet[string](params, "secondary", "overlap")

	primary, err := Build(primaryType, deps, params)
	if err != nil {
		return nil, err
	}
	secondary, err := Build(secondaryType, deps, params)
	if err != nil {
		return nil, err
	}
	return &predict.Fallback{Primary: primary, Secondary: secondary}, nil
}

func buildEnsemble(deps *BuildDeps, params map[string]any) (predict.Predictor, error) {
	members := conv.SliceAnyToString(params["members"])
	if len(members) == 0 {
		members = []string{"forest", "overlap"}
	}

	predictors := make([]predict.Predictor, 0, len(members))
	for _, m := range members {
		p, err := Build(m, deps, params)
		if err != nil {
			return nil, err
		}
		predictors = append(predictors, p)
	}

	ens := &predict.Ensemble{Predictors: predictors}
	if sec := conv.ConfigGetInt64(params, "timeout", 0); sec > 0 {
		ens.Timeout = time.Duration(sec) * time.Second
	}
	return ens, nil
}
