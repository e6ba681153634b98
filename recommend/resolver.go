// Package recommend 负责把预测出的疾病映射回数据集行的推荐文本。
package recommend

import (
	"strings"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/dataset"
	"github.com/rushteam/diagkit/symptom"
)

// Row 是编译后的数据行：疾病名 + 规范化症状集合 + 推荐文本。
// Index 保留加载顺序，tie-break 依赖它保证确定性。
type Row struct {
	Disease      string
	Symptoms     symptom.Set
	Medicine     string
	Diet         string
	FoodsToAvoid string
	Index        int
}

// Compile 把原始数据集编译为打分/推荐共用的行集合（每行一次规范化）。
func Compile(ds *dataset.Dataset, n *symptom.Normalizer) []Row {
	rows := make([]Row, 0, len(ds.Rows))
	for i, r := range ds.Rows {
		set := make(symptom.Set)
		for _, cell := range r.SymptomCells {
			for _, tok := range n.SplitCell(cell) {
				set.Add(tok)
			}
		}
		rows = append(rows, Row{
			Disease:      r.Disease,
			Symptoms:     set,
			Medicine:     r.Medicine,
			Diet:         r.Diet,
			FoodsToAvoid: r.FoodsToAvoid,
			Index:        i,
		})
	}
	return rows
}

// RowSets 返回各行的症状集合（与行顺序平行），供词表构建使用。
func RowSets(rows []Row) []symptom.Set {
	sets := make([]symptom.Set, len(rows))
	for i, r := range rows {
		sets[i] = r.Symptoms
	}
	return sets
}

// Resolver 为预测出的疾病挑选推荐文本：在该疾病的所有行中，
// 取与输入症状交集最大的一行（从原始输入重新计算，分类器路径不产生交集信息）。
// 交集相同时取先出现的行。
type Resolver struct {
	rows []Row
	norm *symptom.Normalizer
}

func NewResolver(rows []Row, norm *symptom.Normalizer) *Resolver {
	return &Resolver{rows: rows, norm: norm}
}

// Resolve 返回 (medicine, diet, foodsToAvoid)。字段缺失或为占位值时
// 回退到通用安全文案，绝不返回空串。
func (rv *Resolver) Resolve(disease string, rawSymptoms []string) (string, string, string) {
	input := rv.norm.NormalizeSet(rawSymptoms)

	var best *Row
	bestInter := -1
	for i := range rv.rows {
		r := &rv.rows[i]
		if r.Disease != disease {
			continue
		}
		inter := input.IntersectLen(r.Symptoms)
		if inter > bestInter {
			bestInter = inter
			best = r
		}
	}
	if best == nil {
		return core.FallbackMedicine, core.FallbackDiet, core.FallbackAvoid
	}
	return orFallback(best.Medicine, core.FallbackMedicine),
		orFallback(best.Diet, core.FallbackDiet),
		orFallback(best.FoodsToAvoid, core.FallbackAvoid)
}

func orFallback(v, fallback string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "nan", "none":
		return fallback
	}
	return v
}
