package symptom

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rushteam/diagkit/core"
)

// Vocabulary 是规范化症状 token 到稠密下标的双射。
// 不变量：下标连续 [0, N)，token 去重且按字典序排列，
// 因此同一数据集重建得到的下标完全一致（模型持久化与测试复现都依赖这点）。
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// BuildVocabulary 从各行症状集合构建词表。
// 数据集中提取不到任何症状时返回 NO_TRAINING_DATA，调用方必须中止初始化。
func BuildVocabulary(rowSets []Set) (*Vocabulary, error) {
	all := make(Set)
	for _, rs := range rowSets {
		for t := range rs {
			all.Add(t)
		}
	}
	if len(all) == 0 {
		return nil, core.NewDomainError(core.ModuleSymptom, core.ErrorCodeNoTrainingData,
			"no symptoms extractable from dataset")
	}

	tokens := make([]string, 0, len(all))
	for t := range all {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	index := make(map[string]int, len(tokens))
	for i, t := range tokens {
		index[t] = i
	}
	return &Vocabulary{tokens: tokens, index: index}, nil
}

// Size 返回词表大小 N。
func (v *Vocabulary) Size() int { return len(v.tokens) }

// Index 返回 token 的下标。
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Has 判断 token 是否在词表中。
func (v *Vocabulary) Has(token string) bool {
	_, ok := v.index[token]
	return ok
}

// Tokens 返回词表 token（字典序，调用方不得修改）。
func (v *Vocabulary) Tokens() []string { return v.tokens }

var titleCaser = cases.Title(language.English)

// Display 返回人类可读的词表：下划线还原为空格并 Title 化。
func (v *Vocabulary) Display() []string {
	out := make([]string, len(v.tokens))
	for i, t := range v.tokens {
		out[i] = titleCaser.String(strings.ReplaceAll(t, "_", " "))
	}
	return out
}
