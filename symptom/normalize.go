// Package symptom 提供症状规范化、词表构建与二值特征向量化。
// 词表与向量在初始化后只读，可被并发预测请求共享。
package symptom

import (
	"regexp"
	"strings"
	"sync"
)

var spaceRe = regexp.MustCompile(`[_\s]+`)

// 缺失值标记：规范化后命中即视为“无症状”，不进入词表和向量。
var missingMarkers = map[string]struct{}{
	"nan":  {},
	"none": {},
}

// Normalizer 把原始症状字符串规范化为 canonical token：
// trim → 小写 → 下划线/空白的连续段折叠为单个空格 → trim → 空格替换为下划线。
// 空串与缺失值标记规范化为 ""。规范化是幂等的纯函数，缓存只是 memo，不影响正确性。
type Normalizer struct {
	mu    sync.RWMutex
	cache map[string]string
}

func NewNormalizer() *Normalizer {
	return &Normalizer{cache: make(map[string]string, 256)}
}

// Normalize 返回 canonical token，"" 表示无症状。
func (n *Normalizer) Normalize(raw string) string {
	n.mu.RLock()
	if v, ok := n.cache[raw]; ok {
		n.mu.RUnlock()
		return v
	}
	n.mu.RUnlock()

	v := normalize(raw)

	n.mu.Lock()
	n.cache[raw] = v
	n.mu.Unlock()
	return v
}

func normalize(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return ""
	}
	v = strings.TrimSpace(spaceRe.ReplaceAllString(v, " "))
	if _, missing := missingMarkers[v]; missing {
		return ""
	}
	return strings.ReplaceAll(v, " ", "_")
}

// SplitCell 拆分单元格：一个单元格可能包含逗号分隔的多个症状，
// 每个子 token 独立规范化，丢弃空结果。
func (n *Normalizer) SplitCell(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if tok := n.Normalize(p); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// NormalizeSet 把一组原始症状规范化为 Set，空结果被丢弃。
func (n *Normalizer) NormalizeSet(symptoms []string) Set {
	s := make(Set, len(symptoms))
	for _, raw := range symptoms {
		if tok := n.Normalize(raw); tok != "" {
			s.Add(tok)
		}
	}
	return s
}
