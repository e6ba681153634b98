package symptom

import "sort"

// Set 是规范化症状 token 的集合。
type Set map[string]struct{}

func NewSet(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

func (s Set) Add(token string) { s[token] = struct{}{} }

func (s Set) Has(token string) bool {
	_, ok := s[token]
	return ok
}

func (s Set) Len() int { return len(s) }

// IntersectLen 返回交集大小。
func (s Set) IntersectLen(other Set) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if large.Has(t) {
			n++
		}
	}
	return n
}

// UnionLen 返回并集大小。
func (s Set) UnionLen(other Set) int {
	return len(s) + len(other) - s.IntersectLen(other)
}

// Intersect 返回交集元素（排序，用于 explain 输出）。
func (s Set) Intersect(other Set) []string {
	out := make([]string, 0, len(s))
	for t := range s {
		if other.Has(t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Jaccard 返回 |交| / |并|，两个空集视为 0。
func (s Set) Jaccard(other Set) float64 {
	union := s.UnionLen(other)
	if union == 0 {
		return 0
	}
	return float64(s.IntersectLen(other)) / float64(union)
}
