package symptom

// Vector 是按词表索引的定宽二值向量：1 表示症状出现。
// 由查询或数据行即时派生，不做持久化。
type Vector []uint8

// Sum 返回置位个数。Sum()==0 是“症状全部未识别”的判定条件，
// 调用方必须显式检测并在进入分类器前短路。
func (v Vector) Sum() int {
	n := 0
	for _, b := range v {
		if b != 0 {
			n++
		}
	}
	return n
}

// Vectorize 把原始症状列表映射为词表上的二值向量。
// 未知症状静默丢弃（不报错），结果与输入顺序无关。
func (v *Vocabulary) Vectorize(n *Normalizer, symptoms []string) Vector {
	vec := make(Vector, v.Size())
	for _, raw := range symptoms {
		tok := n.Normalize(raw)
		if tok == "" {
			continue
		}
		if idx, ok := v.index[tok]; ok {
			vec[idx] = 1
		}
	}
	return vec
}

// VectorizeSet 把已规范化的症状集合映射为二值向量（训练数据行使用）。
func (v *Vocabulary) VectorizeSet(s Set) Vector {
	vec := make(Vector, v.Size())
	for tok := range s {
		if idx, ok := v.index[tok]; ok {
			vec[idx] = 1
		}
	}
	return vec
}
