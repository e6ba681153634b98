// Package model 提供本地推理的分类模型实现。
package model

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ForestConfig 是随机森林的训练配置。零值字段由 Train 填充缺省。
type ForestConfig struct {
	Trees        int     // 树的数量，默认 300
	Seed         int64   // 随机种子，固定种子保证训练可复现，默认 42
	HoldoutRatio float64 // 留出集比例（诊断性准确率用），<=0 表示全量训练
	MaxDepth     int     // 树的最大深度，<=0 表示不限制
}

// Forest 是随机森林分类器（Random Forest）。
//
// 工程特征：
//   - 实时性：好（本地推理，二值特征上每棵树一条路径）
//   - 可解释性：中（可透出 Top-N 候选概率）
//   - 类别不均衡：按每棵树的 bootstrap 样本做 balanced 权重
//
// 实现要点：
//   - CART 决策树 + 加权 Gini 不纯度
//   - bootstrap 采样 + sqrt(d) 特征子采样
//   - 概率输出为各树叶子分布的平均，类别顺序固定为字典序
type Forest struct {
	// Classes 是疾病类别，字典序。概率分布与候选 tie-break 都按此顺序。
	Classes []string

	trees     []*treeNode
	nFeatures int
}

type treeNode struct {
	leaf    bool
	proba   []float64 // 叶子：按 Classes 顺序的概率分布
	feature int
	zero    *treeNode // 特征为 0 的分支
	one     *treeNode // 特征为 1 的分支
}

// Train 训练随机森林并返回留出集准确率（HoldoutRatio<=0 时为 0）。
// 仅当每个类别至少有 2 个样本时按类别分层切分，否则退化为整体随机切分。
func Train(x [][]uint8, y []string, cfg ForestConfig) (*Forest, float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, 0, fmt.Errorf("model: need equal non-empty x/y, got %d/%d", len(x), len(y))
	}
	if cfg.Trees <= 0 {
		cfg.Trees = 300
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}

	classes := uniqueSorted(y)
	classIdx := make(map[string]int, len(classes))
	for i, c := range classes {
		classIdx[c] = i
	}

	trainIdx, testIdx := split(y, classIdx, cfg.HoldoutRatio, cfg.Seed)

	f := &Forest{
		Classes:   classes,
		trees:     make([]*treeNode, 0, cfg.Trees),
		nFeatures: len(x[0]),
	}
	mtry := int(math.Sqrt(float64(f.nFeatures)))
	if mtry < 1 {
		mtry = 1
	}

	for t := 0; t < cfg.Trees; t++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(t)*1000003))

		// bootstrap 采样
		sample := make([]int, len(trainIdx))
		for i := range sample {
			sample[i] = trainIdx[rng.Intn(len(trainIdx))]
		}

		// balanced_subsample：按本棵树样本中的类别频次加权
		counts := make([]float64, len(classes))
		for _, i := range sample {
			counts[classIdx[y[i]]]++
		}
		weights := make([]float64, len(classes))
		for c := range weights {
			if counts[c] > 0 {
				weights[c] = float64(len(sample)) / (float64(len(classes)) * counts[c])
			}
		}

		b := &treeBuilder{
			x: x, y: y,
			classIdx: classIdx,
			nClasses: len(classes),
			weights:  weights,
			mtry:     mtry,
			maxDepth: cfg.MaxDepth,
			rng:      rng,
		}
		f.trees = append(f.trees, b.build(sample, 0))
	}

	acc := 0.0
	if len(testIdx) > 0 {
		hit := 0
		for _, i := range testIdx {
			if label, _ := f.Predict(x[i]); label == y[i] {
				hit++
			}
		}
		acc = float64(hit) / float64(len(testIdx))
	}
	return f, acc, nil
}

// PredictProba 返回按 Classes 顺序的概率分布（各树叶子分布的平均）。
func (f *Forest) PredictProba(x []uint8) []float64 {
	proba := make([]float64, len(f.Classes))
	for _, root := range f.trees {
		node := root
		for !node.leaf {
			if int(at(x, node.feature)) == 1 {
				node = node.one
			} else {
				node = node.zero
			}
		}
		for c, p := range node.proba {
			proba[c] += p
		}
	}
	if len(f.trees) > 0 {
		for c := range proba {
			proba[c] /= float64(len(f.trees))
		}
	}
	return proba
}

// Predict 返回概率最高的类别及其概率，平局取字典序更小的类别。
func (f *Forest) Predict(x []uint8) (string, float64) {
	proba := f.PredictProba(x)
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return f.Classes[best], proba[best]
}

type treeBuilder struct {
	x        [][]uint8
	y        []string
	classIdx map[string]int
	nClasses int
	weights  []float64
	mtry     int
	maxDepth int
	rng      *rand.Rand
}

func (b *treeBuilder) build(indices []int, depth int) *treeNode {
	counts := b.weightedCounts(indices)
	if b.isPure(counts) || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return b.leaf(counts)
	}

	feature, ok := b.bestSplit(indices, counts)
	if !ok {
		return b.leaf(counts)
	}

	var zeros, ones []int
	for _, i := range indices {
		if int(at(b.x[i], feature)) == 1 {
			ones = append(ones, i)
		} else {
			zeros = append(zeros, i)
		}
	}
	if len(zeros) == 0 || len(ones) == 0 {
		return b.leaf(counts)
	}
	return &treeNode{
		feature: feature,
		zero:    b.build(zeros, depth+1),
		one:     b.build(ones, depth+1),
	}
}

// bestSplit 在随机抽取的 mtry 个特征里找加权 Gini 降幅最大的切分。
func (b *treeBuilder) bestSplit(indices []int, counts []float64) (int, bool) {
	nFeatures := len(b.x[indices[0]])
	parent := gini(counts)
	total := sum(counts)

	bestFeature, bestGain := -1, 0.0
	for _, feature := range b.sampleFeatures(nFeatures) {
		onesCounts := make([]float64, b.nClasses)
		for _, i := range indices {
			if int(at(b.x[i], feature)) == 1 {
				onesCounts[b.classIdx[b.y[i]]] += b.weights[b.classIdx[b.y[i]]]
			}
		}
		onesTotal := sum(onesCounts)
		if onesTotal == 0 || onesTotal == total {
			continue
		}
		zeroCounts := make([]float64, b.nClasses)
		for c := range zeroCounts {
			zeroCounts[c] = counts[c] - onesCounts[c]
		}
		weighted := (onesTotal*gini(onesCounts) + (total-onesTotal)*gini(zeroCounts)) / total
		if gain := parent - weighted; gain > bestGain+1e-12 {
			bestGain = gain
			bestFeature = feature
		}
	}
	return bestFeature, bestFeature >= 0
}

func (b *treeBuilder) sampleFeatures(nFeatures int) []int {
	if b.mtry >= nFeatures {
		out := make([]int, nFeatures)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return b.rng.Perm(nFeatures)[:b.mtry]
}

func (b *treeBuilder) weightedCounts(indices []int) []float64 {
	counts := make([]float64, b.nClasses)
	for _, i := range indices {
		c := b.classIdx[b.y[i]]
		counts[c] += b.weights[c]
	}
	return counts
}

func (b *treeBuilder) isPure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func (b *treeBuilder) leaf(counts []float64) *treeNode {
	proba := make([]float64, len(counts))
	if total := sum(counts); total > 0 {
		for c := range counts {
			proba[c] = counts[c] / total
		}
	}
	return &treeNode{leaf: true, proba: proba}
}

// split 切分训练/留出集。分层切分保证每个类别在训练集中至少保留一个样本。
func split(y []string, classIdx map[string]int, ratio float64, seed int64) (train, test []int) {
	if ratio <= 0 || ratio >= 1 {
		train = make([]int, len(y))
		for i := range y {
			train[i] = i
		}
		return train, nil
	}

	rng := rand.New(rand.NewSource(seed))
	byClass := make(map[string][]int)
	minCount := len(y)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	for _, members := range byClass {
		if len(members) < minCount {
			minCount = len(members)
		}
	}

	if minCount < 2 {
		// 无法分层：整体随机切分
		perm := rng.Perm(len(y))
		nTest := int(math.Round(ratio * float64(len(y))))
		if nTest >= len(y) {
			nTest = len(y) - 1
		}
		return perm[nTest:], perm[:nTest]
	}

	labels := make([]string, 0, len(byClass))
	for label := range byClass {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		members := byClass[label]
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
		nTest := int(math.Round(ratio * float64(len(members))))
		if nTest >= len(members) {
			nTest = len(members) - 1
		}
		test = append(test, members[:nTest]...)
		train = append(train, members[nTest:]...)
	}
	return train, test
}

func gini(counts []float64) float64 {
	total := sum(counts)
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := c / total
		impurity -= p * p
	}
	return impurity
}

func sum(vals []float64) float64 {
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s
}

func at(x []uint8, i int) uint8 {
	if i < 0 || i >= len(x) {
		return 0
	}
	return x[i]
}

func uniqueSorted(y []string) []string {
	seen := make(map[string]struct{}, len(y))
	out := make([]string, 0, len(y))
	for _, v := range y {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
