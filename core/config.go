package core

// 打分与训练相关的缺省值。阈值与 epsilon 在源头上是经验值，
// 因此全部可以在配置里覆盖，这里只固化缺省值。
const (
	// DefaultMinThreshold 是 Overlap 策略的最小匹配阈值（低于它报告 low_match）。
	DefaultMinThreshold = 0.12

	// DefaultTieEpsilon 是分数近似相等的判定 epsilon（tie-break 用）。
	DefaultTieEpsilon = 1e-9

	// DefaultTopK 是候选列表的默认条数。
	DefaultTopK = 3

	// DefaultTrees 是随机森林的默认树数。
	DefaultTrees = 300

	// DefaultSeed 是训练随机源的默认种子。
	DefaultSeed = int64(42)

	// DefaultHoldoutRatio 是留出集比例（仅用于诊断性准确率）。
	DefaultHoldoutRatio = 0.25
)
