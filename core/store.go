package core

import "context"

// Store 是最小 KV 存储抽象，实现位于 store 包（memory / redis）。
// ttl 单位为秒，省略或 <=0 表示不过期。
type Store interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl ...int) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// KeyValueStore 在 Store 之上扩展有序集合操作，历史记录按时间戳倒序存取。
type KeyValueStore interface {
	Store

	// ZAdd 按 score 写入成员（score 通常是 Unix 时间戳）
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按 score 降序返回 [start, stop] 区间的成员
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZRem 删除指定成员
	ZRem(ctx context.Context, key string, member string) error
}
