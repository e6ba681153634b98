// Package history 持久化每个患者的预测历史（保存 / 查询 / 删除 / 清空）。
// 记录以 JSON 形式写入 KeyValueStore 的有序集合，score 为创建时间戳，
// 查询时按时间倒序返回。
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rushteam/diagkit/core"
)

// Record 是一条预测历史。
type Record struct {
	ID        string                 `json:"id"`
	PatientID string                 `json:"patient_id"`
	Symptoms  []string               `json:"symptoms"`
	Result    *core.PredictionResult `json:"result"`
	CreatedAt time.Time              `json:"created_at"`
}

// Recorder 是历史记录器。TTL<=0 表示记录不过期。
type Recorder struct {
	Store core.KeyValueStore
	TTL   time.Duration
}

func NewRecorder(s core.KeyValueStore, ttl time.Duration) *Recorder {
	return &Recorder{Store: s, TTL: ttl}
}

func key(patientID string) string { return "diagkit:history:" + patientID }

// Save 追加一条历史并返回之（含生成的 ID）。
func (rc *Recorder) Save(ctx context.Context, patientID string, symptoms []string, result *core.PredictionResult) (*Record, error) {
	now := time.Now()
	rec := &Record{
		ID:        fmt.Sprintf("%s-%d", patientID, now.UnixNano()),
		PatientID: patientID,
		Symptoms:  symptoms,
		Result:    result,
		CreatedAt: now,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := rc.Store.ZAdd(ctx, key(patientID), float64(now.UnixNano()), string(data)); err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}
	rc.prune(ctx, patientID, now)
	return rec, nil
}

// prune 在写入时顺带清理超过 TTL 的旧记录，清理失败不影响写入。
func (rc *Recorder) prune(ctx context.Context, patientID string, now time.Time) {
	if rc.TTL <= 0 {
		return
	}
	cutoff := now.Add(-rc.TTL)
	members, err := rc.Store.ZRange(ctx, key(patientID), 0, -1)
	if err != nil {
		return
	}
	for _, m := range members {
		var rec Record
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			continue
		}
		if rec.CreatedAt.Before(cutoff) {
			_ = rc.Store.ZRem(ctx, key(patientID), m)
		}
	}
}

// List 按时间倒序返回最多 limit 条历史，limit<=0 表示全部。
func (rc *Recorder) List(ctx context.Context, patientID string, limit int) ([]*Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	members, err := rc.Store.ZRange(ctx, key(patientID), 0, stop)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := make([]*Record, 0, len(members))
	for _, m := range members {
		var rec Record
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			continue // 损坏的历史条目直接跳过
		}
		out = append(out, &rec)
	}
	return out, nil
}

// Delete 删除指定 ID 的一条历史；不存在时返回 NOT_FOUND。
func (rc *Recorder) Delete(ctx context.Context, patientID, recordID string) error {
	members, err := rc.Store.ZRange(ctx, key(patientID), 0, -1)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	for _, m := range members {
		var rec Record
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			continue
		}
		if rec.ID == recordID {
			return rc.Store.ZRem(ctx, key(patientID), m)
		}
	}
	return core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound,
		fmt.Sprintf("history record %s not found", recordID))
}

// DeleteAll 清空患者的全部历史，返回删除的条数。
func (rc *Recorder) DeleteAll(ctx context.Context, patientID string) (int, error) {
	members, err := rc.Store.ZRange(ctx, key(patientID), 0, -1)
	if err != nil {
		return 0, fmt.Errorf("load records: %w", err)
	}
	if err := rc.Store.Delete(ctx, key(patientID)); err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return len(members), nil
}
