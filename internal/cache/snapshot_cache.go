package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/srikanth112236/pg-application-sub003/internal/models"

	"go.uber.org/zap"
)

// SnapshotCache 分店房态快照缓存（服务重启后的暖启动数据源）
type SnapshotCache struct {
	kv     KVStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache 创建快照缓存
func NewSnapshotCache(kv KVStore, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	return &SnapshotCache{
		kv:     kv,
		ttl:    ttl,
		logger: logger,
	}
}

func snapshotKey(branchID string) string {
	return fmt.Sprintf("pg:availability:%s:snapshot", branchID)
}

// Save 写入分店快照
func (c *SnapshotCache) Save(ctx context.Context, snap *models.Snapshot) error {
	jsonData, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := snapshotKey(snap.BranchID)
	if err := c.kv.Set(ctx, key, string(jsonData), c.ttl); err != nil {
		return fmt.Errorf("failed to set snapshot cache: %w", err)
	}

	c.logger.Debug("Updated snapshot cache",
		zap.String("branch_id", snap.BranchID),
		zap.String("key", key),
	)
	return nil
}

// Load 读取分店快照；不存在时返回 ErrCacheMiss
func (c *SnapshotCache) Load(ctx context.Context, branchID string) (*models.Snapshot, error) {
	val, err := c.kv.Get(ctx, snapshotKey(branchID))
	if err != nil {
		if err == ErrCacheMiss {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get snapshot cache: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
