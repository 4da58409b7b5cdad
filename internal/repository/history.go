package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srikanth112236/pg-application-sub003/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SnapshotHistoryRepository 历史统计存储（availability_snapshots 表）
// 每次成功刷新落一行，用于入住率趋势查询
type SnapshotHistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSnapshotHistoryRepository 创建历史统计 Repository
func NewSnapshotHistoryRepository(db *sql.DB, logger *zap.Logger) *SnapshotHistoryRepository {
	return &SnapshotHistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Insert 写入一条历史统计记录
func (r *SnapshotHistoryRepository) Insert(ctx context.Context, branchID string, stats models.StatsSnapshot, capturedAt time.Time) error {
	id := uuid.New().String()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO availability_snapshots
		 (snapshot_id, branch_id, total_rooms, total_beds, available_beds, occupied_beds, notice_period_beds, occupancy_rate, captured_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id,
		branchID,
		stats.TotalRooms,
		stats.TotalBeds,
		stats.AvailableBeds,
		stats.OccupiedBeds,
		stats.NoticePeriodBeds,
		stats.OccupancyRate,
		capturedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert availability snapshot: %w", err)
	}

	r.logger.Debug("Recorded availability snapshot",
		zap.String("snapshot_id", id),
		zap.String("branch_id", branchID),
	)
	return nil
}

// ListRecent 按时间倒序返回分店最近的历史统计
func (r *SnapshotHistoryRepository) ListRecent(ctx context.Context, branchID string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT snapshot_id, branch_id, total_rooms, total_beds, available_beds, occupied_beds, notice_period_beds, occupancy_rate, captured_at
		 FROM availability_snapshots
		 WHERE branch_id = $1
		 ORDER BY captured_at DESC
		 LIMIT $2`,
		branchID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability snapshots: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(
			&e.ID,
			&e.BranchID,
			&e.TotalRooms,
			&e.TotalBeds,
			&e.AvailableBeds,
			&e.OccupiedBeds,
			&e.NoticePeriodBeds,
			&e.OccupancyRate,
			&e.CapturedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan availability snapshot: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate availability snapshots: %w", err)
	}

	return entries, nil
}
