package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/srikanth112236/pg-application-sub003/internal/classifier"
	"github.com/srikanth112236/pg-application-sub003/internal/models"
	"github.com/srikanth112236/pg-application-sub003/internal/stats"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BackendAPI PG 后端数据源（resty 实现见 client 包）
type BackendAPI interface {
	GetFloors(ctx context.Context, branchID string) ([]models.Floor, error)
	GetRooms(ctx context.Context, branchID string) ([]models.Room, *models.StatsSnapshot, error)
}

// SnapshotStore 快照缓存（可选依赖，nil 表示禁用）
type SnapshotStore interface {
	Save(ctx context.Context, snap *models.Snapshot) error
	Load(ctx context.Context, branchID string) (*models.Snapshot, error)
}

// HistoryRecorder 历史统计记录（可选依赖，nil 表示禁用）
type HistoryRecorder interface {
	Insert(ctx context.Context, branchID string, stats models.StatsSnapshot, capturedAt time.Time) error
}

// FetchState 分店抓取状态机：idle → loading → ready | failed
type FetchState string

const (
	StateIdle    FetchState = "idle"
	StateLoading FetchState = "loading"
	StateReady   FetchState = "ready"
	StateFailed  FetchState = "failed"
)

// BranchStatus 分店当前抓取状态（对外展示用）
type BranchStatus struct {
	State     FetchState `json:"state"`
	LastError string     `json:"lastError,omitempty"`
	FetchedAt time.Time  `json:"fetchedAt,omitempty"`
}

// branchState 单个分店的内部状态；generation 用于丢弃过期响应
type branchState struct {
	state      FetchState
	snapshot   *models.Snapshot
	lastErr    error
	generation uint64
}

// AvailabilityService 房态聚合编排
// 分店 ID 是所有操作的显式参数，不依赖任何全局"当前分店"状态。
// 快照整体替换：成功刷新前对外始终提供上一份有效数据
type AvailabilityService struct {
	client  BackendAPI
	cache   SnapshotStore
	history HistoryRecorder
	logger  *zap.Logger

	mu       sync.Mutex
	branches map[string]*branchState
}

// NewAvailabilityService 创建房态聚合服务
func NewAvailabilityService(client BackendAPI, cache SnapshotStore, history HistoryRecorder, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		client:   client,
		cache:    cache,
		history:  history,
		logger:   logger,
		branches: make(map[string]*branchState),
	}
}

// branch 获取或创建分店状态；调用方必须持有 s.mu
func (s *AvailabilityService) branch(branchID string) *branchState {
	bs, ok := s.branches[branchID]
	if !ok {
		bs = &branchState{state: StateIdle}
		s.branches[branchID] = bs
	}
	return bs
}

// Snapshot 返回分店当前快照；首次访问触发全量加载
// 缓存里有快照时先用缓存暖启动（过期数据好过空白页），不阻塞在后端上
func (s *AvailabilityService) Snapshot(ctx context.Context, branchID string) (*models.Snapshot, error) {
	if branchID == "" {
		return nil, fmt.Errorf("branch id is required")
	}

	s.mu.Lock()
	bs := s.branch(branchID)
	if bs.snapshot != nil {
		snap := bs.snapshot
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	if s.cache != nil {
		if cached, err := s.cache.Load(ctx, branchID); err == nil && cached != nil {
			s.mu.Lock()
			bs := s.branch(branchID)
			if bs.snapshot == nil {
				bs.snapshot = cached
				bs.state = StateReady
			}
			snap := bs.snapshot
			s.mu.Unlock()
			s.logger.Info("Warm-started branch snapshot from cache",
				zap.String("branch_id", branchID),
				zap.Time("fetched_at", cached.FetchedAt),
			)
			return snap, nil
		}
	}

	return s.LoadBranch(ctx, branchID)
}

// LoadBranch 全量加载（楼层+房间），分店切换时调用
func (s *AvailabilityService) LoadBranch(ctx context.Context, branchID string) (*models.Snapshot, error) {
	return s.load(ctx, branchID, true)
}

// Refresh 手动刷新：只重新拉取房间，楼层沿用上次结果
// 还没有楼层数据时退化为全量加载
func (s *AvailabilityService) Refresh(ctx context.Context, branchID string) (*models.Snapshot, error) {
	s.mu.Lock()
	bs := s.branch(branchID)
	full := bs.snapshot == nil || len(bs.snapshot.Floors) == 0
	s.mu.Unlock()
	return s.load(ctx, branchID, full)
}

// Status 返回分店抓取状态
func (s *AvailabilityService) Status(branchID string) BranchStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	bs, ok := s.branches[branchID]
	if !ok {
		return BranchStatus{State: StateIdle}
	}
	status := BranchStatus{State: bs.state}
	if bs.lastErr != nil {
		status.LastError = bs.lastErr.Error()
	}
	if bs.snapshot != nil {
		status.FetchedAt = bs.snapshot.FetchedAt
	}
	return status
}

func (s *AvailabilityService) load(ctx context.Context, branchID string, full bool) (*models.Snapshot, error) {
	if branchID == "" {
		return nil, fmt.Errorf("branch id is required")
	}

	requestID := uuid.New().String()

	s.mu.Lock()
	bs := s.branch(branchID)
	bs.generation++
	gen := bs.generation
	bs.state = StateLoading
	var prevFloors []models.Floor
	if bs.snapshot != nil {
		prevFloors = bs.snapshot.Floors
	}
	s.mu.Unlock()

	s.logger.Info("Loading availability snapshot",
		zap.String("branch_id", branchID),
		zap.String("request_id", requestID),
		zap.Bool("full", full),
		zap.Uint64("generation", gen),
	)

	floors := prevFloors
	var err error
	if full {
		floors, err = s.client.GetFloors(ctx, branchID)
		if err != nil {
			return s.fail(branchID, gen, requestID, fmt.Errorf("failed to fetch floors: %w", err))
		}
	}

	rooms, metadata, err := s.client.GetRooms(ctx, branchID)
	if err != nil {
		return s.fail(branchID, gen, requestID, fmt.Errorf("failed to fetch rooms: %w", err))
	}

	views := classifier.Annotate(rooms)
	computed := stats.Compute(views)
	resolved := stats.Resolve(computed, metadata, s.logger)

	snap := &models.Snapshot{
		BranchID:  branchID,
		Rooms:     views,
		Floors:    floors,
		Stats:     resolved,
		FetchedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	bs = s.branch(branchID)
	if gen != bs.generation {
		// 期间已发出更新的加载：丢弃本次结果，绝不覆盖更新的状态
		current := bs.snapshot
		currentGen := bs.generation
		s.mu.Unlock()
		s.logger.Warn("Discarding stale snapshot response",
			zap.String("branch_id", branchID),
			zap.String("request_id", requestID),
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", currentGen),
		)
		return current, nil
	}
	bs.snapshot = snap
	bs.state = StateReady
	bs.lastErr = nil
	s.mu.Unlock()

	// 缓存和历史都是尽力而为，失败不影响本次刷新
	if s.cache != nil {
		if err := s.cache.Save(ctx, snap); err != nil {
			s.logger.Warn("Failed to cache snapshot",
				zap.String("branch_id", branchID),
				zap.Error(err),
			)
		}
	}
	if s.history != nil {
		if err := s.history.Insert(ctx, branchID, resolved, snap.FetchedAt); err != nil {
			s.logger.Warn("Failed to record snapshot history",
				zap.String("branch_id", branchID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Availability snapshot updated",
		zap.String("branch_id", branchID),
		zap.String("request_id", requestID),
		zap.Int("room_count", len(views)),
		zap.Int("total_beds", resolved.TotalBeds),
		zap.Float64("occupancy_rate", resolved.OccupancyRate),
	)
	return snap, nil
}

// fail 记录失败状态；上一份有效快照保留（不做破坏性清空）
func (s *AvailabilityService) fail(branchID string, gen uint64, requestID string, err error) (*models.Snapshot, error) {
	s.mu.Lock()
	bs := s.branch(branchID)
	if gen == bs.generation {
		bs.state = StateFailed
		bs.lastErr = err
	}
	prev := bs.snapshot
	s.mu.Unlock()

	s.logger.Error("Failed to load availability snapshot",
		zap.String("branch_id", branchID),
		zap.String("request_id", requestID),
		zap.Error(err),
	)
	return prev, err
}
