package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/srikanth112236/pg-application-sub003/internal/filter"
	"github.com/srikanth112236/pg-application-sub003/internal/models"
	"github.com/srikanth112236/pg-application-sub003/internal/service"

	"go.uber.org/zap"
)

// AvailabilityProvider 房态聚合服务（便于测试替换）
type AvailabilityProvider interface {
	Snapshot(ctx context.Context, branchID string) (*models.Snapshot, error)
	LoadBranch(ctx context.Context, branchID string) (*models.Snapshot, error)
	Refresh(ctx context.Context, branchID string) (*models.Snapshot, error)
	Status(branchID string) service.BranchStatus
}

// HistoryLister 历史统计查询（可为 nil，表示未启用数据库）
type HistoryLister interface {
	ListRecent(ctx context.Context, branchID string, limit int) ([]models.HistoryEntry, error)
}

// AvailabilityHandler 房态聚合 Handler
type AvailabilityHandler struct {
	svc     AvailabilityProvider
	history HistoryLister
	logger  *zap.Logger
}

// NewAvailabilityHandler 创建房态聚合 Handler
func NewAvailabilityHandler(svc AvailabilityProvider, history HistoryLister, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		svc:     svc,
		history: history,
		logger:  logger,
	}
}

// branchIDFromReq 分店 ID 是所有查询的显式作用域参数
func (h *AvailabilityHandler) branchIDFromReq(w http.ResponseWriter, r *http.Request) (string, bool) {
	branchID := r.URL.Query().Get("branch_id")
	if branchID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("branch_id is required"))
		return "", false
	}
	return branchID, true
}

// GetRooms 获取过滤后的房间视图 + 全量统计
// 统计永远基于未过滤的房间集合，过滤只影响 rooms 列表
func (h *AvailabilityHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchIDFromReq(w, r)
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(r.Context(), branchID)
	if err != nil && snap == nil {
		h.logger.Error("Failed to get availability snapshot",
			zap.Error(err),
			zap.String("branch_id", branchID),
		)
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	crit := filter.Criteria{
		Search:  r.URL.Query().Get("search"),
		Status:  filter.Status(r.URL.Query().Get("status")),
		FloorID: r.URL.Query().Get("floor_id"),
	}
	rooms := filter.Apply(snap.Rooms, crit)

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"rooms":     rooms,
		"total":     len(rooms),
		"stats":     snap.Stats,
		"fetchedAt": snap.FetchedAt,
		"status":    h.svc.Status(branchID),
	}))
}

// GetFloors 获取分店楼层列表
func (h *AvailabilityHandler) GetFloors(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchIDFromReq(w, r)
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(r.Context(), branchID)
	if err != nil && snap == nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"floors": snap.Floors,
	}))
}

// GetStats 获取分店全量统计
func (h *AvailabilityHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchIDFromReq(w, r)
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(r.Context(), branchID)
	if err != nil && snap == nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"stats":     snap.Stats,
		"fetchedAt": snap.FetchedAt,
	}))
}

// Refresh 手动刷新
// scope=full 重新加载楼层+房间（分店切换），默认只刷新房间。
// 刷新失败不清空已有数据：读接口继续提供上一份快照，这里只返回错误消息
func (h *AvailabilityHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchIDFromReq(w, r)
	if !ok {
		return
	}

	scope := r.URL.Query().Get("scope")

	var snap *models.Snapshot
	var err error
	if scope == "full" {
		snap, err = h.svc.LoadBranch(r.Context(), branchID)
	} else {
		snap, err = h.svc.Refresh(r.Context(), branchID)
	}

	if err != nil {
		h.logger.Error("Refresh failed",
			zap.Error(err),
			zap.String("branch_id", branchID),
			zap.String("scope", scope),
		)
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"stats":     snap.Stats,
		"roomCount": len(snap.Rooms),
		"fetchedAt": snap.FetchedAt,
	}))
}

// GetHistory 获取分店历史统计（数据库未启用时返回空列表）
func (h *AvailabilityHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchIDFromReq(w, r)
	if !ok {
		return
	}

	if h.history == nil {
		writeJSON(w, http.StatusOK, Ok(map[string]any{
			"entries": []models.HistoryEntry{},
		}))
		return
	}

	limit := parseInt(r.URL.Query().Get("limit"), 30)
	entries, err := h.history.ListRecent(r.Context(), branchID, limit)
	if err != nil {
		h.logger.Error("Failed to list snapshot history",
			zap.Error(err),
			zap.String("branch_id", branchID),
		)
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"entries": entries,
	}))
}

// Export 导出当前房态为 xlsx
func (h *AvailabilityHandler) Export(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchIDFromReq(w, r)
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(r.Context(), branchID)
	if err != nil && snap == nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	data, err := GenerateAvailabilityExport(snap.Rooms)
	if err != nil {
		h.logger.Error("Failed to generate availability export",
			zap.Error(err),
			zap.String("branch_id", branchID),
		)
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	filename := fmt.Sprintf("availability-%s-%s.xlsx", branchID, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
