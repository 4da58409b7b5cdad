package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/srikanth112236/pg-application-sub003/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PGBackendClient PG 后端 API 客户端（房间/楼层数据只读）
type PGBackendClient struct {
	httpClient *resty.Client
	validate   *validator.Validate
	logger     *zap.Logger
}

// envelope 后端统一响应格式
type envelope struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Data     json.RawMessage       `json:"data"`
	Metadata *models.StatsSnapshot `json:"metadata,omitempty"`
}

// New 创建 PG 后端客户端
// 重试只针对传输层失败；业务层 success=false 不重试
func New(baseURL, token string, timeout time.Duration, retryCount int, logger *zap.Logger) *PGBackendClient {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	if token != "" {
		httpClient.SetAuthToken(token)
	}

	return &PGBackendClient{
		httpClient: httpClient,
		validate:   validator.New(),
		logger:     logger,
	}
}

// GetFloors 获取分店楼层列表
func (c *PGBackendClient) GetFloors(ctx context.Context, branchID string) ([]models.Floor, error) {
	env, err := c.get(ctx, "/api/pg/floors", branchID)
	if err != nil {
		return nil, err
	}

	var floors []models.Floor
	if err := json.Unmarshal(env.Data, &floors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal floors: %w", err)
	}

	c.logger.Debug("Fetched floors from PG backend",
		zap.String("branch_id", branchID),
		zap.Int("floor_count", len(floors)),
	)
	return floors, nil
}

// GetRooms 获取分店房间列表（含床位/住户嵌套数据）
// 返回的房间已在抓取边界做过校验和默认值填充；metadata 可能为 nil
func (c *PGBackendClient) GetRooms(ctx context.Context, branchID string) ([]models.Room, *models.StatsSnapshot, error) {
	env, err := c.get(ctx, "/api/pg/rooms", branchID)
	if err != nil {
		return nil, nil, err
	}

	var rooms []models.Room
	if err := json.Unmarshal(env.Data, &rooms); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal rooms: %w", err)
	}

	for i := range rooms {
		c.normalizeRoom(&rooms[i])
	}

	c.logger.Debug("Fetched rooms from PG backend",
		zap.String("branch_id", branchID),
		zap.Int("room_count", len(rooms)),
		zap.Bool("has_metadata", env.Metadata != nil),
	)
	return rooms, env.Metadata, nil
}

func (c *PGBackendClient) get(ctx context.Context, path, branchID string) (*envelope, error) {
	var env envelope
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("branchId", branchID).
		SetResult(&env).
		Get(path)

	if err != nil {
		return nil, fmt.Errorf("failed to call PG backend %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("PG backend %s returned status %d", path, resp.StatusCode())
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("PG backend %s error: %s", path, msg)
	}
	return &env, nil
}

// normalizeRoom 抓取边界的显式契约：校验 + 默认值填充
// 不合规记录不报错（保持原有的降级策略），但会打日志并修正成下游可安全消费的形状
func (c *PGBackendClient) normalizeRoom(r *models.Room) {
	if err := c.validate.Struct(r); err != nil {
		c.logger.Warn("Room payload failed validation, applying defaults",
			zap.String("room_id", r.ID),
			zap.String("room_number", r.RoomNumber),
			zap.Error(err),
		)
	}

	if r.RoomNumber == "" {
		r.RoomNumber = "N/A"
	}
	if r.Floor.Name == "" {
		r.Floor.Name = "N/A"
	}
	if r.NumberOfBeds <= 0 {
		r.NumberOfBeds = len(r.Beds)
	}

	for i := range r.Beds {
		b := &r.Beds[i]
		// 约束：未占用床位不带住户引用和住户状态
		if !b.IsOccupied {
			b.Resident = nil
			b.ResidentStatus = ""
		}
	}
}
