package models

import (
	"time"
)

// BedView 分类后的床位视图
type BedView struct {
	BedNumber int              `json:"bedNumber"`
	Status    BedStatus        `json:"status"`
	Resident  *ResidentSummary `json:"resident,omitempty"`
}

// RoomView 聚合后的房间视图（展示状态 + 重新推导的床位计数）
// 不变量：AvailableBedCount + OccupiedBedCount == NumberOfBeds
// （notice_period 床位计入 OccupiedBedCount，同时单独统计）
type RoomView struct {
	ID                   string      `json:"_id"`
	RoomNumber           string      `json:"roomNumber"`
	Floor                Floor       `json:"floor"`
	SharingType          string      `json:"sharingType"`
	Cost                 float64     `json:"cost"`
	NumberOfBeds         int         `json:"numberOfBeds"`
	RoomStatus           RoomStatus  `json:"roomStatus"`
	DisplayStatus        RoomDisplay `json:"displayStatus"`
	StatusLabel          string      `json:"statusLabel"`
	AvailableBedCount    int         `json:"availableBedCount"`
	OccupiedBedCount     int         `json:"occupiedBedCount"`
	NoticePeriodBedCount int         `json:"noticePeriodBedCount"`
	Beds                 []BedView   `json:"beds"`
}

// StatsSnapshot 全量统计（始终基于未过滤的房间集合）
type StatsSnapshot struct {
	TotalRooms       int     `json:"totalRooms"`
	TotalBeds        int     `json:"totalBeds"`
	AvailableBeds    int     `json:"availableBeds"`
	OccupiedBeds     int     `json:"occupiedBeds"`
	NoticePeriodBeds int     `json:"noticePeriodBeds"`
	OccupancyRate    float64 `json:"occupancyRate"`
}

// Snapshot 一个分店的完整房态快照（整体替换，不做局部更新）
type Snapshot struct {
	BranchID  string        `json:"branchId"`
	Rooms     []RoomView    `json:"rooms"`
	Floors    []Floor       `json:"floors"`
	Stats     StatsSnapshot `json:"stats"`
	FetchedAt time.Time     `json:"fetchedAt"`
}

// HistoryEntry 历史统计记录（每次成功刷新落一行）
type HistoryEntry struct {
	ID               string    `json:"id"`
	BranchID         string    `json:"branchId"`
	TotalRooms       int       `json:"totalRooms"`
	TotalBeds        int       `json:"totalBeds"`
	AvailableBeds    int       `json:"availableBeds"`
	OccupiedBeds     int       `json:"occupiedBeds"`
	NoticePeriodBeds int       `json:"noticePeriodBeds"`
	OccupancyRate    float64   `json:"occupancyRate"`
	CapturedAt       time.Time `json:"capturedAt"`
}
