package models

// BedStatus 床位展示状态（由占用标志 + 住户状态推导）
type BedStatus string

const (
	BedAvailable    BedStatus = "available"
	BedOccupied     BedStatus = "occupied"
	BedNoticePeriod BedStatus = "notice_period"
)

// RoomStatus 后端给出的房间粗粒度状态
type RoomStatus string

const (
	RoomFullyAvailable    RoomStatus = "fully_available"
	RoomFullyOccupied     RoomStatus = "fully_occupied"
	RoomPartiallyOccupied RoomStatus = "partially_occupied"
)

// RoomDisplay 房间展示状态（床位状态优先级高于后端粗粒度状态）
type RoomDisplay string

const (
	DisplayAvailable    RoomDisplay = "available"
	DisplayFull         RoomDisplay = "full"
	DisplayPartial      RoomDisplay = "partial"
	DisplayNoticePeriod RoomDisplay = "notice_period"
)

// 住户状态（residents 生命周期由后端管理，这里只读）
const (
	ResidentStatusActive = "active"
	ResidentStatusNotice = "notice_period"
)

// Floor 楼层（用于分组和过滤）
type Floor struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ResidentSummary 床位上嵌入的住户摘要（只读视图，非完整住户档案）
type ResidentSummary struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	NoticeDays   *int   `json:"noticeDays,omitempty"`
	CheckOutDate string `json:"checkOutDate,omitempty"`
}

// Bed 床位（房间内唯一编号）
// 约束：IsOccupied == false 时不应有 Resident 和 ResidentStatus
type Bed struct {
	BedNumber      int              `json:"bedNumber"`
	IsOccupied     bool             `json:"isOccupied"`
	ResidentStatus string           `json:"residentStatus,omitempty"`
	Resident       *ResidentSummary `json:"resident,omitempty"`
}

// Room PG 后端返回的房间原始数据
// validate 标签在抓取边界使用（见 client 包），不合规记录打日志并填默认值
type Room struct {
	ID                string     `json:"_id" validate:"required"`
	RoomNumber        string     `json:"roomNumber" validate:"required"`
	Floor             Floor      `json:"floorId"`
	SharingType       string     `json:"sharingType" validate:"omitempty,oneof=1-sharing 2-sharing 3-sharing 4-sharing"`
	Cost              float64    `json:"cost" validate:"gte=0"`
	NumberOfBeds      int        `json:"numberOfBeds" validate:"gte=0"`
	RoomStatus        RoomStatus `json:"roomStatus" validate:"omitempty,oneof=fully_available fully_occupied partially_occupied"`
	AvailableBedCount int        `json:"availableBedCount"`
	OccupiedBedCount  int        `json:"occupiedBedCount"`
	Beds              []Bed      `json:"beds"`
}
