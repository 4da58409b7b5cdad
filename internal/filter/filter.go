package filter

import (
	"strings"

	"github.com/srikanth112236/pg-application-sub003/internal/models"
)

// Status 状态过滤器取值（UI 侧单选，一次只生效一个）
type Status string

const (
	StatusAll       Status = "all"
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusPartial   Status = "partial"
	StatusNotice    Status = "notice"
)

// Criteria 过滤条件；零值等价于不过滤
type Criteria struct {
	Search  string // 大小写不敏感的子串匹配
	Status  Status // 空或 "all" 表示不过滤
	FloorID string // 空或 "all" 表示不过滤
}

// Apply 对房间视图集合应用过滤条件
// 三个条件按 AND 组合，各自的中性值直接放行。纯函数：不修改输入，
// 相同输入总是产出相同结果（幂等）
func Apply(rooms []models.RoomView, c Criteria) []models.RoomView {
	out := make([]models.RoomView, 0, len(rooms))
	term := strings.ToLower(strings.TrimSpace(c.Search))

	for _, r := range rooms {
		if !matchesSearch(r, term) {
			continue
		}
		if !matchesStatus(r, c.Status) {
			continue
		}
		if !matchesFloor(r, c.FloorID) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesSearch 搜索是字段并集：房间号、楼层名、任一住户的名或姓命中即算匹配
func matchesSearch(r models.RoomView, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.RoomNumber), term) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Floor.Name), term) {
		return true
	}
	for _, b := range r.Beds {
		if b.Resident == nil {
			continue
		}
		if strings.Contains(strings.ToLower(b.Resident.FirstName), term) ||
			strings.Contains(strings.ToLower(b.Resident.LastName), term) {
			return true
		}
	}
	return false
}

// matchesStatus notice 看的是床位级状态（与房间粗粒度状态无关），
// 其余取值对应后端粗粒度 roomStatus
func matchesStatus(r models.RoomView, s Status) bool {
	switch s {
	case StatusAvailable:
		return r.RoomStatus == models.RoomFullyAvailable
	case StatusOccupied:
		return r.RoomStatus == models.RoomFullyOccupied
	case StatusPartial:
		return r.RoomStatus == models.RoomPartiallyOccupied
	case StatusNotice:
		return r.NoticePeriodBedCount > 0
	default:
		// "", "all" 或未知取值都不过滤
		return true
	}
}

func matchesFloor(r models.RoomView, floorID string) bool {
	if floorID == "" || floorID == "all" {
		return true
	}
	return r.Floor.ID == floorID
}
