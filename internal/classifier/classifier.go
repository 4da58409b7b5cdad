package classifier

import (
	"github.com/srikanth112236/pg-application-sub003/internal/models"
)

// ClassifyBed 推导床位展示状态
// 规则：未占用 → available；占用且住户处于 notice_period → notice_period；
// 其余（含占用但缺少住户信息的脏数据）→ occupied
func ClassifyBed(b models.Bed) models.BedStatus {
	if !b.IsOccupied {
		return models.BedAvailable
	}
	if b.ResidentStatus == models.ResidentStatusNotice {
		return models.BedNoticePeriod
	}
	return models.BedOccupied
}

// ClassifyRoom 推导房间展示状态和文案
// notice_period 床位是最高优先级：即将空出的床位需要在任何房间状态下都被突出展示，
// 所以先于后端粗粒度状态检查
func ClassifyRoom(hint models.RoomStatus, beds []models.BedStatus) (models.RoomDisplay, string) {
	for _, s := range beds {
		if s == models.BedNoticePeriod {
			return models.DisplayNoticePeriod, "Notice Period"
		}
	}
	switch hint {
	case models.RoomFullyAvailable:
		return models.DisplayAvailable, "Available"
	case models.RoomFullyOccupied:
		return models.DisplayFull, "Full"
	default:
		return models.DisplayPartial, "Partial"
	}
}

// BuildRoomView 把后端房间数据转换为聚合视图
// 床位计数不信任后端给的 availableBedCount/occupiedBedCount，从床位状态重新推导，
// 保证 available + occupied == numberOfBeds（notice 计入 occupied）
func BuildRoomView(r models.Room) models.RoomView {
	view := models.RoomView{
		ID:           r.ID,
		RoomNumber:   r.RoomNumber,
		Floor:        r.Floor,
		SharingType:  r.SharingType,
		Cost:         r.Cost,
		NumberOfBeds: r.NumberOfBeds,
		RoomStatus:   r.RoomStatus,
		Beds:         make([]models.BedView, 0, len(r.Beds)),
	}

	statuses := make([]models.BedStatus, 0, len(r.Beds))
	for _, b := range r.Beds {
		status := ClassifyBed(b)
		statuses = append(statuses, status)

		bedView := models.BedView{
			BedNumber: b.BedNumber,
			Status:    status,
		}
		// 未占用床位不读取 resident 字段
		if b.IsOccupied {
			bedView.Resident = b.Resident
		}
		view.Beds = append(view.Beds, bedView)

		switch status {
		case models.BedAvailable:
			view.AvailableBedCount++
		case models.BedNoticePeriod:
			view.OccupiedBedCount++
			view.NoticePeriodBedCount++
		default:
			view.OccupiedBedCount++
		}
	}

	view.DisplayStatus, view.StatusLabel = ClassifyRoom(r.RoomStatus, statuses)
	return view
}

// Annotate 批量转换房间集合
func Annotate(rooms []models.Room) []models.RoomView {
	views := make([]models.RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, BuildRoomView(r))
	}
	return views
}
