package classifier

import (
	"testing"

	"github.com/srikanth112236/pg-application-sub003/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBed(t *testing.T) {
	tests := []struct {
		name string
		bed  models.Bed
		want models.BedStatus
	}{
		{
			name: "unoccupied bed is available",
			bed:  models.Bed{BedNumber: 1, IsOccupied: false},
			want: models.BedAvailable,
		},
		{
			name: "occupied bed with active resident",
			bed: models.Bed{
				BedNumber:      1,
				IsOccupied:     true,
				ResidentStatus: models.ResidentStatusActive,
				Resident:       &models.ResidentSummary{FirstName: "Ravi", LastName: "Kumar"},
			},
			want: models.BedOccupied,
		},
		{
			name: "occupied bed in notice period",
			bed: models.Bed{
				BedNumber:      2,
				IsOccupied:     true,
				ResidentStatus: models.ResidentStatusNotice,
				Resident:       &models.ResidentSummary{FirstName: "Ravi", LastName: "Kumar"},
			},
			want: models.BedNoticePeriod,
		},
		{
			name: "occupied bed with missing resident degrades to occupied",
			bed:  models.Bed{BedNumber: 3, IsOccupied: true},
			want: models.BedOccupied,
		},
		{
			// 脏数据：未占用却带住户状态，仍按 available 处理
			name: "unoccupied bed with stale resident status",
			bed:  models.Bed{BedNumber: 4, IsOccupied: false, ResidentStatus: models.ResidentStatusNotice},
			want: models.BedAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBed(tt.bed))
		})
	}
}

func TestClassifyRoom_NoticeOverride(t *testing.T) {
	// 任何一个 notice 床位都覆盖后端粗粒度状态
	for _, hint := range []models.RoomStatus{
		models.RoomFullyAvailable,
		models.RoomFullyOccupied,
		models.RoomPartiallyOccupied,
	} {
		display, label := ClassifyRoom(hint, []models.BedStatus{
			models.BedAvailable,
			models.BedNoticePeriod,
		})
		assert.Equal(t, models.DisplayNoticePeriod, display, "hint=%s", hint)
		assert.Equal(t, "Notice Period", label)
	}
}

func TestClassifyRoom_HintMapping(t *testing.T) {
	display, label := ClassifyRoom(models.RoomFullyAvailable, []models.BedStatus{models.BedAvailable})
	assert.Equal(t, models.DisplayAvailable, display)
	assert.Equal(t, "Available", label)

	display, label = ClassifyRoom(models.RoomFullyOccupied, []models.BedStatus{models.BedOccupied})
	assert.Equal(t, models.DisplayFull, display)
	assert.Equal(t, "Full", label)

	display, label = ClassifyRoom(models.RoomPartiallyOccupied, []models.BedStatus{models.BedAvailable, models.BedOccupied})
	assert.Equal(t, models.DisplayPartial, display)
	assert.Equal(t, "Partial", label)

	// 未知 hint 按 partial 兜底
	display, _ = ClassifyRoom("", []models.BedStatus{models.BedOccupied})
	assert.Equal(t, models.DisplayPartial, display)
}

func TestBuildRoomView_PartialRoom(t *testing.T) {
	room := models.Room{
		ID:           "room-1",
		RoomNumber:   "101",
		Floor:        models.Floor{ID: "floor-1", Name: "First Floor"},
		SharingType:  "2-sharing",
		Cost:         8500,
		NumberOfBeds: 2,
		RoomStatus:   models.RoomPartiallyOccupied,
		Beds: []models.Bed{
			{BedNumber: 1, IsOccupied: false},
			{BedNumber: 2, IsOccupied: true, ResidentStatus: models.ResidentStatusActive,
				Resident: &models.ResidentSummary{FirstName: "Anil", LastName: "Sharma"}},
		},
	}

	view := BuildRoomView(room)

	assert.Equal(t, models.DisplayPartial, view.DisplayStatus)
	assert.Equal(t, 1, view.AvailableBedCount)
	assert.Equal(t, 1, view.OccupiedBedCount)
	assert.Equal(t, 0, view.NoticePeriodBedCount)
	assert.Equal(t, view.NumberOfBeds, view.AvailableBedCount+view.OccupiedBedCount)
}

func TestBuildRoomView_NoticeOverridesPartial(t *testing.T) {
	room := models.Room{
		ID:           "room-1",
		RoomNumber:   "101",
		NumberOfBeds: 2,
		RoomStatus:   models.RoomPartiallyOccupied,
		Beds: []models.Bed{
			{BedNumber: 1, IsOccupied: false},
			{BedNumber: 2, IsOccupied: true, ResidentStatus: models.ResidentStatusNotice,
				Resident: &models.ResidentSummary{FirstName: "Anil", LastName: "Sharma"}},
		},
	}

	view := BuildRoomView(room)

	assert.Equal(t, models.DisplayNoticePeriod, view.DisplayStatus)
	assert.Equal(t, 1, view.AvailableBedCount)
	// notice 床位计入 occupied
	assert.Equal(t, 1, view.OccupiedBedCount)
	assert.Equal(t, 1, view.NoticePeriodBedCount)
}

func TestBuildRoomView_UnoccupiedBedDropsResident(t *testing.T) {
	// 未占用床位即使后端带了 resident 也不进入视图
	room := models.Room{
		ID:           "room-1",
		RoomNumber:   "101",
		NumberOfBeds: 1,
		RoomStatus:   models.RoomFullyAvailable,
		Beds: []models.Bed{
			{BedNumber: 1, IsOccupied: false,
				Resident: &models.ResidentSummary{FirstName: "Ghost", LastName: "Entry"}},
		},
	}

	view := BuildRoomView(room)

	require.Len(t, view.Beds, 1)
	assert.Nil(t, view.Beds[0].Resident)
	assert.Equal(t, models.BedAvailable, view.Beds[0].Status)
}

func TestAnnotate(t *testing.T) {
	rooms := []models.Room{
		{ID: "r1", RoomNumber: "101", NumberOfBeds: 1, RoomStatus: models.RoomFullyAvailable,
			Beds: []models.Bed{{BedNumber: 1}}},
		{ID: "r2", RoomNumber: "102", NumberOfBeds: 1, RoomStatus: models.RoomFullyOccupied,
			Beds: []models.Bed{{BedNumber: 1, IsOccupied: true, ResidentStatus: models.ResidentStatusActive}}},
	}

	views := Annotate(rooms)

	require.Len(t, views, 2)
	assert.Equal(t, models.DisplayAvailable, views[0].DisplayStatus)
	assert.Equal(t, models.DisplayFull, views[1].DisplayStatus)
}
