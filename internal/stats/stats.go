package stats

import (
	"math"

	"github.com/srikanth112236/pg-application-sub003/internal/models"

	"go.uber.org/zap"
)

// Compute 单遍扫描计算全量统计
// 入住率 = (occupied + notice) / totalBeds * 100，保留一位小数；
// totalBeds == 0 时为 0（避免 NaN/Inf）
func Compute(rooms []models.RoomView) models.StatsSnapshot {
	s := models.StatsSnapshot{TotalRooms: len(rooms)}

	for _, r := range rooms {
		for _, b := range r.Beds {
			s.TotalBeds++
			switch b.Status {
			case models.BedAvailable:
				s.AvailableBeds++
			case models.BedNoticePeriod:
				s.NoticePeriodBeds++
			default:
				s.OccupiedBeds++
			}
		}
	}

	if s.TotalBeds > 0 {
		rate := float64(s.OccupiedBeds+s.NoticePeriodBeds) / float64(s.TotalBeds) * 100
		s.OccupancyRate = math.Round(rate*10) / 10
	}
	return s
}

// Resolve 客户端重算值为准，后端 metadata 只做一致性校验
// 两条代码路径（信任后端 vs 重算）容易悄悄漂移，这里固定以重算结果为权威，
// metadata 不一致时打告警便于发现后端计算问题
func Resolve(computed models.StatsSnapshot, metadata *models.StatsSnapshot, logger *zap.Logger) models.StatsSnapshot {
	if metadata != nil && *metadata != computed {
		logger.Warn("Server stats metadata disagrees with recomputed stats",
			zap.Any("metadata", *metadata),
			zap.Any("computed", computed),
		)
	}
	return computed
}
