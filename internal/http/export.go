package httpapi

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/srikanth112236/pg-application-sub003/internal/models"

	"github.com/xuri/excelize/v2"
)

// AvailabilityExportHeader 房态导出表头
var AvailabilityExportHeader = []string{
	"Room Number",
	"Floor",
	"Sharing Type",
	"Monthly Cost",
	"Total Beds",
	"Available Beds",
	"Occupied Beds",
	"Notice Period Beds",
	"Status",
	"Residents",
}

// GenerateAvailabilityExport 生成房态导出 Excel 文件
// rooms: 房间视图列表，如果为空则只生成表头
func GenerateAvailabilityExport(rooms []models.RoomView) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Room Availability"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 设置表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 写入表头
	for col, header := range AvailabilityExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 设置列宽
	columnWidths := []float64{
		15, // Room Number
		18, // Floor
		15, // Sharing Type
		15, // Monthly Cost
		12, // Total Beds
		15, // Available Beds
		15, // Occupied Beds
		18, // Notice Period Beds
		15, // Status
		35, // Residents
	}
	for col, width := range columnWidths {
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to get column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, colName, colName, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// 写入数据行
	for i, room := range rooms {
		row := i + 2
		values := []any{
			room.RoomNumber,
			room.Floor.Name,
			room.SharingType,
			room.Cost,
			room.NumberOfBeds,
			room.AvailableBedCount,
			room.OccupiedBedCount,
			room.NoticePeriodBedCount,
			room.StatusLabel,
			residentNames(room),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}

	return buf.Bytes(), nil
}

// residentNames 拼接房间内所有住户姓名（导出展示用）
func residentNames(room models.RoomView) string {
	var names []string
	for _, b := range room.Beds {
		if b.Resident == nil {
			continue
		}
		name := strings.TrimSpace(b.Resident.FirstName + " " + b.Resident.LastName)
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
