package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/repository"
)

const exportSheetName = "值班计划"

// ExportService 导出业务接口
type ExportService interface {
	// 导出团队在范围内的正式值班计划为 xlsx
	HotlinePlanXLSX(ctx context.Context, req *dto.AssignmentListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) HotlinePlanXLSX(ctx context.Context, req *dto.AssignmentListRequest) (*bytes.Buffer, string, error) {
	team, err := s.repo.Team.GetByID(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTeamNotFound
		}
		s.logger.Error("查询团队失败", zap.String("team_id", req.TeamID), zap.Error(err))
		return nil, "", err
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, "", ErrInvalidDateRange
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, "", ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, "", ErrInvalidDateRange
	}

	assignments, err := s.repo.HotlineAssignment.ListByTeamAndRange(ctx, req.TeamID, start, end)
	if err != nil {
		s.logger.Error("查询值班记录失败", zap.String("team_id", req.TeamID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"日期", "周次", "值班人", "开始", "结束", "是否替补"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(exportSheetName, cell, h)
	}

	for row, a := range assignments {
		name := a.UserID
		if a.User != nil {
			name = a.User.Name
		}
		substitute := "否"
		if a.IsSubstitute {
			substitute = "是"
		}

		values := []interface{}{
			a.DutyDate.Format(dateLayout),
			fmt.Sprintf("%d-W%02d", a.Year, a.WeekIndex),
			name,
			a.StartTime,
			a.EndTime,
			substitute,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("hotline_plan_%s_%s_%s.xlsx", team.Name, req.StartDate, req.EndDate)
	return buf, filename, nil
}
