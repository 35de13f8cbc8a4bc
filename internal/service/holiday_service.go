package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/model"
	"erisync/backend/internal/repository"
)

var (
	ErrInvalidICS = errors.New("ICS 日历内容无法解析")
)

// HolidayService 节假日业务接口
type HolidayService interface {
	List(ctx context.Context, req *dto.HolidayListRequest) ([]dto.HolidayResponse, error)
	Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	// 从 ICS 日历原文批量导入某国节假日，已存在的日期跳过
	ImportICS(ctx context.Context, req *dto.ImportHolidayICSRequest, callerID string) (*dto.ImportHolidayICSResponse, error)
	Delete(ctx context.Context, id string) error
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) List(ctx context.Context, req *dto.HolidayListRequest) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.List(ctx, strings.ToUpper(req.Country), req.Year)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, toHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	holiday := &model.Holiday{
		Country:     strings.ToUpper(req.Country),
		HolidayDate: date,
		Name:        req.Name,
	}
	holiday.CreatedBy = &callerID
	holiday.UpdatedBy = &callerID

	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("创建节假日失败", zap.Error(err))
		return nil, err
	}

	resp := toHolidayResponse(holiday)
	return &resp, nil
}

// ImportICS 解析 ICS 原文并批量入库
// 仅接受全天事件（节假日按天生效）；跨天事件展开为逐日记录
func (s *holidayService) ImportICS(ctx context.Context, req *dto.ImportHolidayICSRequest, callerID string) (*dto.ImportHolidayICSResponse, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(req.ICS))
	if err != nil {
		return nil, ErrInvalidICS
	}

	country := strings.ToUpper(req.Country)
	resp := &dto.ImportHolidayICSResponse{}
	var holidays []model.Holiday
	seen := make(map[string]bool)

	for _, event := range cal.Events() {
		name := ""
		if prop := event.GetProperty(ics.ComponentPropertySummary); prop != nil {
			name = prop.Value
		}
		if name == "" {
			name = "节假日"
		}

		start, err := event.GetAllDayStartAt()
		if err != nil {
			start, err = event.GetStartAt()
		}
		if err != nil {
			resp.Skipped++
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("事件「%s」缺少开始日期，已跳过", name))
			continue
		}

		end, err := event.GetAllDayEndAt()
		if err != nil {
			end, err = event.GetEndAt()
		}
		if err != nil {
			end = start
		}
		// DTEND 为排他边界：结束日当天不含在内
		if end.After(start) {
			end = end.AddDate(0, 0, -1)
		}

		for d := truncateToDay(start); !d.After(truncateToDay(end)); d = d.AddDate(0, 0, 1) {
			key := d.Format(dateLayout)
			if seen[key] {
				resp.Skipped++
				continue
			}
			seen[key] = true

			h := model.Holiday{Country: country, HolidayDate: d, Name: name}
			h.CreatedBy = &callerID
			h.UpdatedBy = &callerID
			holidays = append(holidays, h)
		}
	}

	inserted, err := s.repo.Holiday.BatchUpsert(ctx, holidays)
	if err != nil {
		s.logger.Error("批量导入节假日失败", zap.String("country", country), zap.Error(err))
		return nil, err
	}

	resp.Imported = int(inserted)
	resp.Skipped += len(holidays) - int(inserted) // 库中已存在的日期
	s.logger.Info("ICS 节假日导入完成",
		zap.String("country", country),
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", resp.Skipped))
	return resp, nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		s.logger.Error("删除节假日失败", zap.String("holiday_id", id), zap.Error(err))
		return err
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toHolidayResponse(h *model.Holiday) dto.HolidayResponse {
	return dto.HolidayResponse{
		ID:      h.HolidayID,
		Country: h.Country,
		Date:    h.HolidayDate.Format(dateLayout),
		Name:    h.Name,
	}
}
