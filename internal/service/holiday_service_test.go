package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"erisync/backend/internal/dto"
)

func setupTestHolidayService() (HolidayService, *testRepos) {
	repos := newTestRepos()
	svc := NewHolidayService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func sampleICS(events ...string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Test//Feiertage//DE",
	}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

func TestHolidayService_ImportICS(t *testing.T) {
	svc, repos := setupTestHolidayService()

	ics := sampleICS(
		"BEGIN:VEVENT",
		"UID:neujahr-2025",
		"DTSTART;VALUE=DATE:20250101",
		"DTEND;VALUE=DATE:20250102",
		"SUMMARY:Neujahr",
		"END:VEVENT",
		// 跨天事件：DTEND 为排他边界，实际覆盖 04-18 … 04-21
		"BEGIN:VEVENT",
		"UID:ostern-2025",
		"DTSTART;VALUE=DATE:20250418",
		"DTEND;VALUE=DATE:20250422",
		"SUMMARY:Osterferien",
		"END:VEVENT",
	)

	resp, err := svc.ImportICS(context.Background(), &dto.ImportHolidayICSRequest{Country: "de", ICS: ics}, "admin-1")
	if err != nil {
		t.Fatalf("ImportICS 应成功: %v", err)
	}
	if resp.Imported != 5 {
		t.Errorf("期望导入 5 天（1 + 4），实际 %d", resp.Imported)
	}
	if resp.Skipped != 0 {
		t.Errorf("期望跳过 0 天，实际 %d", resp.Skipped)
	}

	holidays, _ := repos.holiday.List(context.Background(), "DE", 2025)
	if len(holidays) != 5 {
		t.Fatalf("期望库中 5 条记录，实际 %d", len(holidays))
	}
	dates := make(map[string]string)
	for _, h := range holidays {
		if h.Country != "DE" {
			t.Errorf("国家代码应统一大写，实际 %s", h.Country)
		}
		dates[h.HolidayDate.Format("2006-01-02")] = h.Name
	}
	if dates["2025-01-01"] != "Neujahr" {
		t.Errorf("2025-01-01 应为 Neujahr")
	}
	for _, d := range []string{"2025-04-18", "2025-04-19", "2025-04-20", "2025-04-21"} {
		if dates[d] != "Osterferien" {
			t.Errorf("%s 应展开为 Osterferien", d)
		}
	}
	if _, ok := dates["2025-04-22"]; ok {
		t.Errorf("DTEND 当天不应含在内")
	}
}

func TestHolidayService_ImportICS_SkipsDuplicates(t *testing.T) {
	svc, repos := setupTestHolidayService()
	// 库中已有 01-01
	repos.holiday.add("DE", "2025-01-01", "Neujahr")

	ics := sampleICS(
		"BEGIN:VEVENT",
		"UID:a",
		"DTSTART;VALUE=DATE:20250101",
		"SUMMARY:Neujahr",
		"END:VEVENT",
		// 同一导入内重复日期
		"BEGIN:VEVENT",
		"UID:b",
		"DTSTART;VALUE=DATE:20250101",
		"SUMMARY:Neujahrstag",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:c",
		"DTSTART;VALUE=DATE:20250501",
		"SUMMARY:Tag der Arbeit",
		"END:VEVENT",
	)

	resp, err := svc.ImportICS(context.Background(), &dto.ImportHolidayICSRequest{Country: "DE", ICS: ics}, "admin-1")
	if err != nil {
		t.Fatalf("ImportICS 应成功: %v", err)
	}
	if resp.Imported != 1 {
		t.Errorf("仅 05-01 为新日期，期望导入 1 实际 %d", resp.Imported)
	}
	if resp.Skipped != 2 {
		t.Errorf("导入内重复 + 库中已存在各 1，期望跳过 2 实际 %d", resp.Skipped)
	}
}

func TestHolidayService_ImportICS_EventWithoutStart(t *testing.T) {
	svc, _ := setupTestHolidayService()

	ics := sampleICS(
		"BEGIN:VEVENT",
		"UID:broken",
		"SUMMARY:Kaputt",
		"END:VEVENT",
	)

	resp, err := svc.ImportICS(context.Background(), &dto.ImportHolidayICSRequest{Country: "DE", ICS: ics}, "admin-1")
	if err != nil {
		t.Fatalf("单个坏事件不应中止导入: %v", err)
	}
	if resp.Imported != 0 || resp.Skipped != 1 {
		t.Errorf("期望 imported=0 skipped=1，实际 %d/%d", resp.Imported, resp.Skipped)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("缺开始日期的事件应产生告警")
	}
}

func TestHolidayService_ImportICS_InvalidContent(t *testing.T) {
	svc, _ := setupTestHolidayService()

	_, err := svc.ImportICS(context.Background(), &dto.ImportHolidayICSRequest{Country: "DE", ICS: "这不是日历"}, "admin-1")
	if !errors.Is(err, ErrInvalidICS) {
		t.Errorf("期望 ErrInvalidICS，实际 %v", err)
	}
}

func TestHolidayService_Create(t *testing.T) {
	svc, repos := setupTestHolidayService()

	resp, err := svc.Create(context.Background(), &dto.CreateHolidayRequest{
		Country: "fr", Date: "2025-07-14", Name: "Fête nationale",
	}, "admin-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Country != "FR" || resp.Date != "2025-07-14" {
		t.Errorf("响应字段错误: %+v", resp)
	}
	if len(repos.holiday.holidays) != 1 {
		t.Errorf("节假日未落库")
	}
}

func TestHolidayService_Create_InvalidDate(t *testing.T) {
	svc, _ := setupTestHolidayService()

	_, err := svc.Create(context.Background(), &dto.CreateHolidayRequest{
		Country: "DE", Date: "01.05.2025", Name: "Tag der Arbeit",
	}, "admin-1")
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange，实际 %v", err)
	}
}

func TestHolidayService_ListAndDelete(t *testing.T) {
	svc, repos := setupTestHolidayService()
	repos.holiday.add("DE", "2025-01-01", "Neujahr")
	repos.holiday.add("DE", "2024-12-25", "Weihnachten")
	repos.holiday.add("FR", "2025-07-14", "Fête nationale")

	list, err := svc.List(context.Background(), &dto.HolidayListRequest{Country: "de", Year: 2025})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Neujahr" {
		t.Errorf("国家+年份过滤错误，实际 %d 条", len(list))
	}

	if err := svc.Delete(context.Background(), list[0].ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	remaining, _ := svc.List(context.Background(), &dto.HolidayListRequest{Country: "DE"})
	if len(remaining) != 1 {
		t.Errorf("删除后 DE 应剩 1 条，实际 %d", len(remaining))
	}
}
