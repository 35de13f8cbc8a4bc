package service

import (
	"context"
	"time"

	"erisync/backend/internal/model"
	"erisync/backend/internal/repository"
	pkgerrors "erisync/backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// nonWorkActivities 即使可用标志为 available 也视为不可用的活动类别。
// 业务规则：显式的非工作活动优先于原始可用标志。
var nonWorkActivities = map[string]bool{
	model.ActivityVacation:    true,
	model.ActivityFlextime:    true,
	model.ActivityOther:       true,
	model.ActivityOutOfOffice: true,
}

// availabilitySnapshot 一次轮值运行范围内全部排班与节假日数据的内存快照。
// 生成前一次性批量加载，之后的可用性判定是纯内存计算，
// 避免嵌套循环里每个 (成员, 日期) 组合都打一次外部查询。
type availabilitySnapshot struct {
	entries   map[string]*model.ScheduleEntry // "userID:日期"
	holidays  map[string]bool                 // "国家:日期"
	countries map[string]string               // userID → 国家
}

// buildAvailabilitySnapshot 为一组成员与日期范围批量加载快照
// 任何查询失败返回 StoreError，调用方据此中止该团队而非整个运行
func buildAvailabilitySnapshot(ctx context.Context, repo *repository.Repository, members []model.User, start, end time.Time) (*availabilitySnapshot, error) {
	snap := &availabilitySnapshot{
		entries:   make(map[string]*model.ScheduleEntry),
		holidays:  make(map[string]bool),
		countries: make(map[string]string, len(members)),
	}

	userIDs := make([]string, 0, len(members))
	countrySet := make(map[string]bool)
	for i := range members {
		userIDs = append(userIDs, members[i].UserID)
		snap.countries[members[i].UserID] = members[i].Country
		countrySet[members[i].Country] = true
	}

	entries, err := repo.ScheduleEntry.ListByUsersAndRange(ctx, userIDs, start, end)
	if err != nil {
		return nil, pkgerrors.NewStoreError("加载排班条目", err)
	}
	for i := range entries {
		e := &entries[i]
		snap.entries[e.UserID+":"+e.EntryDate.Format(dateLayout)] = e
	}

	countries := make([]string, 0, len(countrySet))
	for c := range countrySet {
		countries = append(countries, c)
	}
	holidays, err := repo.Holiday.ListByCountriesAndRange(ctx, countries, start, end)
	if err != nil {
		return nil, pkgerrors.NewStoreError("加载节假日", err)
	}
	for i := range holidays {
		h := &holidays[i]
		snap.holidays[h.Country+":"+h.HolidayDate.Format(dateLayout)] = true
	}

	return snap, nil
}

// isAvailable 判定成员某天能否被安排值班，判定顺序固定：
//  1. 当天无排班条目 → 可用（无记录即默认可用，这是刻意的策略）
//  2. 可用标志非 available → 不可用
//  3. 活动类别为非工作类（休假/调休/其他/外出）→ 不可用，优先于可用标志
//  4. 成员本国当天为公共节假日 → 不可用
//  5. 其余情况可用
func (s *availabilitySnapshot) isAvailable(userID string, day time.Time) bool {
	dayKey := day.Format(dateLayout)

	entry, ok := s.entries[userID+":"+dayKey]
	if !ok {
		return true
	}
	if entry.AvailabilityStatus != model.AvailabilityAvailable {
		return false
	}
	if nonWorkActivities[entry.ActivityType] {
		return false
	}
	if country := s.countries[userID]; country != "" && s.holidays[country+":"+dayKey] {
		return false
	}
	return true
}

// isWorking 判定成员某天是否计入在岗人数
// 与 isAvailable 不同：必须存在状态为 available 且活动为 work 的排班条目，
// 无记录不计入（覆盖统计按实际排班算，不按默认可用算）
func (s *availabilitySnapshot) isWorking(userID string, day time.Time) bool {
	entry, ok := s.entries[userID+":"+day.Format(dateLayout)]
	if !ok {
		return false
	}
	return entry.AvailabilityStatus == model.AvailabilityAvailable &&
		entry.ActivityType == model.ActivityWork
}
