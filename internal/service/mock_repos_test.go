package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"erisync/backend/internal/model"
	"erisync/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (*model.User, error) {
	for _, u := range m.users {
		if u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListByTeam(_ context.Context, teamID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.TeamID == teamID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) ListHotlineEligible(_ context.Context, teamID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.TeamID == teamID && u.HotlineEligible {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) List(_ context.Context, teamID, keyword string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if teamID != "" && u.TeamID != teamID {
			continue
		}
		if keyword != "" && !strings.Contains(u.Name, keyword) && !strings.Contains(u.EmployeeID, keyword) {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	user.Version++
	return nil
}

func (m *mockUserRepo) SetHotlineEligible(_ context.Context, teamID string, userIDs []string) error {
	selected := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		selected[id] = true
	}
	for _, u := range m.users {
		if u.TeamID == teamID {
			u.HotlineEligible = selected[u.UserID]
		}
	}
	return nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		team.TeamID = "team-" + team.Name
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	var result []model.Team
	for _, t := range m.teams {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTeamRepo) ListByIDs(_ context.Context, ids []string) ([]model.Team, error) {
	var result []model.Team
	for _, id := range ids {
		if t, ok := m.teams[id]; ok {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	m.teams[team.TeamID] = team
	team.Version++
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.teams, id)
	return nil
}

func (m *mockTeamRepo) CountMembers(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

// ── Mock ScheduleEntryRepository ──

type mockScheduleEntryRepo struct {
	entries map[string]*model.ScheduleEntry // entryID → entry
	listErr error                           // 注入 ListByUsersAndRange 失败
	nextID  int
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{entries: make(map[string]*model.ScheduleEntry)}
}

func (m *mockScheduleEntryRepo) add(userID, teamID, date, status, activity string) *model.ScheduleEntry {
	m.nextID++
	d, _ := time.Parse("2006-01-02", date)
	e := &model.ScheduleEntry{
		EntryID:            fmt.Sprintf("entry-%d", m.nextID),
		UserID:             userID,
		TeamID:             teamID,
		EntryDate:          d,
		AvailabilityStatus: status,
		ActivityType:       activity,
		ShiftType:          "normal",
		Source:             model.EntrySourceManual,
	}
	m.entries[e.EntryID] = e
	return e
}

func (m *mockScheduleEntryRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	if entry.EntryID == "" {
		m.nextID++
		entry.EntryID = fmt.Sprintf("entry-%d", m.nextID)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleEntryRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*model.ScheduleEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.EntryDate.Equal(date) {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) ListByUsersAndRange(_ context.Context, userIDs []string, start, end time.Time) ([]model.ScheduleEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	ids := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		ids[id] = true
	}
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if ids[e.UserID] && !e.EntryDate.Before(start) && !e.EntryDate.After(end) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockScheduleEntryRepo) ListByTeamAndRange(_ context.Context, teamID string, start, end time.Time) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.TeamID == teamID && !e.EntryDate.Before(start) && !e.EntryDate.After(end) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockScheduleEntryRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	m.entries[entry.EntryID] = entry
	entry.Version++
	return nil
}

func (m *mockScheduleEntryRepo) UpdateTimeBlocks(_ context.Context, entryID string, blocks model.TimeBlockList) error {
	if e, ok := m.entries[entryID]; ok {
		e.TimeBlocks = blocks
	}
	return nil
}

func (m *mockScheduleEntryRepo) ReassignUser(_ context.Context, entryID, newUserID string, _ string) error {
	if e, ok := m.entries[entryID]; ok {
		e.UserID = newUserID
	}
	return nil
}

func (m *mockScheduleEntryRepo) DeleteAutoGenerated(_ context.Context, teamID string, start, end time.Time) error {
	for id, e := range m.entries {
		if e.TeamID == teamID && e.Source == model.EntrySourceHotlineAuto &&
			!e.EntryDate.Before(start) && !e.EntryDate.After(end) {
			delete(m.entries, id)
		}
	}
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays []model.Holiday
	listErr  error // 注入 ListByCountriesAndRange 失败
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{}
}

func (m *mockHolidayRepo) add(country, date, name string) {
	d, _ := time.Parse("2006-01-02", date)
	m.holidays = append(m.holidays, model.Holiday{
		HolidayID:   fmt.Sprintf("hol-%d", len(m.holidays)+1),
		Country:     country,
		HolidayDate: d,
		Name:        name,
	})
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		holiday.HolidayID = fmt.Sprintf("hol-%d", len(m.holidays)+1)
	}
	m.holidays = append(m.holidays, *holiday)
	return nil
}

func (m *mockHolidayRepo) BatchUpsert(_ context.Context, holidays []model.Holiday) (int64, error) {
	var inserted int64
	for _, h := range holidays {
		exists := false
		for _, existing := range m.holidays {
			if existing.Country == h.Country && existing.HolidayDate.Equal(h.HolidayDate) {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		m.holidays = append(m.holidays, h)
		inserted++
	}
	return inserted, nil
}

func (m *mockHolidayRepo) List(_ context.Context, country string, year int) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if country != "" && h.Country != country {
			continue
		}
		if year > 0 && h.HolidayDate.Year() != year {
			continue
		}
		result = append(result, h)
	}
	return result, nil
}

func (m *mockHolidayRepo) ListByCountriesAndRange(_ context.Context, countries []string, start, end time.Time) ([]model.Holiday, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	set := make(map[string]bool, len(countries))
	for _, c := range countries {
		set[c] = true
	}
	var result []model.Holiday
	for _, h := range m.holidays {
		if set[h.Country] && !h.HolidayDate.Before(start) && !h.HolidayDate.After(end) {
			result = append(result, h)
		}
	}
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	for i, h := range m.holidays {
		if h.HolidayID == id {
			m.holidays = append(m.holidays[:i], m.holidays[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock HotlineConfigRepository ──

type mockHotlineConfigRepo struct {
	configs map[string]*model.HotlineConfig // teamID → config
}

func newMockHotlineConfigRepo() *mockHotlineConfigRepo {
	return &mockHotlineConfigRepo{configs: make(map[string]*model.HotlineConfig)}
}

func (m *mockHotlineConfigRepo) GetByTeam(_ context.Context, teamID string) (*model.HotlineConfig, error) {
	if c, ok := m.configs[teamID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHotlineConfigRepo) Upsert(_ context.Context, cfg *model.HotlineConfig) error {
	m.configs[cfg.TeamID] = cfg
	return nil
}

// ── Mock HotlineDraftRepository ──

type mockHotlineDraftRepo struct {
	drafts   []model.HotlineDraft
	batchErr error // 注入 BatchCreate 失败
	nextID   int
}

func newMockHotlineDraftRepo() *mockHotlineDraftRepo {
	return &mockHotlineDraftRepo{}
}

func (m *mockHotlineDraftRepo) BatchCreate(_ context.Context, drafts []model.HotlineDraft) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range drafts {
		if drafts[i].DraftID == "" {
			m.nextID++
			drafts[i].DraftID = fmt.Sprintf("draft-%d", m.nextID)
		}
	}
	m.drafts = append(m.drafts, drafts...)
	return nil
}

func (m *mockHotlineDraftRepo) ListByTeam(_ context.Context, teamID string) ([]model.HotlineDraft, error) {
	var result []model.HotlineDraft
	for _, d := range m.drafts {
		if d.TeamID == teamID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DutyDate.Before(result[j].DutyDate) })
	return result, nil
}

func (m *mockHotlineDraftRepo) ListByTeams(_ context.Context, teamIDs []string) ([]model.HotlineDraft, error) {
	set := make(map[string]bool, len(teamIDs))
	for _, id := range teamIDs {
		set[id] = true
	}
	var result []model.HotlineDraft
	for _, d := range m.drafts {
		if set[d.TeamID] {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DutyDate.Before(result[j].DutyDate) })
	return result, nil
}

func (m *mockHotlineDraftRepo) DeleteByTeams(_ context.Context, teamIDs []string) error {
	set := make(map[string]bool, len(teamIDs))
	for _, id := range teamIDs {
		set[id] = true
	}
	var remaining []model.HotlineDraft
	for _, d := range m.drafts {
		if !set[d.TeamID] {
			remaining = append(remaining, d)
		}
	}
	m.drafts = remaining
	return nil
}

// ── Mock HotlineAssignmentRepository ──

type mockHotlineAssignmentRepo struct {
	assignments []model.HotlineAssignment
	nextID      int
}

func newMockHotlineAssignmentRepo() *mockHotlineAssignmentRepo {
	return &mockHotlineAssignmentRepo{}
}

func (m *mockHotlineAssignmentRepo) add(teamID, userID, date string) {
	d, _ := time.Parse("2006-01-02", date)
	m.nextID++
	isoYear, isoWeek := d.ISOWeek()
	m.assignments = append(m.assignments, model.HotlineAssignment{
		AssignmentID: fmt.Sprintf("assign-%d", m.nextID),
		TeamID:       teamID,
		UserID:       userID,
		DutyDate:     d,
		StartTime:    "08:00",
		EndTime:      "17:00",
		Year:         isoYear,
		WeekIndex:    isoWeek,
	})
}

func (m *mockHotlineAssignmentRepo) BatchCreate(_ context.Context, assignments []model.HotlineAssignment) error {
	for i := range assignments {
		if assignments[i].AssignmentID == "" {
			m.nextID++
			assignments[i].AssignmentID = fmt.Sprintf("assign-%d", m.nextID)
		}
	}
	m.assignments = append(m.assignments, assignments...)
	return nil
}

func (m *mockHotlineAssignmentRepo) ListByTeamAndRange(_ context.Context, teamID string, start, end time.Time) ([]model.HotlineAssignment, error) {
	var result []model.HotlineAssignment
	for _, a := range m.assignments {
		if a.TeamID == teamID && !a.DutyDate.Before(start) && !a.DutyDate.After(end) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DutyDate.Before(result[j].DutyDate) })
	return result, nil
}

func (m *mockHotlineAssignmentRepo) LastAssignedDates(_ context.Context, teamID string) (map[string]time.Time, error) {
	result := make(map[string]time.Time)
	for _, a := range m.assignments {
		if a.TeamID != teamID {
			continue
		}
		if last, ok := result[a.UserID]; !ok || a.DutyDate.After(last) {
			result[a.UserID] = a.DutyDate
		}
	}
	return result, nil
}

// ── Mock CapacityConfigRepository ──

type mockCapacityConfigRepo struct {
	configs map[string]*model.CapacityConfig
}

func newMockCapacityConfigRepo() *mockCapacityConfigRepo {
	return &mockCapacityConfigRepo{configs: make(map[string]*model.CapacityConfig)}
}

func (m *mockCapacityConfigRepo) GetByTeam(_ context.Context, teamID string) (*model.CapacityConfig, error) {
	if c, ok := m.configs[teamID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCapacityConfigRepo) ListByTeams(_ context.Context, teamIDs []string) ([]model.CapacityConfig, error) {
	var result []model.CapacityConfig
	for _, id := range teamIDs {
		if c, ok := m.configs[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCapacityConfigRepo) Upsert(_ context.Context, cfg *model.CapacityConfig) error {
	m.configs[cfg.TeamID] = cfg
	return nil
}

// ── Mock SwapRequestRepository ──

type mockSwapRequestRepo struct {
	swaps  map[string]*model.SwapRequest
	nextID int

	// 模拟 Preload 用的数据源
	entries *mockScheduleEntryRepo
	users   *mockUserRepo
}

func newMockSwapRequestRepo() *mockSwapRequestRepo {
	return &mockSwapRequestRepo{swaps: make(map[string]*model.SwapRequest)}
}

func (m *mockSwapRequestRepo) Create(_ context.Context, req *model.SwapRequest) error {
	if req.SwapRequestID == "" {
		m.nextID++
		req.SwapRequestID = fmt.Sprintf("swap-%d", m.nextID)
	}
	m.swaps[req.SwapRequestID] = req
	return nil
}

func (m *mockSwapRequestRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	s, ok := m.swaps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if m.entries != nil {
		s.ScheduleEntry = m.entries.entries[s.ScheduleEntryID]
	}
	if m.users != nil {
		s.Applicant = m.users.users[s.ApplicantID]
		s.TargetMember = m.users.users[s.TargetMemberID]
	}
	return s, nil
}

func (m *mockSwapRequestRepo) List(_ context.Context, userID, _ string, status string, offset, limit int) ([]model.SwapRequest, int64, error) {
	var result []model.SwapRequest
	for _, s := range m.swaps {
		if userID != "" && s.ApplicantID != userID && s.TargetMemberID != userID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SwapRequestID < result[j].SwapRequestID })
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockSwapRequestRepo) Update(_ context.Context, req *model.SwapRequest) error {
	m.swaps[req.SwapRequestID] = req
	req.Version++
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []model.Notification
	preferences   map[string]*model.NotificationPreference
	nextID        int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{preferences: make(map[string]*model.NotificationPreference)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		m.nextID++
		n.NotificationID = fmt.Sprintf("notif-%d", m.nextID)
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].NotificationID == id && m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) GetPreference(_ context.Context, userID string) (*model.NotificationPreference, error) {
	if p, ok := m.preferences[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── 测试用 Repository 聚合 ──

type testRepos struct {
	user              *mockUserRepo
	team              *mockTeamRepo
	scheduleEntry     *mockScheduleEntryRepo
	holiday           *mockHolidayRepo
	hotlineConfig     *mockHotlineConfigRepo
	hotlineDraft      *mockHotlineDraftRepo
	hotlineAssignment *mockHotlineAssignmentRepo
	capacity          *mockCapacityConfigRepo
	swapRequest       *mockSwapRequestRepo
	notification      *mockNotificationRepo
}

func newTestRepos() *testRepos {
	r := &testRepos{
		user:              newMockUserRepo(),
		team:              newMockTeamRepo(),
		scheduleEntry:     newMockScheduleEntryRepo(),
		holiday:           newMockHolidayRepo(),
		hotlineConfig:     newMockHotlineConfigRepo(),
		hotlineDraft:      newMockHotlineDraftRepo(),
		hotlineAssignment: newMockHotlineAssignmentRepo(),
		capacity:          newMockCapacityConfigRepo(),
		swapRequest:       newMockSwapRequestRepo(),
		notification:      newMockNotificationRepo(),
	}
	r.swapRequest.entries = r.scheduleEntry
	r.swapRequest.users = r.user
	return r
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:              r.user,
		Team:              r.team,
		ScheduleEntry:     r.scheduleEntry,
		Holiday:           r.holiday,
		HotlineConfig:     r.hotlineConfig,
		HotlineDraft:      r.hotlineDraft,
		HotlineAssignment: r.hotlineAssignment,
		Capacity:          r.capacity,
		SwapRequest:       r.swapRequest,
		Notification:      r.notification,
	}
}
