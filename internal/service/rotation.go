package service

import (
	"sort"
	"time"
)

// ── 轮值循环序列 ──
//
// 候选人按最近值班日期升序排成循环序列，游标跨团队运行期间的所有
// 日期与班位连续推进，公平性作用于整个生成范围而非单日。
// 游标作为显式状态传入传出，便于脱离取数逻辑单独测试。

// candidate 轮值候选人
type candidate struct {
	userID       string
	name         string
	lastAssigned time.Time // 零值表示从未值班
}

// sortCycle 构建候选循环序列
// 从未值班者排最前（视为最早），日期相同按姓名、ID 决胜，
// 保证相同输入得到完全一致的输出
func sortCycle(cands []candidate) []candidate {
	cycle := make([]candidate, len(cands))
	copy(cycle, cands)
	sort.Slice(cycle, func(i, j int) bool {
		if !cycle[i].lastAssigned.Equal(cycle[j].lastAssigned) {
			return cycle[i].lastAssigned.Before(cycle[j].lastAssigned)
		}
		if cycle[i].name != cycle[j].name {
			return cycle[i].name < cycle[j].name
		}
		return cycle[i].userID < cycle[j].userID
	})
	return cycle
}

// slotPick 单个班位的分配结果
type slotPick struct {
	userID         string
	isSubstitute   bool
	originalUserID string // 仅替补时非空：记录最先被跳过的首选人
}

// pickForSlot 从 cursor 起沿循环序列为一个班位选人
// available 判定候选人当日是否可用；整圈无人可用时 ok=false，游标不动。
// 选中后游标推进到被选中者之后。
// 跳过多人时 originalUserID 仍记录第一个被跳过的人（原定值班人）。
func pickForSlot(cycle []candidate, cursor int, available func(userID string) bool) (pick slotPick, newCursor int, ok bool) {
	n := len(cycle)
	if n == 0 {
		return slotPick{}, cursor, false
	}

	first := cycle[cursor%n]
	for attempts := 0; attempts < n; attempts++ {
		idx := (cursor + attempts) % n
		c := cycle[idx]
		if !available(c.userID) {
			continue
		}

		pick = slotPick{userID: c.userID}
		if attempts > 0 {
			pick.isSubstitute = true
			pick.originalUserID = first.userID
		}
		return pick, (idx + 1) % n, true
	}

	return slotPick{}, cursor, false
}

// businessDays 枚举闭区间内的工作日（周六、周日恒跳过）
func businessDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d)
	}
	return days
}
