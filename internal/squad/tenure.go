package squad

import (
	"fmt"
	"strings"
	"time"
)

// Tenure 值班记录（ServiceTenure）。同一时刻至多一条处于 active。
type Tenure struct {
	Active    bool       `json:"active"`
	Officer   string     `json:"officer"`
	Grade     string     `json:"grade"`
	OwnerUID  string     `json:"owner_uid"` // 有权结束/修改值班的会话标识
	StartedAt *time.Time `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

// AuthorizedFor 判断会话是否持有监管授权（"is SL"）：
// 无人值班 ⇒ 任何会话均可；有人值班 ⇒ 仅 OwnerUID 本人。
func (t *Tenure) AuthorizedFor(uid string) bool {
	if t == nil || !t.Active {
		return true
	}
	return t.OwnerUID == uid
}

// Start 开始值班。已有 active 值班时拒绝。
func (t *Tenure) Start(officer, grade, ownerUID string, now time.Time) error {
	if t == nil {
		return fmt.Errorf("tenure is nil")
	}
	if t.Active {
		return fmt.Errorf("supervision already taken by %s", t.Officer)
	}
	officer = strings.TrimSpace(officer)
	if officer == "" {
		return fmt.Errorf("officer name required")
	}
	start := now
	t.Active = true
	t.Officer = officer
	t.Grade = strings.TrimSpace(grade)
	t.OwnerUID = ownerUID
	t.StartedAt = &start
	t.EndedAt = nil
	return nil
}

// End 结束值班：清空军官/军衔/OwnerUID 并记录结束时间。
func (t *Tenure) End(now time.Time) error {
	if t == nil {
		return fmt.Errorf("tenure is nil")
	}
	if !t.Active {
		return fmt.Errorf("no active supervision")
	}
	end := now
	t.Active = false
	t.Officer = ""
	t.Grade = ""
	t.OwnerUID = ""
	t.EndedAt = &end
	return nil
}

// ForceRecover 强制接管：仅改写 OwnerUID，其余字段不动。
// 这是刻意保留的人工覆盖通道，不是公平锁。
func (t *Tenure) ForceRecover(ownerUID string) error {
	if t == nil {
		return fmt.Errorf("tenure is nil")
	}
	if !t.Active {
		return fmt.Errorf("no active supervision")
	}
	t.OwnerUID = ownerUID
	return nil
}
