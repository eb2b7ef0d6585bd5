// Package journal 维护车库操作日志：append-only、最新在前、固定容量环。
package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity 默认保留最近 100 条。
const DefaultCapacity = 100

// EntryType 日志条目类型（封闭集合）。
type EntryType string

const (
	TypeDeploy  EntryType = "deploy"
	TypeMission EntryType = "mission"
	TypeInfo    EntryType = "info"
	TypeAlert   EntryType = "alert"
	TypeDestroy EntryType = "destroy"
)

// Entry 操作日志条目。Time 为本地时间展示字符串。
type Entry struct {
	ID      string    `json:"id"`
	Time    string    `json:"time"`
	Type    EntryType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details"`
}

// Journal 有界日志。超过容量时淘汰最旧条目（FIFO）。
type Journal struct {
	capacity int
	entries  []Entry // 最新在前
}

// New 创建日志。capacity <= 0 时取 DefaultCapacity。
func New(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{capacity: capacity}
}

// Append 追加一条日志并返回它。最旧条目在越界时被丢弃。
func (j *Journal) Append(typ EntryType, message, details string, now time.Time) Entry {
	e := Entry{
		ID:      uuid.NewString(),
		Time:    now.Format("02/01/2006 15:04"),
		Type:    typ,
		Message: message,
		Details: details,
	}
	j.entries = append([]Entry{e}, j.entries...)
	if len(j.entries) > j.capacity {
		j.entries = j.entries[:j.capacity]
	}
	return e
}

// Delete 按 ID 删除单条（人工清理，需上层确认）。不影响其余条目顺序。
func (j *Journal) Delete(id string) error {
	for i, e := range j.entries {
		if e.ID == id {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("journal entry not found: %s", id)
}

// Entries 返回条目切片的拷贝（最新在前）。
func (j *Journal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *Journal) Len() int {
	return len(j.entries)
}

// Restore 从持久化列表恢复，超出容量的尾部被截断。
func (j *Journal) Restore(entries []Entry) {
	if len(entries) > j.capacity {
		entries = entries[:j.capacity]
	}
	j.entries = make([]Entry, len(entries))
	copy(j.entries, entries)
}
