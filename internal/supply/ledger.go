// Package supply 维护补给点台账：名称 + 非负整数存量，独立于载具。
package supply

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Location 补给点。
type Location struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"` // 非负
}

// Ledger 补给台账（无历史记录）。
type Ledger struct {
	locations []Location
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add 新增补给点。
func (l *Ledger) Add(name string, amount int) (Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Location{}, fmt.Errorf("location name required")
	}
	if amount < 0 {
		return Location{}, fmt.Errorf("amount must be >= 0")
	}
	loc := Location{ID: uuid.NewString(), Name: name, Amount: amount}
	l.locations = append(l.locations, loc)
	return loc, nil
}

// Update 修改存量。
func (l *Ledger) Update(id string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("amount must be >= 0")
	}
	for i := range l.locations {
		if l.locations[i].ID == id {
			l.locations[i].Amount = amount
			return nil
		}
	}
	return fmt.Errorf("supply location not found: %s", id)
}

// Remove 删除补给点。
func (l *Ledger) Remove(id string) error {
	for i := range l.locations {
		if l.locations[i].ID == id {
			l.locations = append(l.locations[:i], l.locations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("supply location not found: %s", id)
}

// Total 全部存量之和（派生读）。
func (l *Ledger) Total() int {
	total := 0
	for _, loc := range l.locations {
		total += loc.Amount
	}
	return total
}

// Locations 返回台账拷贝。
func (l *Ledger) Locations() []Location {
	out := make([]Location, len(l.locations))
	copy(out, l.locations)
	return out
}

// Restore 从持久化列表恢复。
func (l *Ledger) Restore(locations []Location) {
	l.locations = make([]Location, len(locations))
	copy(l.locations, locations)
}
