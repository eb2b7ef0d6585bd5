// Package roster 维护后勤组自己的人员花名册（区别于全团人员目录）。
package roster

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// grades 固定军衔词汇表（从高到低）。
var grades = []string{
	"Colonel",
	"Commandant",
	"Capitaine",
	"Lieutenant",
	"Major",
	"Adjudant-Chef",
	"Adjudant",
	"Sergent-Chef",
	"Sergent",
	"Caporal-Chef",
	"Caporal",
	"Première Classe",
	"Soldat",
	"Recrue",
}

// Grades 返回军衔词汇表的拷贝。
func Grades() []string {
	out := make([]string, len(grades))
	copy(out, grades)
	return out
}

// ValidGrade 判断军衔是否在词汇表内。
func ValidGrade(grade string) bool {
	for _, g := range grades {
		if g == grade {
			return true
		}
	}
	return false
}

// Member 花名册条目。
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// Roster 后勤人员花名册。人数驱动 CommandSync 的 effectives 计数。
type Roster struct {
	members []Member
}

func New() *Roster {
	return &Roster{}
}

// Add 登记人员。军衔必须属于词汇表。
func (r *Roster) Add(name, grade string) (Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Member{}, fmt.Errorf("member name required")
	}
	if !ValidGrade(grade) {
		return Member{}, fmt.Errorf("unknown grade: %q", grade)
	}
	m := Member{ID: uuid.NewString(), Name: name, Grade: grade}
	r.members = append(r.members, m)
	return m, nil
}

// Remove 按 ID 移除人员。
func (r *Roster) Remove(id string) error {
	for i := range r.members {
		if r.members[i].ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("roster member not found: %s", id)
}

// Members 返回花名册拷贝。
func (r *Roster) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

func (r *Roster) Len() int {
	return len(r.members)
}

// Restore 从持久化列表恢复。
func (r *Roster) Restore(members []Member) {
	r.members = make([]Member, len(members))
	copy(r.members, members)
}
