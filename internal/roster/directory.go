package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/store"
)

// clanRosterKey 全团人员目录的持久化 key（由团务模块维护，这里只读）。
const clanRosterKey = "clan/roster"

// Directory 全团人员目录的只读适配：登记后勤人员时按名字预填军衔。
type Directory struct {
	store store.Store
}

func NewDirectory(s store.Store) *Directory {
	return &Directory{store: s}
}

// FindGradeByName 按名字（不区分大小写）查军衔。查不到时 ok=false。
func (d *Directory) FindGradeByName(ctx context.Context, name string) (string, bool, error) {
	if d == nil || d.store == nil {
		return "", false, fmt.Errorf("directory store is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, nil
	}

	var members []Member
	err := store.GetJSON(ctx, d.store, clanRosterKey, &members)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	for _, m := range members {
		if strings.EqualFold(m.Name, name) {
			return m.Grade, true, nil
		}
	}
	return "", false, nil
}
