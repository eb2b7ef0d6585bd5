package squad

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/store"
)

// Directory 外部分队目录的存储适配：记录列表整体存在一个 blob 下。
type Directory struct {
	store store.Store
}

func NewDirectory(s store.Store) *Directory {
	return &Directory{store: s}
}

func (d *Directory) load(ctx context.Context) ([]Record, error) {
	if d == nil || d.store == nil {
		return nil, fmt.Errorf("directory store is nil")
	}
	var records []Record
	err := store.GetJSON(ctx, d.store, store.KeySquads, &records)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindByName 按名称查找记录；不存在时返回 (nil, nil)。
func (d *Directory) FindByName(ctx context.Context, name string) (*Record, error) {
	records, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Name == name {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// Upsert 按名称更新或插入记录。没有删除路径。
func (d *Directory) Upsert(ctx context.Context, rec Record) error {
	if rec.Name == "" {
		return fmt.Errorf("squad record name required")
	}
	records, err := d.load(ctx)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	replaced := false
	for i := range records {
		if records[i].Name == rec.Name {
			rec.ID = records[i].ID
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	return store.PutJSON(ctx, d.store, store.KeySquads, records)
}

// Records 返回目录全部记录。
func (d *Directory) Records(ctx context.Context) ([]Record, error) {
	return d.load(ctx)
}

// Reset 清空分队注册表（恢复默认：空表）。破坏性操作，上层要求确认。
func (d *Directory) Reset(ctx context.Context) error {
	if d == nil || d.store == nil {
		return fmt.Errorf("directory store is nil")
	}
	return store.PutJSON(ctx, d.store, store.KeySquads, []Record{})
}
