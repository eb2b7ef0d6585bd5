package squad

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/store"
)

// Archive 外部归档台账的存储适配。
type Archive struct {
	store store.Store
}

func NewArchive(s store.Store) *Archive {
	return &Archive{store: s}
}

func (a *Archive) load(ctx context.Context) ([]ArchiveEntry, error) {
	if a == nil || a.store == nil {
		return nil, fmt.Errorf("archive store is nil")
	}
	var entries []ArchiveEntry
	err := store.GetJSON(ctx, a.store, store.KeyArchive, &entries)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendOpen 追加一条开放条目（TimeEnd 为 nil）。
func (a *Archive) AppendOpen(ctx context.Context, squadName, sl string, start time.Time) (ArchiveEntry, error) {
	entries, err := a.load(ctx)
	if err != nil {
		return ArchiveEntry{}, err
	}
	e := ArchiveEntry{
		ID:        uuid.NewString(),
		SquadName: squadName,
		SL:        sl,
		TimeStart: start,
	}
	entries = append(entries, e)
	if err := store.PutJSON(ctx, a.store, store.KeyArchive, entries); err != nil {
		return ArchiveEntry{}, err
	}
	return e, nil
}

// CloseLatestOpenFor 关闭指定分队最近一条开放条目。没有开放条目则为 no-op。
func (a *Archive) CloseLatestOpenFor(ctx context.Context, squadName string, end time.Time) error {
	entries, err := a.load(ctx)
	if err != nil {
		return err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].SquadName == squadName && entries[i].TimeEnd == nil {
			t := end
			entries[i].TimeEnd = &t
			return store.PutJSON(ctx, a.store, store.KeyArchive, entries)
		}
	}
	return nil
}

// Entries 返回台账全部条目。
func (a *Archive) Entries(ctx context.Context) ([]ArchiveEntry, error) {
	return a.load(ctx)
}
