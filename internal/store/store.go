// Package store 提供不透明的持久化 KV blob 存储。
// 引擎把每个聚合（车队、日志、补给、花名册、值班、分队注册表、归档、聊天）
// 序列化为 JSON 后写到各自的 key 下；持久化是 fire-and-forget，不在事务边界内。
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// 各聚合的持久化 key。
const (
	KeyFleet   = "depot/fleet"
	KeyJournal = "depot/journal"
	KeySupply  = "depot/supply"
	KeyRoster  = "depot/roster"
	KeyTenure  = "depot/tenure"
	KeySquads  = "depot/squads"
	KeyArchive = "depot/archive"
	KeyChat    = "depot/chat"
)

// ErrNotFound key 不存在。
var ErrNotFound = errors.New("store: key not found")

// Store 持久化 KV blob 存储。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// PutJSON 序列化并写入。
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Put(ctx, key, data)
}

// GetJSON 读取并反序列化。key 不存在时返回 ErrNotFound，out 保持不变。
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}
