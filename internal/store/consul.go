package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/consul/api"
)

// ConsulStore 基于 Consul KV 的 blob 存储实现（适合无 MySQL 的小型部署）。
type ConsulStore struct {
	kv     *api.KV
	prefix string
}

// NewConsulStore 创建 Consul KV 存储。prefix 为 key 前缀（如 "fof/"）。
func NewConsulStore(client *api.Client, prefix string) (*ConsulStore, error) {
	if client == nil {
		return nil, fmt.Errorf("consul client is nil")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &ConsulStore{kv: client.KV(), prefix: prefix}, nil
}

func (s *ConsulStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.kv == nil {
		return nil, fmt.Errorf("consul kv is nil")
	}
	opts := (&api.QueryOptions{}).WithContext(ctx)
	pair, _, err := s.kv.Get(s.prefix+key, opts)
	if err != nil {
		return nil, fmt.Errorf("consul kv get %s: %w", key, err)
	}
	if pair == nil {
		return nil, ErrNotFound
	}
	return pair.Value, nil
}

func (s *ConsulStore) Put(ctx context.Context, key string, value []byte) error {
	if s == nil || s.kv == nil {
		return fmt.Errorf("consul kv is nil")
	}
	opts := (&api.WriteOptions{}).WithContext(ctx)
	pair := &api.KVPair{Key: s.prefix + key, Value: value}
	if _, err := s.kv.Put(pair, opts); err != nil {
		return fmt.Errorf("consul kv put %s: %w", key, err)
	}
	return nil
}
