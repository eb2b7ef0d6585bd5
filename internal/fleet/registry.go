package fleet

import (
	"fmt"
	"time"
)

// Registry 当前在役载具集合（无 tombstone：出库/摧毁即删除）。
// 不做并发保护，由上层聚合单写串行化。
type Registry struct {
	vehicles []*Vehicle
	// Destroyed 累计被摧毁的载具数（统计口径，随 Registry 一起持久化）。
	destroyed int
}

// RegistrySnapshot Registry 的持久化形态。
type RegistrySnapshot struct {
	Vehicles  []*Vehicle `json:"vehicles"`
	Destroyed int        `json:"destroyed"`
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Deploy 按模板部署新实例：生成唯一呼号，初始油量/完好度 100。
func (r *Registry) Deploy(t Template, now time.Time) (*Vehicle, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	v := NewVehicle(t, r.nextCallsign(t.Type), now)
	r.vehicles = append(r.vehicles, v)
	return v, nil
}

// nextCallsign 取 PREF-%03d 中未被在役实例占用的最小序号。
func (r *Registry) nextCallsign(displayType string) string {
	prefix := CallsignPrefix(displayType)
	used := make(map[string]bool, len(r.vehicles))
	for _, v := range r.vehicles {
		used[v.Callsign] = true
	}
	for n := 1; ; n++ {
		cs := fmt.Sprintf("%s-%03d", prefix, n)
		if !used[cs] {
			return cs
		}
	}
}

// Find 按实例 ID 查找在役载具。
func (r *Registry) Find(id string) (*Vehicle, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	for _, v := range r.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("vehicle not found: %s", id)
}

// Remove 将实例移出集合（出库）。不存在则报错。
func (r *Registry) Remove(id string) (*Vehicle, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	for i, v := range r.vehicles {
		if v.ID == id {
			r.vehicles = append(r.vehicles[:i], r.vehicles[i+1:]...)
			return v, nil
		}
	}
	return nil, fmt.Errorf("vehicle not found: %s", id)
}

// Destroy 移除实例并累计摧毁统计。
func (r *Registry) Destroy(id string) (*Vehicle, error) {
	v, err := r.Remove(id)
	if err != nil {
		return nil, err
	}
	r.destroyed++
	return v, nil
}

// Vehicles 返回在役载具切片的拷贝（元素仍指向内部实例）。
func (r *Registry) Vehicles() []*Vehicle {
	if r == nil {
		return nil
	}
	out := make([]*Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.vehicles)
}

func (r *Registry) DestroyedCount() int {
	if r == nil {
		return 0
	}
	return r.destroyed
}

// Snapshot 导出持久化形态。
func (r *Registry) Snapshot() RegistrySnapshot {
	return RegistrySnapshot{Vehicles: r.Vehicles(), Destroyed: r.destroyed}
}

// Restore 从持久化形态恢复（丢弃当前内容）。
func (r *Registry) Restore(s RegistrySnapshot) {
	if r == nil {
		return
	}
	r.vehicles = make([]*Vehicle, 0, len(s.Vehicles))
	for _, v := range s.Vehicles {
		if v == nil {
			continue
		}
		if v.Crew == nil {
			v.Crew = make(map[string]string)
		}
		r.vehicles = append(r.vehicles, v)
	}
	r.destroyed = s.Destroyed
}
