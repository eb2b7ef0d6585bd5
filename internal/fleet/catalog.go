package fleet

import "fmt"

// Template 载具目录条目（静态，运行期只读）。
type Template struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`  // 展示名，如 "Camion"
	Group     Group    `json:"group"`
	Cost      int      `json:"cost"`  // 点数成本
	SeatRoles []string `json:"seat_roles"` // 有序座位列表
}

// Catalog 可部署载具目录。
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// NewCatalog 由模板列表构建目录（后出现的同 ID 条目被忽略）。
func NewCatalog(templates []Template) *Catalog {
	c := &Catalog{
		templates: make([]Template, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for _, t := range templates {
		if t.ID == "" {
			continue
		}
		if _, exists := c.byID[t.ID]; exists {
			continue
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	return c
}

// FindByID 按 ID 查找模板。
func (c *Catalog) FindByID(id string) (Template, error) {
	if c == nil {
		return Template{}, fmt.Errorf("catalog is nil")
	}
	i, ok := c.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("unknown vehicle template: %s", id)
	}
	return c.templates[i], nil
}

// Templates 返回目录内容的拷贝。
func (c *Catalog) Templates() []Template {
	if c == nil {
		return nil
	}
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// DefaultCatalog 默认载具目录（FOF 后勤编制）。
func DefaultCatalog() *Catalog {
	return NewCatalog([]Template{
		{ID: "camion", Type: "Camion", Group: GroupLogistique, Cost: 200,
			SeatRoles: []string{"Conducteur", "Passager 1", "Passager 2"}},
		{ID: "vlra", Type: "VLRA", Group: GroupLogistique, Cost: 180,
			SeatRoles: []string{"Conducteur", "Passager", "Médecin"}},
		{ID: "pvp", Type: "PVP", Group: GroupTerrestre, Cost: 150,
			SeatRoles: []string{"Conducteur", "Passager"}},
		{ID: "vbl", Type: "VBL", Group: GroupTerrestre, Cost: 250,
			SeatRoles: []string{"Conducteur", "Chef de Bord", "Tireur"}},
		{ID: "vab", Type: "VAB", Group: GroupBlinde, Cost: 300,
			SeatRoles: []string{"Conducteur", "Chef de Bord", "Tireur", "Passager 1", "Passager 2"}},
		{ID: "leclerc", Type: "Leclerc", Group: GroupBlinde, Cost: 900,
			SeatRoles: []string{"Commandant", "Conducteur", "Tireur"}},
		{ID: "nh90", Type: "NH90", Group: GroupAir, Cost: 700,
			SeatRoles: []string{"Pilote", "Copilote", "Passager 1", "Passager 2"}},
		{ID: "tigre", Type: "Tigre", Group: GroupAir, Cost: 800,
			SeatRoles: []string{"Pilote", "Tireur"}},
	})
}
