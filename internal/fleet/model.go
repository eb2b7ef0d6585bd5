package fleet

// Status 载具生命周期状态枚举（持久化为字符串）。
// 出库（garage）与被摧毁（destroyed）是删除型转移，不是驻留状态。
type Status string

const (
	StatusOperational Status = "operational" // 可用，待命中
	StatusOnMission   Status = "on_mission"  // 任务执行中
	StatusMaintenance Status = "maintenance" // 维修/补给中
)

// Group 载具类别（封闭集合）。
type Group string

const (
	GroupTerrestre  Group = "terrestre"  // 轻型地面载具
	GroupBlinde     Group = "blinde"     // 装甲载具
	GroupAir        Group = "air"        // 空中载具（指挥权归飞行员）
	GroupLogistique Group = "logistique" // 后勤运输载具
)

// Vehicle 已部署的载具实例。
// 从 Template 派生：type/group/seatRoles 在部署时拷贝，不保持引用。
type Vehicle struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Group       Group    `json:"group"`
	SeatRoles   []string `json:"seat_roles"`
	Callsign    string   `json:"callsign"`
	Status      Status   `json:"status"`
	StatusSince string   `json:"status_since"` // 本地时间展示字符串

	// Crew 座位 -> 占用者。key 必须属于 SeatRoles；缺失的 key 表示空位。
	Crew map[string]string `json:"crew"`

	Fuel      int `json:"fuel"`      // [0,100]
	Integrity int `json:"integrity"` // [0,100]

	MissionDetails string `json:"mission_details"` // 任务开始时写入，之后不清空
	ReturnReport   string `json:"return_report"`   // 任务返回时写入
}

// HasSeat 判断座位是否属于该载具。
func (v *Vehicle) HasSeat(seat string) bool {
	for _, s := range v.SeatRoles {
		if s == seat {
			return true
		}
	}
	return false
}
