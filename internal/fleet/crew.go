package fleet

import (
	"fmt"
	"strings"
)

// NoCommander 没有任何座位被占用时的车长显示值。
const NoCommander = "N/A"

// pilotSeat 空中载具的权威指挥座位。
const pilotSeat = "Pilote"

// commandPriority 非空中载具的车长推导优先级（只考虑该载具实际存在的座位）。
var commandPriority = []string{
	"Commandant",
	"Chef de Bord",
	"Passager 1",
	"Passager",
	"Tireur",
	"Médecin",
	"Conducteur",
}

// AssignSeat 指派/清空座位。occupant 为空串表示清空。
// 不做跨载具排他：同一人可以同时占多辆车的座位。
func AssignSeat(v *Vehicle, seat, occupant string) error {
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	seat = strings.TrimSpace(seat)
	if !v.HasSeat(seat) {
		return fmt.Errorf("vehicle %s has no seat %q", v.Callsign, seat)
	}
	if v.Crew == nil {
		v.Crew = make(map[string]string)
	}
	occupant = strings.TrimSpace(occupant)
	if occupant == "" {
		delete(v.Crew, seat)
		return nil
	}
	v.Crew[seat] = occupant
	return nil
}

// Commander 推导当前车长（纯读侧查询，不落盘）。
// 空中载具以飞行员座位为准；其余按固定优先级找第一个有人的座位。
func Commander(v *Vehicle) string {
	if v == nil {
		return NoCommander
	}
	if v.Group == GroupAir {
		if name := v.Crew[pilotSeat]; name != "" {
			return name
		}
		return NoCommander
	}
	for _, seat := range commandPriority {
		if !v.HasSeat(seat) {
			continue
		}
		if name := v.Crew[seat]; name != "" {
			return name
		}
	}
	return NoCommander
}
