package fleet

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// TimeLayout 状态/日志展示用的本地时间格式。
const TimeLayout = "02/01/2006 15:04"

// 油量低于该阈值时，任务返回自动升级为维修状态。
const lowFuelThreshold = 20

// AllowTransition 定义载具状态机的允许流转关系。
// 出库与摧毁是“删除”而非状态，不出现在这里（由 Registry 处理）。
var AllowTransition = map[Status][]Status{
	StatusOperational: {StatusOnMission},
	StatusOnMission:   {StatusOperational, StatusMaintenance},
	StatusMaintenance: {StatusOperational},
}

// CanTransition 判断 from -> to 是否是一个允许的状态流转。
func CanTransition(from, to Status) bool {
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// NewVehicle 按模板创建新实例（部署）。callsign 由调用方（Registry）分配。
func NewVehicle(t Template, callsign string, now time.Time) *Vehicle {
	seats := make([]string, len(t.SeatRoles))
	copy(seats, t.SeatRoles)
	return &Vehicle{
		ID:          uuid.NewString(),
		Type:        t.Type,
		Group:       t.Group,
		SeatRoles:   seats,
		Callsign:    callsign,
		Status:      StatusOperational,
		StatusSince: now.Format(TimeLayout),
		Crew:        make(map[string]string),
		Fuel:        100,
		Integrity:   100,
	}
}

// CallsignPrefix 由展示名推导呼号前缀：取前 4 个字母，大写，忽略非字母字符。
// "Camion" -> "CAMI"，"VAB" -> "VAB"。
func CallsignPrefix(displayType string) string {
	var b strings.Builder
	for _, r := range displayType {
		if !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() >= 4 {
			break
		}
	}
	if b.Len() == 0 {
		return "VEH"
	}
	return b.String()
}

// StartMission 进入任务状态。details 不允许为空（确认步骤在引擎外完成）。
func StartMission(v *Vehicle, details string, now time.Time) error {
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	details = strings.TrimSpace(details)
	if details == "" {
		return fmt.Errorf("mission details required")
	}
	if !CanTransition(v.Status, StatusOnMission) {
		return fmt.Errorf("invalid status transition: %s -> %s", v.Status, StatusOnMission)
	}
	v.Status = StatusOnMission
	v.StatusSince = now.Format(TimeLayout)
	v.MissionDetails = details
	return nil
}

// ReturnMission 任务返回。fuel/integrity 强制收敛到 [0,100]，不信任调用方。
// 满足任一条件则升级为维修状态：needsMaintenance、integrity<100、fuel<20。
// 返回值 escalated 表示是否发生了升级。
func ReturnMission(v *Vehicle, report string, fuel, integrity int, needsMaintenance bool, now time.Time) (escalated bool, err error) {
	if v == nil {
		return false, fmt.Errorf("vehicle is nil")
	}
	if v.Status != StatusOnMission {
		return false, fmt.Errorf("invalid status transition: %s -> %s", v.Status, StatusOperational)
	}

	fuel = clampPercent(fuel)
	integrity = clampPercent(integrity)

	target := StatusOperational
	if needsMaintenance || integrity < 100 || fuel < lowFuelThreshold {
		target = StatusMaintenance
		escalated = true
	}

	v.Status = target
	v.StatusSince = now.Format(TimeLayout)
	v.Fuel = fuel
	v.Integrity = integrity
	v.ReturnReport = strings.TrimSpace(report)
	return escalated, nil
}

// RepairAndResupply 维修完毕：油量与完好度回满，回到可用状态。
func RepairAndResupply(v *Vehicle, now time.Time) error {
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	if !CanTransition(v.Status, StatusOperational) {
		return fmt.Errorf("invalid status transition: %s -> %s", v.Status, StatusOperational)
	}
	v.Status = StatusOperational
	v.StatusSince = now.Format(TimeLayout)
	v.Fuel = 100
	v.Integrity = 100
	return nil
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
