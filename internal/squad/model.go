// Package squad 覆盖与外部指挥分队目录的交互：
// "Logistique" 记录的单向投影（CommandSync）、值班（ServiceTenure）与归档台账。
package squad

import "time"

const (
	// LogistiqueName 本引擎维护的分队目录记录名。
	LogistiqueName = "Logistique"
	// NoOfficer 没有值班军官时 sl 字段的字面值。
	NoOfficer = "Non Assigné"
	// DefaultFrequency 新建记录的默认电台频率。
	DefaultFrequency = "50.0"
	// DeploymentDeployed 有军官在位时的部署状态标记。
	DeploymentDeployed = "deployed"
	// DeploymentStandby 新建记录的初始部署状态。
	DeploymentStandby = "standby"
)

// Record 外部分队目录记录。本引擎只写 SL / Effectives / Deployment，
// 其余字段保持外部值不变。
type Record struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	SL                 string `json:"sl"`         // 值班军官名，无则 NoOfficer
	Effectives         int    `json:"effectives"` // (军官在位?1:0) + 花名册人数
	Frequency          string `json:"frequency"`
	SecondaryObjective string `json:"secondary_objective"`
	Deployment         string `json:"deployment"`
}

// ArchiveEntry 归档台账条目。值班期间恰有一条 TimeEnd 为空的开放条目。
type ArchiveEntry struct {
	ID        string     `json:"id"`
	SquadName string     `json:"squad_name"`
	SL        string     `json:"sl"`
	TimeStart time.Time  `json:"time_start"`
	TimeEnd   *time.Time `json:"time_end"` // 值班中为 nil
}
