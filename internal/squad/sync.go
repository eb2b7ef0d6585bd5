package squad

import "context"

// SyncInput CommandSync 的输入：当前值班军官（可为空）与花名册人数。
// SquadName / Frequency 为空时取包内默认值。
type SyncInput struct {
	SquadName   string // 目标分队记录名
	Frequency   string // 新建记录的默认电台频率
	Officer     string
	RosterCount int
}

// Effectives 计算在编人数：(军官在位 ? 1 : 0) + 花名册人数。
func (in SyncInput) Effectives() int {
	n := in.RosterCount
	if in.Officer != "" {
		n++
	}
	return n
}

// Sync 把 {军官, 花名册人数} 单向投影到分队目录的后勤记录上。
// 纯 upsert：记录不存在且（有军官或花名册非空）时才新建；空投影不删除既有记录。
func Sync(ctx context.Context, d *Directory, in SyncInput) error {
	name := in.SquadName
	if name == "" {
		name = LogistiqueName
	}
	freq := in.Frequency
	if freq == "" {
		freq = DefaultFrequency
	}

	rec, err := d.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if rec == nil {
		if in.Officer == "" && in.RosterCount == 0 {
			return nil
		}
		rec = &Record{
			Name:       name,
			Frequency:  freq,
			Deployment: DeploymentStandby,
		}
	}

	if in.Officer != "" {
		rec.SL = in.Officer
		rec.Deployment = DeploymentDeployed
	} else {
		rec.SL = NoOfficer
	}
	rec.Effectives = in.Effectives()

	return d.Upsert(ctx, *rec)
}
