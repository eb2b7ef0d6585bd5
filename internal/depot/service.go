// Package depot 把车队、日志、补给、花名册、值班聚合为单一拥有者，
// 所有命令经同一把锁串行执行，保持单写语义。
// 持久化是每次变更后的 fire-and-forget：失败只记日志，不回滚命令。
package depot

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/auth"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/logger"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/middleware"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/fleet"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/journal"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/roster"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/squad"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/store"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/supply"
)

// RosterDirectory 全团人员目录（外部协作方）：
// 登记后勤人员时按名字预填军衔，只读。
type RosterDirectory interface {
	FindGradeByName(ctx context.Context, name string) (grade string, ok bool, err error)
}

// Options Service 的装配参数。零值字段取默认。
type Options struct {
	Log              logger.Logger
	Store            store.Store
	Catalog          *fleet.Catalog
	Directory        *squad.Directory
	Archive          *squad.Archive
	RosterDirectory  RosterDirectory
	SquadName        string // 分队目录中本队记录名
	DefaultFrequency string // 新建分队记录的默认电台频率
	JournalCapacity  int
	Now              func() time.Time
}

// Service 车库引擎。所有命令方法并发安全（内部单锁串行）。
type Service struct {
	mu sync.Mutex

	log     logger.Logger
	store   store.Store
	breaker *middleware.CircuitBreaker

	catalog   *fleet.Catalog
	registry  *fleet.Registry
	journal   *journal.Journal
	supply    *supply.Ledger
	roster    *roster.Roster
	tenure    squad.Tenure
	directory *squad.Directory
	archive   *squad.Archive
	rosterDir RosterDirectory

	squadName   string
	defaultFreq string

	now func() time.Time
}

func NewService(o Options) *Service {
	if o.Catalog == nil {
		o.Catalog = fleet.DefaultCatalog()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.SquadName == "" {
		o.SquadName = squad.LogistiqueName
	}
	if o.DefaultFrequency == "" {
		o.DefaultFrequency = squad.DefaultFrequency
	}
	return &Service{
		log:         o.Log,
		store:       o.Store,
		breaker:     middleware.NewCircuitBreaker("depot-store", 5, 30*time.Second),
		catalog:     o.Catalog,
		registry:    fleet.NewRegistry(),
		journal:     journal.New(o.JournalCapacity),
		supply:      supply.NewLedger(),
		roster:      roster.New(),
		directory:   o.Directory,
		archive:     o.Archive,
		rosterDir:   o.RosterDirectory,
		squadName:   o.SquadName,
		defaultFreq: o.DefaultFrequency,
		now:         o.Now,
	}
}

// Load 启动时从持久化存储恢复各聚合。key 不存在视为空载。
func (s *Service) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap fleet.RegistrySnapshot
	if err := s.loadKey(ctx, store.KeyFleet, &snap); err != nil {
		return err
	}
	s.registry.Restore(snap)

	var entries []journal.Entry
	if err := s.loadKey(ctx, store.KeyJournal, &entries); err != nil {
		return err
	}
	s.journal.Restore(entries)

	var locations []supply.Location
	if err := s.loadKey(ctx, store.KeySupply, &locations); err != nil {
		return err
	}
	s.supply.Restore(locations)

	var members []roster.Member
	if err := s.loadKey(ctx, store.KeyRoster, &members); err != nil {
		return err
	}
	s.roster.Restore(members)

	var tenure squad.Tenure
	if err := s.loadKey(ctx, store.KeyTenure, &tenure); err != nil {
		return err
	}
	s.tenure = tenure

	return nil
}

func (s *Service) loadKey(ctx context.Context, key string, out any) error {
	err := store.GetJSON(ctx, s.store, key, out)
	if err == nil || err == store.ErrNotFound {
		return nil
	}
	return err
}

// persist 把聚合写回存储：fire-and-forget，失败只记警告。
// 存储后端连续失败时熔断，引擎降级为纯内存运行。
func (s *Service) persist(ctx context.Context, key string, v any) {
	if s.store == nil {
		return
	}
	err := s.breaker.Call(ctx, func() error {
		return store.PutJSON(ctx, s.store, key, v)
	})
	if err != nil && s.log != nil {
		s.log.Warnf("persist %s: %v", key, err)
	}
}

func (s *Service) persistFleet(ctx context.Context) {
	s.persist(ctx, store.KeyFleet, s.registry.Snapshot())
}

func (s *Service) persistJournal(ctx context.Context) {
	s.persist(ctx, store.KeyJournal, s.journal.Entries())
}

// requireSupervisor 监管授权检查（"is SL"）。
func (s *Service) requireSupervisor(sess auth.Session) error {
	if s.tenure.AuthorizedFor(sess.UID) {
		return nil
	}
	return Rejectf("action réservée au SL en service (%s)", s.tenure.Officer)
}

// syncSquad 把 {值班军官, 花名册人数} 投影到外部分队目录。
// 投影失败不影响已完成的命令，只记警告。
func (s *Service) syncSquad(ctx context.Context) {
	if s.directory == nil {
		return
	}
	in := squad.SyncInput{
		SquadName:   s.squadName,
		Frequency:   s.defaultFreq,
		RosterCount: s.roster.Len(),
	}
	if s.tenure.Active {
		in.Officer = s.tenure.Officer
	}
	if err := squad.Sync(ctx, s.directory, in); err != nil && s.log != nil {
		s.log.Warnf("squad sync: %v", err)
	}
}

// ---- 车队 ----

// Catalog 可部署载具目录。
func (s *Service) Catalog() []fleet.Template {
	return s.catalog.Templates()
}

// Vehicles 在役载具快照（深拷贝，读侧安全）。
func (s *Service) Vehicles() []fleet.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := s.registry.Vehicles()
	out := make([]fleet.Vehicle, 0, len(live))
	for _, v := range live {
		out = append(out, cloneVehicle(v))
	}
	return out
}

// Vehicle 按 ID 取单辆快照。
func (s *Service) Vehicle(id string) (fleet.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.registry.Find(id)
	if err != nil {
		return fleet.Vehicle{}, Rejectf("véhicule introuvable")
	}
	return cloneVehicle(v), nil
}

// CommanderOf 当前车长（派生只读）。
func (s *Service) CommanderOf(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.registry.Find(id)
	if err != nil {
		return "", Rejectf("véhicule introuvable")
	}
	return fleet.Commander(v), nil
}

// DestroyedCount 累计被摧毁载具数。
func (s *Service) DestroyedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.DestroyedCount()
}

// Deploy 按模板部署新载具。
func (s *Service) Deploy(ctx context.Context, sess auth.Session, templateID string) (fleet.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.catalog.FindByID(templateID)
	if err != nil {
		return fleet.Vehicle{}, Rejectf("modèle de véhicule inconnu: %s", templateID)
	}
	now := s.now()
	v, err := s.registry.Deploy(t, now)
	if err != nil {
		return fleet.Vehicle{}, err
	}

	s.journal.Append(journal.TypeDeploy,
		"Déploiement "+v.Callsign,
		v.Type+" mis en service par "+sess.Name, now)
	s.persistFleet(ctx)
	s.persistJournal(ctx)
	return cloneVehicle(v), nil
}

// StartMission 载具出发执行任务。details 已由确认步骤收集，非空。
func (s *Service) StartMission(ctx context.Context, sess auth.Session, vehicleID, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.registry.Find(vehicleID)
	if err != nil {
		return Rejectf("véhicule introuvable")
	}
	now := s.now()
	if err := fleet.StartMission(v, details, now); err != nil {
		return Rejectf("départ en mission impossible: %v", err)
	}

	s.journal.Append(journal.TypeMission,
		v.Callsign+" en mission",
		"Chef de véhicule: "+fleet.Commander(v)+". "+strings.TrimSpace(details), now)
	s.persistFleet(ctx)
	s.persistJournal(ctx)
	return nil
}

// ReturnMission 任务返回。integrity<100、fuel<20 或 needsMaintenance 时升级维修。
func (s *Service) ReturnMission(ctx context.Context, sess auth.Session, vehicleID, report string, fuel, integrity int, needsMaintenance bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.registry.Find(vehicleID)
	if err != nil {
		return Rejectf("véhicule introuvable")
	}
	now := s.now()
	escalated, err := fleet.ReturnMission(v, report, fuel, integrity, needsMaintenance, now)
	if err != nil {
		return Rejectf("retour de mission impossible: %v", err)
	}

	s.journal.Append(journal.TypeInfo,
		v.Callsign+" de retour de mission",
		strings.TrimSpace(report), now)
	if escalated {
		s.journal.Append(journal.TypeAlert,
			v.Callsign+" placé en maintenance",
			"Carburant et état à vérifier", now)
	}
	s.persistFleet(ctx)
	s.persistJournal(ctx)
	return nil
}

// RepairAndResupply 维修补给完成，回到可用状态。
func (s *Service) RepairAndResupply(ctx context.Context, sess auth.Session, vehicleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.registry.Find(vehicleID)
	if err != nil {
		return Rejectf("véhicule introuvable")
	}
	now := s.now()
	if err := fleet.RepairAndResupply(v, now); err != nil {
		return Rejectf("maintenance impossible: %v", err)
	}

	s.journal.Append(journal.TypeInfo,
		v.Callsign+" réparé et ravitaillé", "", now)
	s.persistFleet(ctx)
	s.persistJournal(ctx)
	return nil
}

// GarageReturn 出库归还：从在役集合删除。仅 SL，可用状态，且需确认。
func (s *Service) GarageReturn(ctx context.Context, sess auth.Session, vehicleID string, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSupervisor(sess); err != nil {
		return err
	}
	if !confirmed {
		return Rejectf("retour au garage non confirmé")
	}
	v, err := s.registry.Find(vehicleID)
	if err != nil {
		return Rejectf("véhicule introuvable")
	}
	if v.Status != fleet.StatusOperational {
		return Rejectf("retour au garage impossible: véhicule %s", v.Status)
	}
	if _, err := s.registry.Remove(vehicleID); err != nil {
		return err
	}

	s.journal.Append(journal.TypeInfo,
		v.Callsign+" rentré au garage", "", s.now())
	s.persistFleet(ctx)
	s.persistJournal(ctx)
	return nil
}

// Destroy 上报摧毁：仅 SL，任意状态可用，需要上报人与确认。
func (s *Service) Destroy(ctx context.Context, sess auth.Session, vehicleID, reporter, reason string, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSupervisor(sess); err != nil {
		return err
	}
	if !confirmed {
		return Rejectf("destruction non confirmée")
	}
	reporter = strings.TrimSpace(reporter)
	if reporter == "" {
		return Rejectf("identité du déclarant requise")
	}
	v, err := s.registry.Find(vehicleID)
	if err != nil {
		return Rejectf("véhicule introuvable")
	}
	if _, err := s.registry.Destroy(vehicleID); err != nil {
		return err
	}

	s.journal.Append(journal.TypeDestroy,
		v.Callsign+" détruit",
		"Déclaré par "+reporter+". "+strings.TrimSpace(reason), s.now())
	s.persistFleet(ctx)
	s.persistJournal(ctx)
	return nil
}

// AssignSeat 指派/清空座位。不设监管门槛。
func (s *Service) AssignSeat(ctx context.Context, sess auth.Session, vehicleID, seat, occupant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.registry.Find(vehicleID)
	if err != nil {
		return Rejectf("véhicule introuvable")
	}
	if err := fleet.AssignSeat(v, seat, occupant); err != nil {
		return Rejectf("affectation impossible: %v", err)
	}

	occupant = strings.TrimSpace(occupant)
	if occupant != "" {
		s.journal.Append(journal.TypeInfo,
			occupant+" affecté sur "+v.Callsign,
			"Poste: "+strings.TrimSpace(seat), s.now())
		s.persistJournal(ctx)
	}
	s.persistFleet(ctx)
	return nil
}

// ---- 日志 ----

// Journal 操作日志（最新在前）。读取不设门槛。
func (s *Service) Journal() []journal.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Entries()
}

// DeleteJournalEntry 人工删除单条日志，需确认。
func (s *Service) DeleteJournalEntry(ctx context.Context, sess auth.Session, entryID string, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirmed {
		return Rejectf("suppression non confirmée")
	}
	if err := s.journal.Delete(entryID); err != nil {
		return Rejectf("entrée de journal introuvable")
	}
	s.persistJournal(ctx)
	return nil
}

// ---- 补给 ----

func (s *Service) SupplyLocations() []supply.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.supply.Locations()
}

func (s *Service) SupplyTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.supply.Total()
}

// AddSupplyLocation 新增补给点。仅 SL。
func (s *Service) AddSupplyLocation(ctx context.Context, sess auth.Session, name string, amount int) (supply.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSupervisor(sess); err != nil {
		return supply.Location{}, err
	}
	loc, err := s.supply.Add(name, amount)
	if err != nil {
		return supply.Location{}, Rejectf("point de ravitaillement invalide: %v", err)
	}
	s.persist(ctx, store.KeySupply, s.supply.Locations())
	return loc, nil
}

// UpdateSupplyLocation 修改存量。仅 SL。
func (s *Service) UpdateSupplyLocation(ctx context.Context, sess auth.Session, id string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSupervisor(sess); err != nil {
		return err
	}
	if err := s.supply.Update(id, amount); err != nil {
		return Rejectf("mise à jour impossible: %v", err)
	}
	s.persist(ctx, store.KeySupply, s.supply.Locations())
	return nil
}

// RemoveSupplyLocation 删除补给点。仅 SL。
func (s *Service) RemoveSupplyLocation(ctx context.Context, sess auth.Session, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSupervisor(sess); err != nil {
		return err
	}
	if err := s.supply.Remove(id); err != nil {
		return Rejectf("point de ravitaillement introuvable")
	}
	s.persist(ctx, store.KeySupply, s.supply.Locations())
	return nil
}

// ---- 花名册 ----

func (s *Service) RosterMembers() []roster.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Members()
}

// AddPersonnel 登记后勤人员。仅 SL。grade 为空时从全团目录预填军衔。
func (s *Service) AddPersonnel(ctx context.Context, sess auth.Session, name, grade string) (roster.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSupervisor(sess); err != nil {
		return roster.Member{}, err
	}
	grade = strings.TrimSpace(grade)
	if grade == "" {
		grade = s.lookupGrade(ctx, name)
	}
	m, err := s.roster.Add(name, grade)
	if err != nil {
		return roster.Member{}, Rejectf("inscription impossible: %v", err)
	}

	s.persist(ctx, store.KeyRoster, s.roster.Members())
	s.syncSquad(ctx)
	return m, nil
}

// lookupGrade 从全团目录预填军衔；查不到给最低衔。
func (s *Service) lookupGrade(ctx context.Context, name string) string {
	if s.rosterDir != nil {
		if grade, ok, err := s.rosterDir.FindGradeByName(ctx, strings.TrimSpace(name)); err == nil && ok {
			return grade
		}
	}
	return "Recrue"
}

// RemovePersonnel 移除后勤人员。仅 SL。
func (s *Service) RemovePersonnel(ctx context.Context, sess auth.Session, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSupervisor(sess); err != nil {
		return err
	}
	if err := s.roster.Remove(memberID); err != nil {
		return Rejectf("membre introuvable")
	}

	s.persist(ctx, store.KeyRoster, s.roster.Members())
	s.syncSquad(ctx)
	return nil
}

// ---- 值班 ----

// Supervision 当前值班状态。
func (s *Service) Supervision() squad.Tenure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenure
}

// TakeSupervision 接管值班。officer 为空时取会话展示名。
// 开放一条归档条目，并同步分队目录。
func (s *Service) TakeSupervision(ctx context.Context, sess auth.Session, officer, grade string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	officer = strings.TrimSpace(officer)
	if officer == "" {
		officer = sess.Name
	}
	if strings.TrimSpace(grade) == "" {
		grade = s.lookupGrade(ctx, officer)
	}
	now := s.now()
	if err := s.tenure.Start(officer, grade, sess.UID, now); err != nil {
		return Rejectf("prise de service impossible: %v", err)
	}

	if s.archive != nil {
		if _, err := s.archive.AppendOpen(ctx, s.squadName, officer, now); err != nil && s.log != nil {
			s.log.Warnf("archive open: %v", err)
		}
	}
	s.journal.Append(journal.TypeInfo,
		"Prise de service: "+officer, grade, now)
	s.persist(ctx, store.KeyTenure, s.tenure)
	s.persistJournal(ctx)
	s.syncSquad(ctx)
	return nil
}

// EndSupervision 结束值班：仅 OwnerUID 本人；关闭最近的开放归档条目。
func (s *Service) EndSupervision(ctx context.Context, sess auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tenure.Active {
		return Rejectf("aucune prise de service en cours")
	}
	if !s.tenure.AuthorizedFor(sess.UID) {
		return Rejectf("seul %s peut terminer son service", s.tenure.Officer)
	}
	officer := s.tenure.Officer
	now := s.now()
	if err := s.tenure.End(now); err != nil {
		return Rejectf("fin de service impossible: %v", err)
	}

	if s.archive != nil {
		if err := s.archive.CloseLatestOpenFor(ctx, s.squadName, now); err != nil && s.log != nil {
			s.log.Warnf("archive close: %v", err)
		}
	}
	s.journal.Append(journal.TypeInfo,
		"Fin de service: "+officer, "", now)
	s.persist(ctx, store.KeyTenure, s.tenure)
	s.persistJournal(ctx)
	s.syncSquad(ctx)
	return nil
}

// ForceRecovery 强制接管值班归属：仅改写 OwnerUID，需确认。
// 刻意保留的人工覆盖通道，不做协商。
func (s *Service) ForceRecovery(ctx context.Context, sess auth.Session, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirmed {
		return Rejectf("reprise forcée non confirmée")
	}
	if err := s.tenure.ForceRecover(sess.UID); err != nil {
		return Rejectf("reprise forcée impossible: %v", err)
	}

	s.journal.Append(journal.TypeAlert,
		"Reprise forcée de la supervision",
		"Par "+sess.Name, s.now())
	s.persist(ctx, store.KeyTenure, s.tenure)
	s.persistJournal(ctx)
	return nil
}

// ResetSquadRegistry 恢复分队注册表默认值。仅 SL，需确认。
func (s *Service) ResetSquadRegistry(ctx context.Context, sess auth.Session, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSupervisor(sess); err != nil {
		return err
	}
	if !confirmed {
		return Rejectf("réinitialisation non confirmée")
	}
	if s.directory == nil {
		return nil
	}
	if err := s.directory.Reset(ctx); err != nil {
		return err
	}
	s.syncSquad(ctx)
	return nil
}

func cloneVehicle(v *fleet.Vehicle) fleet.Vehicle {
	out := *v
	out.SeatRoles = append([]string(nil), v.SeatRoles...)
	out.Crew = make(map[string]string, len(v.Crew))
	for k, val := range v.Crew {
		out.Crew[k] = val
	}
	return out
}
