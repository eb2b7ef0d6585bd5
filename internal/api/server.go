// Package api 仪表盘 HTTP JSON API：把 depot 的命令方法暴露为扁平的命令端点。
package api

import (
	"encoding/json"
	"net/http"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/logger"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/common/server"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/depot"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/fleet"
)

type Handler struct {
	svc *depot.Service
	log logger.Logger
}

// NewHandler 组装路由。
func NewHandler(svc *depot.Service, log logger.Logger) http.Handler {
	h := &Handler{svc: svc, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.healthz)

	mux.HandleFunc("/api/catalog", h.catalog)
	mux.HandleFunc("/api/fleet", h.listFleet)
	mux.HandleFunc("/api/fleet/deploy", h.deploy)
	mux.HandleFunc("/api/fleet/mission/start", h.startMission)
	mux.HandleFunc("/api/fleet/mission/return", h.returnMission)
	mux.HandleFunc("/api/fleet/repair", h.repair)
	mux.HandleFunc("/api/fleet/garage", h.garageReturn)
	mux.HandleFunc("/api/fleet/destroy", h.destroy)
	mux.HandleFunc("/api/fleet/crew", h.assignSeat)

	mux.HandleFunc("/api/journal", h.listJournal)
	mux.HandleFunc("/api/journal/delete", h.deleteJournalEntry)

	mux.HandleFunc("/api/supply", h.listSupply)
	mux.HandleFunc("/api/supply/add", h.addSupply)
	mux.HandleFunc("/api/supply/update", h.updateSupply)
	mux.HandleFunc("/api/supply/remove", h.removeSupply)

	mux.HandleFunc("/api/roster", h.listRoster)
	mux.HandleFunc("/api/roster/add", h.addPersonnel)
	mux.HandleFunc("/api/roster/remove", h.removePersonnel)

	mux.HandleFunc("/api/supervision", h.supervision)
	mux.HandleFunc("/api/supervision/take", h.takeSupervision)
	mux.HandleFunc("/api/supervision/end", h.endSupervision)
	mux.HandleFunc("/api/supervision/recover", h.forceRecovery)
	mux.HandleFunc("/api/squads/reset", h.resetSquads)

	mux.HandleFunc("/api/chat", h.chat)
	mux.HandleFunc("/api/chat/clear", h.clearChat)

	return mux
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// vehicleView 在役载具 + 派生车长。
type vehicleView struct {
	fleet.Vehicle
	Commander string `json:"commander"`
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Catalog())
}

func (h *Handler) listFleet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	vehicles := h.svc.Vehicles()
	out := make([]vehicleView, 0, len(vehicles))
	for i := range vehicles {
		v := vehicles[i]
		out = append(out, vehicleView{Vehicle: v, Commander: fleet.Commander(&v)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles":  out,
		"destroyed": h.svc.DestroyedCount(),
	})
}

func (h *Handler) deploy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"template_id"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	v, err := h.svc.Deploy(r.Context(), server.SessionFromContext(r.Context()), req.TemplateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleView{Vehicle: v, Commander: fleet.Commander(&v)})
}

func (h *Handler) startMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID string `json:"vehicle_id"`
		Details   string `json:"details"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.StartMission(r.Context(), server.SessionFromContext(r.Context()), req.VehicleID, req.Details)
	writeResult(w, err)
}

func (h *Handler) returnMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID        string `json:"vehicle_id"`
		Report           string `json:"report"`
		Fuel             int    `json:"fuel"`
		Integrity        int    `json:"integrity"`
		NeedsMaintenance bool   `json:"needs_maintenance"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.ReturnMission(r.Context(), server.SessionFromContext(r.Context()),
		req.VehicleID, req.Report, req.Fuel, req.Integrity, req.NeedsMaintenance)
	writeResult(w, err)
}

func (h *Handler) repair(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID string `json:"vehicle_id"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.RepairAndResupply(r.Context(), server.SessionFromContext(r.Context()), req.VehicleID)
	writeResult(w, err)
}

func (h *Handler) garageReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID string `json:"vehicle_id"`
		Confirmed bool   `json:"confirmed"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.GarageReturn(r.Context(), server.SessionFromContext(r.Context()), req.VehicleID, req.Confirmed)
	writeResult(w, err)
}

func (h *Handler) destroy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID string `json:"vehicle_id"`
		Reporter  string `json:"reporter"`
		Reason    string `json:"reason"`
		Confirmed bool   `json:"confirmed"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.Destroy(r.Context(), server.SessionFromContext(r.Context()),
		req.VehicleID, req.Reporter, req.Reason, req.Confirmed)
	writeResult(w, err)
}

func (h *Handler) assignSeat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID string `json:"vehicle_id"`
		Seat      string `json:"seat"`
		Occupant  string `json:"occupant"` // 空串表示清空座位
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.AssignSeat(r.Context(), server.SessionFromContext(r.Context()),
		req.VehicleID, req.Seat, req.Occupant)
	writeResult(w, err)
}

func (h *Handler) listJournal(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Journal())
}

func (h *Handler) deleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntryID   string `json:"entry_id"`
		Confirmed bool   `json:"confirmed"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.DeleteJournalEntry(r.Context(), server.SessionFromContext(r.Context()), req.EntryID, req.Confirmed)
	writeResult(w, err)
}

func (h *Handler) listSupply(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locations": h.svc.SupplyLocations(),
		"total":     h.svc.SupplyTotal(),
	})
}

func (h *Handler) addSupply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Amount int    `json:"amount"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	loc, err := h.svc.AddSupplyLocation(r.Context(), server.SessionFromContext(r.Context()), req.Name, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (h *Handler) updateSupply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string `json:"id"`
		Amount int    `json:"amount"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.UpdateSupplyLocation(r.Context(), server.SessionFromContext(r.Context()), req.ID, req.Amount)
	writeResult(w, err)
}

func (h *Handler) removeSupply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.RemoveSupplyLocation(r.Context(), server.SessionFromContext(r.Context()), req.ID)
	writeResult(w, err)
}

func (h *Handler) listRoster(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.RosterMembers())
}

func (h *Handler) addPersonnel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Grade string `json:"grade"` // 可空：从全团目录预填
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	m, err := h.svc.AddPersonnel(r.Context(), server.SessionFromContext(r.Context()), req.Name, req.Grade)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) removePersonnel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.RemovePersonnel(r.Context(), server.SessionFromContext(r.Context()), req.ID)
	writeResult(w, err)
}

func (h *Handler) supervision(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Supervision())
}

func (h *Handler) takeSupervision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Officer string `json:"officer"`
		Grade   string `json:"grade"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.TakeSupervision(r.Context(), server.SessionFromContext(r.Context()), req.Officer, req.Grade)
	writeResult(w, err)
}

func (h *Handler) endSupervision(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	err := h.svc.EndSupervision(r.Context(), server.SessionFromContext(r.Context()))
	writeResult(w, err)
}

func (h *Handler) forceRecovery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirmed bool `json:"confirmed"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.ForceRecovery(r.Context(), server.SessionFromContext(r.Context()), req.Confirmed)
	writeResult(w, err)
}

func (h *Handler) resetSquads(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirmed bool `json:"confirmed"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.ResetSquadRegistry(r.Context(), server.SessionFromContext(r.Context()), req.Confirmed)
	writeResult(w, err)
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		messages, err := h.svc.ChatMessages(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messages)
	case http.MethodPost:
		var req struct {
			Text string `json:"text"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		msg, err := h.svc.AppendChat(r.Context(), server.SessionFromContext(r.Context()), req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msg)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) clearChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirmed bool `json:"confirmed"`
	}
	if !decodeCommand(w, r, &req) {
		return
	}
	err := h.svc.ClearChat(r.Context(), server.SessionFromContext(r.Context()), req.Confirmed)
	writeResult(w, err)
}

// ---- helpers ----

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// decodeCommand 命令端点统一：必须 POST + JSON body。
func decodeCommand(w http.ResponseWriter, r *http.Request, out any) bool {
	if !requireMethod(w, r, http.MethodPost) {
		return false
	}
	return decodeJSON(w, r, out)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return false
	}
	return true
}

func writeResult(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError 命令拒绝映射为 409（阻断式提示），其余按服务内部错误处理。
func writeError(w http.ResponseWriter, err error) {
	if depot.IsRejected(err) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
