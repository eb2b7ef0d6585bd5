package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/icemanjeux64/FOFterminal-sub000/internal/depot"
	"github.com/icemanjeux64/FOFterminal-sub000/internal/store"
)

func newTestHandler() http.Handler {
	svc := depot.NewService(depot.Options{
		Store: store.NewMemoryStore(),
		Now:   func() time.Time { return time.Date(2024, 5, 17, 21, 30, 0, 0, time.Local) },
	})
	return NewHandler(svc, nil)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDeployEndpoint(t *testing.T) {
	h := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/api/fleet/deploy", `{"template_id":"camion"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var v struct {
		Callsign  string `json:"callsign"`
		Status    string `json:"status"`
		Commander string `json:"commander"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Callsign != "CAMI-001" || v.Status != "operational" || v.Commander != "N/A" {
		t.Fatalf("unexpected vehicle: %+v", v)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/fleet", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var list struct {
		Vehicles  []json.RawMessage `json:"vehicles"`
		Destroyed int               `json:"destroyed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Vehicles) != 1 || list.Destroyed != 0 {
		t.Fatalf("unexpected fleet: %+v", list)
	}
}

func TestRejectionMapsToConflict(t *testing.T) {
	h := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/api/fleet/deploy", `{"template_id":"charrette"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
		t.Fatalf("expected error payload, got %s (%v)", rec.Body, err)
	}
}

func TestCommandEndpointsRequirePost(t *testing.T) {
	h := newTestHandler()

	rec := doJSON(t, h, http.MethodGet, "/api/fleet/deploy", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/fleet/deploy", "{bad json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSupervisionEndpoints(t *testing.T) {
	h := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/api/supervision/take", `{"officer":"Alice","grade":"Sergent"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("take: %d %s", rec.Code, rec.Body)
	}

	// 同一会话（本地回退身份）可以结束服务
	rec = doJSON(t, h, http.MethodPost, "/api/supervision/end", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("end: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/supervision", "")
	var ten struct {
		Active bool `json:"active"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ten); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ten.Active {
		t.Fatalf("expected tenure ended")
	}
}

func TestChatEndpoint(t *testing.T) {
	h := newTestHandler()

	rec := doJSON(t, h, http.MethodPost, "/api/chat", `{"text":"RAS au dépôt"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("post chat: %d %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/chat", "")
	var msgs []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "RAS au dépôt" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/chat/clear", `{"confirmed":false}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected unconfirmed clear rejected, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/chat/clear", `{"confirmed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear chat: %d %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/chat", "")
	msgs = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty transcript, got %+v", msgs)
	}
}
