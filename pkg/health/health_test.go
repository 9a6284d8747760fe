package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheck(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	h := &Handler{now: func() time.Time { return fixed }}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	h.Check(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "OK" {
		t.Errorf("status = %q, want OK", body.Status)
	}
	if body.Timestamp != "2026-03-14T09:26:53Z" {
		t.Errorf("timestamp = %q", body.Timestamp)
	}
}

func TestCheck_Idempotent(t *testing.T) {
	h := NewHandler()

	var first, second StatusResponse
	for i, out := range []*StatusResponse{&first, &second} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		h.Check(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: status = %d, want 200", i+1, rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("call %d: decode response: %v", i+1, err)
		}
	}
	if first.Status != second.Status {
		t.Errorf("status changed between calls: %q vs %q", first.Status, second.Status)
	}
}
