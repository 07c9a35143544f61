package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postForm(t *testing.T, ts *testServer, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestPropertiesGetReturnsOrderedBag(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.get(t, "/properties")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"showGrid":true`) {
		t.Fatalf("defaults missing: %s", body)
	}
	if strings.Index(body, `"showGrid"`) > strings.Index(body, `"showPlayers"`) {
		t.Fatalf("key order not preserved: %s", body)
	}
}

func TestPropertiesPostTogglesAndPersists(t *testing.T) {
	ts := newTestServer(t)
	rec := postForm(t, ts, "/properties", url.Values{"showMobs": {"false"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ts.props.GetBool("showMobs") {
		t.Fatalf("toggle not applied")
	}

	var payload map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["showMobs"] {
		t.Fatalf("response must reflect the new value")
	}
}

func TestPropertiesPostRejectsNonBoolean(t *testing.T) {
	ts := newTestServer(t)
	rec := postForm(t, ts, "/properties", url.Values{"showMobs": {"sometimes"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPropertiesPostIgnoresUnknownKeys(t *testing.T) {
	ts := newTestServer(t)
	rec := postForm(t, ts, "/properties", url.Values{"showDragons": {"true"}, "showPets": {"false"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ts.props.GetBool("showPets") {
		t.Fatalf("known key alongside unknown key not applied")
	}
}
