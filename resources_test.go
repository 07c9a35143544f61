package main

import (
	"bytes"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestResourcesServesExistingFile(t *testing.T) {
	ts := newTestServer(t)
	assets := t.TempDir()
	ts.srv.cfg.AssetsDir = assets
	if err := os.WriteFile(filepath.Join(assets, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	rec := ts.get(t, "/resources?resource=style.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/css" {
		t.Fatalf("content type = %s", ct)
	}
	if rec.Body.String() != "body{}" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestResourcesMissingImageServesPlaceholder(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.get(t, "/resources?resource=icons/ghost.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("missing image must still answer 200, got %d", rec.Code)
	}
	if _, err := png.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Fatalf("placeholder is not a valid PNG: %v", err)
	}
}

func TestResourcesMissingNonImageIs404(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.get(t, "/resources?resource=readme.txt")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestResourcesRequiresParameter(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.get(t, "/resources")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSkinFallsBackToTransparentPNG(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.get(t, "/skin/unknownplayer")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("fallback skin is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 24 {
		t.Fatalf("fallback skin is %dx%d, want 24x24", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestSkinServesCachedFile(t *testing.T) {
	ts := newTestServer(t)
	skins := t.TempDir()
	ts.srv.cfg.SkinsDir = skins
	seed := []byte{0x89, 0x50, 0x4e, 0x47}
	if err := os.WriteFile(filepath.Join(skins, "explorer.png"), seed, 0o644); err != nil {
		t.Fatalf("seed skin: %v", err)
	}

	rec := ts.get(t, "/skin/explorer")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), seed) {
		t.Fatalf("cached skin bytes not served verbatim")
	}
}

func TestLogsMissingFileIs404(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.get(t, "/logs")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestLogsServesBackingFile(t *testing.T) {
	ts := newTestServer(t)
	logPath := filepath.Join(t.TempDir(), "worldmap.ndjson")
	if err := os.WriteFile(logPath, []byte(`{"type":"http"}`+"\n"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	ts.srv.logFilePath = logPath

	rec := ts.get(t, "/logs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "inline" {
		t.Fatalf("disposition = %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("log body empty")
	}
}
