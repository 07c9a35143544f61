package main

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/go-chi/chi/v5"
)

// handleSkin serves a player face image by username. Without a cached skin
// on disk the response is a fully transparent image of the same size, so
// the client can always draw a marker without special-casing.
func (s *Server) handleSkin(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if id == "" {
		return badRequestf("Missing skin id")
	}

	w.Header().Set("Content-Type", "image/png")
	if s.cfg.SkinsDir != "" {
		full := filepath.Join(s.cfg.SkinsDir, filepath.Base(id)+".png")
		if data, err := readFileIfRegular(full); err == nil {
			_, werr := w.Write(data)
			return werr
		}
	}
	_, werr := w.Write(blankSkin())
	return werr
}

// blankSkin is a transparent 24x24 PNG, encoded once.
var blankSkin = sync.OnceValue(func() []byte {
	var buf bytes.Buffer
	png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 24, 24)))
	return buf.Bytes()
})
