package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"worldmap/server/logging"
)

var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".ico":  "image/x-icon",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
}

// handleResources serves icon and asset files by relative path. A missing
// image falls back to a generated marker dot so the map never renders a
// broken-image glyph.
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) error {
	resource := r.URL.Query().Get("resource")
	if resource == "" {
		return badRequestf("Missing 'resource' parameter")
	}

	clean := path.Clean("/" + resource)
	if strings.Contains(clean, "..") {
		return badRequestf("Invalid resource path: %s", resource)
	}
	ext := strings.ToLower(path.Ext(clean))

	if s.cfg.AssetsDir != "" {
		full := filepath.Join(s.cfg.AssetsDir, filepath.FromSlash(clean))
		if data, err := readFileIfRegular(full); err == nil {
			if ct, ok := contentTypes[ext]; ok {
				w.Header().Set("Content-Type", ct)
			}
			_, werr := w.Write(data)
			return werr
		}
	}

	if ext == ".png" {
		s.emit(logging.SeverityWarn, r.URL.Path, "resource '%s' not found, serving placeholder", resource)
		w.Header().Set("Content-Type", "image/png")
		_, werr := w.Write(placeholderDot())
		return werr
	}
	return notFoundf("Not found: %s", resource)
}

// readFileIfRegular loads a file, treating directories as missing.
func readFileIfRegular(full string) ([]byte, error) {
	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(full)
}

// placeholderDot is a 16x16 filled circle, encoded once.
var placeholderDot = sync.OnceValue(func() []byte {
	const size = 16
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	radius := center - 1
	fill := color.RGBA{R: 0x20, G: 0x80, B: 0xff, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
})
