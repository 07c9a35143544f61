package main

import (
	"net/http"
	"os"
	"path/filepath"
)

// handleLogs serves the structured log file inline so a browser tab can be
// pointed at it during support sessions.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) error {
	if s.logFilePath == "" {
		return notFoundf("Not found: log file")
	}
	if info, err := os.Stat(s.logFilePath); err != nil || info.IsDir() {
		return notFoundf("Not found: %s", filepath.Base(s.logFilePath))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "inline")
	http.ServeFile(w, r, s.logFilePath)
	return nil
}
