package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"worldmap/server/logging"
)

// Handler builds the full route surface. Every endpoint shares the same
// header middleware and the same error wrapper, so no failure ever escapes
// the HTTP layer.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(defaultHeaders)

	r.Get("/status", s.wrap(s.handleStatus))
	r.Get("/data/{type}", s.wrap(s.handleData))
	r.Get("/properties", s.wrap(s.handlePropertiesGet))
	r.Post("/properties", s.wrap(s.handlePropertiesPost))
	r.Get("/tiles/tile.png", s.wrap(s.handleTile))
	r.Get("/action", s.wrap(s.handleAction))
	r.Get("/resources", s.wrap(s.handleResources))
	r.Get("/skin/{id}", s.wrap(s.handleSkin))
	r.Get("/logs", s.wrap(s.handleLogs))
	r.Get("/events", s.handleEvents)

	if s.cfg.ClientDir != "" {
		fs := http.FileServer(http.Dir(s.cfg.ClientDir))
		r.Handle("/*", fs)
	}

	return r
}

// defaultHeaders keeps remote viewers working from any origin and prevents
// the browser from caching snapshots it is supposed to poll.
func defaultHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

type routeFunc func(w http.ResponseWriter, r *http.Request) error

// wrap resolves every failure at the route boundary: httpError values keep
// their status, peer disconnects produce an empty benign response, panics
// and unknown errors become a 500 carrying the failure's message.
func (s *Server) wrap(fn routeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				msg := fmt.Sprint(rec)
				s.emit(logging.SeverityError, r.URL.Path, "panic in handler: %s", msg)
				http.Error(w, msg, http.StatusInternalServerError)
			}
		}()

		err := fn(w, r)
		if err == nil {
			return
		}

		if isPeerDisconnect(err) {
			s.emit(logging.SeverityInfo, r.URL.Path, "connection closed while writing response")
			return
		}

		var herr *httpError
		if errors.As(err, &herr) {
			severity := logging.SeverityWarn
			if herr.status >= http.StatusInternalServerError {
				severity = logging.SeverityError
			}
			s.emit(severity, r.URL.Path, "%s", herr.message)
			http.Error(w, herr.message, herr.status)
			return
		}

		s.emit(logging.SeverityError, r.URL.Path, "unhandled error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
