package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
)

// ServerSession is the one listener the process owns. Start and Stop are
// guarded by the running flag; they are not expected to race each other.
type ServerSession struct {
	mu      sync.Mutex
	port    int
	running bool
	srv     *http.Server
	warnf   func(format string, args ...any)
}

func NewServerSession(warnf func(format string, args ...any)) *ServerSession {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	return &ServerSession{warnf: warnf}
}

// resolvePort probes the preferred port and releases the test bind. When
// the preferred port is taken it falls back once to an OS-assigned
// ephemeral port. Only a refusal to bind anything is fatal.
func resolvePort(preferred int, warnf func(format string, args ...any)) (int, error) {
	if preferred != 0 {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", preferred))
		if err == nil {
			port := ln.Addr().(*net.TCPAddr).Port
			ln.Close()
			return port, nil
		}
		warnf("configured port %d could not be bound: %v", preferred, err)
	}
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("no port available: %w", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port, nil
}

// Start resolves the port and binds the real listener. Calling Start on a
// running session is a no-op: the port stays unchanged and nothing rebinds.
func (s *ServerSession) Start(preferred int, handler http.Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	port, err := resolvePort(preferred, s.warnf)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("bind resolved port %d: %w", port, err)
	}

	s.srv = &http.Server{Handler: handler}
	go func(srv *http.Server, ln net.Listener) {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.warnf("listener stopped: %v", err)
		}
	}(s.srv, ln)

	s.port = port
	s.running = true
	return nil
}

// Stop shuts the listener down. Stopping a stopped session is a no-op.
func (s *ServerSession) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	s.running = false
	return err
}

func (s *ServerSession) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

func (s *ServerSession) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
