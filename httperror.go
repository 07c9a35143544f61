package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"syscall"
)

// httpError carries the status a route handler wants on the wire. The route
// wrapper resolves everything else to a 500.
type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return e.message
}

func badRequestf(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &httpError{status: http.StatusNotFound, message: fmt.Sprintf(format, args...)}
}

func internalf(format string, args ...any) error {
	return &httpError{status: http.StatusInternalServerError, message: fmt.Sprintf(format, args...)}
}

// isPeerDisconnect identifies the remote closing mid-write. Expected while
// streaming tiles to a reloading browser; never a server fault.
func isPeerDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
