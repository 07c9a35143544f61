package main

import (
	"net/http"
	"strconv"
)

func (s *Server) handlePropertiesGet(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, s.props.Document())
}

// handlePropertiesPost accepts form-encoded boolean toggles. Unknown keys
// are ignored rather than rejected so old and new clients can coexist, and
// the bag is persisted once after all toggles apply.
func (s *Server) handlePropertiesPost(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return badRequestf("malformed form body: %v", err)
	}

	changed := false
	for key, values := range r.Form {
		if len(values) == 0 {
			continue
		}
		value, err := strconv.ParseBool(values[0])
		if err != nil {
			return badRequestf("invalid boolean for '%s': %s", key, values[0])
		}
		if err := s.props.SetBool(key, value); err != nil {
			continue
		}
		changed = true
	}

	if changed {
		if err := s.props.Save(); err != nil {
			return internalf("failed to persist properties: %v", err)
		}
	}
	return writeJSON(w, s.props.Document())
}
