// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// notFound replaces chi's plain-text 404 with the JSON envelope.
func notFound(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, r, http.StatusNotFound, "Resource not found", nil)
}

// methodNotAllowed replaces chi's plain-text 405 with the JSON envelope.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, r, http.StatusMethodNotAllowed, "Method "+r.Method+" is not allowed", nil)
}
