// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// loginRequest carries the curator password.
type loginRequest struct {
	Password string `json:"password"`
}

// Login checks the password against the configured admin hash and creates
// a session. The error message is the same for a wrong password and an
// empty one.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := bcrypt.CompareHashAndPassword(a.adminHash, []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w); err != nil {
		slog.Error("session create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Logout destroys the session.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
