// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/service"
	"github.com/MKhiriev/mentor-hub/internal/utils"
)

// roleGate re-validates the caller against the live user record on every
// request. The role claim of the token is never trusted: a user blocked or
// demoted after the token was issued is refused on the next request.
//
// It must run after [Handler.auth]. On success the live user id and role
// are available through [utils.GetUserIDFromContext] and
// [utils.GetUserRoleFromContext].
func (h *Handler) roleGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		claims, ok := utils.GetClaimsFromContext(ctx)
		if !ok || claims == nil {
			writeError(w, r, ErrNoClaims, "role gate: no claims")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			writeError(w, r, service.ErrInvalidAccessToken, "role gate: bad subject")
			return
		}

		user, err := h.services.UserService.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				log.Warn().Int64("user_id", userID).Msg("token refers to a deleted account")
				writeEnvelope(w, r, http.StatusUnauthorized, "User not found", nil)
				return
			}
			writeError(w, r, err, "role gate: user lookup failed")
			return
		}

		if user.IsBlocked {
			writeError(w, r, service.ErrUserBlocked, "role gate: user is blocked")
			return
		}

		if !h.services.AccessPolicy.Allowed(r.Method, r.URL.Path, user.Role) {
			log.Warn().
				Int64("user_id", userID).
				Str("role", string(user.Role)).
				Str("path", r.URL.Path).
				Msg("access denied by policy")
			writeEnvelope(w, r, http.StatusForbidden, "You are not allowed to access this resource", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserIdentity(ctx, user.UserID, user.Role)))
	})
}
