package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RealIP,
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		h.withMetrics,
		middleware.Compress(compressionLevel, "application/json"),
	)

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/health", h.health)
		if h.metrics != nil {
			r.Method("GET", "/metrics", h.metrics.Handler())
		}

		r.Route("/api/auth", func(r chi.Router) {
			r.Use(h.rateLimit)

			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/google-login", h.googleLogin)
			r.Post("/refresh", h.refresh)
			r.Post("/revoke", h.revoke)
		})
	})

	// routes behind the access token and the live role check
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.roleGate)

		r.Route("/api/admin", func(r chi.Router) {
			r.Route("/users", func(r chi.Router) {
				r.Post("/", h.addUser)
				r.Get("/", h.listUsers)
				r.Get("/{id}", h.getUser)
				r.Delete("/{id}", h.removeUser)
				r.Patch("/{id}/block", h.blockUser)
				r.Patch("/{id}/unblock", h.unblockUser)
				r.Patch("/{id}/role", h.updateUserRole)
			})

			r.Get("/mentors", h.listMentors)
			r.Post("/mentors/assign", h.assignMentees)
			r.Post("/mentors/unassign", h.unassignMentees)
			r.Get("/students", h.listStudents)
			r.Post("/notifications", h.createNotification)
		})

		r.Post("/api/roles/change", h.changeRole)

		r.Get("/api/mentor/mentees", h.listMyMentees)
		r.Get("/api/user/mentor", h.getMyMentor)

		r.Route("/api/profile", func(r chi.Router) {
			r.Get("/me", h.getProfile)
			r.Put("/me", h.updateProfile)
			r.Post("/change-password", h.changePassword)
		})

		r.Route("/api/profiles", func(r chi.Router) {
			r.Get("/my-profile", h.getMyStudentProfile)
			r.Get("/user/{id}", h.getStudentProfile)
			r.Post("/", h.createStudentProfile)
			r.Put("/{id}", h.updateStudentProfile)
			r.Delete("/{id}", h.deleteStudentProfile)
		})

		r.Route("/api/notifications", func(r chi.Router) {
			r.Get("/", h.listNotifications)
			r.Get("/unread-count", h.unreadCount)
			r.Put("/read-all", h.markAllNotificationsRead)
			r.Put("/{id}/read", h.markNotificationRead)
			r.Delete("/{id}", h.deleteNotification)
		})
	})

	return router
}
