package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(api chi.Router) {
		// routes without authorization
		api.Post("/register", h.register)
		api.Post("/login", h.login)

		// routes where authorization is optional: the access policy
		// decides what anonymous callers may see
		api.Group(func(r chi.Router) {
			r.Use(h.authOptional)
			r.Get("/files/{fileID}", h.downloadFile)
			r.Get("/files/{fileID}/info", h.fileInfo)
			r.Get("/files/{fileID}/preview", h.previewFile)
		})

		// routes requiring a valid bearer token
		api.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout", h.logout)
			r.Post("/files/upload", h.uploadFile)
			r.Get("/files", h.listFiles)
			r.Delete("/files/{fileID}", h.deleteFile)
			r.Get("/user/me", h.userInfo)
			r.Put("/user/me", h.changePassword)
		})
	})

	return router
}
