package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/prasetya/wiki-management/internal/auth"
	"github.com/prasetya/wiki-management/internal/content"
	"github.com/prasetya/wiki-management/internal/export"
	"github.com/prasetya/wiki-management/internal/permission"
	roledomain "github.com/prasetya/wiki-management/internal/role"
	"github.com/prasetya/wiki-management/internal/settings"
	"github.com/prasetya/wiki-management/internal/transport/middleware"
	"github.com/prasetya/wiki-management/internal/transport/swagger"
	"github.com/prasetya/wiki-management/internal/user"
)

type Handlers struct {
	Auth       *auth.Handler
	Content    *content.Handler
	Permission *permission.Handler
	Role       *roledomain.Handler
	Settings   *settings.Handler
	User       *user.Handler
	Export     *export.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)
				pr.Get("/me", h.Auth.Me)
			})
		})

		// Reads take the token when present but never require it: public
		// folders and pages are reachable anonymously.
		r.Group(func(or chi.Router) {
			or.Use(h.Auth.OptionalAuthMiddleware)

			or.Get("/pages", h.Content.ListPages)
			or.Get("/pages/{id}", h.Content.GetPage)
			or.Get("/folders", h.Content.ListFolders)
			or.Get("/folders/{id}", h.Content.GetFolder)
			or.Get("/search", h.Content.SearchPages)
			or.Get("/settings", h.Settings.ListSettings)
		})

		// Everything below requires authentication.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/pages", func(cr chi.Router) {
				cr.Post("/", h.Content.CreatePage)
				cr.Patch("/{id}", h.Content.UpdatePage)
				cr.Delete("/{id}", h.Content.DeletePage)
			})

			pr.Route("/folders", func(cr chi.Router) {
				cr.Post("/", h.Content.CreateFolder)
				cr.Patch("/{id}", h.Content.UpdateFolder)
				cr.Delete("/{id}", h.Content.DeleteFolder)
			})

			pr.Route("/permissions", func(gr chi.Router) {
				gr.Get("/{objectType}/{objectID}", h.Permission.ListObjectGrants)
				gr.Post("/", h.Permission.GrantAccess)
				gr.Delete("/{id}", h.Permission.RevokeAccess)
			})

			pr.Route("/roles", func(rr chi.Router) {
				rr.Get("/", h.Role.ListRoles)
				rr.Post("/", h.Role.CreateRole)
				rr.Patch("/{id}", h.Role.UpdateRole)
				rr.Delete("/{id}", h.Role.DeleteRole)
			})

			pr.Route("/users/{userID}/roles", func(ur chi.Router) {
				ur.Get("/", h.Role.GetUserRoles)
				ur.Put("/", h.Role.AssignUserRoles)
				ur.Delete("/{roleID}", h.Role.RemoveUserRole)
			})

			pr.Put("/settings/{key}", h.Settings.UpdateSetting)

			pr.Route("/admin", func(ar chi.Router) {
				ar.Group(func(sr chi.Router) {
					sr.Use(middleware.RequireAnyRole(permission.RoleSuperAdmin))
					sr.Get("/users", h.User.ListUsers)
					sr.Patch("/users/{id}", h.User.UpdateUser)
					sr.Get("/export", h.Export.ExportAll)
				})
			})
		})
	})
}
