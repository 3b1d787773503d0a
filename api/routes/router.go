package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ideabank/ideabank-backend/api/controllers"
	"github.com/ideabank/ideabank-backend/api/middleware"
	"github.com/ideabank/ideabank-backend/internal/accounts"
	"github.com/ideabank/ideabank-backend/internal/auth"
	"github.com/ideabank/ideabank-backend/internal/categories"
	"github.com/ideabank/ideabank-backend/internal/ideas"
	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/auth/session"
	"github.com/ideabank/ideabank-backend/pkg/config"
	"github.com/ideabank/ideabank-backend/pkg/logger"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config     *config.Config
	Logger     *logger.Logger
	Records    *records.Records
	Sessions   session.AccessSessionChecker
	Auth       auth.Service
	Ideas      ideas.Service
	Categories categories.Service
	Accounts   accounts.Service
}

// NewRouter assembles the public and administrative routes.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
	)

	authed := middleware.Auth(p.Config.JWT, p.Sessions, p.Logger)
	adminOnly := middleware.RequireAdmin(p.Logger)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Records, p.Logger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AuthLogin(p.Auth, p.Logger))

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/auth/logout", controllers.AuthLogout(p.Auth, p.Logger))
			r.Post("/auth/introduction", controllers.AuthIntroduction(p.Auth, p.Logger))
			r.Post("/auth/change-password", controllers.AuthChangePassword(p.Auth, p.Logger))

			r.Get("/ideas", controllers.IdeasList(p.Ideas, p.Logger))
			r.Post("/ideas", controllers.IdeaCreate(p.Ideas, p.Logger))
			r.Get("/ideas/{ideaID}", controllers.IdeaGet(p.Ideas, p.Logger))
			r.Post("/ideas/{ideaID}/vote", controllers.IdeaVote(p.Ideas, p.Logger))
			r.Post("/ideas/{ideaID}/comments", controllers.IdeaComment(p.Ideas, p.Logger))

			r.Get("/categories", controllers.CategoriesList(p.Categories, p.Logger))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(authed, adminOnly)

		r.Get("/ideas", controllers.AdminIdeasList(p.Ideas, p.Logger))
		r.Get("/ideas/search", controllers.AdminIdeasSearch(p.Ideas, p.Logger))
		r.Post("/ideas/{ideaID}/approve", controllers.AdminIdeaApprove(p.Ideas, p.Logger))
		r.Post("/ideas/{ideaID}/hide", controllers.AdminIdeaHide(p.Ideas, p.Logger))
		r.Post("/ideas/{ideaID}/unhide", controllers.AdminIdeaUnhide(p.Ideas, p.Logger))
		r.Delete("/ideas/{ideaID}/comments/{commentID}", controllers.AdminDeleteComment(p.Ideas, p.Logger))

		r.Get("/users", controllers.AdminUsersList(p.Accounts, p.Logger))
		r.Post("/users", controllers.AdminUserRegister(p.Accounts, p.Logger))
		r.Post("/users/generate", controllers.AdminUsersGenerate(p.Accounts, p.Logger))
		r.Get("/users/temp-passwords", controllers.AdminTempPasswordUsers(p.Accounts, p.Logger))
		r.Post("/users/hash-temp-passwords", controllers.AdminHashTempPasswords(p.Accounts, p.Logger))
		r.Post("/users/{userID}/block", controllers.AdminUserBlock(p.Accounts, p.Logger))
		r.Post("/users/{userID}/unblock", controllers.AdminUserUnblock(p.Accounts, p.Logger))
		r.Delete("/users/{userID}", controllers.AdminUserDelete(p.Accounts, p.Logger))

		r.Get("/categories", controllers.CategoriesList(p.Categories, p.Logger))
		r.Post("/categories", controllers.AdminCategoryAdd(p.Categories, p.Logger))
		r.Put("/categories", controllers.AdminCategoryRename(p.Categories, p.Logger))
		r.Delete("/categories", controllers.AdminCategoryDelete(p.Categories, p.Logger))
	})

	return r
}
