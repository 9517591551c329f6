package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/config"
	"github.com/oseayemenre/upepo/internal/logger"
	"github.com/oseayemenre/upepo/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

type Api struct {
	router      *chi.Mux
	logger      logger.Logger
	objectStore store.ObjectStore
	store       store.Store
	sessions    *auth.Sessions
	config      *config.Config
	metrics     *metrics
	now         func() time.Time
}

func New(
	router *chi.Mux,
	logger logger.Logger,
	objectStore store.ObjectStore,
	store store.Store,
	sessions *auth.Sessions,
	config *config.Config,
	reg prometheus.Registerer,
) *Api {
	return &Api{
		router:      router,
		logger:      logger,
		objectStore: objectStore,
		store:       store,
		sessions:    sessions,
		config:      config,
		metrics:     newMetrics(reg),
		now:         time.Now,
	}
}

func (a *Api) clock() time.Time {
	if a.now == nil {
		return time.Now()
	}
	return a.now()
}

func (a *Api) RegisterRoutes() {
	a.router.Route("/api/v1", func(r chi.Router) {
		r.Use(a.LoggingMiddleware)
		r.Use(auth.LoadSessionUser(a.sessions, a.store, a.logger))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", a.HandleRegister)
			r.Post("/login", a.HandleLogin)
			r.Post("/logout", a.HandleLogout)
			r.With(a.RequireSession).Get("/me", a.HandleMe)

			if a.config != nil && a.config.GoogleEnabled() {
				r.Route("/google", func(r chi.Router) {
					r.Get("/", a.HandleGoogleSignIn)
					r.Get("/callback", a.HandleGoogleSignInCallback)
				})
			}
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", a.HandleGetBooks)
			r.With(a.RequireAdmin).Post("/", a.HandleCreateBook)
			r.Get("/current", a.HandleGetCurrentBook)

			r.Route("/{bookId}", func(r chi.Router) {
				r.Get("/", a.HandleGetBook)
				r.With(a.RequireAdmin).Put("/", a.HandleUpdateBook)
				r.With(a.RequireAdmin).Delete("/", a.HandleDeleteBook)
				r.With(a.RequireAdmin).Post("/cover", a.HandleUploadBookCover)
				r.Get("/current-week", a.HandleGetCurrentWeek)

				r.Get("/weeks", a.HandleGetWeeklyPlans)
				r.With(a.RequireAdmin).Post("/weeks", a.HandleCreateWeeklyPlan)

				r.Get("/summary", a.HandleGetSummary)
				r.With(a.RequireAdmin).Put("/summary", a.HandleUpsertSummary)
				r.With(a.RequireSession).Post("/reflections", a.HandleCreateReflection)
			})
		})

		r.Route("/weeks/{weekId}", func(r chi.Router) {
			r.Use(a.RequireAdmin)
			r.Put("/", a.HandleUpdateWeeklyPlan)
			r.Delete("/", a.HandleDeleteWeeklyPlan)
			r.Post("/prompts", a.HandleCreatePrompt)
		})

		r.With(a.RequireAdmin).Delete("/prompts/{promptId}", a.HandleDeletePrompt)

		r.Route("/discussions", func(r chi.Router) {
			r.Get("/", a.HandleGetDiscussions)
			r.With(a.RequireAdmin).Post("/", a.HandleCreateDiscussion)
			r.Get("/{discussionId}", a.HandleGetDiscussion)
			r.With(a.RequireAdmin).Put("/{discussionId}", a.HandleUpdateDiscussion)
			r.With(a.RequireAdmin).Delete("/{discussionId}", a.HandleDeleteDiscussion)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(a.RequireSession)
			r.Post("/", a.HandleCreateComment)
			r.Patch("/{commentId}", a.HandleUpdateComment)
			r.Delete("/{commentId}", a.HandleDeleteComment)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", a.HandleGetLiveSessions)
			r.With(a.RequireAdmin).Post("/", a.HandleCreateLiveSession)
			r.Get("/{sessionId}", a.HandleGetLiveSession)
			r.With(a.RequireAdmin).Put("/{sessionId}", a.HandleUpdateLiveSession)
			r.With(a.RequireAdmin).Delete("/{sessionId}", a.HandleDeleteLiveSession)
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", a.HandleGetQuotes)
			r.With(a.RequireSession).Post("/", a.HandleCreateQuote)
			r.Post("/{quoteId}/like", a.HandleLikeQuote)
			r.With(a.RequireSession).Delete("/{quoteId}", a.HandleDeleteQuote)
		})

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", a.HandleGetGalleryPosts)
			r.With(a.RequireSession).Post("/", a.HandleCreateGalleryPost)
			r.Post("/{postId}/like", a.HandleLikeGalleryPost)
			r.With(a.RequireSession).Delete("/{postId}", a.HandleDeleteGalleryPost)
		})

		r.Route("/newsletters", func(r chi.Router) {
			r.Get("/", a.HandleGetNewsletters)
			r.With(a.RequireAdmin).Post("/", a.HandleCreateNewsletter)
			r.Get("/{newsletterId}", a.HandleGetNewsletter)
			r.With(a.RequireAdmin).Put("/{newsletterId}", a.HandleUpdateNewsletter)
			r.With(a.RequireAdmin).Post("/{newsletterId}/publish", a.HandlePublishNewsletter)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(a.RequireAdmin)
			r.Get("/stats", a.HandleGetAdminStats)
			r.Get("/members", a.HandleGetMembers)
			r.Patch("/members/{userId}/role", a.HandleUpdateMemberRole)
		})
	})
}
