package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/seoyeon-oh/maum-diary/backend/internal/handler/auth"
	diaryHandler "github.com/seoyeon-oh/maum-diary/backend/internal/handler/diary"
	pagesHandler "github.com/seoyeon-oh/maum-diary/backend/internal/handler/pages"
	"github.com/seoyeon-oh/maum-diary/backend/internal/model/account"
	diarymodel "github.com/seoyeon-oh/maum-diary/backend/internal/model/diary"
	"github.com/seoyeon-oh/maum-diary/backend/internal/service/feed"
)

// NewRouter wires HTTP routes to core services. analyzer is nil when the
// model handle failed to initialize; the analyze endpoint then reports the
// degraded state per request.
func NewRouter(accounts account.Store, records diarymodel.RecordStore, analyzer diaryHandler.Analyzer, hub *feed.Hub, pages *pagesHandler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	pages.RegisterRoutes(r)
	authHandler.New(accounts).RegisterRoutes(r)
	diaryHandler.New(accounts, records, analyzer, hub).RegisterRoutes(r)

	return r
}
