package api

import (
	"net/http"
	"time"

	"codearena/internal/api/handler"
	"codearena/internal/app/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	contestService *service.ContestService,
	submissionService *service.SubmissionService,
	leaderboardService *service.LeaderboardService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		contestHandler := handler.NewContestHandler(contestService, submissionService, leaderboardService)
		api.Route("/contests", contestHandler.RegisterRoutes)

		submissionHandler := handler.NewSubmissionHandler(submissionService)
		api.Route("/submissions", submissionHandler.RegisterRoutes)
	})

	return r
}
