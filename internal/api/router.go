package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/caption-stream/backend/internal/api/handlers"
	"github.com/caption-stream/backend/internal/api/middleware"
	"github.com/caption-stream/backend/internal/auth"
	"github.com/caption-stream/backend/internal/config"
	"github.com/caption-stream/backend/internal/engine"
	"github.com/caption-stream/backend/internal/job"
	"github.com/caption-stream/backend/internal/transcript"
)

const maxJSONBody = 4 << 20 // transcripts with token times can run large

func NewRouter(
	cfg *config.Config,
	log zerolog.Logger,
	jwtService *auth.JWTService,
	adminPwdHash string,
	segmenter *transcript.Segmenter,
	engineService *engine.Service,
	jobQueue *job.Queue,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log.With().Str("component", "http").Logger()))
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))
	r.Use(middleware.MaxBodySize(maxJSONBody))

	// Handlers
	authHandler := handlers.NewAuthHandler(jwtService, cfg.AdminUsername, adminPwdHash)
	captionHandler := handlers.NewCaptionHandler(segmenter, log.With().Str("component", "captions").Logger())
	transcribeHandler := handlers.NewTranscribeHandler(jobQueue, engineService)
	jobHandler := handlers.NewJobHandler(jobQueue)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", handlers.Health)
		r.With(loginLimiter.Handler).Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Captions (synchronous segmentation/serialization)
			r.Post("/captions", captionHandler.Render)
			r.Post("/captions/segment", captionHandler.Segment)

			// Transcription (async, via recognition runtimes)
			r.Post("/transcribe", transcribeHandler.Transcribe)
			r.Get("/engines", transcribeHandler.ListEngines)

			// Jobs
			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Delete("/jobs/{id}", jobHandler.CancelJob)
			r.Post("/jobs/{id}/retry", jobHandler.RetryJob)
		})
	})

	return r
}
