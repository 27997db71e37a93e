package http

import (
	"log/slog"
	"net/http"

	"github.com/codeclash/backend/auth"
	"github.com/codeclash/backend/logger"
	"github.com/codeclash/backend/scoring"
	"github.com/codeclash/backend/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
)

type HttpServer struct {
	engine *scoring.Engine
	router *chi.Mux
	stats  *statsLogger
}

func NewHttpServer(engine *scoring.Engine, jwtKey []byte) *HttpServer {
	router := chi.NewRouter()

	requestLogger := httplog.NewLogger("codeclash", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(requestLogger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(tracing.NewMiddleware("codeclash-backend").Handler)
	router.Use(traceLogger)
	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		engine: engine,
		router: router,
		stats:  newStatsLogger(),
	}
	router.Use(server.stats.middleware)

	server.routes()

	return server
}

// traceLogger enriches the context logger with the active trace id so
// handler logs can be correlated with the span.
func traceLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if traceID := tracing.TraceID(ctx); traceID != "" {
			ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("trace_id", traceID))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, s.router)
}

func (s *HttpServer) Router() *chi.Mux {
	return s.router
}

func (s *HttpServer) routes() {
	r := s.router
	r.Post("/submission", s.postSubmission)
	r.Get("/competitions/{competitionId}/ranking", s.getRanking)
}
