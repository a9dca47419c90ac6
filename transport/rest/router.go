package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timed/internal/usecase"
)

type uSession interface {
	Snapshot() usecase.Snapshot
	Rules() []string

	PlaceMark(ctx context.Context, cell int) (usecase.Snapshot, error)
	ToggleAI(ctx context.Context) usecase.Snapshot
	SetDifficulty(ctx context.Context, difficulty entity.Difficulty) (usecase.Snapshot, error)
	ResetGame(ctx context.Context, clearScores bool) usecase.Snapshot
	RenamePlayer(ctx context.Context, side entity.Mark, name string) (usecase.Snapshot, error)
}

// NewRouter - wires the control surface. stream, when not nil, is mounted at /ws.
func NewRouter(logger *slog.Logger, session uSession, stream http.Handler) http.Handler {
	h := &handlers{
		logger:  logger.With("component", "rest"),
		session: session,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	r.Get("/ping", pingHandler)
	r.Get("/rules", h.rules)
	r.Get("/state", h.state)
	r.Post("/moves", h.placeMark)
	r.Route("/ai", func(r chi.Router) {
		r.Post("/toggle", h.toggleAI)
		r.Put("/difficulty", h.setDifficulty)
	})
	r.Post("/reset", h.reset)
	r.Put("/players/{side}", h.renamePlayer)

	if stream != nil {
		r.Handle("/ws", stream)
	}

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(started),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
