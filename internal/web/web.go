package web

import (
	"errors"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/goserg/darts/internal/config"
	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
	"github.com/goserg/darts/internal/service"
	"github.com/goserg/darts/internal/snapshot"
	"github.com/goserg/darts/internal/storage"
	"github.com/goserg/darts/internal/web/webpath"
)

type Server struct {
	gameService *service.GameService
	app         *fiber.App
	cfg         config.Server
	log         *logrus.Entry
}

func New(l *logrus.Logger, gs *service.GameService, cfg config.Server) *Server {
	server := Server{
		gameService: gs,
		cfg:         cfg,
		log:         l.WithField("from", "web"),
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          server.handleError,
		DisableStartupMessage: !cfg.Debug,
	})
	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.Api)
	})
	app.Get(webpath.Api, func(ctx *fiber.Ctx) error {
		return ctx.JSON(webpath.Path())
	})
	app.Get(webpath.ApiGames, server.handleListGames)
	app.Post(webpath.ApiGames, server.handleCreateGame)
	app.Delete(webpath.ApiGames, server.handleDeleteGames)
	app.Get(webpath.ApiGame, server.handleGetGame)
	app.Post(webpath.ApiGameStart, server.handleStart)
	app.Post(webpath.ApiGameDarts, server.handleAddDart)
	app.Delete(webpath.ApiGameDarts, server.handleRemoveLastDart)
	app.Post(webpath.ApiGameNext, server.handleNextPlayer)
	app.Post(webpath.ApiGameReset, server.handleReset)
	app.Get(webpath.ApiGameCheckout, server.handleCheckout)
	app.Get(webpath.ApiLeaderboard, server.handleLeaderboard)
	app.Get(webpath.ApiPlayerRating, server.handlePlayerRating)
	server.app = app
	return &server
}

func (s *Server) Serve() error {
	log := s.log.WithFields(map[string]interface{}{"addr": s.cfg.Addr(), "tls": s.cfg.TLS.Enabled()})
	log.Info("listening")
	if s.cfg.TLS.Enabled() {
		return s.app.ListenTLS(s.cfg.Addr(), s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
	}
	return s.app.Listen(s.cfg.Addr())
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	var corrupt *snapshot.CorruptSnapshotError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	// before the sentinels: a corrupt snapshot wraps the error that made it so
	case errors.As(err, &corrupt):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, service.ErrUnknownPlayer):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, scoring.ErrInvalidDart),
		errors.Is(err, domain.ErrUnknownVariant),
		errors.Is(err, domain.ErrUnknownFinishType),
		errors.Is(err, domain.ErrNotEnoughPlayers),
		errors.Is(err, ErrNoPlayers),
		errors.Is(err, ErrNoGames),
		errors.Is(err, ErrDartRequired):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrTooManyDarts),
		errors.Is(err, domain.ErrNoDart),
		errors.Is(err, domain.ErrNotStarted),
		errors.Is(err, domain.ErrGameFinished),
		errors.Is(err, domain.ErrSetup),
		errors.Is(err, domain.ErrNoPlayer),
		errors.Is(err, service.ErrNotCountdown):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		s.log.WithError(err).WithField("path", ctx.Path()).Error("request failed")
	}
	return ctx.Status(code).JSON(errorResponse{Error: err.Error()})
}
