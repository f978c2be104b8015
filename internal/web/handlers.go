package web

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleListGames(ctx *fiber.Ctx) error {
	list, err := s.gameService.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(newSummaryViews(list))
}

func (s *Server) handleCreateGame(ctx *fiber.Ctx) error {
	var req createGame
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return err
	}
	g, err := s.gameService.Create(ctx.UserContext(), req.params())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(newGameView(g))
}

func (s *Server) handleDeleteGames(ctx *fiber.Ctx) error {
	var req deleteGames
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.gameService.Delete(ctx.UserContext(), req.IDs); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleGetGame(ctx *fiber.Ctx) error {
	g, err := s.gameService.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(newGameView(g))
}

func (s *Server) handleStart(ctx *fiber.Ctx) error {
	g, err := s.gameService.Start(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(newGameView(g))
}

func (s *Server) handleAddDart(ctx *fiber.Ctx) error {
	var req addDart
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	d, err := req.Dart()
	if err != nil {
		return err
	}
	g, out, err := s.gameService.AddDart(ctx.UserContext(), ctx.Params("id"), d.Base, d.Multiplier)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"outcome": newOutcomeView(out),
		"game":    newGameView(g),
	})
}

func (s *Server) handleRemoveLastDart(ctx *fiber.Ctx) error {
	g, _, err := s.gameService.RemoveLastDart(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(newGameView(g))
}

func (s *Server) handleNextPlayer(ctx *fiber.Ctx) error {
	g, adv, err := s.gameService.NextPlayer(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"advance": newAdvanceView(adv),
		"game":    newGameView(g),
	})
}

func (s *Server) handleReset(ctx *fiber.Ctx) error {
	g, err := s.gameService.Reset(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(newGameView(g))
}

func (s *Server) handleCheckout(ctx *fiber.Ctx) error {
	p, routes, err := s.gameService.Checkout(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"player":    newPlayerView(p),
		"remaining": p.Score,
		"routes":    routes,
	})
}

func (s *Server) handleLeaderboard(ctx *fiber.Ctx) error {
	ratings, err := s.gameService.Leaderboard(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(newRatingViews(ratings))
}

func (s *Server) handlePlayerRating(ctx *fiber.Ctx) error {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	r, err := s.gameService.PlayerRating(ctx.UserContext(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(newRatingView(r))
}
