package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Following handles GET /user/following/
// Usernames the caller follows, alphabetical for determinism.
func (s *Server) Following(c *fiber.Ctx) error {
	usernames, err := s.followRepo.FollowingUsernames(c.Context(), callerID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(usernames)
}

// Followers handles GET /user/followers/
func (s *Server) Followers(c *fiber.Ctx) error {
	usernames, err := s.followRepo.FollowerUsernames(c.Context(), callerID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(usernames)
}

// FollowUser handles POST /user/following/:username/
func (s *Server) FollowUser(c *fiber.Ctx) error {
	target, err := s.userRepo.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if target == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", c.Params("username")))
	}

	caller := callerID(c)
	if target.ID == caller {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot follow yourself"))
	}

	follow := &models.Follow{FollowerID: caller, FollowingID: target.ID}
	if err := s.followRepo.Create(c.Context(), follow); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Now following " + target.Username,
	})
}

// UnfollowUser handles DELETE /user/following/:username/
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	target, err := s.userRepo.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if target == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", c.Params("username")))
	}

	if err := s.followRepo.Delete(c.Context(), callerID(c), target.ID); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Unfollowed " + target.Username,
	})
}
