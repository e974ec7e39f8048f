package server

import (
	"strconv"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// callerID returns the authenticated user's ID set by AuthRequired.
func callerID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// parseTweetID parses the :tweetId path parameter.
func parseTweetID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("tweetId"), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid tweet ID")
	}
	return uint(id), nil
}

// loadVisibleTweet resolves a tweet and enforces the visibility contract:
// a tweet may be read only by callers that follow its owner. It writes the
// error response itself and returns nil when the request must not proceed.
func (s *Server) loadVisibleTweet(c *fiber.Ctx) (*models.Tweet, error) {
	tweetID, err := parseTweetID(c)
	if err != nil {
		return nil, models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	tweet, err := s.tweetRepo.GetByID(c.Context(), tweetID)
	if err != nil {
		return nil, models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if tweet == nil {
		return nil, models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Tweet", tweetID))
	}

	following, err := s.followRepo.IsFollowing(c.Context(), callerID(c), tweet.UserID)
	if err != nil {
		return nil, models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !following {
		return nil, models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You do not follow this tweet's author"))
	}

	return tweet, nil
}
