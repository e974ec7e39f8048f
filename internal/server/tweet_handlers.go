package server

import (
	"chirp/internal/models"
	"chirp/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// feedLimit is the fixed page size of the home feed.
const feedLimit = 4

// Feed handles GET /user/tweets/feed/
// Returns the most recent tweets from followed users, newest first, with
// like and reply counts.
func (s *Server) Feed(c *fiber.Ctx) error {
	tweets, err := s.tweetRepo.Feed(c.Context(), callerID(c), feedLimit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	response := make([]models.TweetResponse, 0, len(tweets))
	for i := range tweets {
		response = append(response, tweets[i].ToResponse())
	}
	return c.JSON(response)
}

// TweetDetail handles GET /tweets/:tweetId/
// The tweet is returned only when the caller follows its owner.
func (s *Server) TweetDetail(c *fiber.Ctx) error {
	tweet, err := s.loadVisibleTweet(c)
	if tweet == nil {
		return err
	}

	detail, err := s.tweetRepo.GetDetail(c.Context(), tweet.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if detail == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Tweet", tweet.ID))
	}

	return c.JSON(detail.ToResponse())
}

// TweetLikers handles GET /tweets/:tweetId/likes/
// Likers are listed whenever the tweet itself is visible to the caller;
// a tweet without likes yields an empty list, not an error.
func (s *Server) TweetLikers(c *fiber.Ctx) error {
	tweet, err := s.loadVisibleTweet(c)
	if tweet == nil {
		return err
	}

	likers, err := s.tweetRepo.Likers(c.Context(), tweet.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"likes": likers,
	})
}

// TweetRepliers handles GET /tweets/:tweetId/replies/
func (s *Server) TweetRepliers(c *fiber.Ctx) error {
	tweet, err := s.loadVisibleTweet(c)
	if tweet == nil {
		return err
	}

	replies, err := s.tweetRepo.ListReplies(c.Context(), tweet.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	response := make([]models.ReplyResponse, 0, len(replies))
	for i := range replies {
		response = append(response, models.ReplyResponse{
			Reply:    replies[i].Text,
			Username: replies[i].User.Username,
		})
	}
	return c.JSON(response)
}

// MyTweets handles GET /user/tweets/
// The caller's own tweets, newest first, without aggregate counts.
func (s *Server) MyTweets(c *fiber.Ctx) error {
	tweets, err := s.tweetRepo.ListByUser(c.Context(), callerID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	response := make([]models.OwnTweetResponse, 0, len(tweets))
	for i := range tweets {
		response = append(response, models.OwnTweetResponse{
			Tweet:    tweets[i].Text,
			DateTime: tweets[i].CreatedAt,
		})
	}
	return c.JSON(response)
}

// CreateTweet handles POST /user/tweets/
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		Tweet string `json:"tweet"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateTweetText(req.Tweet); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	tweet := &models.Tweet{
		UserID: callerID(c),
		Text:   req.Tweet,
	}
	if err := s.tweetRepo.Create(c.Context(), tweet); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Tweet created successfully",
	})
}

// DeleteTweet handles DELETE /tweets/:tweetId/
// Deleting an absent tweet is 404 and deleting another user's tweet is 403.
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := parseTweetID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	tweet, err := s.tweetRepo.GetByID(c.Context(), tweetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if tweet == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Tweet", tweetID))
	}
	if tweet.UserID != callerID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own tweets"))
	}

	if err := s.tweetRepo.Delete(c.Context(), tweetID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Tweet Removed",
	})
}

// LikeTweet handles POST /tweets/:tweetId/likes/
func (s *Server) LikeTweet(c *fiber.Ctx) error {
	tweet, err := s.loadVisibleTweet(c)
	if tweet == nil {
		return err
	}

	like := &models.Like{TweetID: tweet.ID, UserID: callerID(c)}
	if err := s.tweetRepo.AddLike(c.Context(), like); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Tweet liked",
	})
}

// UnlikeTweet handles DELETE /tweets/:tweetId/likes/
func (s *Server) UnlikeTweet(c *fiber.Ctx) error {
	tweetID, err := parseTweetID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if err := s.tweetRepo.RemoveLike(c.Context(), tweetID, callerID(c)); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Like removed",
	})
}

// CreateReply handles POST /tweets/:tweetId/replies/
func (s *Server) CreateReply(c *fiber.Ctx) error {
	tweet, err := s.loadVisibleTweet(c)
	if tweet == nil {
		return err
	}

	var req struct {
		Reply string `json:"reply"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateTweetText(req.Reply); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	reply := &models.Reply{
		TweetID: tweet.ID,
		UserID:  callerID(c),
		Text:    req.Reply,
	}
	if err := s.tweetRepo.AddReply(c.Context(), reply); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Reply created successfully",
	})
}
