package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines the interface for tweet, like, and reply data operations.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	GetDetail(ctx context.Context, id uint) (*models.Tweet, error)
	Feed(ctx context.Context, callerID uint, limit int) ([]models.Tweet, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Tweet, error)
	Delete(ctx context.Context, id uint) error
	Likers(ctx context.Context, tweetID uint) ([]string, error)
	ListReplies(ctx context.Context, tweetID uint) ([]models.Reply, error)
	AddLike(ctx context.Context, like *models.Like) error
	RemoveLike(ctx context.Context, tweetID, userID uint) error
	AddReply(ctx context.Context, reply *models.Reply) error
}

// tweetRepository implements TweetRepository
type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

// applyTweetCounts adds subqueries to fetch like and reply counts in a single query.
func applyTweetCounts(db *gorm.DB) *gorm.DB {
	return db.Select("tweets.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS like_count, " +
		"(SELECT COUNT(*) FROM replies WHERE replies.tweet_id = tweets.id) AS reply_count")
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) GetDetail(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := applyTweetCounts(r.db.WithContext(ctx).Model(&models.Tweet{})).
		Where("tweets.id = ?", id).
		First(&tweet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

// Feed returns the most recent tweets authored by users the caller follows,
// newest first with ID as the deterministic tie-break.
func (r *tweetRepository) Feed(ctx context.Context, callerID uint, limit int) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	if err := applyTweetCounts(r.db.WithContext(ctx).Model(&models.Tweet{})).
		Where("tweets.user_id IN (?)", followedUserIDs(r.db, callerID)).
		Order("tweets.created_at DESC, tweets.id DESC").
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) ListByUser(ctx context.Context, userID uint) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	// Likes and replies hang off the tweet; remove them in the same transaction.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) Likers(ctx context.Context, tweetID uint) ([]string, error) {
	usernames := []string{}
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN likes l ON users.id = l.user_id").
		Where("l.tweet_id = ?", tweetID).
		Order("users.username ASC").
		Pluck("users.username", &usernames).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return usernames, nil
}

func (r *tweetRepository) ListReplies(ctx context.Context, tweetID uint) ([]models.Reply, error) {
	replies := []models.Reply{}
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("tweet_id = ?", tweetID).
		Order("created_at ASC, id ASC").
		Find(&replies).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return replies, nil
}

func (r *tweetRepository) AddLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Tweet already liked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) RemoveLike(ctx context.Context, tweetID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("tweet_id = ? AND user_id = ?", tweetID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like", tweetID)
	}
	return nil
}

func (r *tweetRepository) AddReply(ctx context.Context, reply *models.Reply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
