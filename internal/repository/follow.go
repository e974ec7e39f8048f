package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowingUsernames(ctx context.Context, userID uint) ([]string, error)
	FollowerUsernames(ctx context.Context, userID uint) ([]string, error)
}

// followedUserIDs builds the subquery of user IDs that callerID follows.
// Every follow-scoped read in the tweet repository goes through this one
// predicate; there must be no second copy of it.
func followedUserIDs(db *gorm.DB, callerID uint) *gorm.DB {
	return db.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ?", callerID)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Already following this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow edge", followingID)
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) FollowingUsernames(ctx context.Context, userID uint) ([]string, error) {
	usernames := []string{}
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.following_id").
		Where("f.follower_id = ?", userID).
		Order("users.username ASC").
		Pluck("users.username", &usernames).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return usernames, nil
}

func (r *followRepository) FollowerUsernames(ctx context.Context, userID uint) ([]string, error) {
	usernames := []string{}
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.following_id = ?", userID).
		Order("users.username ASC").
		Pluck("users.username", &usernames).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return usernames, nil
}
