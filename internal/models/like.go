package models

import (
	"time"
)

// Like marks that a user liked a tweet. The combination of UserID and
// TweetID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TweetID   uint      `gorm:"not null;index;uniqueIndex:idx_tweet_user_like" json:"tweet_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_tweet_user_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Tweet Tweet `gorm:"foreignKey:TweetID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
