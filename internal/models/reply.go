package models

import (
	"time"
)

// Reply is a user's textual response to a tweet.
type Reply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TweetID   uint      `gorm:"not null;index" json:"tweet_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"reply"`
	CreatedAt time.Time `json:"created_at"`

	Tweet Tweet `gorm:"foreignKey:TweetID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

// ReplyResponse is the wire shape for the reply listing endpoint.
type ReplyResponse struct {
	Reply    string `json:"reply"`
	Username string `json:"username"`
}
