package models

import (
	"time"
)

// Tweet is a post owned by a single user. A tweet is visible to a caller
// only when the caller follows the owner, except through the owner's own
// tweet listing.
type Tweet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"tweet"`
	CreatedAt time.Time `json:"date_time"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"likes"`
	// ReplyCount is not persisted; computed at query time
	ReplyCount int `gorm:"->" json:"replies"`
}

// TweetResponse is the wire shape for feed and detail endpoints,
// kept compatible with the original API.
type TweetResponse struct {
	Tweet    string    `json:"tweet"`
	Likes    int       `json:"likes"`
	Replies  int       `json:"replies"`
	DateTime time.Time `json:"dateTime"`
}

// OwnTweetResponse is the wire shape for the caller's own tweet listing,
// which carries no aggregate counts.
type OwnTweetResponse struct {
	Tweet    string    `json:"tweet"`
	DateTime time.Time `json:"dateTime"`
}

// ToResponse shapes a tweet for the feed/detail wire contract.
func (t *Tweet) ToResponse() TweetResponse {
	return TweetResponse{
		Tweet:    t.Text,
		Likes:    t.LikeCount,
		Replies:  t.ReplyCount,
		DateTime: t.CreatedAt,
	}
}
