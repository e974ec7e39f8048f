// Package seed populates the database with demo data for local development.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	Users           int
	TweetsPerUser   int
	FollowsPerUser  int
	LikeProbability float64
	Password        string
}

// DefaultOptions returns a small but connected demo dataset.
func DefaultOptions() Options {
	return Options{
		Users:           12,
		TweetsPerUser:   5,
		FollowsPerUser:  4,
		LikeProbability: 0.3,
		Password:        "chirpdemo1",
	}
}

// Run seeds users, a follow mesh, tweets, likes, and replies. It is intended
// for empty development databases and is not idempotent.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		users = append(users, models.User{
			Name:     gofakeit.Name(),
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Password: string(hash),
			Gender:   gofakeit.Gender(),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	// Follow mesh: each user follows a handful of distinct other users.
	for i := range users {
		seen := map[uint]bool{users[i].ID: true}
		for len(seen) <= opts.FollowsPerUser && len(seen) < len(users) {
			target := users[rand.Intn(len(users))]
			if seen[target.ID] {
				continue
			}
			seen[target.ID] = true
			follow := models.Follow{FollowerID: users[i].ID, FollowingID: target.ID}
			if err := db.Create(&follow).Error; err != nil {
				return fmt.Errorf("seed follows: %w", err)
			}
		}
	}

	tweets := make([]models.Tweet, 0, opts.Users*opts.TweetsPerUser)
	for i := range users {
		for j := 0; j < opts.TweetsPerUser; j++ {
			tweets = append(tweets, models.Tweet{
				UserID:    users[i].ID,
				Text:      gofakeit.Sentence(8 + rand.Intn(10)),
				CreatedAt: time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour),
			})
		}
	}
	if err := db.Create(&tweets).Error; err != nil {
		return fmt.Errorf("seed tweets: %w", err)
	}

	for i := range tweets {
		for j := range users {
			if users[j].ID == tweets[i].UserID {
				continue
			}
			if rand.Float64() < opts.LikeProbability {
				like := models.Like{TweetID: tweets[i].ID, UserID: users[j].ID}
				if err := db.Create(&like).Error; err != nil {
					return fmt.Errorf("seed likes: %w", err)
				}
			}
			if rand.Float64() < opts.LikeProbability/2 {
				reply := models.Reply{
					TweetID: tweets[i].ID,
					UserID:  users[j].ID,
					Text:    gofakeit.Sentence(4 + rand.Intn(8)),
				}
				if err := db.Create(&reply).Error; err != nil {
					return fmt.Errorf("seed replies: %w", err)
				}
			}
		}
	}

	return nil
}
