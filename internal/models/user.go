package models

import (
	"time"
)

type User struct {
	Username  string    `json:"username" gorm:"primaryKey"`
	ChatID    string    `json:"chat_id"`
	Watchlist []string  `json:"watchlist" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
}
