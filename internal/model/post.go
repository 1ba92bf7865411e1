package model

import "time"

type Post struct {
	ID        int64
	Title     string
	Content   string
	ImageURL  string
	UserID    int64
	CreatedAt time.Time
}
