package models

import "time"

type Notification struct {
	ID        int64
	UserID    string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}
