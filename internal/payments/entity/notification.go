package entity

import "time"

type Notification struct {
	EventID   string
	AccountID int64
	Title     string
	Body      string
	CreatedAt time.Time
}
