package models

import "time"

// StatusInProgress is the status every new todo starts in.
const StatusInProgress = "inprogress"
const StatusCompleted = "completed"

type Todo struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	OwnerID   int       `json:"ownerId"`
}

// ValidStatus reports whether s is one of the two todo statuses.
func ValidStatus(s string) bool {
	return s == StatusInProgress || s == StatusCompleted
}
