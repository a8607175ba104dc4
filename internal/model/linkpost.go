package model

import (
	"time"

	"github.com/google/uuid"
)

// LinkPost is the sponsored link scheduled for one weekday. At most
// one post exists per weekday.
type LinkPost struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Day       string     `json:"day" db:"day"`
	Platform  string     `json:"platform" db:"platform"`
	Link      string     `json:"link" db:"link"`
	AutoPost  bool       `json:"auto_post" db:"auto_post"`
	Posted    bool       `json:"posted" db:"posted"`
	PostedAt  *time.Time `json:"posted_at,omitempty" db:"posted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
