package model

import (
	"time"
)

// Note is a tenant-owned text note. AuthorEmail is never stored; it is
// joined from the user table whenever a note is read.
type Note struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorUserID int64     `json:"user_id"`
	TenantID     int64     `json:"tenant_id"`
	AuthorEmail  string    `json:"author_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UnknownAuthor is reported when a note's author no longer resolves.
const UnknownAuthor = "Unknown"

const (
	MaxTitleLength   = 200
	MaxContentLength = 50000
)
