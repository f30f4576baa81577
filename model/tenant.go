package model

import (
	"regexp"
	"time"
)

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// FreePlanNoteLimit is the number of notes a free tenant may hold.
const FreePlanNoteLimit = 3

func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro
}

// Tenant is an isolated organization. Slug is its external identifier.
type Tenant struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a lowercase URL-safe slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
