package models

import "time"

// Resource is a shared record owned by exactly one user. OwnerID is set at
// creation from the session and never changes.
type Resource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResourcePatch is a partial resource update; nil fields keep the stored
// value. There is deliberately no OwnerID.
type ResourcePatch struct {
	Title       *string
	Description *string
	Available   *bool
}

// Empty reports whether the patch changes nothing.
func (p ResourcePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Available == nil
}

// ResourceFilter narrows a listing. Zero value lists everything.
type ResourceFilter struct {
	OwnerID   string
	Available *bool
}
