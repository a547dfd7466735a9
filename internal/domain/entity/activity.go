package entity

import "time"

// ActivityEntry records who did what to which entity. Written fire-and-forget
// after every transition; never load-bearing for correctness.
type ActivityEntry struct {
	ID         int64     `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role,omitempty"`
	Action     string    `json:"action"`
	EntityKind string    `json:"entity_kind"`
	EntityID   int64     `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
