package models

import "time"

const (
	AuditTombstoned = "tombstoned"
	AuditRemoved    = "removed"
	AuditEdited     = "edited"
)

// AuditEvent records one lifecycle transition of a comment (MongoDB).
type AuditEvent struct {
	Entity     string    `json:"entity" bson:"entity"`
	EntityID   uint      `json:"entity_id" bson:"entity_id"`
	Action     string    `json:"action" bson:"action"`
	ActorID    uint      `json:"actor_id" bson:"actor_id"`
	ReviewID   uint      `json:"review_id" bson:"review_id"`
	ParentID   *uint     `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	ChildCount int64     `json:"child_count" bson:"child_count"`
	At         time.Time `json:"at" bson:"at"`
}
