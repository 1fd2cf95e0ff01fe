package domain

import "time"

// Audit actions recorded for back-office activity.
const (
	AuditLogin         = "login"
	AuditPasswordReset = "password_reset"
	AuditPlantCreated  = "plant_created"
	AuditPlantUpdated  = "plant_updated"
	AuditPlantDeleted  = "plant_deleted"
)

// AuditEvent records one administrative action for the activity trail.
type AuditEvent struct {
	Actor     string    `bson:"actor"`
	Action    string    `bson:"action"`
	EntityID  string    `bson:"entity_id,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}
