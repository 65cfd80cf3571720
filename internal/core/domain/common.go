package domain

import "time"

// AuditFields holds the common audit metadata embedded in persisted entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
