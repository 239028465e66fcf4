package models

import "time"

// AuditFields holds the audit columns shared by persisted entities.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
