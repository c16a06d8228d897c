package domain

import "time"

// AuditFields records who touched an entity and when. CreatedBy and
// LastUpdatedBy carry the actor ID from the request.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
