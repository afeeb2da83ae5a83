package model

import "time"

// ClassificationRule is a durable rule mapping an account code to a
// classification. Rules are soft-deactivated via IsActive, never deleted.
type ClassificationRule struct {
	EffectiveFrom  time.Time
	EffectiveTo    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	AccountCode    string
	AccountName    string
	FamilyCode     string
	CreatedBy      string
	ApprovedBy     string
	Classification Classification
	Level          int
	IsActive       bool
}

// LastModified returns the update timestamp, falling back to the creation
// timestamp for rules that have never been updated.
func (r *ClassificationRule) LastModified() time.Time {
	if !r.UpdatedAt.IsZero() {
		return r.UpdatedAt
	}
	return r.CreatedAt
}
