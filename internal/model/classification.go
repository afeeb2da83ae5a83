// Package model defines the core domain models used throughout the application.
package model

// ClassificationStatus indicates whether a ledger row is fully classified.
type ClassificationStatus string

// Classification status constants.
const (
	StatusClassified   ClassificationStatus = "CLASSIFIED"
	StatusUnclassified ClassificationStatus = "UNCLASSIFIED"
)

// Classification is the business taxonomy tuple assigned to an account:
// type, category, sub-category, and final classification.
type Classification struct {
	Type        string
	Category    string
	SubCategory string
	Final       string
}

// ClassificationUpdate carries a partial classification change. A nil field
// means "keep the current value", never "clear the value".
type ClassificationUpdate struct {
	Type        *string
	Category    *string
	SubCategory *string
	Final       *string
}

// IsZero reports whether the update carries no field changes at all.
func (u ClassificationUpdate) IsZero() bool {
	return u.Type == nil && u.Category == nil && u.SubCategory == nil && u.Final == nil
}

// ApplyTo merges the update onto an existing classification, falling back to
// the existing value for every omitted field.
func (u ClassificationUpdate) ApplyTo(existing Classification) Classification {
	merged := existing
	if u.Type != nil {
		merged.Type = *u.Type
	}
	if u.Category != nil {
		merged.Category = *u.Category
	}
	if u.SubCategory != nil {
		merged.SubCategory = *u.SubCategory
	}
	if u.Final != nil {
		merged.Final = *u.Final
	}
	return merged
}
