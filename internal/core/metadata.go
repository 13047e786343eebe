package core

import "strings"

// ConfidenceNotSet marks a metadata value with no authority confidence.
const ConfidenceNotSet = -1

// VirtualAuthorityPrefix marks metadata values materialized from a
// relationship rather than stored on the item itself. The suffix is the
// relationship identifier.
const VirtualAuthorityPrefix = "virtual::"

// MetadataValue is a single normalized form-field value: the literal value
// plus its language tag, optional authority key, display string, ordinal
// place within its field and authority confidence score.
type MetadataValue struct {
	Value            string            `json:"value"`
	Language         string            `json:"language,omitempty"`
	Authority        string            `json:"authority,omitempty"`
	Display          string            `json:"display,omitempty"`
	Place            int               `json:"place"`
	Confidence       int               `json:"confidence"`
	OtherInformation map[string]string `json:"otherInformation,omitempty"`
}

// HasAuthority reports whether the value carries an authority key.
func (v MetadataValue) HasAuthority() bool {
	return strings.TrimSpace(v.Authority) != ""
}

// IsVirtual reports whether the value is backed by a relationship.
func (v MetadataValue) IsVirtual() bool {
	return strings.HasPrefix(v.Authority, VirtualAuthorityPrefix)
}

// RelationshipID returns the identifier of the relationship backing a
// virtual value, or "" when the value is not virtual.
func (v MetadataValue) RelationshipID() string {
	if !v.IsVirtual() {
		return ""
	}
	return strings.TrimPrefix(v.Authority, VirtualAuthorityPrefix)
}
