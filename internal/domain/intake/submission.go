// Package intake models the quick-request lead form and the notifications it
// produces.
package intake

import (
	"fmt"
	"strings"
)

// Required form keys, in the order they are reported when missing.
const (
	FieldName             = "nombre"
	FieldEmail            = "email"
	FieldRoleOrganization = "rol_organizacion"
	FieldInterest         = "interes"
)

// RequiredFields lists every field a submission must carry.
var RequiredFields = []string{FieldName, FieldEmail, FieldRoleOrganization, FieldInterest}

// Payload is a decoded request body before validation.
type Payload map[string]any

// Field renders the value at key as a trimmed string. ok is false when the
// key is absent or null.
func (p Payload) Field(key string) (value string, ok bool) {
	raw, exists := p[key]
	if !exists || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case []string:
		return strings.TrimSpace(strings.Join(v, ",")), true
	default:
		return strings.TrimSpace(fmt.Sprint(v)), true
	}
}

// MissingFields returns the required fields that are absent or blank.
func (p Payload) MissingFields() []string {
	missing := make([]string, 0, len(RequiredFields))
	for _, field := range RequiredFields {
		if v, ok := p.Field(field); !ok || v == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Submission is a validated quick request. It lives for one request only.
type Submission struct {
	Name             string
	Email            string
	RoleOrganization string
	Interest         string
}

// NewSubmission validates payload. When fields are missing the submission is
// nil and the missing names are returned.
func NewSubmission(payload Payload) (*Submission, []string) {
	if missing := payload.MissingFields(); len(missing) > 0 {
		return nil, missing
	}

	name, _ := payload.Field(FieldName)
	email, _ := payload.Field(FieldEmail)
	role, _ := payload.Field(FieldRoleOrganization)
	interest, _ := payload.Field(FieldInterest)

	return &Submission{
		Name:             name,
		Email:            email,
		RoleOrganization: role,
		Interest:         interest,
	}, nil
}
