package model

import (
	"errors"
	"strings"
)

// ErrMissingIdentity is returned by operations that need a tenant identity
// when the caller supplied none. Other report sections are unaffected.
var ErrMissingIdentity = errors.New("missing tenant identity")

// Tenant is the caller-supplied session context. The engine treats it as opaque
// apart from CompanyID, which namespaces persisted scalars.
type Tenant struct {
	CompanyID string
	OwnerType string
	OwnerID   string
}

// Validate reports ErrMissingIdentity when no company is set.
func (t Tenant) Validate() error {
	if strings.TrimSpace(t.CompanyID) == "" {
		return ErrMissingIdentity
	}
	return nil
}
