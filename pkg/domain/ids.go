// Package domain defines typed identifiers and domain primitives shared across
// the service. Construct values via the Parse functions at trust boundaries;
// direct casting bypasses validation.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// UserID identifies a delegate (the person working through the training).
type UserID uuid.UUID

// OrgID identifies the organization (club, school, association) whose
// compliance context the training belongs to.
type OrgID uuid.UUID

// ParseUserID validates and returns a UserID from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("parse user id: %w", err)
	}
	return UserID(u), nil
}

// ParseOrgID validates and returns an OrgID from its string form.
func ParseOrgID(s string) (OrgID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return OrgID{}, fmt.Errorf("parse org id: %w", err)
	}
	return OrgID(u), nil
}

// NewUserID returns a random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewOrgID returns a random OrgID.
func NewOrgID() OrgID { return OrgID(uuid.New()) }

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id OrgID) String() string  { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the ID is the zero UUID.
func (id OrgID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders the ID as its canonical UUID string in JSON and logs.
func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText parses the canonical UUID string form.
func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}
	*id = UserID(u)
	return nil
}

// MarshalText renders the ID as its canonical UUID string in JSON and logs.
func (id OrgID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText parses the canonical UUID string form.
func (id *OrgID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return fmt.Errorf("parse org id: %w", err)
	}
	*id = OrgID(u)
	return nil
}
