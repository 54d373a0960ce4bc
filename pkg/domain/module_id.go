package domain

import (
	"fmt"
	"strconv"
)

// ModuleID identifies a training module by its position in the catalog order.
// Valid module IDs are positive and dense (1..N for a catalog of N modules).
type ModuleID int

// ParseModuleID validates and returns a ModuleID from its string form, as it
// appears in URL paths. Zero and negative values are rejected; whether the ID
// exists in the catalog is the catalog's concern.
func ParseModuleID(s string) (ModuleID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse module id %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("module id must be positive, got %d", n)
	}
	return ModuleID(n), nil
}

func (id ModuleID) String() string { return strconv.Itoa(int(id)) }

// IsValid reports whether the ID could refer to a catalog module.
func (id ModuleID) IsValid() bool { return id >= 1 }
