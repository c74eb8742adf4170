package model

import (
	"time"

	"github.com/google/uuid"
)

// Permission is one of the fixed grants scoped to Book entities.
// The set is closed: no dynamic permission creation at runtime.
type Permission string

const (
	PermissionView   Permission = "can_view"
	PermissionCreate Permission = "can_create"
	PermissionEdit   Permission = "can_edit"
	PermissionDelete Permission = "can_delete"
)

// AllPermissions returns every valid permission
func AllPermissions() []Permission {
	return []Permission{PermissionView, PermissionCreate, PermissionEdit, PermissionDelete}
}

// IsValid reports whether the permission is one of the fixed grants
func (p Permission) IsValid() bool {
	switch p {
	case PermissionView, PermissionCreate, PermissionEdit, PermissionDelete:
		return true
	}
	return false
}

func (p Permission) String() string {
	return string(p)
}

// Role is a named bundle of permission grants assignable to users.
// A user's effective permissions are the union over all assigned roles.
type Role struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// UnionPermissions merges the grant sets of several roles, deduplicated,
// in the stable order of AllPermissions. This is how a user's effective
// permission set is computed from their role assignments.
func UnionPermissions(roles []Role) []Permission {
	granted := make(map[Permission]bool)
	for _, r := range roles {
		for _, p := range r.Permissions {
			granted[p] = true
		}
	}

	out := make([]Permission, 0, len(granted))
	for _, p := range AllPermissions() {
		if granted[p] {
			out = append(out, p)
		}
	}
	return out
}
