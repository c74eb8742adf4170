package model

import (
	"github.com/google/uuid"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RoleResponse - role with its grant set
type RoleResponse struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// ToResponse converts a Role entity to its response shape
func (r *Role) ToResponse() RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
	}
}

// AssignRoleRequest - POST /v1/admin/users/:id/roles
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (r AssignRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.Length(1, 100),
		),
	)
}
