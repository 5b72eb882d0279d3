package entity

import "time"

const (
	RoleAdministrator   = "ADMINISTRATOR"
	RoleChiefDentist    = "CHIEF_DENTIST"
	RoleClinicAssistant = "CLINIC_ASSISTANT"
	RolePrintingOnly    = "PRINTING_ONLY"
)

var UserRoles = []string{RoleAdministrator, RoleChiefDentist, RoleClinicAssistant, RolePrintingOnly}

type User struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username" validate:"required,min=3"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required"`
	Active    bool   `json:"active"`
	// Password is write-only: set at creation, changed through the dedicated
	// change-password call, never returned by the backend.
	Password  string    `json:"password,omitempty" validate:"omitempty,min=6"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}
