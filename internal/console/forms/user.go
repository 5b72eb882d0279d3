package forms

import (
	"fmt"

	"navident-console/internal/domain/entity"
)

type UserDraft struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Role      string
	Active    bool
	// Password fields exist only for create mode; edit mode never renders
	// them and never sends them (password changes go through the dedicated
	// change-password flow).
	Password        string
	ConfirmPassword string
}

type UserForm struct {
	*Form[UserDraft]
}

func NewUserForm(existing *entity.User) *UserForm {
	d := &UserDraft{Role: entity.RoleClinicAssistant, Active: true}
	if existing != nil {
		d = &UserDraft{
			Username:  existing.Username,
			FirstName: existing.FirstName,
			LastName:  existing.LastName,
			Email:     existing.Email,
			Role:      existing.Role,
			Active:    existing.Active,
		}
		if d.Role == "" {
			d.Role = entity.RoleClinicAssistant
		}
	}
	return &UserForm{New(d, existing != nil, userRules(existing != nil), applyUserField)}
}

func userRules(edit bool) []Rule[UserDraft] {
	rules := []Rule[UserDraft]{
		{"username", func(d *UserDraft) bool { return notBlank(d.Username) }, "Username is required"},
		{"username", func(d *UserDraft) bool { return len(d.Username) >= 3 }, "Username must be at least 3 characters"},
		{"firstName", func(d *UserDraft) bool { return notBlank(d.FirstName) }, "First name is required"},
		{"lastName", func(d *UserDraft) bool { return notBlank(d.LastName) }, "Last name is required"},
		{"email", func(d *UserDraft) bool { return notBlank(d.Email) }, "Email is required"},
		{"email", func(d *UserDraft) bool { return isEmail(d.Email) }, "Invalid email format"},
		{"role", func(d *UserDraft) bool { return d.Role != "" }, "Role is required"},
	}
	if !edit {
		rules = append(rules,
			Rule[UserDraft]{"password", func(d *UserDraft) bool { return d.Password != "" }, "Password is required"},
			Rule[UserDraft]{"password", func(d *UserDraft) bool { return len(d.Password) >= 6 }, "Password must be at least 6 characters"},
			Rule[UserDraft]{"confirmPassword", func(d *UserDraft) bool { return d.ConfirmPassword != "" }, "Confirm password is required"},
			Rule[UserDraft]{"confirmPassword", func(d *UserDraft) bool { return d.ConfirmPassword == d.Password }, "Passwords do not match"},
		)
	}
	return rules
}

func applyUserField(d *UserDraft, field, value string) error {
	switch field {
	case "username":
		d.Username = value
	case "firstName":
		d.FirstName = value
	case "lastName":
		d.LastName = value
	case "email":
		d.Email = value
	case "role":
		d.Role = value
	case "active":
		d.Active = value == "true"
	case "password":
		d.Password = value
	case "confirmPassword":
		d.ConfirmPassword = value
	default:
		return fmt.Errorf("unknown user field %q", field)
	}
	return nil
}

// Submit returns the user record. In edit mode the password is omitted even
// if something landed in the draft, and the username keeps its original
// value: it is immutable after creation.
func (f *UserForm) Submit() (*entity.User, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	record := &entity.User{
		Username:  d.Username,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Role:      d.Role,
		Active:    d.Active,
	}
	if !f.EditMode() {
		record.Password = d.Password
	}
	return record, true
}

// PasswordChangeForm is the separate change-password flow for existing users.
type PasswordChangeForm struct {
	*Form[PasswordChangeDraft]
}

type PasswordChangeDraft struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func NewPasswordChangeForm() *PasswordChangeForm {
	rules := []Rule[PasswordChangeDraft]{
		{"currentPassword", func(d *PasswordChangeDraft) bool { return d.CurrentPassword != "" }, "Current password is required"},
		{"newPassword", func(d *PasswordChangeDraft) bool { return d.NewPassword != "" }, "New password is required"},
		{"newPassword", func(d *PasswordChangeDraft) bool { return len(d.NewPassword) >= 6 }, "Password must be at least 6 characters"},
		{"confirmPassword", func(d *PasswordChangeDraft) bool { return d.ConfirmPassword == d.NewPassword }, "Passwords do not match"},
	}
	apply := func(d *PasswordChangeDraft, field, value string) error {
		switch field {
		case "currentPassword":
			d.CurrentPassword = value
		case "newPassword":
			d.NewPassword = value
		case "confirmPassword":
			d.ConfirmPassword = value
		default:
			return fmt.Errorf("unknown password field %q", field)
		}
		return nil
	}
	return &PasswordChangeForm{New(&PasswordChangeDraft{}, false, rules, apply)}
}

func (f *PasswordChangeForm) Submit() (*entity.PasswordChange, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	return &entity.PasswordChange{
		CurrentPassword: d.CurrentPassword,
		NewPassword:     d.NewPassword,
	}, true
}
