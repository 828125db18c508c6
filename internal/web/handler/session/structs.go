package session

// registerPayload is the body of an account registration call.
type registerPayload struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// loginPayload is the body of a login call. Role selects which of the user's
// roles the session is opened in.
type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// assignPayload is the body of an administrative role grant.
type assignPayload struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// userView is the identity block returned by register and login.
type userView struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// loginView is the payload of a successful login.
type loginView struct {
	Token     string   `json:"token"`
	User      userView `json:"user"`
	Role      string   `json:"role"`
	BindingID uint64   `json:"binding_id"`
}

// roleView is a role directory entry.
type roleView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
