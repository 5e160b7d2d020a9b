package types

// RegisterRequest is the body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required"`
}

// LoginRequest is the body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the session token back to the client.
type AuthResponse struct {
	Token string `json:"token"`
}

// UpdateUsernameRequest replaces the document's username.
type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// UpdateLinksRequest replaces the whole link list.
type UpdateLinksRequest struct {
	Links []Link `json:"links" binding:"required"`
}

// ReorderLinksRequest moves the link at From in front of the position To.
type ReorderLinksRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// UpdateAccountRequest updates the account row and the document username.
type UpdateAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// ChangePasswordRequest is the body for POST /api/v1/dashboard/account/password.
type ChangePasswordRequest struct {
	Current string `json:"current" binding:"required"`
	New     string `json:"new" binding:"required"`
	Confirm string `json:"confirm" binding:"required"`
}

// SaveStatusResponse reports the outcome of background persistence.
type SaveStatusResponse struct {
	Dirty bool   `json:"dirty"`
	Error string `json:"error,omitempty"`
}
