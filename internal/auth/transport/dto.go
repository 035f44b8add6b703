package transport

import "github.com/google/uuid"

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AdminProfile is the authenticated admin's public view.
type AdminProfile struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName,omitempty"`
}

// LoginResponse returns a bearer access token plus the admin profile.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int64        `json:"expiresIn"`
	Admin       AdminProfile `json:"admin"`
}
