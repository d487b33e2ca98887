package dto

// RegisterRequest entrada para registro de autoservicio (siempre rol USER).
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse salida con el bearer token JWT.
type TokenResponse struct {
	Token string `json:"token"`
}
