package dto

// CreateUserRequest entrada para aprovisionar un usuario (solo ADMIN).
// Los nombres de rol desconocidos se omiten; al menos uno debe resolverse.
type CreateUserRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required,min=8"`
	Email    string   `json:"email" validate:"required,email"`
	Roles    []string `json:"roles" validate:"required,min=1"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}
