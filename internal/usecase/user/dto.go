package user

// RegisterRequest represents the request payload for registering a user.
type RegisterRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
}
