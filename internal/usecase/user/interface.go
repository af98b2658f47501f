package user

import "context"

// Usecase defines the interface for user registration operations.
type Usecase interface {
	Register(ctx context.Context, in RegisterRequest) (*User, error)
	List(ctx context.Context) ([]User, error)
}
