package user

import "errors"

// User represents a registered user.
type User struct {
	ID    int64  // ID is assigned by the store at creation and never changes
	Name  string // Name is required at creation
	Email string // Email is required at creation; format and uniqueness are not checked
}

// ErrNotCreated is returned by a repository when an insert completes without
// returning the created row.
var ErrNotCreated = errors.New("Problemas ao criar o usuário")
