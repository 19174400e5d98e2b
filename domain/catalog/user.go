package catalog

import (
	"recipeapi/pkg/errors"
)

// User is a registered account. Only the salted hash is stored; the
// plaintext password never is.
type User struct {
	UserName     string `json:"userName"`
	PasswordHash []byte `json:"passwordHash"`
	PasswordSalt []byte `json:"passwordSalt"`
}

// UserDirectory holds the registered users. User names are unique by exact
// string match.
type UserDirectory struct {
	users []User
}

// NewUserDirectory creates a directory seeded with the loaded users.
func NewUserDirectory(users []User) *UserDirectory {
	return &UserDirectory{users: append([]User(nil), users...)}
}

// List returns all users in registration order.
func (d *UserDirectory) List() []User {
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out
}

// Lookup returns the user with the given name.
func (d *UserDirectory) Lookup(userName string) (User, error) {
	for _, u := range d.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return User{}, errors.NewNotFoundError("user")
}

// Register stores a new user. Users are never updated or removed.
func (d *UserDirectory) Register(user User) error {
	if user.UserName == "" {
		return errors.NewValidationError("user name must not be empty")
	}
	for _, u := range d.users {
		if u.UserName == user.UserName {
			return errors.NewConflictError("user name already taken")
		}
	}
	d.users = append(d.users, user)
	return nil
}
