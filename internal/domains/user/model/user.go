package model

import "errors"

var ErrUserNotFound = errors.New("user not found")

// User is an editorial account. Password hashes are bcrypt.
type User struct {
	Username           string `json:"username"`
	AuthorName         string `json:"author_name"`
	PasswordHash       string `json:"-"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}
