package model

// User is a commenter credential. Password may be a bcrypt hash or, for
// compatibility with existing data files, a plaintext value.
type User struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}
