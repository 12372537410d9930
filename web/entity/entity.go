// Package entity defines the form payloads bound from browser requests.
package entity

// RegisterForm is the registration page payload. The account is not
// created until the confirmation link is followed.
type RegisterForm struct {
	Name       string `form:"name" binding:"required"`
	Profession string `form:"profession" binding:"required"`
	Department string `form:"department" binding:"required"`
	Email      string `form:"email" binding:"required,email"`
	Password   string `form:"password" binding:"required,min=8"`
}

// LoginForm is the login page payload. Next carries the originally
// requested path when the user was redirected here by an auth check.
type LoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// NoteForm is the note submission payload.
type NoteForm struct {
	Content string `form:"content" binding:"required"`
}
