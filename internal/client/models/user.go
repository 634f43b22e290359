// Package models defines the client-side data models of the to-do list.
package models

// User is a registered account. It is created on sign up and never changed.
// Password is kept as entered.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
