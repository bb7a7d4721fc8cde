package models

import "strings"

const RoleAdmin = "admin"

// User is the staff account returned by the backend on login.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) Initial() string {
	if u.Email == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(u.Email)[:1]))
}
