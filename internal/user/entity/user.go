package entity

import "github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"

// User is one row of the Users table. Users are created at signup and never
// updated or deleted here.
type User struct {
	UserID       string `sheet:"user_id" json:"user_id"`
	Email        string `sheet:"email" json:"email"`
	PasswordHash string `sheet:"password_hash" json:"-"`
	Name         string `sheet:"name" json:"name"`
	MajorProgram string `sheet:"major_program" json:"major_program"`
	GradYear     string `sheet:"grad_year" json:"grad_year"`
	Role         string `sheet:"role" json:"role"`
	CreatedAt    string `sheet:"created_at" json:"created_at"`
}

var Users = sheet.NewSchema[User]("Users",
	"user_id", "email", "password_hash", "name", "major_program", "grad_year", "role", "created_at",
)

// NewUser is the input for creating a user; the password is already hashed.
type NewUser struct {
	Email        string
	PasswordHash string
	Name         string
	MajorProgram string
	GradYear     string
	Role         string
}
