package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a staff member of the institution.
type User struct {
	ID                 uuid.UUID  `json:"id"`
	Cedula             string     `json:"cedula"`
	Nombre             string     `json:"nombre"`
	SegundoNombre      *string    `json:"segundo_nombre"`
	PrimerApellido     string     `json:"primer_apellido"`
	SegundoApellido    string     `json:"segundo_apellido"`
	Posicion           *string    `json:"posicion"`
	Categoria          *string    `json:"categoria"`
	Instancia          *string    `json:"instancia"`
	Correo             *string    `json:"correo"`
	MustChangePassword bool       `json:"must_change_password"`
	CreatedAt          time.Time  `json:"created_at"`
	DeletedAt          *time.Time `json:"-"`
}

// FullName joins the given names and both surnames.
func (u User) FullName() string {
	parts := []string{u.Nombre}
	if u.SegundoNombre != nil && strings.TrimSpace(*u.SegundoNombre) != "" {
		parts = append(parts, *u.SegundoNombre)
	}
	parts = append(parts, u.PrimerApellido, u.SegundoApellido)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Role is an assignable role.
type Role struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// SessionUser is the identity resolved from a session cookie.
type SessionUser struct {
	User  User     `json:"user"`
	Roles []string `json:"roles"`

	// TokenHash identifies the session the identity was resolved from.
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// HasAnyRole reports whether the user holds at least one of roles.
func (s *SessionUser) HasAnyRole(roles ...string) bool {
	if s == nil {
		return false
	}
	for _, have := range s.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Owns reports whether a row filed under cedula belongs to the user.
func (s *SessionUser) Owns(cedula string) bool {
	return s != nil && s.User.Cedula != "" && s.User.Cedula == cedula
}
