package user

import (
	"strings"

	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/validation"
	"github.com/google/uuid"
)

var (
	Categorias = []string{"Titulo I", "Titulo II"}
	Instancias = []string{"Propietario", "Interino"}
)

// ------------------------------------------------------------

type CreateStaffRequest struct {
	Cedula          string  `json:"cedula" validate:"required,cedula"`
	Nombre          string  `json:"nombre" validate:"required,personname,max=60"`
	SegundoNombre   *string `json:"segundo_nombre" validate:"omitempty,personname,max=60"`
	PrimerApellido  string  `json:"primer_apellido" validate:"required,personname,max=60"`
	SegundoApellido string  `json:"segundo_apellido" validate:"required,personname,max=60"`
	Posicion        string  `json:"posicion" validate:"required,personname,max=80"`
	Categoria       string  `json:"categoria" validate:"required,oneof='Titulo I' 'Titulo II'"`
	Instancia       string  `json:"instancia" validate:"required,oneof=Propietario Interino"`
	Correo          *string `json:"correo" validate:"omitempty,email,max=254"`
	RoleSlug        string  `json:"role_slug" validate:"omitempty,oneof=normal_user dev admin staff_manager infra_manager viewer"`
}

// Sanitize collapses whitespace in every text field.
func (r *CreateStaffRequest) Sanitize() {
	r.Cedula = strings.TrimSpace(r.Cedula)
	r.Nombre = utils.CollapseSpaces(r.Nombre)
	r.PrimerApellido = utils.CollapseSpaces(r.PrimerApellido)
	r.SegundoApellido = utils.CollapseSpaces(r.SegundoApellido)
	r.Posicion = utils.CollapseSpaces(r.Posicion)
	r.Categoria = utils.CollapseSpaces(r.Categoria)
	r.Instancia = utils.CollapseSpaces(r.Instancia)
	r.SegundoNombre = collapseOptional(r.SegundoNombre)
	r.Correo = utils.NilIfBlank(r.Correo)
	if r.RoleSlug == "" {
		r.RoleSlug = RoleNormalUser
	}
}

func (r *CreateStaffRequest) Validate() error {
	r.Sanitize()
	return validation.Struct(r)
}

// ------------------------------------------------------------

// UpdateStaffRequest is a partial update. Absent fields are left untouched;
// an empty segundo_nombre clears it.
type UpdateStaffRequest struct {
	ID                 string  `param:"id" json:"-" validate:"required,uuid"`
	Nombre             *string `json:"nombre"`
	SegundoNombre      *string `json:"segundo_nombre"`
	PrimerApellido     *string `json:"primer_apellido"`
	SegundoApellido    *string `json:"segundo_apellido"`
	Posicion           *string `json:"posicion"`
	Categoria          *string `json:"categoria"`
	Instancia          *string `json:"instancia"`
	Correo             *string `json:"correo"`
	MustChangePassword *bool   `json:"must_change_password"`
}

// IsEmpty reports whether the request changes nothing.
func (r *UpdateStaffRequest) IsEmpty() bool {
	return r.Nombre == nil && r.SegundoNombre == nil && r.PrimerApellido == nil &&
		r.SegundoApellido == nil && r.Posicion == nil && r.Categoria == nil &&
		r.Instancia == nil && r.Correo == nil && r.MustChangePassword == nil
}

func (r *UpdateStaffRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if r.IsEmpty() {
		return validation.CustomValidationErrors{{Field: "body", Message: "Nada para actualizar"}}
	}

	var problems validation.CustomValidationErrors

	requiredName := func(field string, value **string, message string) {
		if *value == nil {
			return
		}
		v := utils.CollapseSpaces(**value)
		if v == "" || !validation.IsValidPersonName(v) {
			problems = append(problems, validation.CustomValidationError{Field: field, Message: message})
			return
		}
		*value = &v
	}

	requiredName("nombre", &r.Nombre, "Nombre inválido")
	requiredName("primer_apellido", &r.PrimerApellido, "Primer apellido inválido")
	requiredName("segundo_apellido", &r.SegundoApellido, "Segundo apellido inválido")
	requiredName("posicion", &r.Posicion, "Posición inválida")

	if r.SegundoNombre != nil {
		v := utils.CollapseSpaces(*r.SegundoNombre)
		if v != "" && !validation.IsValidPersonName(v) {
			problems = append(problems, validation.CustomValidationError{Field: "segundo_nombre", Message: "Segundo nombre inválido"})
		}
		r.SegundoNombre = &v
	}

	if r.Categoria != nil {
		v := utils.CollapseSpaces(*r.Categoria)
		if !contains(Categorias, v) {
			problems = append(problems, validation.CustomValidationError{Field: "categoria", Message: "Categoría inválida"})
		}
		r.Categoria = &v
	}

	if r.Instancia != nil {
		v := utils.CollapseSpaces(*r.Instancia)
		if !contains(Instancias, v) {
			problems = append(problems, validation.CustomValidationError{Field: "instancia", Message: "Instancia inválida"})
		}
		r.Instancia = &v
	}

	if r.Correo != nil {
		v := strings.TrimSpace(*r.Correo)
		if v != "" && validation.Validator().Var(v, "email") != nil {
			problems = append(problems, validation.CustomValidationError{Field: "correo", Message: "Correo inválido"})
		}
		r.Correo = &v
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}

// ------------------------------------------------------------

type StaffIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *StaffIDRequest) Validate() error {
	return validation.Struct(r)
}

type ListStaffQuery struct {
	Search   string `query:"search" validate:"max=100"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

func (q *ListStaffQuery) Validate() error {
	return validation.Struct(q)
}

func (q *ListStaffQuery) Normalize() {
	q.Search = utils.CollapseSpaces(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
}

// StaffPage is one page of the staff directory.
type StaffPage struct {
	Users    []User `json:"users"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// StaffResponse wraps a single user.
type StaffResponse struct {
	User User `json:"user"`
}

// ------------------------------------------------------------

type GrantRoleRequest struct {
	ID       string `param:"id" json:"-" validate:"required,uuid"`
	RoleSlug string `json:"role_slug" validate:"required,oneof=normal_user dev admin staff_manager infra_manager viewer"`
}

func (r *GrantRoleRequest) Validate() error {
	return validation.Struct(r)
}

type RevokeRoleRequest struct {
	ID   string `param:"id" validate:"required,uuid"`
	Slug string `param:"slug" validate:"required,oneof=normal_user dev admin staff_manager infra_manager viewer"`
}

func (r *RevokeRoleRequest) Validate() error {
	return validation.Struct(r)
}

// MeResponse is returned by /api/me.
type MeResponse struct {
	User  User     `json:"user"`
	Roles []string `json:"roles"`
}

func collapseOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := utils.CollapseSpaces(*s)
	if v == "" {
		return nil
	}
	return &v
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// CreatedStaff is returned when a staff member is added.
type CreatedStaff struct {
	OK bool      `json:"ok"`
	ID uuid.UUID `json:"id"`
}
