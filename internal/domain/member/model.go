package member

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 100
	MaxAddressLength = 200
	MaxPhoneLength   = 40
)

// Domain errors
var (
	ErrEmptyNombre   = errors.New("nombre cannot be empty")
	ErrEmptyApellido = errors.New("apellido cannot be empty")
)

// Member holds state for a registered church member.
type Member struct {
	ID            string
	Nombre        string
	Apellido      string
	Direccion     string
	Telefono      string
	FechaRegistro time.Time
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Nombre and Apellido must not be blank
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Nombre) == "" {
		return ErrEmptyNombre
	}
	if strings.TrimSpace(m.Apellido) == "" {
		return ErrEmptyApellido
	}
	if len(m.Nombre) > MaxNameLength || len(m.Apellido) > MaxNameLength {
		return errors.New("member name cannot exceed 100 characters")
	}
	if len(m.Direccion) > MaxAddressLength {
		return errors.New("direccion cannot exceed 200 characters")
	}
	if len(m.Telefono) > MaxPhoneLength {
		return errors.New("telefono cannot exceed 40 characters")
	}
	return nil
}

// FullName returns "nombre apellido", the name recorded on attendance rows.
func (m *Member) FullName() string {
	return strings.TrimSpace(m.Nombre + " " + m.Apellido)
}
