package friend

import (
	"errors"
	"strings"
	"time"
)

// MaxFieldLength caps user-editable fields.
const MaxFieldLength = 100

// OriginUnspecified is shown when a friend's origin is unknown.
const OriginUnspecified = "unspecified"

// ErrEmptyNombre is returned when a friend has no name.
var ErrEmptyNombre = errors.New("nombre cannot be empty")

// Friend holds state for a visitor to the church.
type Friend struct {
	ID            string
	Nombre        string
	DeDondeViene  string
	FechaRegistro time.Time
}

// Validate checks if the Friend has valid data.
// PRE: Friend struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (f *Friend) Validate() error {
	if strings.TrimSpace(f.Nombre) == "" {
		return ErrEmptyNombre
	}
	if len(f.Nombre) > MaxFieldLength || len(f.DeDondeViene) > MaxFieldLength {
		return errors.New("friend fields cannot exceed 100 characters")
	}
	return nil
}

// Origin returns where the friend comes from, or OriginUnspecified.
func (f *Friend) Origin() string {
	if o := strings.TrimSpace(f.DeDondeViene); o != "" {
		return o
	}
	return OriginUnspecified
}
