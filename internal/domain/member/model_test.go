package member_test

import (
	"errors"
	"strings"
	"testing"

	"diaconisas/internal/domain/member"
)

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	tests := []struct {
		name    string
		member  member.Member
		wantErr error
	}{
		{
			name:   "valid member",
			member: member.Member{ID: "1", Nombre: "Ana", Apellido: "Pérez", Direccion: "Calle 1", Telefono: "555"},
		},
		{
			name:   "address and phone optional",
			member: member.Member{ID: "1", Nombre: "Ana", Apellido: "Pérez"},
		},
		{
			name:    "blank nombre",
			member:  member.Member{ID: "1", Nombre: "   ", Apellido: "Pérez"},
			wantErr: member.ErrEmptyNombre,
		},
		{
			name:    "missing apellido",
			member:  member.Member{ID: "1", Nombre: "Ana"},
			wantErr: member.ErrEmptyApellido,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestMemberValidationLength tests the length caps.
func TestMemberValidationLength(t *testing.T) {
	m := member.Member{Nombre: strings.Repeat("a", member.MaxNameLength+1), Apellido: "b"}
	if err := m.Validate(); err == nil {
		t.Error("expected error for long nombre")
	}
	m = member.Member{Nombre: "a", Apellido: "b", Telefono: strings.Repeat("9", member.MaxPhoneLength+1)}
	if err := m.Validate(); err == nil {
		t.Error("expected error for long telefono")
	}
}

// TestMemberFullName tests FullName.
func TestMemberFullName(t *testing.T) {
	m := member.Member{Nombre: "Ana", Apellido: "Pérez"}
	if got := m.FullName(); got != "Ana Pérez" {
		t.Errorf("FullName() = %q", got)
	}
}
