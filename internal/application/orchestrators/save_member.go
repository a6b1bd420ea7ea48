package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"diaconisas/internal/domain/member"
)

// MemberStoreForSave defines the store interface needed by member orchestrators.
type MemberStoreForSave interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
	Delete(ctx context.Context, id string) error
}

// SaveMemberInput carries input for creating or updating a member.
type SaveMemberInput struct {
	ID        string // empty creates a new member
	Nombre    string
	Apellido  string
	Direccion string
	Telefono  string
}

// SaveMemberDeps holds dependencies for SaveMember.
type SaveMemberDeps struct {
	MemberStore MemberStoreForSave
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteSaveMember creates or updates a member.
// PRE: Nombre and Apellido are non-blank; ID, when set, refers to an existing member
// POST: Member persisted; fecha_registro set on create and preserved on update
func ExecuteSaveMember(ctx context.Context, input SaveMemberInput, deps SaveMemberDeps) (member.Member, error) {
	var m member.Member
	if input.ID != "" {
		existing, err := deps.MemberStore.GetByID(ctx, input.ID)
		if err != nil {
			return member.Member{}, err
		}
		m = existing
	} else {
		m = member.Member{ID: deps.GenerateID(), FechaRegistro: deps.Now()}
	}

	m.Nombre = strings.TrimSpace(input.Nombre)
	m.Apellido = strings.TrimSpace(input.Apellido)
	m.Direccion = strings.TrimSpace(input.Direccion)
	m.Telefono = strings.TrimSpace(input.Telefono)

	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	event := "member_created"
	if input.ID != "" {
		event = "member_updated"
	}
	slog.Info("roster_event", "event", event, "member_id", m.ID)
	return m, nil
}

// DeleteMemberDeps holds dependencies for DeleteMember.
type DeleteMemberDeps struct {
	MemberStore MemberStoreForSave
}

// ExecuteDeleteMember hard-deletes a member. Attendance history is kept.
// PRE: id refers to an existing member
// POST: Member removed
func ExecuteDeleteMember(ctx context.Context, id string, deps DeleteMemberDeps) error {
	if err := deps.MemberStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "member_deleted", "member_id", id)
	return nil
}
