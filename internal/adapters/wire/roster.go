// Package wire holds the JSON shapes of the REST API, shared by the server and the API client.
package wire

import (
	"time"

	"diaconisas/internal/domain/friend"
	"diaconisas/internal/domain/member"
)

// MemberInput is the body of POST/PUT /api/members.
type MemberInput struct {
	Nombre    string `json:"nombre" validate:"required,notblank,max=100"`
	Apellido  string `json:"apellido" validate:"required,notblank,max=100"`
	Direccion string `json:"direccion" validate:"max=200"`
	Telefono  string `json:"telefono" validate:"max=40"`
}

// Member is a member as returned by the API.
type Member struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Apellido      string    `json:"apellido"`
	Direccion     string    `json:"direccion"`
	Telefono      string    `json:"telefono"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

// FromMember converts a domain member.
func FromMember(m member.Member) Member {
	return Member{
		ID:            m.ID,
		Nombre:        m.Nombre,
		Apellido:      m.Apellido,
		Direccion:     m.Direccion,
		Telefono:      m.Telefono,
		FechaRegistro: m.FechaRegistro,
	}
}

// FromMembers converts a slice, never returning nil.
func FromMembers(ms []member.Member) []Member {
	out := make([]Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMember(m))
	}
	return out
}

// Domain converts back to the domain type.
func (m Member) Domain() member.Member {
	return member.Member{
		ID:            m.ID,
		Nombre:        m.Nombre,
		Apellido:      m.Apellido,
		Direccion:     m.Direccion,
		Telefono:      m.Telefono,
		FechaRegistro: m.FechaRegistro,
	}
}

// Members converts a slice of API members to domain members.
func Members(ms []Member) []member.Member {
	out := make([]member.Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Domain())
	}
	return out
}

// FriendInput is the body of POST/PUT /api/visitors.
type FriendInput struct {
	Nombre       string `json:"nombre" validate:"required,notblank,max=100"`
	DeDondeViene string `json:"de_donde_viene" validate:"max=100"`
}

// Friend is a friend (visitor) as returned by the API.
type Friend struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	DeDondeViene  string    `json:"de_donde_viene"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

// FromFriend converts a domain friend.
func FromFriend(f friend.Friend) Friend {
	return Friend{ID: f.ID, Nombre: f.Nombre, DeDondeViene: f.DeDondeViene, FechaRegistro: f.FechaRegistro}
}

// FromFriends converts a slice, never returning nil.
func FromFriends(fs []friend.Friend) []Friend {
	out := make([]Friend, 0, len(fs))
	for _, f := range fs {
		out = append(out, FromFriend(f))
	}
	return out
}

// Domain converts back to the domain type.
func (f Friend) Domain() friend.Friend {
	return friend.Friend{ID: f.ID, Nombre: f.Nombre, DeDondeViene: f.DeDondeViene, FechaRegistro: f.FechaRegistro}
}

// Friends converts a slice of API friends to domain friends.
func Friends(fs []Friend) []friend.Friend {
	out := make([]friend.Friend, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Domain())
	}
	return out
}
