package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"diaconisas/internal/domain/friend"
)

// FriendStoreForSave defines the store interface needed by friend orchestrators.
type FriendStoreForSave interface {
	GetByID(ctx context.Context, id string) (friend.Friend, error)
	Save(ctx context.Context, f friend.Friend) error
	Delete(ctx context.Context, id string) error
}

// SaveFriendInput carries input for creating or updating a friend.
type SaveFriendInput struct {
	ID           string // empty creates a new friend
	Nombre       string
	DeDondeViene string
}

// SaveFriendDeps holds dependencies for SaveFriend.
type SaveFriendDeps struct {
	FriendStore FriendStoreForSave
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteSaveFriend creates or updates a friend.
// PRE: Nombre is non-blank; ID, when set, refers to an existing friend
// POST: Friend persisted; fecha_registro set on create and preserved on update
func ExecuteSaveFriend(ctx context.Context, input SaveFriendInput, deps SaveFriendDeps) (friend.Friend, error) {
	var f friend.Friend
	if input.ID != "" {
		existing, err := deps.FriendStore.GetByID(ctx, input.ID)
		if err != nil {
			return friend.Friend{}, err
		}
		f = existing
	} else {
		f = friend.Friend{ID: deps.GenerateID(), FechaRegistro: deps.Now()}
	}

	f.Nombre = strings.TrimSpace(input.Nombre)
	f.DeDondeViene = strings.TrimSpace(input.DeDondeViene)

	if err := f.Validate(); err != nil {
		return friend.Friend{}, err
	}
	if err := deps.FriendStore.Save(ctx, f); err != nil {
		return friend.Friend{}, err
	}

	event := "friend_created"
	if input.ID != "" {
		event = "friend_updated"
	}
	slog.Info("roster_event", "event", event, "friend_id", f.ID)
	return f, nil
}

// DeleteFriendDeps holds dependencies for DeleteFriend.
type DeleteFriendDeps struct {
	FriendStore FriendStoreForSave
}

// ExecuteDeleteFriend hard-deletes a friend. Attendance history keeps the recorded name.
// PRE: id refers to an existing friend
// POST: Friend removed
func ExecuteDeleteFriend(ctx context.Context, id string, deps DeleteFriendDeps) error {
	if err := deps.FriendStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "friend_deleted", "friend_id", id)
	return nil
}
